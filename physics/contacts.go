package physics

import (
	"sort"

	"github.com/jakecoffman/cp"
)

// ContactListener observes contact begin and end between two owners.
type ContactListener func(a, b Handle, began bool)

// ContactTracker keeps, for every owner, the set of owners it touches. Each
// entry counts the touching fixture pairs so that multi-fixture bodies stay
// in contact until their last pair separates.
type ContactTracker struct {
	touching map[Handle]map[Handle]int
	listener ContactListener

	// Fixture pairs separated only because their static owner was
	// re-indexed. They stay counted until the next step either begins them
	// again or leaves them apart.
	holding bool
	holder  Handle
	held    map[fixturePair]ownerPair
}

type fixturePair struct{ a, b *cp.Shape }

type ownerPair struct{ a, b Handle }

func NewContactTracker() *ContactTracker {
	return &ContactTracker{
		touching: make(map[Handle]map[Handle]int),
		held:     make(map[fixturePair]ownerPair),
	}
}

// SetListener registers fn to receive the first begin and the last end of
// each pair. Pass nil to remove it.
func (ct *ContactTracker) SetListener(fn ContactListener) {
	if ct == nil {
		return
	}
	ct.listener = fn
}

func (ct *ContactTracker) Begin(a, b Handle) {
	if ct == nil || a == b {
		return
	}
	first := ct.inc(a, b)
	ct.inc(b, a)
	if first && ct.listener != nil {
		ct.listener(a, b, true)
	}
}

func (ct *ContactTracker) End(a, b Handle) {
	if ct == nil || a == b {
		return
	}
	last := ct.dec(a, b)
	ct.dec(b, a)
	if last && ct.listener != nil {
		ct.listener(a, b, false)
	}
}

func (ct *ContactTracker) inc(a, b Handle) bool {
	set := ct.touching[a]
	if set == nil {
		set = make(map[Handle]int)
		ct.touching[a] = set
	}
	set[b]++
	return set[b] == 1
}

func (ct *ContactTracker) dec(a, b Handle) bool {
	set := ct.touching[a]
	if set == nil {
		return false
	}
	n, ok := set[b]
	if !ok {
		return false
	}
	if n > 1 {
		set[b] = n - 1
		return false
	}
	delete(set, b)
	if len(set) == 0 {
		delete(ct.touching, a)
	}
	return true
}

// Touching reports whether h is in contact with any of others.
func (ct *ContactTracker) Touching(h Handle, others []Handle) bool {
	if ct == nil {
		return false
	}
	set := ct.touching[h]
	if len(set) == 0 {
		return false
	}
	for _, o := range others {
		if set[o] > 0 {
			return true
		}
	}
	return false
}

// Neighbors returns the owners touching h in ascending order.
func (ct *ContactTracker) Neighbors(h Handle) []Handle {
	if ct == nil {
		return nil
	}
	set := ct.touching[h]
	if len(set) == 0 {
		return nil
	}
	out := make([]Handle, 0, len(set))
	for o := range set {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Purge drops h from every set, including its own.
func (ct *ContactTracker) Purge(h Handle) {
	if ct == nil {
		return
	}
	for fp, owners := range ct.held {
		if owners.a == h || owners.b == h {
			delete(ct.held, fp)
		}
	}
	for o := range ct.touching[h] {
		if set := ct.touching[o]; set != nil {
			delete(set, h)
			if len(set) == 0 {
				delete(ct.touching, o)
			}
		}
		if ct.listener != nil {
			ct.listener(h, o, false)
		}
	}
	delete(ct.touching, h)
}

// Pairs returns the number of owner pairs currently in contact.
func (ct *ContactTracker) Pairs() int {
	if ct == nil {
		return 0
	}
	n := 0
	for _, set := range ct.touching {
		n += len(set)
	}
	return n / 2
}

// Len returns the number of owners touching at least one other owner.
func (ct *ContactTracker) Len() int {
	if ct == nil {
		return 0
	}
	return len(ct.touching)
}

// hold runs fn with the separations of h's fixtures deferred.
func (ct *ContactTracker) hold(h Handle, fn func()) {
	if ct == nil {
		fn()
		return
	}
	ct.holding, ct.holder = true, h
	defer func() { ct.holding = false }()
	fn()
}

// settle ends the held pairs that the last step did not begin again.
func (ct *ContactTracker) settle() {
	if ct == nil || len(ct.held) == 0 {
		return
	}
	pending := make([]ownerPair, 0, len(ct.held))
	for fp, owners := range ct.held {
		pending = append(pending, owners)
		delete(ct.held, fp)
	}
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].a != pending[j].a {
			return pending[i].a < pending[j].a
		}
		return pending[i].b < pending[j].b
	})
	for _, p := range pending {
		ct.End(p.a, p.b)
	}
}

// resume reports whether the fixture pair was held and clears it.
func (ct *ContactTracker) resume(fa, fb *cp.Shape) bool {
	for _, fp := range []fixturePair{{fa, fb}, {fb, fa}} {
		if _, ok := ct.held[fp]; ok {
			delete(ct.held, fp)
			return true
		}
	}
	return false
}

func (ct *ContactTracker) install(space *cp.Space, kind cp.CollisionType) {
	handler := space.NewCollisionHandler(kind, kind)
	handler.UserData = ct
	handler.BeginFunc = contactBegin
	handler.SeparateFunc = contactSeparate
}

func arbiterOwners(arb *cp.Arbiter) (Handle, Handle, bool) {
	a, b := arb.Bodies()
	if a == nil || b == nil {
		return 0, 0, false
	}
	ha, ok := handleOf(a.UserData)
	if !ok {
		return 0, 0, false
	}
	hb, ok := handleOf(b.UserData)
	if !ok {
		return 0, 0, false
	}
	return ha, hb, true
}

func contactBegin(arb *cp.Arbiter, space *cp.Space, data interface{}) bool {
	ct, ok := data.(*ContactTracker)
	if !ok {
		return true
	}
	if a, b, ok := arbiterOwners(arb); ok {
		if ct.resume(arb.Shapes()) {
			return true
		}
		ct.Begin(a, b)
	}
	return true
}

func contactSeparate(arb *cp.Arbiter, space *cp.Space, data interface{}) {
	ct, ok := data.(*ContactTracker)
	if !ok {
		return
	}
	if a, b, ok := arbiterOwners(arb); ok {
		if ct.holding && (a == ct.holder || b == ct.holder) {
			fa, fb := arb.Shapes()
			ct.held[fixturePair{fa, fb}] = ownerPair{a, b}
			return
		}
		ct.End(a, b)
	}
}
