package physics

// Epsilon is the minimum cross product for a corner to count as convex.
var Epsilon = 1e-10

// Vertex is a polygon point in pixels, relative to the polygon's own origin.
type Vertex struct {
	X, Y float64
}

// Area returns the signed area of a closed contour, positive when the points
// turn counter-clockwise in a Y-up frame.
func Area(contour []Vertex) float64 {
	n := len(contour)
	a := 0.0
	for p, q := n-1, 0; q < n; p, q = q, q+1 {
		a += contour[p].X*contour[q].Y - contour[q].X*contour[p].Y
	}
	return a * 0.5
}

// Triangulate splits a simple polygon into triangles by ear clipping. The
// result holds 3*(n-2) vertices, three per triangle. It returns false when
// the contour has fewer than three points or no ear can be found, which
// happens for self-intersecting input.
func Triangulate(contour []Vertex) ([]Vertex, bool) {
	n := len(contour)
	if n < 3 {
		return nil, false
	}

	idx := make([]int, n)
	if Area(contour) > 0 {
		for i := range idx {
			idx[i] = i
		}
	} else {
		for i := range idx {
			idx[i] = n - 1 - i
		}
	}

	out := make([]Vertex, 0, 3*(n-2))
	nv := n
	budget := 2 * nv
	for v := nv - 1; nv > 2; {
		if budget <= 0 {
			return nil, false
		}
		budget--

		u := v
		if u >= nv {
			u = 0
		}
		v = u + 1
		if v >= nv {
			v = 0
		}
		w := v + 1
		if w >= nv {
			w = 0
		}

		if !isEar(contour, idx[:nv], u, v, w) {
			continue
		}

		out = append(out, contour[idx[u]], contour[idx[v]], contour[idx[w]])
		copy(idx[v:], idx[v+1:nv])
		nv--
		budget = 2 * nv
	}
	return out, true
}

func isEar(contour []Vertex, idx []int, u, v, w int) bool {
	a, b, c := contour[idx[u]], contour[idx[v]], contour[idx[w]]
	if cross(a, b, c) <= Epsilon {
		return false
	}
	for p := range idx {
		if p == u || p == v || p == w {
			continue
		}
		if insideOrOn(a, b, c, contour[idx[p]]) {
			return false
		}
	}
	return true
}

func cross(a, b, c Vertex) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// insideOrOn assumes a, b, c turn counter-clockwise. Points on an edge count
// as inside so a reflex vertex touching the diagonal blocks the ear.
func insideOrOn(a, b, c, p Vertex) bool {
	return cross(a, b, p) >= 0 && cross(b, c, p) >= 0 && cross(c, a, p) >= 0
}
