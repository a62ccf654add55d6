package component

// Name is a scene-unique label used by scripts and joints to refer to other
// entities.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()

// Groups lists the collision groups an entity belongs to. Scripts ask whether
// an entity touches any member of a group.
type Groups struct {
	Names []string
}

func (g Groups) In(name string) bool {
	for _, n := range g.Names {
		if n == name {
			return true
		}
	}
	return false
}

var GroupsComponent = NewComponent[Groups]()
