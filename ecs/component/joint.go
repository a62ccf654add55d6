package component

type JointKind string

const (
	// JointRevolute pins the body to the ground at (X, Y) in render space.
	JointRevolute JointKind = "revolute"
	// JointRevoluteBetween hinges the body to Target at the body center
	// offset by (X, Y).
	JointRevoluteBetween JointKind = "revolute_between"
	// JointGear couples the rotation of the body and Target by Ratio.
	JointGear JointKind = "gear"
)

type JointRequest struct {
	Kind   JointKind `yaml:"kind"`
	Target string    `yaml:"target,omitempty"`
	X      float64   `yaml:"x,omitempty"`
	Y      float64   `yaml:"y,omitempty"`
	Ratio  float64   `yaml:"ratio,omitempty"`
}

// Joints holds joint requests until both ends have bodies. Made counts the
// requests that succeeded.
type Joints struct {
	Pending []JointRequest
	Made    int
}

var JointsComponent = NewComponent[Joints]()
