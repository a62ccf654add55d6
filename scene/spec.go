package scene

import (
	"fmt"

	"github.com/milk9111/rigidsync/ecs/component"
	"github.com/milk9111/rigidsync/physics"
	"gopkg.in/yaml.v3"
)

// Spec is one scene document. The physics settings sit at the top level next
// to the object list.
type Spec struct {
	Name           string `yaml:"name"`
	physics.Config `yaml:",inline"`
	Objects        []ObjectSpec `yaml:"objects"`
}

type ObjectSpec struct {
	Name      string                   `yaml:"name"`
	Transform component.Transform      `yaml:"transform"`
	Body      *physics.ShapeDescriptor `yaml:"body"`
	Script    string                   `yaml:"script,omitempty"`
	Groups    []string                 `yaml:"groups,omitempty"`
	Joints    []component.JointRequest `yaml:"joints,omitempty"`
	// TTL destroys the object after this many frames; zero keeps it.
	TTL int `yaml:"ttl,omitempty"`
}

func LoadSpec(name string) (Spec, error) {
	data, err := Load(name)
	if err != nil {
		return Spec{}, fmt.Errorf("scene: load %s: %w", name, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return Spec{}, fmt.Errorf("scene: unmarshal %s: %w", name, err)
	}
	if spec.Name == "" {
		spec.Name = name
	}
	return spec, nil
}

// Parse decodes a scene document. Physics settings missing from the document
// keep their defaults.
func Parse(data []byte) (Spec, error) {
	spec := Spec{Config: physics.DefaultConfig()}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

func (s Spec) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
