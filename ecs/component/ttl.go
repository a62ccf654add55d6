package component

// TTL destroys the entity once Frames update ticks have elapsed. Zero or less
// destroys it on the next tick.
type TTL struct {
	Frames int `yaml:"frames"`
}

var TTLComponent = NewComponent[TTL]()
