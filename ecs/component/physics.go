package component

import "github.com/milk9111/rigidsync/physics"

// PhysicsBody asks the physics systems to simulate the entity. Sync is filled
// in once the body is attached and cleared when the entity goes away.
type PhysicsBody struct {
	Descriptor physics.ShapeDescriptor
	Sync       *physics.BodySync
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
