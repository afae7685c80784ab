package components

// ResourceNode is the ECS component for a harvestable node. Amount only
// decreases.
type ResourceNode struct {
	ID     string
	Kind   ResourceKind
	Amount float64
}

// Resource is a read-only copy of a node and its position.
type Resource struct {
	ID       string
	Position Vec2
	Kind     ResourceKind
	Amount   float64
}
