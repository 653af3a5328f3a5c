package flappy

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// TransformData places an entity in the world. For pipe children the
// position is relative to the owning group.
type TransformData struct {
	Position core.Vec2
	Z        float64 // draw order, higher is nearer
	Rotation float64 // radians, counter-clockwise
	Scale    core.Vec2
}

// VelocityData is a linear velocity in units per second.
type VelocityData struct {
	X, Y float64
}

// Vec returns the velocity as a vector.
func (v VelocityData) Vec() core.Vec2 {
	return core.V(v.X, v.Y)
}

// GravityData marks an entity that gravity may accelerate.
type GravityData struct {
	Enabled bool
}

// ColliderKind identifies what a collider belongs to.
type ColliderKind int

const (
	ColliderPlayer ColliderKind = iota
	ColliderPipe
	ColliderFloor
)

func (k ColliderKind) String() string {
	switch k {
	case ColliderPlayer:
		return "player"
	case ColliderPipe:
		return "pipe"
	case ColliderFloor:
		return "floor"
	default:
		return "unknown"
	}
}

// ColliderData is an axis-aligned box in the entity's local frame.
// The player's box is rotated with its transform during collision tests.
type ColliderData struct {
	Offset      core.Vec2
	HalfExtents core.Vec2
	Enabled     bool
	Kind        ColliderKind
}

// ObstacleKind selects the layout of a pipe inside its group.
type ObstacleKind int

const (
	PipeTop ObstacleKind = iota
	PipeBottom
)

func (k ObstacleKind) String() string {
	if k == PipeTop {
		return "top"
	}
	return "bottom"
}

// PipeData tags a pipe with its kind.
type PipeData struct {
	Kind ObstacleKind
}

// ObstacleGroupData is a pipe set: one gap and the two pipes framing it.
type ObstacleGroupData struct {
	GapCenter float64
	Top       donburi.Entity
	Bottom    donburi.Entity
}

// ParentData links a child entity to the group it moves with.
type ParentData struct {
	Entity donburi.Entity
}

// FloorSegmentData is one recycled ground tile.
type FloorSegmentData struct {
	Index int
}

var (
	Transform     = donburi.NewComponentType[TransformData]()
	Velocity      = donburi.NewComponentType[VelocityData]()
	Gravity       = donburi.NewComponentType[GravityData]()
	Collider      = donburi.NewComponentType[ColliderData]()
	Pipe          = donburi.NewComponentType[PipeData]()
	ObstacleGroup = donburi.NewComponentType[ObstacleGroupData]()
	Parent        = donburi.NewComponentType[ParentData]()
	FloorSegment  = donburi.NewComponentType[FloorSegmentData]()

	PlayerTag = donburi.NewTag()
	CameraTag = donburi.NewTag()
)

var (
	queryPlayer  = donburi.NewQuery(filter.Contains(PlayerTag, Transform, Velocity, Collider))
	queryCamera  = donburi.NewQuery(filter.Contains(CameraTag, Transform))
	queryMoving  = donburi.NewQuery(filter.Contains(Transform, Velocity))
	queryGravity = donburi.NewQuery(filter.Contains(Velocity, Gravity))
	queryFloor   = donburi.NewQuery(filter.Contains(FloorSegment, Transform, Collider))
	queryGroups  = donburi.NewQuery(filter.Contains(ObstacleGroup, Transform))
	queryPipes   = donburi.NewQuery(filter.Contains(Pipe, Parent, Transform, Collider))
)
