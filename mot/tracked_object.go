package mot

import "sort"

// ObjectState is the lifecycle state of a tracked object which is still in tracker's storage.
// Removed objects are not represented: they just disappear from the snapshot.
type ObjectState uint16

const (
	// ObjectActive means object was matched (or registered) on the latest update
	ObjectActive ObjectState = iota
	// ObjectStale means object was not matched for 1..maxDisappeared updates, but still keeps its ID
	ObjectStale
)

func (s ObjectState) String() string {
	switch s {
	case ObjectActive:
		return "active"
	case ObjectStale:
		return "stale"
	default:
		return "unknown"
	}
}

// TrackedObject is a blob with stable identity across frames.
type TrackedObject struct {
	// Identifier. Assigned in increasing order, never reused by the same tracker
	ID int
	// Center of the most recent matching bounding box
	Centroid Point
	// max(width, height) / 2 of the most recent matching bounding box
	Radius int
	// Number of consecutive updates without a matching detection
	Disappeared int
}

func newTrackedObject(id int, box BoundingBox) *TrackedObject {
	return &TrackedObject{
		ID:       id,
		Centroid: box.Centroid(),
		Radius:   box.Radius(),
	}
}

// State returns lifecycle state of the object
func (object TrackedObject) State() ObjectState {
	if object.Disappeared == 0 {
		return ObjectActive
	}
	return ObjectStale
}

// Rect returns square of side 2*Radius centered on Centroid
func (object TrackedObject) Rect() BoundingBox {
	return BoundingBox{
		X1: object.Centroid.X - object.Radius,
		Y1: object.Centroid.Y - object.Radius,
		X2: object.Centroid.X + object.Radius,
		Y2: object.Centroid.Y + object.Radius,
	}
}

// update overwrites geometry with new detection's values and resets no-match counter
func (object *TrackedObject) update(centroid Point, radius int) {
	object.Centroid = centroid
	object.Radius = radius
	object.Disappeared = 0
}

// Snapshot is a copy of tracker storage: ID -> object.
// It is safe to keep per-object state keyed by these IDs across updates.
type Snapshot map[int]TrackedObject

// SortedIDs returns identifiers in ascending order, which is also the order of registration
func (snapshot Snapshot) SortedIDs() []int {
	ids := make([]int, 0, len(snapshot))
	for id := range snapshot {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
