package mot

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// DefaultMaxDisappeared is number of consecutive missed updates an object survives by default
const DefaultMaxDisappeared = 50

// UnmatchedPolicy defines what happens to detections which were not claimed by any existing object
type UnmatchedPolicy uint16

const (
	// UnmatchedDiscard registers leftover detections only when detections outnumber existing objects.
	// Otherwise leftovers are dropped, even if they are far away from every object.
	UnmatchedDiscard UnmatchedPolicy = iota
	// UnmatchedRegister always registers leftover detections as new objects
	UnmatchedRegister
)

func (p UnmatchedPolicy) String() string {
	switch p {
	case UnmatchedDiscard:
		return "discard"
	case UnmatchedRegister:
		return "register"
	default:
		return "unknown"
	}
}

// ParseUnmatchedPolicy converts "discard" / "register" to UnmatchedPolicy
func ParseUnmatchedPolicy(s string) (UnmatchedPolicy, error) {
	switch s {
	case "", "discard":
		return UnmatchedDiscard, nil
	case "register":
		return UnmatchedRegister, nil
	default:
		return UnmatchedDiscard, errors.Errorf("unknown unmatched policy '%s'", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (p UnmatchedPolicy) MarshalText() ([]byte, error) {
	if p > UnmatchedRegister {
		return nil, errors.Errorf("unknown unmatched policy %d", p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *UnmatchedPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseUnmatchedPolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// CentroidTracker assigns stable identifiers to blobs by greedy nearest-centroid matching.
// It is not safe for concurrent use: updates must come serially, one per frame.
type CentroidTracker struct {
	// Main storage
	objects map[int]*TrackedObject
	// Identifier for the next registered object
	nextID int
	// Max number of consecutive updates when object could not be found. Default is 50
	maxDisappeared int
	// What to do with detections left without a pair
	policy UnmatchedPolicy
}

// NewCentroidTrackerDefault creates default instance of CentroidTracker
func NewCentroidTrackerDefault() *CentroidTracker {
	return NewCentroidTracker(DefaultMaxDisappeared, UnmatchedDiscard)
}

// NewCentroidTracker creates new instance of CentroidTracker
func NewCentroidTracker(maxDisappeared int, policy UnmatchedPolicy) *CentroidTracker {
	return &CentroidTracker{
		objects:        make(map[int]*TrackedObject),
		maxDisappeared: maxDisappeared,
		policy:         policy,
	}
}

// MaxDisappeared returns removal threshold
func (tracker *CentroidTracker) MaxDisappeared() int {
	return tracker.maxDisappeared
}

// Policy returns handling policy for unmatched detections
func (tracker *CentroidTracker) Policy() UnmatchedPolicy {
	return tracker.policy
}

// NextID returns identifier which will be given to the next registered object
func (tracker *CentroidTracker) NextID() int {
	return tracker.nextID
}

// Len returns number of currently tracked objects
func (tracker *CentroidTracker) Len() int {
	return len(tracker.objects)
}

func (tracker *CentroidTracker) register(box BoundingBox) {
	tracker.objects[tracker.nextID] = newTrackedObject(tracker.nextID, box)
	tracker.nextID++
}

// markDisappeared increments no-match counter and removes object once it exceeds the threshold
func (tracker *CentroidTracker) markDisappeared(objectID int) {
	object := tracker.objects[objectID]
	object.Disappeared++
	if object.Disappeared > tracker.maxDisappeared {
		delete(tracker.objects, objectID)
	}
}

// Update matches bounding boxes of the current frame against tracked objects
// and returns copy of the resulting storage.
//
// Boxes must be valid (X1 < X2, Y1 < Y2). Malformed box is a programmer error and causes panic.
func (tracker *CentroidTracker) Update(boxes []BoundingBox) Snapshot {
	for i := range boxes {
		if !boxes[i].Valid() {
			panic(errors.Errorf("mot: malformed bounding box %+v", boxes[i]))
		}
	}

	if len(boxes) == 0 {
		for _, objectID := range tracker.sortedIDs() {
			tracker.markDisappeared(objectID)
		}
		return tracker.Snapshot()
	}

	if len(tracker.objects) == 0 {
		for i := range boxes {
			tracker.register(boxes[i])
		}
		return tracker.Snapshot()
	}

	objectIDs := tracker.sortedIDs()
	centroids := make([]Point, len(boxes))
	for i := range boxes {
		centroids[i] = boxes[i].Centroid()
	}

	// Rows are existing objects, columns are new detections.
	// For every row remember the nearest column (first one on ties)
	priorityQueue := make(rowHeap, 0, len(objectIDs))
	for row, objectID := range objectIDs {
		objectCentroid := tracker.objects[objectID].Centroid
		minCol := -1
		minDistance := math.MaxFloat64
		for col := range centroids {
			dist := euclideanDistance(objectCentroid, centroids[col])
			if dist < minDistance {
				minDistance = dist
				minCol = col
			}
		}
		priorityQueue.Push(rowDistance{
			row:      row,
			col:      minCol,
			distance: minDistance,
		})
	}

	// We need to prevent double update of objects and double use of detections
	usedRows := make(map[int]struct{}, len(objectIDs))
	usedCols := make(map[int]struct{}, len(boxes))
	for priorityQueue.Len() > 0 {
		pair := priorityQueue.Pop()
		if _, ok := usedRows[pair.row]; ok {
			continue
		}
		if _, ok := usedCols[pair.col]; ok {
			continue
		}
		tracker.objects[objectIDs[pair.row]].update(centroids[pair.col], boxes[pair.col].Radius())
		usedRows[pair.row] = struct{}{}
		usedCols[pair.col] = struct{}{}
	}

	for row, objectID := range objectIDs {
		if _, ok := usedRows[row]; ok {
			continue
		}
		tracker.markDisappeared(objectID)
	}

	if len(objectIDs) >= len(boxes) && tracker.policy == UnmatchedDiscard {
		return tracker.Snapshot()
	}
	for col := range boxes {
		if _, ok := usedCols[col]; ok {
			continue
		}
		tracker.register(boxes[col])
	}
	return tracker.Snapshot()
}

// Snapshot returns copy of tracker storage
func (tracker *CentroidTracker) Snapshot() Snapshot {
	snapshot := make(Snapshot, len(tracker.objects))
	for objectID, object := range tracker.objects {
		snapshot[objectID] = *object
	}
	return snapshot
}

func (tracker *CentroidTracker) sortedIDs() []int {
	ids := make([]int, 0, len(tracker.objects))
	for objectID := range tracker.objects {
		ids = append(ids, objectID)
	}
	sort.Ints(ids)
	return ids
}
