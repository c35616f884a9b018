package visuals

import (
	"image"

	"github.com/LdDl/blobtrack/mot"
)

// TraceStore keeps recent positions of every tracked object, newest first.
// Trace of an object is dropped as soon as the object leaves the snapshot.
type TraceStore struct {
	maxLen int
	traces map[int][]image.Point
}

func NewTraceStore(maxLen int) *TraceStore {
	if maxLen < 1 {
		maxLen = 1
	}
	return &TraceStore{
		maxLen: maxLen,
		traces: make(map[int][]image.Point),
	}
}

// SetMaxLen changes history length. Longer traces are cut on the next Update
func (store *TraceStore) SetMaxLen(maxLen int) {
	if maxLen < 1 {
		maxLen = 1
	}
	store.maxLen = maxLen
}

// Update appends current centroids and forgets objects which are gone
func (store *TraceStore) Update(objects mot.Snapshot) {
	for objectID := range store.traces {
		if _, ok := objects[objectID]; !ok {
			delete(store.traces, objectID)
		}
	}
	for objectID, object := range objects {
		trace := store.traces[objectID]
		trace = append(trace, image.Point{})
		copy(trace[1:], trace)
		trace[0] = object.Centroid.ImagePoint()
		if len(trace) > store.maxLen {
			trace = trace[:store.maxLen]
		}
		store.traces[objectID] = trace
	}
}

// Trace returns positions of the object, newest first. Returned slice must not be modified
func (store *TraceStore) Trace(objectID int) []image.Point {
	return store.traces[objectID]
}

// Len returns number of objects with history
func (store *TraceStore) Len() int {
	return len(store.traces)
}
