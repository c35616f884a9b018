package visuals

import (
	"fmt"
	"math/rand"
)

var defaultWords = []string{"Blob", "Entity", "Target", "Object", "Ghost", "Spirit", "Echo", "Spark"}

// TextStrategy picks label for an object. Empty string means no label
type TextStrategy interface {
	Text(objectID, frameIdx int) string
}

type NoText struct{}

func (NoText) Text(objectID, frameIdx int) string {
	return ""
}

// IndexText labels objects by tracker ID
type IndexText struct{}

func (IndexText) Text(objectID, frameIdx int) string {
	return fmt.Sprintf("ID: %d", objectID)
}

// RandomWord gives every object a random word which stays with it for the whole run
type RandomWord struct {
	words       []string
	rng         *rand.Rand
	assignments map[int]string
}

// NewRandomWord creates RandomWord strategy. Empty words means default vocabulary
func NewRandomWord(words []string, rng *rand.Rand) *RandomWord {
	if len(words) == 0 {
		words = defaultWords
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &RandomWord{
		words:       words,
		rng:         rng,
		assignments: make(map[int]string),
	}
}

func (r *RandomWord) Text(objectID, frameIdx int) string {
	word, ok := r.assignments[objectID]
	if !ok {
		word = r.words[r.rng.Intn(len(r.words))]
		r.assignments[objectID] = word
	}
	return word
}
