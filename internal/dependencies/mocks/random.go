package mocks

import (
	"fmt"

	"github.com/tiletally/tiletally-go/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing.
// Results are returned from a queue; when the queue is exhausted it
// falls back to deterministic sequential values so tests that don't
// care about specific IDs still get unique ones.
type MockRandom struct {
	// StringResults is a queue of results to return from String
	StringResults []string
	stringIndex   int
	fallbackSeq   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// String returns the next queued result, or a sequential placeholder
// if the queue is exhausted
func (r *MockRandom) String(length int, alphabet string) string {
	if r.stringIndex < len(r.StringResults) {
		result := r.StringResults[r.stringIndex]
		r.stringIndex++
		return result
	}
	r.fallbackSeq++
	return fmt.Sprintf("MOCK%08d", r.fallbackSeq)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.StringResults = append(r.StringResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.StringResults = nil
	r.stringIndex = 0
	r.fallbackSeq = 0
}
