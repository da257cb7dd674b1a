package mocks

import (
	"github.com/tmorey/clubdesk/internal/dependencies/random"
)

// MockRandom is a deterministic implementation of Random for testing.
// Queued values are returned in order; once exhausted it falls back to
// a fixed derivation from the alphabet so tests stay reproducible.
type MockRandom struct {
	ints    []int
	strings []string
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates an empty MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// QueueInt adds values to be returned by subsequent Intn calls
func (r *MockRandom) QueueInt(values ...int) {
	r.ints = append(r.ints, values...)
}

// QueueString adds values to be returned by subsequent String calls
func (r *MockRandom) QueueString(values ...string) {
	r.strings = append(r.strings, values...)
}

// Intn returns the next queued int modulo n, or 0 when the queue is empty
func (r *MockRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

// String returns the next queued string, or the first alphabet
// character repeated to the requested length
func (r *MockRandom) String(length int, alphabet string) string {
	if len(r.strings) > 0 {
		v := r.strings[0]
		r.strings = r.strings[1:]
		return v
	}
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	result := make([]byte, length)
	for i := range result {
		result[i] = alphabet[0]
	}
	return string(result)
}
