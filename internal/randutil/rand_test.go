package randutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for range 20 {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestResolve(t *testing.T) {
	a, seed := Resolve(42)
	assert.Equal(t, int64(42), seed)
	b, _ := Resolve(42)
	assert.Equal(t, a.IntN(1000), b.IntN(1000))

	_, seed = Resolve(0)
	assert.NotZero(t, seed)
}

func TestSequenceWrapsAndCounts(t *testing.T) {
	s := NewSequence(0.1, 0.9)
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 0.9, s.Float64())
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 3, s.Draws())
}

func TestSequenceIntNStaysInRange(t *testing.T) {
	s := NewSequence(0, 0.5, 0.999999, 1)
	assert.Equal(t, 0, s.IntN(4))
	assert.Equal(t, 2, s.IntN(4))
	assert.Equal(t, 3, s.IntN(4))
	assert.Equal(t, 3, s.IntN(4))
}

func TestLockedIsSafeForConcurrentUse(t *testing.T) {
	l := NewLocked(New(7))
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				v := l.IntN(10)
				assert.GreaterOrEqual(t, v, 0)
				assert.Less(t, v, 10)
			}
		}()
	}
	wg.Wait()
}
