package loop

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRunsOnlyOnDrain(t *testing.T) {
	l := New(clockwork.NewFakeClock())
	ran := false
	l.Post(func() { ran = true })

	assert.False(t, ran)
	assert.Equal(t, 1, l.Drain())
	assert.True(t, ran)
}

func TestPostFromManyGoroutines(t *testing.T) {
	l := New(clockwork.NewFakeClock())
	var wg sync.WaitGroup
	count := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Post(func() { count++ })
		}()
	}
	wg.Wait()

	l.Drain()
	assert.Equal(t, 50, count)
}

func TestTimersFireInDueOrder(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := New(clock)

	var order []string
	l.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	l.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	l.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })

	l.Drain()
	require.Empty(t, order)

	clock.Advance(10 * time.Millisecond)
	l.Drain()
	assert.Equal(t, []string{"a", "b"}, order)

	clock.Advance(time.Second)
	l.Drain()
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Zero(t, l.Pending())
}

func TestStoppedTimerNeverFires(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := New(clock)

	fired := false
	timer := l.AfterFunc(5*time.Millisecond, func() { fired = true })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	clock.Advance(time.Second)
	l.Drain()
	assert.False(t, fired)
}

func TestChainedZeroDelayTimerRunsInSameDrain(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := New(clock)

	steps := 0
	l.AfterFunc(time.Millisecond, func() {
		steps++
		l.AfterFunc(0, func() { steps++ })
	})

	clock.Advance(time.Millisecond)
	l.Drain()
	assert.Equal(t, 2, steps)
}

func TestCloseDropsWork(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := New(clock)

	ran := false
	l.Post(func() { ran = true })
	l.AfterFunc(time.Millisecond, func() { ran = true })
	l.Close()

	l.Post(func() { ran = true })
	late := l.AfterFunc(0, func() { ran = true })

	clock.Advance(time.Second)
	assert.Zero(t, l.Drain())
	assert.False(t, ran)
	assert.False(t, late.Stop())
}

func TestLateDrainCatchesUpChainedTimers(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := New(clock)

	var order []string
	l.AfterFunc(10*time.Millisecond, func() {
		order = append(order, "first")
		l.AfterFunc(300*time.Millisecond, func() { order = append(order, "second") })
	})

	clock.Advance(time.Second)
	l.Drain()
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestTaskPostedAfterTimerUsesWallClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := New(clock)

	fired := false
	l.Post(func() {
		l.AfterFunc(time.Millisecond, func() { fired = true })
	})
	l.Drain()
	assert.False(t, fired)

	clock.Advance(time.Millisecond)
	l.Drain()
	assert.True(t, fired)
}
