package flight

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSharesOneExecution(t *testing.T) {
	g := NewGroup()

	var executions int32
	release := make(chan interface{}, 1)
	var firstIn sync.WaitGroup
	firstIn.Add(1)

	// Blocks until released; re-entrant so a late caller cannot deadlock
	// or panic, only inflate the execution count.
	fn := func() (interface{}, error) {
		if atomic.AddInt32(&executions, 1) == 1 {
			firstIn.Done()
		}
		v := <-release
		release <- v
		return v, nil
	}

	const callers = 10
	var entered, done sync.WaitGroup
	results := make([]interface{}, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		i := i
		entered.Add(1)
		done.Add(1)
		go func() {
			defer done.Done()
			entered.Done()
			results[i], errs[i] = g.Do("refresh", fn)
		}()
	}

	// Release only once the first execution is in flight and every caller
	// has been scheduled.
	firstIn.Wait()
	entered.Wait()
	release <- "token-1"
	done.Wait()

	got := atomic.LoadInt32(&executions)
	assert.Positive(t, got)
	assert.Less(t, got, int32(callers), "concurrent callers must share executions")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "token-1", results[i])
	}
}

func TestDoPropagatesError(t *testing.T) {
	g := NewGroup()
	boom := errors.New("boom")

	_, err := g.Do("op", func() (interface{}, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestDoClearsKeyAfterCompletion(t *testing.T) {
	g := NewGroup()

	var executions int
	for i := 0; i < 3; i++ {
		_, err := g.Do("op", func() (interface{}, error) {
			executions++
			return nil, nil
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 3, executions, "sequential calls must each execute")
}

func TestDoIsolatesKeys(t *testing.T) {
	g := NewGroup()

	blockerStarted := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_, _ = g.Do("slow", func() (interface{}, error) {
			close(blockerStarted)
			<-release
			return nil, nil
		})
	}()
	<-blockerStarted

	// A different key must not wait on "slow".
	v, err := g.Do("fast", func() (interface{}, error) {
		return 42, nil
	})
	close(release)

	require.NoError(t, err)
	assert.Equal(t, 42, v)
}
