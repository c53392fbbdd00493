package poller

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolRunsTasks(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var wg sync.WaitGroup
	var mu sync.Mutex
	ran := 0

	for i := 0; i < 5; i++ {
		wg.Add(1)
		err := pool.AddTask(context.Background(), func() error {
			defer wg.Done()
			mu.Lock()
			ran++
			mu.Unlock()
			return nil
		})
		require.NoError(t, err)
	}

	wg.Wait()
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 5, ran)
}

func TestAddTaskCancelledContext(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	// Fill the queue so the submit has to block, then cancel.
	block := make(chan struct{})
	defer close(block)
	for i := 0; i < 2; i++ {
		_ = pool.AddTask(context.Background(), func() error {
			<-block
			return nil
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pool.AddTask(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
