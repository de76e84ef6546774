package worker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPoolWaitIsAJoinBarrier(t *testing.T) {
	pool := NewPool(zap.NewNop())

	var done atomic.Int64
	jobs := make(chan int, 100)
	for i := 0; i < 100; i++ {
		jobs <- i
	}
	close(jobs)

	pool.Spawn("test", 4, func(int) {
		for range jobs {
			done.Add(1)
		}
	})
	pool.Wait()

	assert.Equal(t, int64(100), done.Load())
}
