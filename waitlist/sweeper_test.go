package waitlist

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type countingTarget struct {
	calls int64
}

func (c *countingTarget) CleanupExpired(ctx context.Context) (int64, error) {
	atomic.AddInt64(&c.calls, 1)
	return 1, nil
}

func TestSweeperInvokesTarget(t *testing.T) {
	assert := assert.New(t)
	target := &countingTarget{}
	sweeper := NewSweeper(zaptest.NewLogger(t), target, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	sweeper.Start(ctx)
	time.Sleep(40 * time.Millisecond)
	cancel()
	assert.Greater(atomic.LoadInt64(&target.calls), int64(0))
}

func TestSweeperStopsOnCancel(t *testing.T) {
	assert := assert.New(t)
	target := &countingTarget{}
	sweeper := NewSweeper(zaptest.NewLogger(t), target, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	sweeper.Start(ctx)
	time.Sleep(20 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
	settled := atomic.LoadInt64(&target.calls)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(settled, atomic.LoadInt64(&target.calls))
}

func TestSweeperDefaultsInterval(t *testing.T) {
	assert := assert.New(t)
	sweeper := NewSweeper(zaptest.NewLogger(t), &countingTarget{}, 0)
	assert.Equal(time.Hour, sweeper.interval)
}
