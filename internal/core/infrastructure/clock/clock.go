// Package clock 提供事件时间戳使用的时间源
package clock

import (
	"sync"
	"time"

	infraClock "github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/clock"
)

// SystemClock 使用系统真实时间（UTC）
type SystemClock struct{}

func NewSystemClock() infraClock.Clock { return SystemClock{} }

func (SystemClock) Now() time.Time                  { return time.Now().UTC() }
func (SystemClock) Since(t time.Time) time.Duration { return time.Since(t) }

// MockClock 测试用时钟，时间只随 Advance 变化
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
}

var _ infraClock.Clock = (*MockClock)(nil)

func NewMockClock(initial time.Time) *MockClock { return &MockClock{currentTime: initial} }

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTime
}

func (c *MockClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }

// Advance 推进时间
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.currentTime = c.currentTime.Add(d)
	c.mu.Unlock()
}
