package services

import (
	"sync"
	"time"
)

type IDGenerator interface {
	NextID() int64
}

// clockIDGenerator выдаёт миллисекундную метку времени, строго
// возрастающую даже при нескольких вызовах в одну миллисекунду.
type clockIDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewClockIDGenerator(now func() time.Time) IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &clockIDGenerator{now: now}
}

func (g *clockIDGenerator) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
