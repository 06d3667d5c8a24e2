package services

import (
	"fmt"
	"sync"
	"time"
)

// OrderNumberGenerator produces "<prefix>-<epoch ms>" order numbers. Numbers are strictly
// increasing within the process: a second number in the same millisecond takes the next
// millisecond value. The orders table enforces uniqueness across processes.
type OrderNumberGenerator struct {
	prefix string
	now    func() time.Time
	last   int64
	mu     sync.Mutex
}

func NewOrderNumberGenerator(prefix string, now func() time.Time) *OrderNumberGenerator {
	if now == nil {
		now = time.Now
	}
	return &OrderNumberGenerator{prefix: prefix, now: now}
}

// Next returns a new order number and the instant it stands for. The instant's epoch
// milliseconds always equal the number's suffix.
func (g *OrderNumberGenerator) Next() (string, time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	at := g.now()
	ms := at.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
		at = time.UnixMilli(ms).In(at.Location())
	}
	g.last = ms
	return fmt.Sprintf("%s-%d", g.prefix, ms), at
}
