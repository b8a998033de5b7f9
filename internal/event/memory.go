package event

import (
	"context"
	"sync"
)

// MemoryBus delivers events synchronously in the publishing goroutine. Publish
// returns the joined handler errors.
type MemoryBus struct {
	mu sync.RWMutex
	h  handlers
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{}
}

func (b *MemoryBus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	h := b.h
	b.mu.RUnlock()
	return h.dispatch(ctx, e)
}

func (b *MemoryBus) OnReportCreated(fn func(ctx context.Context, e ReportCreated) error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.h.reportCreated = append(b.h.reportCreated, fn)
}

func (b *MemoryBus) OnReportUpdated(fn func(ctx context.Context, e ReportUpdated) error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.h.reportUpdated = append(b.h.reportUpdated, fn)
}

func (b *MemoryBus) OnMatchCreated(fn func(ctx context.Context, e MatchCreated) error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.h.matchCreated = append(b.h.matchCreated, fn)
}
