package repository

import (
	"context"
	"maps"
	"sync"

	"github.com/rocketscienceinc/decrypto-backend/internal/entity"
)

type memoryArchive struct {
	mu        sync.Mutex
	size      int
	summaries []*entity.GameSummary
	wins      map[entity.Team]int64
}

// NewMemoryArchive is the default archive driver. It forgets
// everything on restart. A negative size keeps nothing.
func NewMemoryArchive(size int) GameArchive {
	return &memoryArchive{
		size: max(size, 0),
		wins: map[entity.Team]int64{entity.TeamRed: 0, entity.TeamBlue: 0},
	}
}

func (that *memoryArchive) Save(_ context.Context, summary *entity.GameSummary) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored := *summary
	that.summaries = append([]*entity.GameSummary{&stored}, that.summaries...)
	if len(that.summaries) > that.size {
		that.summaries = that.summaries[:that.size]
	}

	that.wins[summary.Winner]++

	return nil
}

func (that *memoryArchive) Recent(_ context.Context, limit int) ([]*entity.GameSummary, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	limit = min(clampLimit(limit, that.size), len(that.summaries))

	summaries := make([]*entity.GameSummary, 0, limit)
	for _, summary := range that.summaries[:limit] {
		clone := *summary
		summaries = append(summaries, &clone)
	}

	return summaries, nil
}

func (that *memoryArchive) Wins(_ context.Context) (map[entity.Team]int64, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return maps.Clone(that.wins), nil
}
