package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/decrypto-backend/internal/entity"
)

// GameArchive keeps summaries of finished games, newest first.
type GameArchive interface {
	Save(ctx context.Context, summary *entity.GameSummary) error
	Recent(ctx context.Context, limit int) ([]*entity.GameSummary, error)
	Wins(ctx context.Context) (map[entity.Team]int64, error)
}

type redisArchive struct {
	client  *redis.Client
	key     string
	winsKey string
	size    int
}

// NewRedisArchive stores summaries as JSON in a redis list capped at size
// entries, plus a hash of win counts per team.
func NewRedisArchive(client *redis.Client, key string, size int) GameArchive {
	return &redisArchive{
		client:  client,
		key:     key,
		winsKey: key + ":wins",
		size:    size,
	}
}

func (that *redisArchive) Save(ctx context.Context, summary *entity.GameSummary) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("could not marshal game summary: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, that.key, summaryJSON)
		pipe.LTrim(ctx, that.key, 0, int64(that.size-1))
		pipe.HIncrBy(ctx, that.winsKey, string(summary.Winner), 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to archive game %s: %w", summary.RoomCode, err)
	}

	return nil
}

func (that *redisArchive) Recent(ctx context.Context, limit int) ([]*entity.GameSummary, error) {
	limit = clampLimit(limit, that.size)
	if limit == 0 {
		return []*entity.GameSummary{}, nil
	}

	response, err := that.client.LRange(ctx, that.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read archived games: %w", err)
	}

	summaries := make([]*entity.GameSummary, 0, len(response))
	for _, raw := range response {
		var summary entity.GameSummary
		if err = json.Unmarshal([]byte(raw), &summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game summary: %w", err)
		}
		summaries = append(summaries, &summary)
	}

	return summaries, nil
}

func (that *redisArchive) Wins(ctx context.Context) (map[entity.Team]int64, error) {
	response, err := that.client.HGetAll(ctx, that.winsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read win counts: %w", err)
	}

	wins := map[entity.Team]int64{entity.TeamRed: 0, entity.TeamBlue: 0}
	for team, raw := range response {
		count, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad win count for %s: %w", team, err)
		}
		wins[entity.Team(team)] = count
	}

	return wins, nil
}

func clampLimit(limit, size int) int {
	if limit <= 0 || limit > size {
		return max(size, 0)
	}
	return limit
}
