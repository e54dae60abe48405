package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rocketscienceinc/decrypto-backend/internal/entity"
)

type archivedGame struct {
	ID             uint   `gorm:"primaryKey"`
	RoomCode       string `gorm:"size:6;index"`
	Winner         string `gorm:"size:16;index"`
	RedIntercepts  int
	BlueIntercepts int
	RedMistakes    int
	BlueMistakes   int
	RoundsPlayed   int
	RedTeam        []string  `gorm:"serializer:json"`
	BlueTeam       []string  `gorm:"serializer:json"`
	FinishedAt     time.Time `gorm:"index"`
}

func (archivedGame) TableName() string {
	return "archived_games"
}

func (that *archivedGame) toEntity() *entity.GameSummary {
	return &entity.GameSummary{
		RoomCode:       that.RoomCode,
		Winner:         entity.Team(that.Winner),
		RedIntercepts:  that.RedIntercepts,
		BlueIntercepts: that.BlueIntercepts,
		RedMistakes:    that.RedMistakes,
		BlueMistakes:   that.BlueMistakes,
		RoundsPlayed:   that.RoundsPlayed,
		RedTeam:        that.RedTeam,
		BlueTeam:       that.BlueTeam,
		FinishedAt:     that.FinishedAt,
	}
}

type postgresArchive struct {
	db   *gorm.DB
	size int
}

// NewPostgresArchive migrates the archive table and returns an archive whose
// reads are capped at size rows. Rows are never deleted.
func NewPostgresArchive(ctx context.Context, db *gorm.DB, size int) (GameArchive, error) {
	if err := db.WithContext(ctx).AutoMigrate(&archivedGame{}); err != nil {
		return nil, fmt.Errorf("failed to migrate archive table: %w", err)
	}

	return &postgresArchive{db: db, size: size}, nil
}

func (that *postgresArchive) Save(ctx context.Context, summary *entity.GameSummary) error {
	row := &archivedGame{
		RoomCode:       summary.RoomCode,
		Winner:         string(summary.Winner),
		RedIntercepts:  summary.RedIntercepts,
		BlueIntercepts: summary.BlueIntercepts,
		RedMistakes:    summary.RedMistakes,
		BlueMistakes:   summary.BlueMistakes,
		RoundsPlayed:   summary.RoundsPlayed,
		RedTeam:        summary.RedTeam,
		BlueTeam:       summary.BlueTeam,
		FinishedAt:     summary.FinishedAt,
	}

	if err := that.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to archive game %s: %w", summary.RoomCode, err)
	}

	return nil
}

func (that *postgresArchive) Recent(ctx context.Context, limit int) ([]*entity.GameSummary, error) {
	limit = clampLimit(limit, that.size)
	if limit == 0 {
		return []*entity.GameSummary{}, nil
	}

	var rows []archivedGame
	err := that.db.WithContext(ctx).
		Order("finished_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read archived games: %w", err)
	}

	summaries := make([]*entity.GameSummary, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, rows[i].toEntity())
	}

	return summaries, nil
}

func (that *postgresArchive) Wins(ctx context.Context) (map[entity.Team]int64, error) {
	var rows []struct {
		Winner string
		Count  int64
	}

	err := that.db.WithContext(ctx).
		Model(&archivedGame{}).
		Select("winner, COUNT(*) AS count").
		Group("winner").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count wins: %w", err)
	}

	wins := map[entity.Team]int64{entity.TeamRed: 0, entity.TeamBlue: 0}
	for _, row := range rows {
		wins[entity.Team(row.Winner)] = row.Count
	}

	return wins, nil
}
