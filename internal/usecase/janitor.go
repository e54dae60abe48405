package usecase

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

type roomCleaner interface {
	CleanupEmptyRooms() int
}

// NewJanitor schedules the removal of rooms nobody is in. The returned cron
// is not started.
func NewJanitor(logger *slog.Logger, rooms roomCleaner, schedule string) (*cron.Cron, error) {
	log := logger.With("component", "janitor")

	janitor := cron.New()

	_, err := janitor.AddFunc(schedule, func() {
		if removed := rooms.CleanupEmptyRooms(); removed > 0 {
			log.Info("removed empty rooms", "count", removed)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", schedule, err)
	}

	return janitor, nil
}
