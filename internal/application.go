package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/decrypto-backend/internal/config"
	"github.com/rocketscienceinc/decrypto-backend/internal/repository"
	"github.com/rocketscienceinc/decrypto-backend/internal/repository/storage"
	"github.com/rocketscienceinc/decrypto-backend/internal/usecase"
	"github.com/rocketscienceinc/decrypto-backend/internal/wordbank"
	"github.com/rocketscienceinc/decrypto-backend/transport/rest"
	"github.com/rocketscienceinc/decrypto-backend/transport/websocket"
)

var ErrUnknownArchiveDriver = errors.New("unknown archive driver")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	words, err := wordbank.Load(conf.Game.WordBankPath)
	if err != nil {
		return fmt.Errorf("could not load word bank: %w", err)
	}

	archive, closeArchive, err := openArchive(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeArchive()

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint: gosec // game randomness
	rooms := usecase.NewRoomRegistry(words, rng, quartz.NewReal())
	gameUseCase := usecase.NewGameManager(logger, rooms, archive)

	janitor, err := usecase.NewJanitor(logger, rooms, conf.Game.CleanupSchedule)
	if err != nil {
		return fmt.Errorf("could not schedule room cleanup: %w", err)
	}
	janitor.Start()
	defer func() { <-janitor.Stop().Done() }()

	group, groupCtx := errgroup.WithContext(ctx)

	// run HTTP server
	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, rooms, archive).Start(groupCtx, conf.HTTPPort); httpErr != nil {
			return fmt.Errorf("HTTP server error: %w", httpErr)
		}
		return nil
	})

	// run Websocket server
	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameUseCase, conf.Game.MessagesPerSecond, conf.Game.MessageBurst)
		if wsErr := wsServer.Start(groupCtx, conf.SocketPort); wsErr != nil {
			return fmt.Errorf("WebSocket server error: %w", wsErr)
		}
		return nil
	})

	if err = group.Wait(); err != nil {
		return err
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// openArchive connects the configured archive driver. The returned func
// releases its connection.
func openArchive(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.GameArchive, func(), error) {
	switch conf.Archive.Driver {
	case config.ArchiveMemory:
		return repository.NewMemoryArchive(conf.Archive.Size), func() {}, nil

	case config.ArchiveRedis:
		redisStorage, err := storage.NewRedis(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		closeRedis := func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewRedisArchive(redisStorage, conf.Redis.ArchiveKey, conf.Archive.Size), closeRedis, nil

	case config.ArchivePostgres:
		db, err := storage.NewPostgres(ctx, conf.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to postgres storage: %w", err)
		}

		closePostgres := func() {
			if err := storage.ClosePostgres(db); err != nil {
				log.Error("could not close postgres storage", "error", err)
			}
		}

		archive, err := repository.NewPostgresArchive(ctx, db, conf.Archive.Size)
		if err != nil {
			closePostgres()
			return nil, nil, fmt.Errorf("could not prepare postgres archive: %w", err)
		}

		return archive, closePostgres, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownArchiveDriver, conf.Archive.Driver)
	}
}
