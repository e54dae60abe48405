package config

import (
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrInvalidArchiveSize = errors.New("archive size must not be negative")

type Config struct {
	LogLevel   string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat  string   `yaml:"log-format" env:"LOG_FORMAT" env-default:"json"`
	HTTPPort   string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string   `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Archive    Archive  `yaml:"archive"`
	Redis      Redis    `yaml:"redis"`
	Postgres   Postgres `yaml:"postgres"`
	Game       Game     `yaml:"game"`
}

const (
	ArchiveMemory   = "memory"
	ArchiveRedis    = "redis"
	ArchivePostgres = "postgres"
)

// Archive selects where finished games are kept.
type Archive struct {
	Driver string `yaml:"driver" env:"ARCHIVE_DRIVER" env-default:"memory"`
	Size   int    `yaml:"size" env:"ARCHIVE_SIZE" env-default:"100"`
}

type Redis struct {
	Host       string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port       string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	ArchiveKey string `yaml:"archive-key" env:"REDIS_ARCHIVE_KEY" env-default:"decrypto:games"`
}

type Postgres struct {
	DSN string `yaml:"dsn" env:"POSTGRES_DSN" env-default:"host=localhost user=postgres dbname=decrypto sslmode=disable"`
}

type Game struct {
	// WordBankPath is a YAML word list; empty means the built-in one.
	WordBankPath      string  `yaml:"word-bank-path" env:"WORD_BANK_PATH"`
	CleanupSchedule   string  `yaml:"cleanup-schedule" env:"CLEANUP_SCHEDULE" env-default:"@every 1m"`
	MessagesPerSecond float64 `yaml:"messages-per-second" env:"MESSAGES_PER_SECOND" env-default:"10"`
	MessageBurst      int     `yaml:"message-burst" env:"MESSAGE_BURST" env-default:"20"`
}

// Load - reads config.yml at path, falling back to environment variables and
// defaults when the file does not exist.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read config from env: %w", err)
		}

		return config.validated()
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config.validated()
}

func (that *Config) validated() (*Config, error) {
	if that.Archive.Size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidArchiveSize, that.Archive.Size)
	}

	return that, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return net.JoinHostPort(that.Host, that.Port)
}
