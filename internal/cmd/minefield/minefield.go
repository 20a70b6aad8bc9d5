// Package minefield parses minefield service flags and launches the service.
package minefield

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/louisbranch/minefield/internal/platform/cmd"
	server "github.com/louisbranch/minefield/internal/services/minefield/app"
)

// Config holds minefield command configuration.
type Config struct {
	Transport   string `env:"MINEFIELD_TRANSPORT"          envDefault:"stdio"`
	HTTPAddr    string `env:"MINEFIELD_HTTP_ADDR"          envDefault:"localhost:8081"`
	GRPCPort    int    `env:"MINEFIELD_GRPC_PORT"          envDefault:"8082"`
	DBPath      string `env:"MINEFIELD_DB_PATH"            envDefault:"data/minefield.db"`
	Locale      string `env:"MINEFIELD_LOCALE"             envDefault:"en"`
	RevealMines bool   `env:"MINEFIELD_DEBUG_REVEAL_MINES" envDefault:"false"`
	MaxGames    int    `env:"MINEFIELD_MAX_GAMES"          envDefault:"64"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.IntVar(&cfg.GRPCPort, "grpc-port", cfg.GRPCPort, "gRPC health port (0 disables)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "score database path")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for tool summaries (en, pt-BR)")
	fs.BoolVar(&cfg.RevealMines, "reveal-mines", cfg.RevealMines, "show mine positions in every board view (debug)")
	fs.IntVar(&cfg.MaxGames, "max-games", cfg.MaxGames, "maximum live games")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.GRPCPort < 0 {
		return Config{}, fmt.Errorf("grpc port must not be negative: %d", cfg.GRPCPort)
	}
	if cfg.MaxGames <= 0 {
		return Config{}, fmt.Errorf("max games must be positive: %d", cfg.MaxGames)
	}
	return cfg, nil
}

// ServerConfig converts command configuration into server configuration.
func (c Config) ServerConfig() server.Config {
	grpcAddr := ""
	if c.GRPCPort > 0 {
		grpcAddr = fmt.Sprintf(":%d", c.GRPCPort)
	}
	return server.Config{
		Transport:   server.TransportKind(c.Transport),
		HTTPAddr:    c.HTTPAddr,
		GRPCAddr:    grpcAddr,
		DBPath:      c.DBPath,
		Locale:      c.Locale,
		RevealMines: c.RevealMines,
		MaxGames:    c.MaxGames,
	}
}

// Run starts the minefield MCP service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMinefield, func(ctx context.Context) error {
		return server.Run(ctx, cfg.ServerConfig())
	})
}
