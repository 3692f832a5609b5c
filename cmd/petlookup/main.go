package main

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dmitrymomot/asyncstate"
	"github.com/dmitrymomot/asyncstate/config"
	"github.com/dmitrymomot/asyncstate/logger"
	"github.com/dmitrymomot/asyncstate/petstore"
)

type appConfig struct {
	BaseURL   string        `env:"PETSTORE_BASE_URL" envDefault:"https://petstore.example.com"`
	Timeout   time.Duration `env:"PETSTORE_TIMEOUT" envDefault:"10s"`
	LogLevel  string        `env:"PETLOOKUP_LOG_LEVEL" envDefault:"info"`
	LogFormat string        `env:"PETLOOKUP_LOG_FORMAT" envDefault:"text"`
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithLevel(parseLevel(cfg.LogLevel)),
		logger.WithOutput(os.Stderr),
		logger.WithAttr(slog.String("service", "petlookup")),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := petstore.New(cfg.BaseURL, petstore.WithTimeout(cfg.Timeout))

	machine := asyncstate.New[petstore.Pet](
		asyncstate.WithLogger[petstore.Pet](log),
		asyncstate.WithBuffer[petstore.Pet](8),
	)
	defer machine.Close()

	v := newView(os.Stdout, machine)
	go v.renderLoop(ctx, machine.Watch(ctx))

	v.prompt()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}

		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			v.prompt()
			continue
		}

		machine.Run(func() *asyncstate.Future[petstore.Pet] {
			return asyncstate.Go(ctx, func(ctx context.Context) (petstore.Pet, error) {
				return client.Fetch(ctx, name)
			})
		})
	}

	if err := scanner.Err(); err != nil {
		log.Error("read input", slog.Any("error", err))
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
