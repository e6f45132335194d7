package log

import (
	"io"
	"log/slog"
	"os"

	"github.com/rs/zerolog"
	slogzerolog "github.com/samber/slog-zerolog"

	"github.com/husky-nft/nftgate/config"
)

func NewLogger(cfg *config.Config) *slog.Logger {
	return New(os.Stderr, cfg.GetLogFormat(), cfg.GetLogLevel()).
		With(slog.String("version", config.Version))
}

// New builds a zerolog-backed slog logger writing to w.
func New(w io.Writer, format string, level slog.Level) *slog.Logger {
	var zerologLogger zerolog.Logger
	if format == "json" {
		zerologLogger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		zerologLogger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	}
	return slog.New(slogzerolog.Option{Level: level, Logger: &zerologLogger}.NewZerologHandler())
}

// Discard returns a logger that drops everything, for tests and one-shot commands.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
