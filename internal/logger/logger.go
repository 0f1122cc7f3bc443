// Package logger configures the process-wide zerolog logger.
// Application code logs through github.com/rs/zerolog/log once Init has run; HTTP access
// lines are written separately by Fiber's logger middleware.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets the global level and output. In development the output is a human-readable
// console writer; everywhere else it's one JSON object per line for log shippers.
func Init(level, env string) error {
	return InitWithWriter(os.Stdout, level, env)
}

// InitWithWriter is Init with an explicit destination, used by tests.
func InitWithWriter(w io.Writer, level, env string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return fmt.Errorf("logger: unknown level %q", level)
	}
	zerolog.SetGlobalLevel(lvl)

	if env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Str("service", "match-explorer").Logger()
	return nil
}
