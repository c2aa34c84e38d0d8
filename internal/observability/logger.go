package observability

import (
	"github.com/danmuck/fieldtext/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger tags the shared logger with the binary name and installs it as
// zerolog's global logger. Call it after logging.Configure so the level and
// output overrides carry over.
func InitLogger(app string) zerolog.Logger {
	logger := logging.Logger().With().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
