package logger

import (
	"io"
	"os"
	"time"

	"hotel/config"
	"hotel/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a console writer at trace level so anything logged before the
// configuration is loaded still shows up.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

// Configure applies LOG_LEVEL. Outside development the console writer is swapped for JSON
// lines tagged with the application name.
func Configure(cfg *config.Config) {
	configure(cfg, os.Stdout)
}

func configure(cfg *config.Config, out io.Writer) {
	if cfg.Server.Env != constant.Empty && cfg.Server.Env != constant.ServerEnvDevelopment {
		log.Logger = zerolog.New(out).With().Timestamp().Str("app", cfg.App.Name).Logger()
	}

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || cfg.Server.LogLevel == constant.Empty {
		level = zerolog.TraceLevel
		log.Trace().Msg("No usable log level configured, keeping trace.")
	}

	zerolog.SetGlobalLevel(level)
	log.Debug().Str("loglevel", level.String()).Str("env", cfg.Server.Env).Msg("Logger configured.")
}

// ErrorWithStack logs err with the stack of the caller.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
