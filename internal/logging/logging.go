// Package logging configures the global zerolog logger from the
// log.* viper keys.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	LevelKey   = "log.level"
	FormatKey  = "log.format"
	NoColorKey = "log.no_color"
)

// InitDefault sets up a console logger at info level. Used before
// flags and config are parsed.
func InitDefault() {
	log.Logger = zerolog.New(consoleWriter(os.Stderr, false)).
		With().Timestamp().Logger().
		Level(zerolog.InfoLevel)
}

// Init configures the global logger from viper. A nil writer means
// stderr.
func Init(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	level, err := zerolog.ParseLevel(viper.GetString(LevelKey))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = w
	if viper.GetString(FormatKey) != "json" {
		out = consoleWriter(w, viper.GetBool(NoColorKey))
	}

	log.Logger = zerolog.New(out).
		With().Timestamp().Logger().
		Level(level)
}

func consoleWriter(w io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.Kitchen,
	}
}
