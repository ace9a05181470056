package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New opens a file logger at path. Logging is off unless the RELISH_LOG
// environment variable names a level (debug, info, warn, error), so normal
// runs leave no log file behind.
func New(path string) (zerolog.Logger, func(), error) {
	levelName := os.Getenv("RELISH_LOG")
	if levelName == "" {
		return zerolog.Nop(), func() {}, nil
	}

	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}

	log := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return log, func() { _ = f.Close() }, nil
}
