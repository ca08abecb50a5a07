// Package logging builds the zap loggers used by the densfit commands.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a development logger at debug level when debug is set, and a
// production JSON logger at info level otherwise.
func New(debug bool) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("can't initialize zap logger: %w", err)
	}

	return logger, nil
}

// Sync flushes logger, ignoring the errors zap reports for unsyncable
// outputs such as terminals.
func Sync(logger *zap.Logger) {
	if logger != nil {
		_ = logger.Sync()
	}
}
