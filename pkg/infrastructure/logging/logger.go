package logging

import (
	"io"
	"log"
	"os"
)

// SetupLogger creates the application logger. Output goes to stderr and, when
// logFile is set, is also appended to that file. The returned file must be
// closed by the caller; it is nil when no log file is used.
func SetupLogger(logFile string) (*log.Logger, *os.File, error) {
	if logFile == "" {
		return log.New(os.Stderr, "", log.LstdFlags), nil, nil
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, err
	}

	logger := log.New(io.MultiWriter(os.Stderr, file), "", log.LstdFlags)
	return logger, file, nil
}
