package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

func InitLogger() {
	InfoLogger = logrus.New()
	ErrorLogger = logrus.New()

	// InfoLogger ke stdout, ErrorLogger ke stderr
	InfoLogger.SetOutput(os.Stdout)
	InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	ErrorLogger.SetOutput(os.Stderr)
	ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// ErrorLogger dipakai lewat Printf (level info), jadi levelnya ikut LOG_LEVEL juga
	level := parseLevel(os.Getenv("LOG_LEVEL"), logrus.InfoLevel)
	InfoLogger.SetLevel(level)
	ErrorLogger.SetLevel(level)
}

func parseLevel(raw string, def logrus.Level) logrus.Level {
	if raw == "" {
		return def
	}
	lvl, err := logrus.ParseLevel(raw)
	if err != nil {
		return def
	}
	return lvl
}

// TableLogger tags log lines with the table they concern.
func TableLogger(tableID string) *logrus.Entry {
	return InfoLogger.WithField("table_id", tableID)
}
