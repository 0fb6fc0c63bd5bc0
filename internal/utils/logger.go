package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type CrawlerLogger struct {
	file   *os.File
	logger *logrus.Logger
}

// NewCrawlerLogger logs to stdout and to logs/<name>/crawl_<name>_<timestamp>.log
func NewCrawlerLogger(name, logsDir, level string) (*CrawlerLogger, error) {
	// Sanitize name for file system
	sanitized := strings.ReplaceAll(strings.ToLower(name), " ", "_")

	if logsDir == "" {
		logsDir = "logs"
	}
	runDir := filepath.Join(logsDir, sanitized)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(runDir, fmt.Sprintf("crawl_%s_%s.log", sanitized, timestamp))

	file, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := newLogrus(io.MultiWriter(os.Stdout, file), level)
	return &CrawlerLogger{file: file, logger: logger}, nil
}

// NewDiscardLogger returns a logger that writes nowhere, for tests
func NewDiscardLogger() *CrawlerLogger {
	return &CrawlerLogger{logger: newLogrus(io.Discard, "debug")}
}

func newLogrus(out io.Writer, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.000"})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// Entry returns a logrus entry tagged with the component name
func (cl *CrawlerLogger) Entry(component string) *logrus.Entry {
	return cl.logger.WithField("component", component)
}

func (cl *CrawlerLogger) LogInfo(format string, v ...interface{}) {
	cl.logger.Infof(format, v...)
}

func (cl *CrawlerLogger) LogWarn(format string, v ...interface{}) {
	cl.logger.Warnf(format, v...)
}

func (cl *CrawlerLogger) LogError(format string, v ...interface{}) {
	cl.logger.Errorf(format, v...)
}

func (cl *CrawlerLogger) LogDebug(format string, v ...interface{}) {
	cl.logger.Debugf(format, v...)
}

// Fatal logs and exits with status 1, closing the log file first
func (cl *CrawlerLogger) Fatal(format string, v ...interface{}) {
	cl.logger.Errorf(format, v...)
	cl.Close()
	os.Exit(1)
}

func (cl *CrawlerLogger) Close() error {
	if cl.file == nil {
		return nil
	}
	return cl.file.Close()
}
