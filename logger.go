package main

import (
	"io"
	"log"
	"os"
	"strings"
)

type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func ParseLevel(levelStr string) Level {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	default:
		return WarnLevel
	}
}

// Logger writes everything to stderr; stdout carries only version output.
type Logger struct {
	debugLogger *log.Logger
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	level       Level
}

func NewLogger() *Logger {
	return NewLoggerWithLevel(WarnLevel)
}

func NewLoggerWithLevel(level Level) *Logger {
	return newLoggerTo(os.Stderr, level)
}

func newLoggerTo(w io.Writer, level Level) *Logger {
	return &Logger{
		debugLogger: log.New(w, "[DEBUG] ", log.LstdFlags),
		infoLogger:  log.New(w, "[INFO] ", log.LstdFlags),
		warnLogger:  log.New(w, "[WARN] ", log.LstdFlags),
		errorLogger: log.New(w, "[ERROR] ", log.LstdFlags),
		level:       level,
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level <= DebugLevel {
		l.debugLogger.Printf(format, args...)
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.level <= InfoLevel {
		l.infoLogger.Printf(format, args...)
	}
}

func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level <= WarnLevel {
		l.warnLogger.Printf(format, args...)
	}
}

func (l *Logger) Error(format string, args ...interface{}) {
	if l.level <= ErrorLevel {
		l.errorLogger.Printf(format, args...)
	}
}
