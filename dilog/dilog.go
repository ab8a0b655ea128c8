// Package dilog provides [di.LogSink] adapters for common loggers.
//
// Register a sink as a singleton value to enable the container's debug
// traces:
//
//	logger, _ := zap.NewDevelopment()
//	c := di.NewCollection()
//	di.AddValue(c, dilog.Zap(logger))
package dilog

import (
	"fmt"
	"io"
	"log/slog"

	"go.uber.org/zap"

	di "github.com/sectrean/provider-kit"
)

// Zap returns a [di.LogSink] that writes debug traces to a zap logger.
func Zap(l *zap.Logger) di.LogSink {
	return zapSink{l: l}
}

type zapSink struct {
	l *zap.Logger
}

func (s zapSink) Debug(msg string) {
	s.l.Debug(msg)
}

// Slog returns a [di.LogSink] that writes debug traces to a slog logger.
func Slog(l *slog.Logger) di.LogSink {
	return slogSink{l: l}
}

type slogSink struct {
	l *slog.Logger
}

func (s slogSink) Debug(msg string) {
	s.l.Debug(msg)
}

// Writer returns a [di.LogSink] that writes debug traces to w, one line per
// message.
func Writer(w io.Writer) di.LogSink {
	return writerSink{w: w}
}

type writerSink struct {
	w io.Writer
}

func (s writerSink) Debug(msg string) {
	fmt.Fprintln(s.w, msg)
}
