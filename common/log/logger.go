package log

import (
	"fmt"

	"github.com/inconshreveable/log15"
	"github.com/zhigui-projects/go-pemsign/api"
)

// GetLogger returns a logger carrying the given key/value context. Every
// logger shares the root handler, so Configure applies to loggers created
// before it was called.
func GetLogger(ctx ...interface{}) api.Logger {
	return &DefaultLogger{log15.New(ctx...)}
}

// DefaultLogger is a default implementation of the api.Logger interface.
type DefaultLogger struct {
	log15.Logger
}

func (l *DefaultLogger) New(ctx ...interface{}) api.Logger {
	return &DefaultLogger{l.Logger.New(ctx...)}
}

func (l *DefaultLogger) Debug(v ...interface{}) {
	if len(v) > 0 {
		l.Logger.Debug(message(v[0]), v[1:]...)
	}
}

func (l *DefaultLogger) Debugf(format string, v ...interface{}) {
	l.Logger.Debug(fmt.Sprintf(format, v...))
}

func (l *DefaultLogger) Info(v ...interface{}) {
	if len(v) > 0 {
		l.Logger.Info(message(v[0]), v[1:]...)
	}
}

func (l *DefaultLogger) Infof(format string, v ...interface{}) {
	l.Logger.Info(fmt.Sprintf(format, v...))
}

func (l *DefaultLogger) Warning(v ...interface{}) {
	if len(v) > 0 {
		l.Logger.Warn(message(v[0]), v[1:]...)
	}
}

func (l *DefaultLogger) Warningf(format string, v ...interface{}) {
	l.Logger.Warn(fmt.Sprintf(format, v...))
}

func (l *DefaultLogger) Error(v ...interface{}) {
	if len(v) > 0 {
		l.Logger.Error(message(v[0]), v[1:]...)
	}
}

func (l *DefaultLogger) Errorf(format string, v ...interface{}) {
	l.Logger.Error(fmt.Sprintf(format, v...))
}

func message(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
