// Package log is the project wide logger, a thin facade over logrus so callers
// import one package for levels, formatters and the log functions.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

type (
	Level         = logrus.Level
	Fields        = logrus.Fields
	Entry         = logrus.Entry
	TextFormatter = logrus.TextFormatter
	JSONFormatter = logrus.JSONFormatter
)

const (
	PanicLevel = logrus.PanicLevel
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
	TraceLevel = logrus.TraceLevel
)

var (
	SetLevel     = logrus.SetLevel
	GetLevel     = logrus.GetLevel
	SetFormatter = logrus.SetFormatter
	ParseLevel   = logrus.ParseLevel
	WithField    = logrus.WithField
	WithFields   = logrus.WithFields
	WithError    = logrus.WithError

	Debug  = logrus.Debug
	Debugf = logrus.Debugf
	Info   = logrus.Info
	Infof  = logrus.Infof
	Warn   = logrus.Warn
	Warnf  = logrus.Warnf
	Error  = logrus.Error
	Errorf = logrus.Errorf
	Fatal  = logrus.Fatal
	Fatalf = logrus.Fatalf
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04",
	})
}

// SetOutput redirects the standard logger, mostly useful for silencing tests.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}
