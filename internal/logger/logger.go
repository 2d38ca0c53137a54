package logger

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// New はアプリ共通のloggerを作る。dev以外はJSONで出す。
func New(level string, dev bool) *log.Logger {
	l := log.New()
	l.SetOutput(os.Stdout)

	if dev {
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&log.JSONFormatter{})
	}

	lv, err := log.ParseLevel(level)
	if err != nil {
		lv = log.InfoLevel
		l.WithField("level", level).Warn("unknown LOG_LEVEL, falling back to info")
	}
	l.SetLevel(lv)

	return l
}
