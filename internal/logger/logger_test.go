package logger

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew_Level(t *testing.T) {
	l := New("debug", true)
	assert.Equal(t, log.DebugLevel, l.GetLevel())
	assert.IsType(t, &log.TextFormatter{}, l.Formatter)
}

func TestNew_ProdUsesJSON(t *testing.T) {
	l := New("warn", false)
	assert.Equal(t, log.WarnLevel, l.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, l.Formatter)
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	l := New("loud", false)
	assert.Equal(t, log.InfoLevel, l.GetLevel())
}
