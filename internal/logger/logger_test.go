package logger_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/nihaocards/internal/logger"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("visible %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "visible 1")
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false), logger.WithClock(fixedClock)).
		WithPrefix("session").
		WithFields(map[string]any{"zeta": 1, "alpha": "a"})

	log.Info("started")

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "2026-03-02 09:30:00.000 INFO  [session]"))
	assert.Less(t, strings.Index(line, "alpha=a"), strings.Index(line, "zeta=1"))
}

func TestLogger_ChildDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := logger.New(logger.WithOutput(&buf), logger.WithColors(false))
	_ = parent.WithField("user_id", "u1").WithError(errors.New("boom"))

	parent.Info("plain")
	assert.NotContains(t, buf.String(), "user_id")
	assert.NotContains(t, buf.String(), "error=")
}

func TestLogger_Context(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).WithField("request_id", "abc")
	ctx := logger.NewContext(context.Background(), log)

	logger.FromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), "request_id=abc")
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}

func TestLookupLevel(t *testing.T) {
	lvl, ok := logger.LookupLevel("warning")
	assert.True(t, ok)
	assert.Equal(t, logger.WARN, lvl)

	lvl, ok = logger.LookupLevel("loud")
	assert.False(t, ok)
	assert.Equal(t, logger.INFO, lvl)
}
