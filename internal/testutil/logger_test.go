package testutil

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDropTime(t *testing.T) {
	ts := slog.Time(slog.TimeKey, time.Now())
	assert.True(t, dropTime(nil, ts).Equal(slog.Attr{}))

	msg := slog.String(slog.MessageKey, "hello")
	assert.True(t, dropTime(nil, msg).Equal(msg))

	// only the record's own timestamp is dropped, not grouped attrs
	assert.True(t, dropTime([]string{"req"}, ts).Equal(ts))
}
