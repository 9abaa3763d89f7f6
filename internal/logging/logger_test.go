package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithClient_BeforeInit(t *testing.T) {
	prevDefault := slog.Default()
	prevLogger := Logger
	t.Cleanup(func() {
		slog.SetDefault(prevDefault)
		Logger = prevLogger
	})

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	Logger = nil

	WithClient("client-1").Warn("selection load failed")

	assert.Contains(t, buf.String(), "client_id=client-1")
	assert.Contains(t, buf.String(), "selection load failed")
}

func TestWithClient_UsesInitializedLogger(t *testing.T) {
	prevLogger := Logger
	t.Cleanup(func() { Logger = prevLogger })

	var buf bytes.Buffer
	Logger = slog.New(slog.NewTextHandler(&buf, nil))

	WithClient("client-2").Info("resolved")

	assert.Contains(t, buf.String(), "client_id=client-2")
}
