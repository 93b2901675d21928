package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func TestCharmLogger_WritesLevelsAndPairs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCharmLogger(log.New(&buf))
	ctx := context.Background()

	logger.Info(ctx, "status refreshed", "credits", 5)
	logger.Error(ctx, "submit failed", "reason", "timeout")

	out := buf.String()
	require.Contains(t, out, "status refreshed")
	require.Contains(t, out, "credits")
	require.Contains(t, out, "submit failed")
}

func TestCharmLogger_WithAddsPersistentPairs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCharmLogger(log.New(&buf))

	child := logger.With("component", "stamp")
	child.Info(context.Background(), "done")

	require.Contains(t, buf.String(), "component")
	require.Contains(t, buf.String(), "stamp")
}
