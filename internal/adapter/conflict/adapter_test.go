package conflict

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduceSignals_ReturnsEmpty(t *testing.T) {
	adapter := NewAdapter(slog.Default())

	signals, err := adapter.ProduceSignals(context.Background())
	require.NoError(t, err)
	assert.Empty(t, signals)
	assert.Equal(t, "ACLED", adapter.Name())
}
