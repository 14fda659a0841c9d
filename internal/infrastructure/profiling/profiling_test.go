package profiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p2p-volume-tracker/internal/infrastructure/config"
)

func TestStart_DisabledIsNoop(t *testing.T) {
	stop, err := Start(config.ProfilingConfig{Enabled: false}, nil)

	require.NoError(t, err)
	require.NotNil(t, stop)
	assert.NoError(t, stop())
}
