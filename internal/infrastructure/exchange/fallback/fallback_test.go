package fallback

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p2p-volume-tracker/internal/domain/entities"
	"p2p-volume-tracker/internal/infrastructure/config"
)

var okxPair = entities.NewPair(entities.ExchangeOKX, entities.AssetUSDC)

func TestAbsent_ReturnsCause(t *testing.T) {
	cause := fmt.Errorf("%w: HTTP 401", entities.ErrProviderAuthRequired)

	m, err := NewAbsent().Recover(okxPair, cause)

	assert.Nil(t, m)
	assert.Same(t, cause, err)
	assert.ErrorIs(t, err, entities.ErrProviderAuthRequired)
}

func TestSynthetic_Ranges(t *testing.T) {
	s := NewSynthetic(7)

	for i := 0; i < 500; i++ {
		m, err := s.Recover(okxPair, entities.ErrProviderAuthRequired)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, m.Volume, 100000.0)
		assert.Less(t, m.Volume, 600000.0)
		assert.GreaterOrEqual(t, m.Orders, 10)
		assert.Less(t, m.Orders, 60)
		assert.GreaterOrEqual(t, m.AvgPrice, 0.998)
		assert.Less(t, m.AvgPrice, 1.002)
		assert.Equal(t, entities.ExchangeOKX, m.Exchange)
	}
}

func TestSynthetic_AlwaysTagged(t *testing.T) {
	s := NewSynthetic(1)

	noData, err := s.Recover(okxPair, fmt.Errorf("%w: no listings", entities.ErrProviderAuthRequired))
	require.NoError(t, err)
	assert.Equal(t, NoteNoData, noData.Note)
	assert.True(t, noData.IsSynthetic())

	failed, err := s.Recover(okxPair, fmt.Errorf("%w: dial tcp: refused", entities.ErrProviderUnreachable))
	require.NoError(t, err)
	assert.Equal(t, NoteFailed, failed.Note)

	schema, err := s.Recover(okxPair, errors.New("boom"))
	require.NoError(t, err)
	assert.Equal(t, NoteFailed, schema.Note)
}

func TestSynthetic_SeedIsDeterministic(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	a := NewSynthetic(42).WithClock(func() time.Time { return fixed })
	b := NewSynthetic(42).WithClock(func() time.Time { return fixed })

	ma, err := a.Recover(okxPair, entities.ErrProviderEmptyResult)
	require.NoError(t, err)
	mb, err := b.Recover(okxPair, entities.ErrProviderEmptyResult)
	require.NoError(t, err)

	assert.Equal(t, ma, mb)
	assert.Equal(t, fixed, ma.Timestamp)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		mode        string
		expected    string
		expectError bool
	}{
		{name: "default is absent", mode: "", expected: "absent"},
		{name: "absent", mode: config.FallbackAbsent, expected: "absent"},
		{name: "synthetic", mode: config.FallbackSynthetic, expected: "synthetic"},
		{name: "unknown", mode: "random", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := New(config.FallbackConfig{Mode: tt.mode, Seed: 3})
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, strategy.Name())
		})
	}
}
