package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThresholdLoader(t *testing.T) {
	t.Parallel()

	flags := &Flags{HasMore: true}
	_, err := NewThresholdLoader(-1, flags, func() {})
	require.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = NewThresholdLoader(200, nil, func() {})
	require.Error(t, err)

	_, err = NewThresholdLoader(200, flags, nil)
	require.Error(t, err)

	l, err := NewThresholdLoader(200, flags, func() {})
	require.NoError(t, err)
	assert.Equal(t, 200, l.Threshold())
}

func TestThresholdLoaderFires(t *testing.T) {
	t.Parallel()

	fired := 0
	flags := &Flags{HasMore: true}
	l, err := NewThresholdLoader(200, flags, func() { fired++ })
	require.NoError(t, err)

	// distanceFromEnd = 2000 - 1250 - 600 = 150 < 200 -> fires once.
	assert.True(t, l.OnScroll(1250, 2000, 600))
	assert.Equal(t, 1, fired)

	// The caller marks the fetch in flight; an identical signal is gated.
	flags.Loading = true
	assert.False(t, l.OnScroll(1250, 2000, 600))
	assert.Equal(t, 1, fired)

	// Fetch resolves with more content appended; far from the end again.
	flags.Loading = false
	assert.False(t, l.OnScroll(1250, 4000, 600))
	assert.Equal(t, 1, fired)

	// Approaching the new end triggers the next page.
	assert.True(t, l.OnScroll(3250, 4000, 600))
	assert.Equal(t, 2, fired)
}

func TestThresholdLoaderExhausted(t *testing.T) {
	t.Parallel()

	fired := 0
	flags := &Flags{HasMore: false}
	l, err := NewThresholdLoader(200, flags, func() { fired++ })
	require.NoError(t, err)

	assert.False(t, l.OnScroll(1250, 2000, 600))
	assert.False(t, l.OnScroll(1400, 2000, 600))
	assert.Equal(t, 0, fired)

	// The caller resetting the flag re-arms the loader.
	flags.HasMore = true
	assert.True(t, l.OnScroll(1250, 2000, 600))
	assert.Equal(t, 1, fired)
}

func TestThresholdLoaderDistance(t *testing.T) {
	t.Parallel()

	fired := 0
	flags := &Flags{HasMore: true}
	l, err := NewThresholdLoader(200, flags, func() { fired++ })
	require.NoError(t, err)

	// Exactly at the threshold does not fire; strictly below does.
	assert.False(t, l.OnScroll(1200, 2000, 600))
	assert.Equal(t, 0, fired)
	assert.True(t, l.OnScroll(1201, 2000, 600))
	assert.Equal(t, 1, fired)
}
