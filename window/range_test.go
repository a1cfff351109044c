package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	t.Parallel()

	t.Run("at the top", func(t *testing.T) {
		t.Parallel()
		geo := Geometry{ItemExtent: 60, Viewport: 400, Overscan: 3}
		r, err := Compute(0, geo, 1000)
		require.NoError(t, err)
		assert.Equal(t, Range{Start: 0, End: 13}, r)
	})

	t.Run("mid scroll", func(t *testing.T) {
		t.Parallel()
		geo := Geometry{ItemExtent: 60, Viewport: 400, Overscan: 3}
		r, err := Compute(6000, geo, 1000)
		require.NoError(t, err)
		assert.Equal(t, Range{Start: 97, End: 110}, r)
	})

	t.Run("end of collection clamps", func(t *testing.T) {
		t.Parallel()
		geo := Geometry{ItemExtent: 60, Viewport: 400, Overscan: 3}
		r, err := Compute(60*1000, geo, 1000)
		require.NoError(t, err)
		assert.Equal(t, 999, r.End)
		assert.LessOrEqual(t, r.Start, r.End)
	})

	t.Run("empty collection yields empty range", func(t *testing.T) {
		t.Parallel()
		geo := Geometry{ItemExtent: 10, Viewport: 40, Overscan: 1}
		r, err := Compute(0, geo, 0)
		require.NoError(t, err)
		assert.True(t, r.Empty())
		assert.Equal(t, 0, r.Len())
	})

	t.Run("negative offset treated as zero", func(t *testing.T) {
		t.Parallel()
		geo := Geometry{ItemExtent: 10, Viewport: 40, Overscan: 0}
		r, err := Compute(-25, geo, 100)
		require.NoError(t, err)
		assert.Equal(t, 0, r.Start)
	})

	t.Run("invalid geometry fails fast", func(t *testing.T) {
		t.Parallel()
		for name, geo := range map[string]Geometry{
			"zero item extent":     {ItemExtent: 0, Viewport: 40},
			"negative item extent": {ItemExtent: -3, Viewport: 40},
			"negative overscan":    {ItemExtent: 10, Viewport: 40, Overscan: -1},
			"negative viewport":    {ItemExtent: 10, Viewport: -40},
		} {
			_, err := Compute(0, geo, 100)
			require.ErrorIs(t, err, ErrInvalidGeometry, name)
		}
	})
}

// Every item at least partially inside [offset, offset+viewport) must be in
// the returned range, and the range must stay within the collection bounds.
func TestComputeCoverage(t *testing.T) {
	t.Parallel()

	for _, extent := range []int{1, 7, 60} {
		for _, viewport := range []int{1, 59, 400} {
			for _, overscan := range []int{0, 1, 3} {
				for _, count := range []int{1, 13, 1000} {
					geo := Geometry{ItemExtent: extent, Viewport: viewport, Overscan: overscan}
					total := count * extent
					for offset := 0; offset <= total; offset += max(1, total/17) {
						r, err := Compute(offset, geo, count)
						require.NoError(t, err)
						require.False(t, r.Empty())
						require.GreaterOrEqual(t, r.Start, 0)
						require.LessOrEqual(t, r.Start, r.End)
						require.LessOrEqual(t, r.End, count-1)

						firstVisible := min(count-1, offset/extent)
						lastVisible := min(count-1, (offset+viewport-1)/extent)
						require.LessOrEqual(t, r.Start, firstVisible,
							"first visible item omitted at offset %d", offset)
						require.GreaterOrEqual(t, r.End, lastVisible,
							"last visible item omitted at offset %d", offset)
					}
				}
			}
		}
	}
}

// Increasing the offset while holding everything else fixed never moves the
// start of the range backwards.
func TestComputeMonotonic(t *testing.T) {
	t.Parallel()

	geo := Geometry{ItemExtent: 17, Viewport: 123, Overscan: 2}
	prevStart := 0
	for offset := 0; offset < 17*500; offset += 13 {
		r, err := Compute(offset, geo, 500)
		require.NoError(t, err)
		require.GreaterOrEqual(t, r.Start, prevStart, "start regressed at offset %d", offset)
		prevStart = r.Start
	}
}

// Identical inputs always yield identical output.
func TestComputeIdempotent(t *testing.T) {
	t.Parallel()

	geo := Geometry{ItemExtent: 60, Viewport: 400, Overscan: 3}
	first, err := Compute(6000, geo, 1000)
	require.NoError(t, err)
	second, err := Compute(6000, geo, 1000)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRange(t *testing.T) {
	t.Parallel()

	r := Range{Start: 3, End: 7}
	assert.False(t, r.Empty())
	assert.Equal(t, 5, r.Len())
	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(7))
	assert.False(t, r.Contains(2))
	assert.False(t, r.Contains(8))

	assert.True(t, EmptyRange.Empty())
	assert.Equal(t, 0, EmptyRange.Len())
	assert.False(t, EmptyRange.Contains(0))
}
