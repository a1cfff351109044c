package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, geo Geometry, count int) *Controller {
	t.Helper()
	c, err := NewController(geo, count)
	require.NoError(t, err)
	return c
}

func TestNewController(t *testing.T) {
	t.Parallel()

	_, err := NewController(Geometry{ItemExtent: 0, Viewport: 10}, 5)
	require.ErrorIs(t, err, ErrInvalidGeometry)

	c := newTestController(t, Geometry{ItemExtent: 2, Viewport: 10}, -3)
	assert.Equal(t, 0, c.Count())
	assert.True(t, c.Empty())
}

func TestControllerVisibleRange(t *testing.T) {
	t.Parallel()

	c := newTestController(t, Geometry{ItemExtent: 60, Viewport: 400, Overscan: 3}, 1000)

	assert.Equal(t, Range{Start: 0, End: 13}, c.VisibleRange())
	assert.Equal(t, 60000, c.TotalExtent())

	c.SetOffset(6000)
	assert.Equal(t, Range{Start: 97, End: 110}, c.VisibleRange())
	// Repeated query hits the memo and stays identical.
	assert.Equal(t, Range{Start: 97, End: 110}, c.VisibleRange())

	assert.True(t, c.IsIndexVisible(97))
	assert.True(t, c.IsIndexVisible(110))
	assert.False(t, c.IsIndexVisible(96))
	assert.False(t, c.IsIndexVisible(111))

	c.SetCount(100)
	assert.Equal(t, Range{Start: 97, End: 99}, c.VisibleRange())
}

func TestControllerPlacement(t *testing.T) {
	t.Parallel()

	c := newTestController(t, Geometry{ItemExtent: 4, Viewport: 20}, 50)
	assert.Equal(t, Placement{Top: 0}, c.PlacementFor(0))
	assert.Equal(t, Placement{Top: 28}, c.PlacementFor(7))
}

func TestControllerScrollTo(t *testing.T) {
	t.Parallel()

	t.Run("alignments", func(t *testing.T) {
		t.Parallel()
		c := newTestController(t, Geometry{ItemExtent: 10, Viewport: 50}, 100)

		assert.Equal(t, 400, c.ScrollTo(40, AlignStart))
		assert.Equal(t, 400, c.Offset())

		// 40*10 - 50/2 + 10/2 = 380
		assert.Equal(t, 380, c.ScrollTo(40, AlignCenter))

		// (40+1)*10 - 50 = 360
		assert.Equal(t, 360, c.ScrollTo(40, AlignEnd))
	})

	t.Run("clamped uniformly", func(t *testing.T) {
		t.Parallel()
		c := newTestController(t, Geometry{ItemExtent: 10, Viewport: 50}, 100)

		// Max offset is 1000-50 = 950 regardless of alignment.
		assert.Equal(t, 950, c.ScrollTo(99, AlignStart))
		assert.Equal(t, 950, c.ScrollTo(99, AlignCenter))
		assert.Equal(t, 950, c.ScrollTo(99, AlignEnd))
		assert.Equal(t, 0, c.ScrollTo(0, AlignCenter))
		assert.Equal(t, 0, c.ScrollTo(0, AlignEnd))
	})

	t.Run("viewport taller than content is a no-op", func(t *testing.T) {
		t.Parallel()
		c := newTestController(t, Geometry{ItemExtent: 10, Viewport: 500}, 10)
		for _, align := range []Align{AlignStart, AlignCenter, AlignEnd} {
			assert.Equal(t, 0, c.ScrollTo(9, align), align.String())
		}
	})

	t.Run("empty collection", func(t *testing.T) {
		t.Parallel()
		c := newTestController(t, Geometry{ItemExtent: 10, Viewport: 50}, 0)
		assert.Equal(t, 0, c.ScrollTo(5, AlignStart))
		assert.True(t, c.VisibleRange().Empty())
	})

	t.Run("out of bounds index clamps to collection", func(t *testing.T) {
		t.Parallel()
		c := newTestController(t, Geometry{ItemExtent: 10, Viewport: 50}, 100)
		assert.Equal(t, 950, c.ScrollTo(5000, AlignStart))
		assert.Equal(t, 0, c.ScrollTo(-4, AlignStart))
	})
}

// Scrolling to an index with start alignment always lands that index inside
// the visible range computed at the resulting offset.
func TestControllerScrollToRoundTrip(t *testing.T) {
	t.Parallel()

	for _, viewport := range []int{1, 35, 400} {
		for _, extent := range []int{1, 7, 60} {
			c := newTestController(t, Geometry{ItemExtent: extent, Viewport: viewport}, 321)
			for i := 0; i < 321; i += 11 {
				c.ScrollTo(i, AlignStart)
				require.True(t, c.IsIndexVisible(i),
					"index %d not visible after scroll-to (extent %d viewport %d, offset %d)",
					i, extent, viewport, c.Offset())
			}
		}
	}
}

func TestSliceSource(t *testing.T) {
	t.Parallel()

	s := Slice[string]{"a", "b", "c"}
	assert.Equal(t, 3, s.Len())

	v, ok := s.At(1)
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = s.At(3)
	assert.False(t, ok)
	_, ok = s.At(-1)
	assert.False(t, ok)
}

func TestSourceFunc(t *testing.T) {
	t.Parallel()

	// Sparse source with a hole at every even index.
	s := SourceFunc[int]{
		LenFunc: func() int { return 10 },
		AtFunc: func(i int) (int, bool) {
			if i%2 == 0 {
				return 0, false
			}
			return i * 100, true
		},
	}
	assert.Equal(t, 10, s.Len())
	_, ok := s.At(4)
	assert.False(t, ok)
	v, ok := s.At(5)
	assert.True(t, ok)
	assert.Equal(t, 500, v)
}
