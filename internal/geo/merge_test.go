package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeLines(t *testing.T) {
	t.Run("two fragments sharing an endpoint merge, disjoint one stays", func(t *testing.T) {
		fragments := []orb.LineString{
			{{0, 0}, {1, 0}},
			{{1, 0}, {2, 0}},
			{{5, 5}, {6, 5}},
		}

		merged := MergeLines(fragments)
		require.Len(t, merged, 2)

		assert.Equal(t, orb.LineString{{0, 0}, {1, 0}, {2, 0}}, merged[0])
		assert.Equal(t, orb.LineString{{5, 5}, {6, 5}}, merged[1])
	})

	t.Run("joins against reversed fragment orientation", func(t *testing.T) {
		fragments := []orb.LineString{
			{{0, 0}, {1, 0}},
			{{2, 0}, {1, 0}}, // points toward the shared endpoint
		}

		merged := MergeLines(fragments)
		require.Len(t, merged, 1)
		assert.Equal(t, orb.LineString{{0, 0}, {1, 0}, {2, 0}}, merged[0])
	})

	t.Run("junction of three fragments stays split", func(t *testing.T) {
		fragments := []orb.LineString{
			{{0, 0}, {1, 1}},
			{{2, 0}, {1, 1}},
			{{1, 2}, {1, 1}},
		}

		merged := MergeLines(fragments)
		assert.Len(t, merged, 3)
	})

	t.Run("segments of a ring close into one line", func(t *testing.T) {
		fragments := []orb.LineString{
			{{0, 0}, {1, 0}},
			{{1, 0}, {1, 1}},
			{{1, 1}, {0, 1}},
			{{0, 1}, {0, 0}},
		}

		merged := MergeLines(fragments)
		require.Len(t, merged, 1)
		line := merged[0]
		assert.Len(t, line, 5)
		assert.Equal(t, line[0], line[len(line)-1])
	})

	t.Run("degenerate fragments are dropped", func(t *testing.T) {
		fragments := []orb.LineString{
			{{0, 0}},
			{},
			{{0, 0}, {1, 0}},
		}

		merged := MergeLines(fragments)
		require.Len(t, merged, 1)
		assert.Equal(t, orb.LineString{{0, 0}, {1, 0}}, merged[0])
	})
}
