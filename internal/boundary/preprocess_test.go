package boundary

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func relation(id int64, tags ...osm.Tag) *osm.Relation {
	return &osm.Relation{ID: osm.RelationID(id), Tags: osm.Tags(tags)}
}

func tag(k, v string) osm.Tag {
	return osm.Tag{Key: k, Value: v}
}

func adminRelation(id int64, level string, extra ...osm.Tag) *osm.Relation {
	tags := osm.Tags{
		tag("type", "boundary"),
		tag("boundary", "administrative"),
		tag("admin_level", level),
	}
	return relation(id, append(tags, extra...)...)
}

func TestPreprocessRelation(t *testing.T) {
	newTestLayer := func() *Layer {
		return NewLayer(true, &sinkRecorder{}, zap.NewNop())
	}

	t.Run("registers administrative boundary", func(t *testing.T) {
		l := newTestLayer()
		rec := l.PreprocessRelation(adminRelation(10, "2", tag("name", "Atlantis")))
		require.NotNil(t, rec)
		assert.Equal(t, int64(10), rec.ID)
		assert.Equal(t, 2, rec.AdminLevel)
		assert.Equal(t, "Atlantis", rec.Name)
		assert.False(t, rec.Disputed)

		stored, ok := l.Record(10)
		require.True(t, ok)
		assert.Equal(t, *rec, stored)
	})

	t.Run("ignores non-boundary relations", func(t *testing.T) {
		l := newTestLayer()
		assert.Nil(t, l.PreprocessRelation(relation(1, tag("type", "route"))))
		assert.Nil(t, l.PreprocessRelation(relation(2,
			tag("type", "boundary"), tag("boundary", "maritime"), tag("admin_level", "2"))))
	})

	t.Run("admin_level bounds and malformed values", func(t *testing.T) {
		l := newTestLayer()
		assert.Nil(t, l.PreprocessRelation(adminRelation(1, "1")))
		assert.Nil(t, l.PreprocessRelation(adminRelation(2, "11")))
		assert.Nil(t, l.PreprocessRelation(adminRelation(3, "abc")))
		assert.Nil(t, l.PreprocessRelation(adminRelation(4, "")))
		assert.NotNil(t, l.PreprocessRelation(adminRelation(5, "10")))
	})

	t.Run("fractional admin_level is rounded", func(t *testing.T) {
		l := newTestLayer()
		rec := l.PreprocessRelation(adminRelation(6, "2.4"))
		require.NotNil(t, rec)
		assert.Equal(t, 2, rec.AdminLevel)

		rec = l.PreprocessRelation(adminRelation(7, "1.5"))
		require.NotNil(t, rec)
		assert.Equal(t, 2, rec.AdminLevel)
	})

	t.Run("country code registered even without member ways", func(t *testing.T) {
		l := newTestLayer()
		rec := l.PreprocessRelation(adminRelation(8, "2", tag("ISO3166-1:alpha3", "ATL")))
		require.NotNil(t, rec)
		assert.Equal(t, "ATL", rec.ISOCode)

		code, ok := l.CountryCode(8)
		require.True(t, ok)
		assert.Equal(t, "ATL", code)
	})

	t.Run("claimed_by kept only for disputed relations", func(t *testing.T) {
		l := newTestLayer()
		rec := l.PreprocessRelation(adminRelation(9, "2",
			tag("disputed", "yes"), tag("claimed_by", "ATL")))
		require.NotNil(t, rec)
		assert.True(t, rec.Disputed)
		assert.Equal(t, "ATL", rec.ClaimedBy)
	})
}

func TestIsDisputed(t *testing.T) {
	cases := []struct {
		name string
		tags osm.Tags
		want bool
	}{
		{"disputed=yes", osm.Tags{tag("disputed", "yes")}, true},
		{"disputed=1", osm.Tags{tag("disputed", "1")}, true},
		{"dispute=true", osm.Tags{tag("dispute", "true")}, true},
		{"border_status=dispute", osm.Tags{tag("border_status", "dispute")}, true},
		{"disputed_by present", osm.Tags{tag("disputed_by", "ATL")}, true},
		{"claimed_by present", osm.Tags{tag("claimed_by", "ATL")}, true},
		{"disputed=no", osm.Tags{tag("disputed", "no")}, false},
		{"border_status other", osm.Tags{tag("border_status", "open")}, false},
		{"no tags", osm.Tags{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isDisputed(tc.tags))
		})
	}
}

func TestCleanDisputedName(t *testing.T) {
	assert.Equal(t, "TurkishClaimCyprus",
		CleanDisputedName("Extent of Turkish Claim at Cyprus"))
	assert.Equal(t, "DisputedFooBar",
		CleanDisputedName("Disputed Extentof Foo at Bar"))
	assert.Equal(t, "AB", CleanDisputedName("A  B"))
	assert.Equal(t, "", CleanDisputedName(""))

	// идемпотентность
	once := CleanDisputedName("Extent of Turkish Claim at Cyprus")
	assert.Equal(t, once, CleanDisputedName(once))
}
