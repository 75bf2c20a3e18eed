package lens_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optikforge/zmxlink/lens"
)

func TestCollectNamedIndexesTaggedSurfaces(t *testing.T) {
	_, _, seq := newModel(t)
	s1, s2 := twoStandards(t, seq)
	require.NoError(t, s1.Comment().SetTag("front"))
	require.NoError(t, s2.Comment().SetTag("back"))

	named, err := lens.CollectNamed(seq)
	require.NoError(t, err)
	require.Equal(t, []string{"back", "front"}, named.Tags())

	surf, ok := named.Get("front")
	require.True(t, ok)
	require.Equal(t, s1.Label(), surf.Label())

	_, ok = named.Get("middle")
	require.False(t, ok)
}

func TestNameTagsAndIndexes(t *testing.T) {
	_, _, seq := newModel(t)
	s1, _ := twoStandards(t, seq)

	named, err := lens.CollectNamed(seq)
	require.NoError(t, err)
	require.Empty(t, named.Tags())

	require.NoError(t, named.Name("stop", s1))
	tag, err := s1.Comment().Tag()
	require.NoError(t, err)
	require.Equal(t, "stop", tag)

	surf, ok := named.Get("stop")
	require.True(t, ok)
	require.Equal(t, s1.Label(), surf.Label())
}
