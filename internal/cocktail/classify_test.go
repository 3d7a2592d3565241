package cocktail

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectBaseSpirit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		ingredients []string
		want        Spirit
	}{
		{"first line wins", []string{"3 cl Gin", "3 cl Campari", "3 cl Sweet Vermouth"}, SpiritGin},
		{"later line", []string{"2 dashes Angostura", "2 oz Bourbon Whiskey"}, SpiritWhisky},
		{"mezcal maps to agave", []string{"4.5 cl Mezcal"}, SpiritAgave},
		{"tequila maps to agave", []string{"5 cl Tequila"}, SpiritAgave},
		{"cognac maps to brandy", []string{"4 cl Cognac"}, SpiritBrandy},
		{"no spirit", []string{"1 oz Lime juice", "2 cl Orgeat"}, SpiritUnknown},
		{"empty", nil, SpiritUnknown},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, DetectBaseSpirit(tc.ingredients))
		})
	}
}

func TestDeriveTags(t *testing.T) {
	t.Parallel()

	t.Run("negroni is bitter and boozy", func(t *testing.T) {
		t.Parallel()
		tags := DeriveTags([]string{"3 cl Gin", "3 cl Campari", "3 cl Sweet Vermouth"})
		require.Contains(t, tags, TagBitter)
		require.Contains(t, tags, TagBoozy)
		require.NotContains(t, tags, TagFruity)
	})

	t.Run("juice suppresses boozy", func(t *testing.T) {
		t.Parallel()
		tags := DeriveTags([]string{"5 cl Tequila", "2 cl Lime juice"})
		require.Contains(t, tags, TagFruity)
		require.NotContains(t, tags, TagBoozy)
	})

	t.Run("smoky and herbal", func(t *testing.T) {
		t.Parallel()
		tags := DeriveTags([]string{"4.5 cl Mezcal", "3 leaves Basil"})
		require.Contains(t, tags, TagSmoky)
		require.Contains(t, tags, TagHerbal)
	})

	t.Run("no ingredients yields no tags", func(t *testing.T) {
		t.Parallel()
		require.Empty(t, DeriveTags(nil))
	})
}

func TestSlugFromURL(t *testing.T) {
	t.Parallel()

	require.Equal(t, "negroni", SlugFromURL("https://iba-world.com/cocktails/negroni/"))
	require.Equal(t, "old-fashioned", SlugFromURL("https://iba-world.com/cocktails/old-fashioned"))
}

func TestRecordValid(t *testing.T) {
	t.Parallel()

	base := Record{
		Name:        "Negroni",
		Ingredients: []string{"3 cl Gin", "3 cl Campari"},
	}
	require.True(t, base.Valid())

	noName := base
	noName.Name = "  "
	require.False(t, noName.Valid())

	hubPage := base
	hubPage.Name = "The Unforgettables"
	require.False(t, hubPage.Valid())

	thin := base
	thin.Ingredients = []string{"3 cl Gin"}
	require.False(t, thin.Valid())
}

func TestRecordHasTagAndSearchText(t *testing.T) {
	t.Parallel()

	r := Record{Name: "Negroni", Ingredients: []string{"3 cl Campari"}, Tags: []string{"bitter"}}
	require.True(t, r.HasTag("BITTER"))
	require.False(t, r.HasTag("sweet"))
	require.Contains(t, r.SearchText(), "campari")
	require.Contains(t, r.SearchText(), "negroni")
}
