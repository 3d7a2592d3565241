package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bevtrends/bevtrends/internal/cocktail"
)

func fixture() []cocktail.Record {
	return []cocktail.Record{
		{
			ID:          "negroni",
			Name:        "Negroni",
			Ingredients: []string{"3 cl Gin", "3 cl Campari", "3 cl Sweet Vermouth"},
			BaseSpirit:  cocktail.SpiritGin,
			Tags:        []string{"bitter", "boozy"},
		},
		{
			ID:          "margarita",
			Name:        "Margarita",
			Ingredients: []string{"5 cl Tequila", "2 cl Triple Sec", "2 cl Lime juice"},
			BaseSpirit:  cocktail.SpiritAgave,
			Tags:        []string{"fruity", "sweet"},
		},
		{
			ID:          "americano",
			Name:        "Americano",
			Ingredients: []string{"3 cl Campari", "3 cl Sweet Vermouth", "Soda water"},
			Tags:        []string{"bitter"},
		},
	}
}

func TestApply_QueryMatchesNameAndIngredients(t *testing.T) {
	t.Parallel()

	got := Apply(fixture(), Params{Query: "campari"})
	require.Len(t, got, 2)
	require.Equal(t, "negroni", got[0].ID)
	require.Equal(t, "americano", got[1].ID)

	got = Apply(fixture(), Params{Query: "MARGARITA"})
	require.Len(t, got, 1)
	require.Equal(t, "margarita", got[0].ID)
}

func TestApply_SpiritFilterIsDisjunctive(t *testing.T) {
	t.Parallel()

	got := Apply(fixture(), Params{Spirits: ParseList("Gin,Vodka")})
	require.Len(t, got, 1)
	require.Equal(t, "negroni", got[0].ID)

	// Records without a base spirit never match a spirit filter.
	got = Apply(fixture(), Params{Spirits: ParseList("gin,tequila/mezcal")})
	require.Len(t, got, 2)
}

func TestApply_TagFilterIsConjunctive(t *testing.T) {
	t.Parallel()

	both := Apply(fixture(), Params{Tags: ParseList("bitter,boozy")})
	require.Len(t, both, 1)
	require.Equal(t, "negroni", both[0].ID)

	single := Apply(fixture(), Params{Tags: ParseList("bitter")})
	require.Len(t, single, 2)

	// The one-tag result is a superset of the two-tag result.
	ids := map[string]struct{}{}
	for _, r := range single {
		ids[r.ID] = struct{}{}
	}
	for _, r := range both {
		require.Contains(t, ids, r.ID)
	}
}

func TestApply_FiltersCompose(t *testing.T) {
	t.Parallel()

	got := Apply(fixture(), Params{Query: "campari", Spirits: ParseList("Gin,Vodka")})
	require.Len(t, got, 1)
	require.Equal(t, "negroni", got[0].ID)
}

func TestApply_PaginationClamps(t *testing.T) {
	t.Parallel()

	many := make([]cocktail.Record, 0, 150)
	for i := 0; i < 150; i++ {
		many = append(many, cocktail.Record{ID: fmt.Sprintf("r-%03d", i), Name: "R"})
	}

	t.Run("limit clamped to max", func(t *testing.T) {
		t.Parallel()
		require.Len(t, Apply(many, Params{Limit: 1000}), MaxLimit)
	})

	t.Run("negative offset behaves as zero", func(t *testing.T) {
		t.Parallel()
		got := Apply(many, Params{Offset: -5, Limit: 3})
		require.Len(t, got, 3)
		require.Equal(t, "r-000", got[0].ID)
	})

	t.Run("default limit", func(t *testing.T) {
		t.Parallel()
		require.Len(t, Apply(many, Params{}), DefaultLimit)
	})

	t.Run("offset beyond end is empty", func(t *testing.T) {
		t.Parallel()
		require.Empty(t, Apply(many, Params{Offset: 500}))
	})

	t.Run("window is a contiguous slice", func(t *testing.T) {
		t.Parallel()
		got := Apply(many, Params{Offset: 10, Limit: 5})
		require.Len(t, got, 5)
		require.Equal(t, "r-010", got[0].ID)
		require.Equal(t, "r-014", got[4].ID)
	})
}

func TestParseList(t *testing.T) {
	t.Parallel()

	require.Nil(t, ParseList(""))
	require.Equal(t, []string{"Gin", "Vodka"}, ParseList("Gin, Vodka"))
	require.Equal(t, []string{"bitter"}, ParseList(",bitter,,"))
}
