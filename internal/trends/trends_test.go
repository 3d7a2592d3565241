package trends

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNearMeUnfiltered(t *testing.T) {
	t.Parallel()

	out, err := NewMemory().NearMe(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, out, 3)
	require.Equal(t, "Old Fashioned", out[0].Name)
}

func TestNearMeFilters(t *testing.T) {
	t.Parallel()

	repo := NewMemory()
	ctx := context.Background()

	t.Run("max distance", func(t *testing.T) {
		t.Parallel()
		out, err := repo.NearMe(ctx, Query{MaxDistance: 3.5})
		require.NoError(t, err)
		require.Len(t, out, 2)
		for _, d := range out {
			require.LessOrEqual(t, d.DistanceMiles, 3.5)
		}
	})

	t.Run("type is case-insensitive", func(t *testing.T) {
		t.Parallel()
		out, err := repo.NearMe(ctx, Query{Type: "beer"})
		require.NoError(t, err)
		require.Len(t, out, 1)
		require.Equal(t, "Hazy IPA", out[0].Name)
	})

	t.Run("tag", func(t *testing.T) {
		t.Parallel()
		out, err := repo.NearMe(ctx, Query{Tag: "COFFEE"})
		require.NoError(t, err)
		require.Len(t, out, 1)
		require.Equal(t, "Espresso Martini", out[0].Name)
	})

	t.Run("filters compose", func(t *testing.T) {
		t.Parallel()
		out, err := repo.NearMe(ctx, Query{MaxDistance: 2, Type: "Cocktail"})
		require.NoError(t, err)
		require.Len(t, out, 1)
		require.Equal(t, "Old Fashioned", out[0].Name)
	})
}

func TestNearMeSort(t *testing.T) {
	t.Parallel()

	repo := NewMemory()
	ctx := context.Background()

	out, err := repo.NearMe(ctx, Query{Sort: "distance"})
	require.NoError(t, err)
	require.Equal(t, []string{"Old Fashioned", "Espresso Martini", "Hazy IPA"},
		names(out))

	out, err = repo.NearMe(ctx, Query{Sort: "popularity"})
	require.NoError(t, err)
	require.Equal(t, []string{"Espresso Martini", "Old Fashioned", "Hazy IPA"},
		names(out))

	// Unknown sort keeps seed order.
	out, err = repo.NearMe(ctx, Query{Sort: "name"})
	require.NoError(t, err)
	require.Equal(t, []string{"Old Fashioned", "Hazy IPA", "Espresso Martini"},
		names(out))
}

func names(drinks []Drink) []string {
	out := make([]string, len(drinks))
	for i, d := range drinks {
		out[i] = d.Name
	}
	return out
}
