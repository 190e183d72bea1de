package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egalea504/LightBnB/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestPropertyQuery_NoFilters(t *testing.T) {
	sql, args, err := PropertyQueryFromFilter(domain.PropertyFilter{}).ToSQL()
	require.NoError(t, err)

	assert.Empty(t, args)
	assert.NotContains(t, sql, "WHERE")
	assert.NotContains(t, sql, "HAVING")
	assert.Contains(t, sql, "FROM properties JOIN property_reviews ON property_reviews.property_id = properties.id")
	assert.Contains(t, sql, "avg(property_reviews.rating)::float8 AS average_rating")
	assert.True(t, strings.HasSuffix(sql, "GROUP BY properties.id ORDER BY properties.cost_per_night, properties.id LIMIT 10"), sql)
}

func TestPropertyQuery_AllFilters(t *testing.T) {
	f := domain.PropertyFilter{
		City:                 ptr("Vancouver"),
		OwnerID:              ptr(int64(3)),
		MinimumPricePerNight: ptr(int64(100)),
		MaximumPricePerNight: ptr(int64(200)),
		MinimumRating:        ptr(4.0),
		Limit:                5,
	}

	q := PropertyQueryFromFilter(f)
	sql, args, err := q.ToSQL()
	require.NoError(t, err)

	assert.Equal(t, []string{"city", "owner_id", "minimum_cost_per_night", "maximum_cost_per_night", "minimum_rating"}, q.Names())
	assert.Contains(t, sql, "WHERE properties.city LIKE $1 AND properties.owner_id = $2 AND properties.cost_per_night >= $3 AND properties.cost_per_night <= $4")
	assert.Contains(t, sql, "GROUP BY properties.id HAVING avg(property_reviews.rating) >= $5")
	assert.True(t, strings.HasSuffix(sql, "LIMIT 5"), sql)
	assert.Equal(t, 1, strings.Count(sql, "WHERE"))
	assert.Equal(t, 1, strings.Count(sql, "cost_per_night <="))
	assert.Equal(t, []any{"%Vancouver%", int64(3), int64(10000), int64(20000), 4.0}, args)
}

func TestPropertyQuery_PriceWithoutLocation(t *testing.T) {
	f := domain.PropertyFilter{
		MinimumPricePerNight: ptr(int64(100)),
		MaximumPricePerNight: ptr(int64(200)),
	}

	sql, args, err := PropertyQueryFromFilter(f).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE properties.cost_per_night >= $1 AND properties.cost_per_night <= $2 GROUP BY")
	assert.Equal(t, []any{int64(10000), int64(20000)}, args)
}

func TestPropertyQuery_RatingOnly(t *testing.T) {
	sql, args, err := PropertyQueryFromFilter(domain.PropertyFilter{MinimumRating: ptr(3.5)}).ToSQL()
	require.NoError(t, err)

	assert.NotContains(t, sql, "WHERE")
	assert.Contains(t, sql, "HAVING avg(property_reviews.rating) >= $1")
	assert.Equal(t, []any{3.5}, args)
}

func TestPropertyQuery_Composable(t *testing.T) {
	q := NewPropertyQuery().
		Where(OwnedBy(7)).
		Where(CityContains("Sher")).
		Limit(0)

	sql, args, err := q.ToSQL()
	require.NoError(t, err)

	assert.Equal(t, []string{"owner_id", "city"}, q.Names())
	assert.Contains(t, sql, "WHERE properties.owner_id = $1 AND properties.city LIKE $2")
	assert.True(t, strings.HasSuffix(sql, "LIMIT 10"), sql)
	assert.Equal(t, []any{int64(7), "%Sher%"}, args)
}
