package postgres

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/egalea504/LightBnB/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// propertyColumns lists the properties columns in scanProperty order.
var propertyColumns = []string{
	"properties.id",
	"properties.owner_id",
	"properties.title",
	"COALESCE(properties.description, '')",
	"properties.thumbnail_photo_url",
	"properties.cover_photo_url",
	"properties.cost_per_night",
	"properties.parking_spaces",
	"properties.street",
	"properties.city",
	"properties.province",
	"properties.post_code",
	"properties.country",
	"properties.number_of_bathrooms",
	"properties.number_of_bedrooms",
	"properties.active",
}

const averageRatingColumn = "avg(property_reviews.rating)::float8 AS average_rating"

var propertySelectList = strings.Join(propertyColumns, ", ")

// Predicate is a named clause of a property search. It contributes either a
// WHERE condition on the row or a HAVING condition on the review aggregate.
type Predicate struct {
	Name   string
	where  sq.Sqlizer
	having sq.Sqlizer
}

// CityContains matches properties whose city contains city.
func CityContains(city string) Predicate {
	return Predicate{Name: "city", where: sq.Like{"properties.city": "%" + city + "%"}}
}

// OwnedBy matches properties owned by the given user.
func OwnedBy(ownerID int64) Predicate {
	return Predicate{Name: "owner_id", where: sq.Eq{"properties.owner_id": ownerID}}
}

// MinCostPerNight matches properties costing at least cents per night.
func MinCostPerNight(cents int64) Predicate {
	return Predicate{Name: "minimum_cost_per_night", where: sq.GtOrEq{"properties.cost_per_night": cents}}
}

// MaxCostPerNight matches properties costing at most cents per night.
func MaxCostPerNight(cents int64) Predicate {
	return Predicate{Name: "maximum_cost_per_night", where: sq.LtOrEq{"properties.cost_per_night": cents}}
}

// MinAverageRating keeps properties whose average review rating is at least rating.
func MinAverageRating(rating float64) Predicate {
	return Predicate{Name: "minimum_rating", having: sq.Expr("avg(property_reviews.rating) >= ?", rating)}
}

// PropertyQuery builds the property search statement. Row predicates are
// joined with AND; the result is grouped per property, ordered by cost per
// night and capped by a limit.
type PropertyQuery struct {
	predicates []Predicate
	limit      int
}

// NewPropertyQuery returns a query with no predicates and the default limit.
func NewPropertyQuery() *PropertyQuery {
	return &PropertyQuery{limit: domain.DefaultLimit}
}

// PropertyQueryFromFilter translates a search filter into predicates.
func PropertyQueryFromFilter(f domain.PropertyFilter) *PropertyQuery {
	q := NewPropertyQuery().Limit(f.Limit)

	if f.City != nil {
		q.Where(CityContains(*f.City))
	}
	if f.OwnerID != nil {
		q.Where(OwnedBy(*f.OwnerID))
	}
	if cents, ok := f.MinimumCostCents(); ok {
		q.Where(MinCostPerNight(cents))
	}
	if cents, ok := f.MaximumCostCents(); ok {
		q.Where(MaxCostPerNight(cents))
	}
	if f.MinimumRating != nil {
		q.Where(MinAverageRating(*f.MinimumRating))
	}

	return q
}

// Where appends predicates.
func (q *PropertyQuery) Where(preds ...Predicate) *PropertyQuery {
	q.predicates = append(q.predicates, preds...)
	return q
}

// Limit sets the row limit; non-positive values select the default.
func (q *PropertyQuery) Limit(n int) *PropertyQuery {
	q.limit = domain.EffectiveLimit(n)
	return q
}

// Names returns the names of the applied predicates in order.
func (q *PropertyQuery) Names() []string {
	names := make([]string, 0, len(q.predicates))
	for _, p := range q.predicates {
		names = append(names, p.Name)
	}
	return names
}

// ToSQL renders the statement with $n placeholders and its arguments.
func (q *PropertyQuery) ToSQL() (string, []any, error) {
	b := psql.
		Select(propertySelectList, averageRatingColumn).
		From("properties").
		Join("property_reviews ON property_reviews.property_id = properties.id")

	for _, p := range q.predicates {
		if p.where != nil {
			b = b.Where(p.where)
		}
	}

	b = b.GroupBy("properties.id")

	for _, p := range q.predicates {
		if p.having != nil {
			b = b.Having(p.having)
		}
	}

	return b.
		OrderBy("properties.cost_per_night", "properties.id").
		Limit(uint64(q.limit)).
		ToSql()
}
