package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/egalea504/LightBnB/internal/domain"
	"github.com/egalea504/LightBnB/pkg/database"
	apperrors "github.com/egalea504/LightBnB/pkg/errors"
)

const insertProperty = `
	INSERT INTO properties (
		owner_id, title, description, thumbnail_photo_url, cover_photo_url,
		cost_per_night, parking_spaces, street, city, province, post_code, country,
		number_of_bathrooms, number_of_bedrooms, active
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	RETURNING id, owner_id, title, COALESCE(description, ''), thumbnail_photo_url, cover_photo_url,
		cost_per_night, parking_spaces, street, city, province, post_code, country,
		number_of_bathrooms, number_of_bedrooms, active`

// PropertyRepository implements repository.PropertyRepository using PostgreSQL.
type PropertyRepository struct {
	db database.DBTX
}

// NewPropertyRepository creates a new PostgreSQL-backed property repository.
func NewPropertyRepository(db database.DBTX) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// Search returns properties matching filter, cheapest first, each with its
// average review rating. Properties without reviews are not returned.
func (r *PropertyRepository) Search(ctx context.Context, filter domain.PropertyFilter) (props []domain.Property, err error) {
	query, args, err := PropertyQueryFromFilter(filter).ToSQL()
	if err != nil {
		return nil, apperrors.Store("build property search", err)
	}

	ctx, end := database.TraceQuery(ctx, "GetAllProperties", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Store("search properties", err)
	}
	defer rows.Close()

	props = make([]domain.Property, 0)
	for rows.Next() {
		var p domain.Property
		if err = rows.Scan(append(propertyFields(&p), &p.AverageRating)...); err != nil {
			return nil, apperrors.Store("scan property", err)
		}
		props = append(props, p)
	}
	if err = rows.Err(); err != nil {
		return nil, apperrors.Store("iterate properties", err)
	}

	return props, nil
}

// Create inserts a property and returns the stored row. The returned record
// has a zero AverageRating since a new property has no reviews.
func (r *PropertyRepository) Create(ctx context.Context, np domain.NewProperty) (p *domain.Property, err error) {
	ctx, end := database.TraceQuery(ctx, "AddProperty", insertProperty)
	defer func() { end(err) }()

	row := r.db.QueryRow(ctx, insertProperty,
		np.OwnerID,
		np.Title,
		np.Description,
		np.ThumbnailPhotoURL,
		np.CoverPhotoURL,
		np.CostPerNight,
		np.ParkingSpaces,
		np.Street,
		np.City,
		np.Province,
		np.PostCode,
		np.Country,
		np.NumberOfBathrooms,
		np.NumberOfBedrooms,
		np.IsActive(),
	)

	p, err = scanProperty(row)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, apperrors.InvalidInput("owner does not exist")
		}
		return nil, apperrors.Store("insert property", err)
	}
	return p, nil
}

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	if err := row.Scan(propertyFields(&p)...); err != nil {
		return nil, err
	}
	return &p, nil
}

// propertyFields returns scan targets matching propertyColumns.
func propertyFields(p *domain.Property) []any {
	return []any{
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Description,
		&p.ThumbnailPhotoURL,
		&p.CoverPhotoURL,
		&p.CostPerNight,
		&p.ParkingSpaces,
		&p.Street,
		&p.City,
		&p.Province,
		&p.PostCode,
		&p.Country,
		&p.NumberOfBathrooms,
		&p.NumberOfBedrooms,
		&p.Active,
	}
}
