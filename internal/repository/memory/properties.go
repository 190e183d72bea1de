package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/egalea504/LightBnB/internal/domain"
	apperrors "github.com/egalea504/LightBnB/pkg/errors"
)

// Properties implements repository.PropertyRepository over a Store.
type Properties struct {
	s *Store
}

// Search applies filter like the SQL search: properties without reviews are
// skipped, every present option must hold, and results are ordered by cost
// per night then identifier and capped at the effective limit.
func (p *Properties) Search(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	if err := checkContext(ctx, "search properties"); err != nil {
		return nil, err
	}

	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	ratings := p.s.ratings()
	minCost, hasMin := filter.MinimumCostCents()
	maxCost, hasMax := filter.MaximumCostCents()

	result := make([]domain.Property, 0)
	for _, prop := range p.s.properties {
		avg, ok := domain.AverageRating(ratings[prop.ID])
		if !ok {
			continue
		}
		if filter.City != nil && !strings.Contains(prop.City, *filter.City) {
			continue
		}
		if filter.OwnerID != nil && prop.OwnerID != *filter.OwnerID {
			continue
		}
		if hasMin && prop.CostPerNight < minCost {
			continue
		}
		if hasMax && prop.CostPerNight > maxCost {
			continue
		}
		if filter.MinimumRating != nil && avg < *filter.MinimumRating {
			continue
		}

		prop.AverageRating = avg
		result = append(result, prop)
	}

	slices.SortStableFunc(result, func(a, b domain.Property) int {
		return cmp.Or(cmp.Compare(a.CostPerNight, b.CostPerNight), cmp.Compare(a.ID, b.ID))
	})

	if limit := filter.EffectiveLimit(); len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Create appends a property with the next sequential identifier. The owner
// must exist.
func (p *Properties) Create(ctx context.Context, np domain.NewProperty) (*domain.Property, error) {
	if err := checkContext(ctx, "insert property"); err != nil {
		return nil, err
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if !p.s.userExists(np.OwnerID) {
		return nil, apperrors.InvalidInput("owner does not exist")
	}

	prop := domain.Property{
		ID:                int64(len(p.s.properties) + 1),
		OwnerID:           np.OwnerID,
		Title:             np.Title,
		Description:       np.Description,
		ThumbnailPhotoURL: np.ThumbnailPhotoURL,
		CoverPhotoURL:     np.CoverPhotoURL,
		CostPerNight:      np.CostPerNight,
		ParkingSpaces:     np.ParkingSpaces,
		Street:            np.Street,
		City:              np.City,
		Province:          np.Province,
		PostCode:          np.PostCode,
		Country:           np.Country,
		NumberOfBathrooms: np.NumberOfBathrooms,
		NumberOfBedrooms:  np.NumberOfBedrooms,
		Active:            np.IsActive(),
	}
	p.s.properties = append(p.s.properties, prop)
	return &prop, nil
}
