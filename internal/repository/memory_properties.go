package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"imovelhub-api/internal/domain"
)

// MemoryPropertiesRepository in-memory PropertiesRepository for tests and
// DB-less development mode.
type MemoryPropertiesRepository struct {
	mu         sync.RWMutex
	properties map[string]*domain.Property      // property_id -> record
	images     map[string]*domain.PropertyImage // image_id -> record
}

func NewMemoryPropertiesRepository() *MemoryPropertiesRepository {
	return &MemoryPropertiesRepository{
		properties: map[string]*domain.Property{},
		images:     map[string]*domain.PropertyImage{},
	}
}

var _ PropertiesRepository = (*MemoryPropertiesRepository)(nil)

func (r *MemoryPropertiesRepository) ListProperties(ctx context.Context, companyID string, filter PropertyFilters, page, size int) ([]*domain.Property, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.Property
	for _, p := range r.properties {
		if p.CompanyID != companyID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Purpose != "" && p.Purpose != filter.Purpose {
			continue
		}
		if filter.City != "" && p.City != filter.City {
			continue
		}
		if filter.Search != "" && !matchesSearch(p, filter.Search) {
			continue
		}
		clone := r.cloneProperty(p)
		matched = append(matched, clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []*domain.Property{}, total, nil
	}
	end := offset + size
	if size <= 0 || end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func matchesSearch(p *domain.Property, q string) bool {
	q = strings.ToLower(q)
	for _, field := range []string{p.Title, p.Code, p.Neighborhood} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (r *MemoryPropertiesRepository) GetProperty(ctx context.Context, companyID, propertyID string) (*domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.properties[propertyID]
	if !ok || p.CompanyID != companyID {
		return nil, ErrPropertyNotFound
	}
	return r.cloneProperty(p), nil
}

func (r *MemoryPropertiesRepository) CreateProperty(ctx context.Context, p *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *p
	now := time.Now()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	clone.Images = nil
	r.properties[clone.PropertyID] = &clone
	return nil
}

func (r *MemoryPropertiesRepository) UpdateProperty(ctx context.Context, companyID, propertyID string, updates map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.properties[propertyID]
	if !ok || p.CompanyID != companyID {
		return ErrPropertyNotFound
	}
	for col, val := range updates {
		switch col {
		case "title":
			p.Title, _ = val.(string)
		case "status":
			p.Status, _ = val.(string)
		case "purpose":
			p.Purpose, _ = val.(string)
		case "description":
			p.Description, _ = val.(string)
		case "sale_price":
			p.SalePrice = toFloatPtr(val)
		case "rental_price":
			p.RentalPrice = toFloatPtr(val)
		case "features":
			if fs, ok := val.([]string); ok {
				p.Features = fs
			}
		}
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryPropertiesRepository) DeleteProperty(ctx context.Context, companyID, propertyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.properties[propertyID]
	if !ok || p.CompanyID != companyID {
		return ErrPropertyNotFound
	}
	delete(r.properties, propertyID)
	for id, img := range r.images {
		if img.PropertyID == propertyID {
			delete(r.images, id)
		}
	}
	return nil
}

func (r *MemoryPropertiesRepository) ListImages(ctx context.Context, propertyID string) ([]domain.PropertyImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.imagesFor(propertyID), nil
}

func (r *MemoryPropertiesRepository) AddImage(ctx context.Context, img *domain.PropertyImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *img
	clone.CreatedAt = time.Now()
	r.images[clone.ImageID] = &clone
	return nil
}

func (r *MemoryPropertiesRepository) DeleteImage(ctx context.Context, propertyID, imageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	img, ok := r.images[imageID]
	if !ok || img.PropertyID != propertyID {
		return ErrImageNotFound
	}
	delete(r.images, imageID)
	return nil
}

func (r *MemoryPropertiesRepository) SetCoverImage(ctx context.Context, propertyID, imageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.images[imageID]
	if !ok || target.PropertyID != propertyID {
		return ErrImageNotFound
	}
	for _, img := range r.images {
		if img.PropertyID == propertyID {
			img.IsCover = false
		}
	}
	target.IsCover = true
	return nil
}

func (r *MemoryPropertiesRepository) ReorderImages(ctx context.Context, propertyID string, imageIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for order, id := range imageIDs {
		img, ok := r.images[id]
		if !ok || img.PropertyID != propertyID {
			return ErrImageNotFound
		}
		img.DisplayOrder = order
	}
	return nil
}

func (r *MemoryPropertiesRepository) cloneProperty(p *domain.Property) *domain.Property {
	clone := *p
	if p.Features != nil {
		clone.Features = append([]string(nil), p.Features...)
	}
	clone.Images = r.imagesFor(p.PropertyID)
	return &clone
}

func (r *MemoryPropertiesRepository) imagesFor(propertyID string) []domain.PropertyImage {
	var out []domain.PropertyImage
	for _, img := range r.images {
		if img.PropertyID == propertyID {
			out = append(out, *img)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ImageID < out[j].ImageID
	})
	return out
}

func toFloatPtr(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case *float64:
		return n
	case int:
		f := float64(n)
		return &f
	}
	return nil
}
