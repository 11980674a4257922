package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"imovelhub-api/internal/domain"
)

// MemoryTemplatesRepository in-memory TemplatesRepository for tests and
// DB-less development mode.
type MemoryTemplatesRepository struct {
	mu        sync.RWMutex
	templates map[string]*domain.Template // template_id -> record
}

func NewMemoryTemplatesRepository() *MemoryTemplatesRepository {
	return &MemoryTemplatesRepository{templates: map[string]*domain.Template{}}
}

var _ TemplatesRepository = (*MemoryTemplatesRepository)(nil)

func (r *MemoryTemplatesRepository) ListTemplates(ctx context.Context, companyID string, filter TemplateFilters) ([]*domain.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Template
	for _, t := range r.templates {
		if t.CompanyID != companyID {
			continue
		}
		if !filter.IncludeArchived && t.Archived {
			continue
		}
		if filter.Kind != "" && t.Kind != filter.Kind {
			continue
		}
		if filter.Platform != "" && t.Platform != filter.Platform {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *MemoryTemplatesRepository) GetTemplate(ctx context.Context, companyID, templateID string) (*domain.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.templates[templateID]
	if !ok || t.CompanyID != companyID {
		return nil, ErrTemplateNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *MemoryTemplatesRepository) GetDefaultTemplate(ctx context.Context, companyID, kind, platform string) (*domain.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.templates {
		if t.CompanyID == companyID && t.Kind == kind && t.Platform == platform &&
			t.IsDefault && !t.Archived {
			clone := *t
			return &clone, nil
		}
	}
	return nil, ErrNoDefaultTemplate
}

func (r *MemoryTemplatesRepository) CreateTemplate(ctx context.Context, t *domain.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *t
	now := time.Now()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.templates[clone.TemplateID] = &clone
	return nil
}

func (r *MemoryTemplatesRepository) UpdateTemplate(ctx context.Context, companyID, templateID string, updates map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.templates[templateID]
	if !ok || t.CompanyID != companyID {
		return ErrTemplateNotFound
	}
	for col, val := range updates {
		switch col {
		case "name":
			t.Name, _ = val.(string)
		case "platform":
			t.Platform, _ = val.(string)
		case "content":
			t.Content, _ = val.(string)
		case "is_default":
			t.IsDefault, _ = val.(bool)
		case "photo_columns":
			t.PhotoColumns = toInt(val)
		case "photo_placement":
			t.PhotoPlacement, _ = val.(string)
		case "max_photos":
			t.MaxPhotos = toInt(val)
		}
	}
	t.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryTemplatesRepository) ArchiveTemplate(ctx context.Context, companyID, templateID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.templates[templateID]
	if !ok || t.CompanyID != companyID {
		return ErrTemplateNotFound
	}
	t.Archived = true
	t.IsDefault = false
	t.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryTemplatesRepository) ClearDefaults(ctx context.Context, companyID, kind, platform string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.templates {
		if t.CompanyID == companyID && t.Kind == kind && t.Platform == platform && !t.Archived {
			t.IsDefault = false
		}
	}
	return nil
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
