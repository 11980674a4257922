package httpapi

import (
	"net/http"
	"strings"

	"imovelhub-api/internal/repository"
	"imovelhub-api/internal/service"

	"go.uber.org/zap"
)

type TemplateHandler struct {
	templates service.TemplateService
	logger    *zap.Logger
}

func NewTemplateHandler(templates service.TemplateService, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{templates: templates, logger: logger}
}

// List GET /api/v1/templates?kind=&platform=&include_archived=
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	filter := repository.TemplateFilters{
		Kind:            r.URL.Query().Get("kind"),
		Platform:        r.URL.Query().Get("platform"),
		IncludeArchived: r.URL.Query().Get("include_archived") == "true",
	}
	items, err := h.templates.ListTemplates(r.Context(), session.CompanyID, filter)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to list templates"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items, "total": len(items)}))
}

// Get GET /api/v1/templates/{id}
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request, templateID string) {
	session := SessionFrom(r.Context())
	t, err := h.templates.GetTemplate(r.Context(), session.CompanyID, templateID)
	if err != nil {
		if err == repository.ErrTemplateNotFound {
			writeJSON(w, http.StatusOK, Fail("template not found"))
			return
		}
		writeJSON(w, http.StatusOK, Fail("failed to load template"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(t))
}

// Create POST /api/v1/templates
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	var req service.CreateTemplateRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	req.CompanyID = session.CompanyID
	t, err := h.templates.CreateTemplate(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(t))
}

// Update PUT /api/v1/templates/{id}
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request, templateID string) {
	session := SessionFrom(r.Context())
	var req service.UpdateTemplateRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	req.CompanyID = session.CompanyID
	req.TemplateID = templateID
	t, err := h.templates.UpdateTemplate(r.Context(), req)
	if err != nil {
		if err == repository.ErrTemplateNotFound {
			writeJSON(w, http.StatusOK, Fail("template not found"))
			return
		}
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(t))
}

// Archive DELETE /api/v1/templates/{id}
// Templates referenced by past shares must stay resolvable, so delete
// archives instead of removing the row.
func (h *TemplateHandler) Archive(w http.ResponseWriter, r *http.Request, templateID string) {
	session := SessionFrom(r.Context())
	if err := h.templates.ArchiveTemplate(r.Context(), session.CompanyID, templateID); err != nil {
		if err == repository.ErrTemplateNotFound {
			writeJSON(w, http.StatusOK, Fail("template not found"))
			return
		}
		writeJSON(w, http.StatusOK, Fail("failed to archive template"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"success": true}))
}

// SetDefault POST /api/v1/templates/{id}/default
func (h *TemplateHandler) SetDefault(w http.ResponseWriter, r *http.Request, templateID string) {
	session := SessionFrom(r.Context())
	if err := h.templates.SetDefaultTemplate(r.Context(), session.CompanyID, templateID); err != nil {
		if err == repository.ErrTemplateNotFound {
			writeJSON(w, http.StatusOK, Fail("template not found"))
			return
		}
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"success": true}))
}

// GetDefault GET /api/v1/templates/default?kind=&platform=
// Returns the template the render pipeline would pick for the pair.
func (h *TemplateHandler) GetDefault(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	kind := r.URL.Query().Get("kind")
	platform := r.URL.Query().Get("platform")
	t, err := h.templates.GetDefaultTemplate(r.Context(), session.CompanyID, kind, platform)
	if err != nil {
		if err == repository.ErrNoDefaultTemplate {
			writeJSON(w, http.StatusOK, Fail("no default template configured"))
			return
		}
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(t))
}

// ServeByID dispatches /api/v1/templates/{id}[/default]
func (h *TemplateHandler) ServeByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/templates/")
	parts := strings.Split(rest, "/")
	switch {
	case len(parts) == 1 && parts[0] != "":
		switch r.Method {
		case http.MethodGet:
			h.Get(w, r, parts[0])
		case http.MethodPut:
			h.Update(w, r, parts[0])
		case http.MethodDelete:
			h.Archive(w, r, parts[0])
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case len(parts) == 2 && parts[1] == "default":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.SetDefault(w, r, parts[0])
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
