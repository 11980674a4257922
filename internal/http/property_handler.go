package httpapi

import (
	"net/http"
	"strings"

	"imovelhub-api/internal/repository"
	"imovelhub-api/internal/service"

	"go.uber.org/zap"
)

type PropertyHandler struct {
	properties service.PropertyService
	logger     *zap.Logger
}

func NewPropertyHandler(properties service.PropertyService, logger *zap.Logger) *PropertyHandler {
	return &PropertyHandler{properties: properties, logger: logger}
}

// List GET /api/v1/properties?status=&purpose=&city=&search=&page=&size=
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	q := r.URL.Query()
	resp, err := h.properties.ListProperties(r.Context(), service.ListPropertiesRequest{
		CompanyID: session.CompanyID,
		Status:    q.Get("status"),
		Purpose:   q.Get("purpose"),
		City:      q.Get("city"),
		Search:    q.Get("search"),
		Page:      parseInt(q.Get("page"), 1),
		PageSize:  parseInt(q.Get("size"), 20),
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to list properties"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// Create POST /api/v1/properties
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	var req service.SavePropertyRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	req.CompanyID = session.CompanyID
	p, err := h.properties.CreateProperty(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(p))
}

// Get GET /api/v1/properties/{id}
func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request, propertyID string) {
	session := SessionFrom(r.Context())
	p, err := h.properties.GetProperty(r.Context(), session.CompanyID, propertyID)
	if err != nil {
		if err == repository.ErrPropertyNotFound {
			writeJSON(w, http.StatusOK, Fail("property not found"))
			return
		}
		writeJSON(w, http.StatusOK, Fail("failed to load property"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(p))
}

// Update PUT /api/v1/properties/{id}
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request, propertyID string) {
	session := SessionFrom(r.Context())
	var req service.SavePropertyRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	req.CompanyID = session.CompanyID
	req.PropertyID = propertyID
	p, err := h.properties.UpdateProperty(r.Context(), req)
	if err != nil {
		if err == repository.ErrPropertyNotFound {
			writeJSON(w, http.StatusOK, Fail("property not found"))
			return
		}
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(p))
}

// Delete DELETE /api/v1/properties/{id}
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request, propertyID string) {
	session := SessionFrom(r.Context())
	if err := h.properties.DeleteProperty(r.Context(), session.CompanyID, propertyID); err != nil {
		if err == repository.ErrPropertyNotFound {
			writeJSON(w, http.StatusOK, Fail("property not found"))
			return
		}
		writeJSON(w, http.StatusOK, Fail("failed to delete property"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"success": true}))
}

// addImageRequest POST body for image registration. The file itself goes
// straight to storage from the browser; we only record the resulting path.
type addImageRequest struct {
	Path    string `json:"path"`
	IsCover bool   `json:"is_cover"`
}

type reorderImagesRequest struct {
	ImageIDs []string `json:"image_ids"`
}

// ServeByID dispatches /api/v1/properties/{id} and its image subroutes:
//
//	POST   /api/v1/properties/{id}/images
//	POST   /api/v1/properties/{id}/images/reorder
//	DELETE /api/v1/properties/{id}/images/{imageID}
//	POST   /api/v1/properties/{id}/images/{imageID}/cover
func (h *PropertyHandler) ServeByID(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/properties/")
	parts := strings.Split(rest, "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		switch r.Method {
		case http.MethodGet:
			h.Get(w, r, parts[0])
		case http.MethodPut:
			h.Update(w, r, parts[0])
		case http.MethodDelete:
			h.Delete(w, r, parts[0])
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	case len(parts) == 2 && parts[1] == "images":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req addImageRequest
		if err := readBodyJSON(r, &req); err != nil {
			writeJSON(w, http.StatusOK, Fail("invalid body"))
			return
		}
		img, err := h.properties.AddImage(r.Context(), session.CompanyID, parts[0], req.Path, req.IsCover)
		if err != nil {
			writeJSON(w, http.StatusOK, Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, Ok(img))

	case len(parts) == 3 && parts[1] == "images" && parts[2] == "reorder":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req reorderImagesRequest
		if err := readBodyJSON(r, &req); err != nil {
			writeJSON(w, http.StatusOK, Fail("invalid body"))
			return
		}
		if err := h.properties.ReorderImages(r.Context(), session.CompanyID, parts[0], req.ImageIDs); err != nil {
			writeJSON(w, http.StatusOK, Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"success": true}))

	case len(parts) == 3 && parts[1] == "images":
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if err := h.properties.DeleteImage(r.Context(), session.CompanyID, parts[0], parts[2]); err != nil {
			writeJSON(w, http.StatusOK, Fail("failed to delete image"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"success": true}))

	case len(parts) == 4 && parts[1] == "images" && parts[3] == "cover":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if err := h.properties.SetCoverImage(r.Context(), session.CompanyID, parts[0], parts[2]); err != nil {
			writeJSON(w, http.StatusOK, Fail("failed to set cover image"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"success": true}))

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
