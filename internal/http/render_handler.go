package httpapi

import (
	"net/http"

	"imovelhub-api/internal/repository"
	"imovelhub-api/internal/service"
	"imovelhub-api/internal/share"

	"go.uber.org/zap"
)

type RenderHandler struct {
	renders service.RenderService
	logger  *zap.Logger
}

func NewRenderHandler(renders service.RenderService, logger *zap.Logger) *RenderHandler {
	return &RenderHandler{renders: renders, logger: logger}
}

type previewRequest struct {
	PropertyID      string `json:"property_id"`
	TemplateID      string `json:"template_id"`
	ShowFullAddress bool   `json:"show_full_address"`
}

type shareRequest struct {
	PropertyID string `json:"property_id"`
	TemplateID string `json:"template_id"`
	Channel    string `json:"channel"`
}

type printRequest struct {
	PropertyIDs     []string `json:"property_ids"`
	TemplateID      string   `json:"template_id"`
	Compact         bool     `json:"compact"`
	ShowFullAddress bool     `json:"show_full_address"`
	IncludeQRCode   bool     `json:"include_qrcode"`
}

// Preview POST /api/v1/render/preview
func (h *RenderHandler) Preview(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	var req previewRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	resp, err := h.renders.Preview(r.Context(), service.PreviewRequest{
		CompanyID:       session.CompanyID,
		PropertyID:      req.PropertyID,
		TemplateID:      req.TemplateID,
		ShowFullAddress: req.ShowFullAddress,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(renderErrorMessage(err)))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// Share POST /api/v1/share
func (h *RenderHandler) Share(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	var req shareRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	plan, err := h.renders.Share(r.Context(), service.ShareRequest{
		CompanyID:  session.CompanyID,
		PropertyID: req.PropertyID,
		TemplateID: req.TemplateID,
		Channel:    share.Channel(req.Channel),
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(renderErrorMessage(err)))
		return
	}
	writeJSON(w, http.StatusOK, Ok(plan))
}

// Print POST /api/v1/print
func (h *RenderHandler) Print(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	var req printRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	resp, err := h.renders.Print(r.Context(), service.PrintRequest{
		CompanyID:       session.CompanyID,
		PropertyIDs:     req.PropertyIDs,
		TemplateID:      req.TemplateID,
		Compact:         req.Compact,
		ShowFullAddress: req.ShowFullAddress,
		IncludeQRCode:   req.IncludeQRCode,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(renderErrorMessage(err)))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func renderErrorMessage(err error) string {
	switch err {
	case repository.ErrPropertyNotFound:
		return "property not found"
	case repository.ErrTemplateNotFound:
		return "template not found"
	case repository.ErrNoDefaultTemplate:
		return "no default template configured"
	case share.ErrUnknownChannel:
		return "unknown share channel"
	}
	return err.Error()
}
