package httpapi

import (
	"net/http"

	"imovelhub-api/internal/service"

	"go.uber.org/zap"
)

type CompanyHandler struct {
	companies service.CompanyService
	logger    *zap.Logger
}

func NewCompanyHandler(companies service.CompanyService, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{companies: companies, logger: logger}
}

// ServeHTTP handles GET and PUT /api/v1/company. The session scopes which
// company; there is no cross-company access.
func (h *CompanyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	switch r.Method {
	case http.MethodGet:
		c, err := h.companies.GetCompany(r.Context(), session.CompanyID)
		if err != nil {
			writeJSON(w, http.StatusOK, Fail("failed to load company"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(c))
	case http.MethodPut:
		var req service.UpdateCompanyRequest
		if err := readBodyJSON(r, &req); err != nil {
			writeJSON(w, http.StatusOK, Fail("invalid body"))
			return
		}
		req.CompanyID = session.CompanyID
		c, err := h.companies.UpdateCompany(r.Context(), req)
		if err != nil {
			writeJSON(w, http.StatusOK, Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, Ok(c))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
