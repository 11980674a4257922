package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"imovelhub-api/internal/repository"
	"imovelhub-api/internal/service"

	"go.uber.org/zap"
)

type ExportHandler struct {
	exports service.ExportService
	logger  *zap.Logger
}

func NewExportHandler(exports service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{exports: exports, logger: logger}
}

// Export GET /api/v1/properties/export?format=csv|xlsx&status=&purpose=
// Streams the file directly instead of the JSON envelope.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session := SessionFrom(r.Context())
	q := r.URL.Query()
	filter := repository.PropertyFilters{
		Status:  q.Get("status"),
		Purpose: q.Get("purpose"),
		City:    q.Get("city"),
	}

	filename := fmt.Sprintf("imoveis-%s", time.Now().Format("2006-01-02"))
	switch q.Get("format") {
	case "xlsx":
		data, err := h.exports.ExportXLSX(r.Context(), session.CompanyID, filter)
		if err != nil {
			writeJSON(w, http.StatusOK, Fail("failed to export properties"))
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, filename))
		_, _ = w.Write(data)
	case "csv", "":
		data, err := h.exports.ExportCSV(r.Context(), session.CompanyID, filter)
		if err != nil {
			writeJSON(w, http.StatusOK, Fail("failed to export properties"))
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, filename))
		_, _ = w.Write(data)
	default:
		writeJSON(w, http.StatusOK, Fail("unsupported export format"))
	}
}
