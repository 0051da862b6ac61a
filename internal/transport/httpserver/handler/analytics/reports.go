package analytics

import (
	"net/http"

	"fintrack/internal/transport/httpserver/middleware"
)

func (h *Handlers) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	now := h.now().UTC()
	query := r.URL.Query()

	year, err := parseIntParam(query.Get("year"), now.Year())
	if err != nil || year <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid year")
		return
	}

	month, err := parseIntParam(query.Get("month"), int(now.Month()))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid month")
		return
	}

	report, err := h.Analytics.MonthlyReport(r.Context(), user.ID, year, month)
	if err != nil {
		h.respondAnalyticsError(w, "reports.monthly", err, user.ID)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
