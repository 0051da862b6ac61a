package analytics

import (
	"net/http"
	"time"

	commonhandler "fintrack/internal/transport/httpserver/handler/common"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	commonhandler.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func parseIntParam(value string, fallback int) (int, error) {
	return commonhandler.ParseIntParam(value, fallback)
}

// dateRange reads the from/to query params, defaulting from to the
// application epoch and to to today. On a bad range it writes the 400
// itself and reports ok=false.
func (h *Handlers) dateRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	epoch, err := time.Parse("2006-01-02", h.cfg.EpochDate)
	if err != nil {
		epoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	now := h.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	query := r.URL.Query()
	from, err := commonhandler.ParseDateDefault(query.Get("from"), epoch)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "from must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}

	to, err := commonhandler.ParseDateDefault(query.Get("to"), today)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "to must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}

	if to.Before(from) {
		writeError(w, http.StatusBadRequest, "invalid_request", "from must be <= to")
		return time.Time{}, time.Time{}, false
	}

	return from, to, true
}
