package analytics

import (
	"errors"
	"net/http"
	"time"

	"fintrack/internal/config"
	analyticsdomain "fintrack/internal/domain/analytics"
	"fintrack/internal/transport/httpserver/middleware"
	"fintrack/pkg/logger"
)

type Handlers struct {
	Analytics *analyticsdomain.Service
	cfg       config.AnalyticsConfig
	log       logger.Logger
	now       func() time.Time
}

func New(analytics *analyticsdomain.Service, cfg config.AnalyticsConfig, log logger.Logger) *Handlers {
	return &Handlers{Analytics: analytics, cfg: cfg, log: log, now: time.Now}
}

type periodResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	from, to, ok := h.dateRange(w, r)
	if !ok {
		return
	}

	overview, err := h.Analytics.Overview(r.Context(), user.ID, from, to)
	if err != nil {
		h.respondAnalyticsError(w, "analytics.overview", err, user.ID)
		return
	}

	breakdown, err := h.Analytics.CategoryBreakdown(r.Context(), user.ID, from, to)
	if err != nil {
		h.respondAnalyticsError(w, "analytics.overview", err, user.ID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"period":             toPeriodResponse(from, to),
		"overview":           overview,
		"category_breakdown": breakdown,
	})
}

func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	from, to, ok := h.dateRange(w, r)
	if !ok {
		return
	}

	breakdown, err := h.Analytics.CategoryBreakdown(r.Context(), user.ID, from, to)
	if err != nil {
		h.respondAnalyticsError(w, "analytics.categories", err, user.ID)
		return
	}

	expense := make([]analyticsdomain.CategoryBreakdownEntry, 0, len(breakdown))
	income := make([]analyticsdomain.CategoryBreakdownEntry, 0, len(breakdown))
	for _, entry := range breakdown {
		switch entry.Type {
		case analyticsdomain.TypeExpense:
			expense = append(expense, entry)
		case analyticsdomain.TypeIncome:
			income = append(income, entry)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"period":                toPeriodResponse(from, to),
		"expense_categories":    expense,
		"income_categories":     income,
		"top_spending_category": firstOrNil(expense),
		"top_income_category":   firstOrNil(income),
		"total_categories":      len(breakdown),
	})
}

func (h *Handlers) Trends(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	query := r.URL.Query()
	period := analyticsdomain.TrendPeriod(query.Get("period"))
	if period == "" {
		period = analyticsdomain.TrendPeriod(h.cfg.TrendPeriod)
	}

	window, err := parseIntParam(query.Get("window"), h.cfg.TrendWindowSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid window")
		return
	}

	trends, err := h.Analytics.SpendingTrends(r.Context(), user.ID, period, window)
	if err != nil {
		h.respondAnalyticsError(w, "analytics.trends", err, user.ID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"period": period,
		"window": window,
		"trends": trends,
	})
}

func (h *Handlers) Insights(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	from, to, ok := h.dateRange(w, r)
	if !ok {
		return
	}

	report, err := h.Analytics.FinancialInsights(r.Context(), user.ID, from, to)
	if err != nil {
		h.respondAnalyticsError(w, "analytics.insights", err, user.ID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"period":   toPeriodResponse(from, to),
		"overview": report.Overview,
		"insights": report.Insights,
		"key_metrics": map[string]interface{}{
			"highest_spending_category": report.HighestSpendingCategory,
			"average_daily_spending":    report.AverageDailySpending,
			"financial_health":          report.FinancialHealth,
		},
	})
}

func (h *Handlers) HealthScore(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	from, to, ok := h.dateRange(w, r)
	if !ok {
		return
	}

	overview, err := h.Analytics.Overview(r.Context(), user.ID, from, to)
	if err != nil {
		h.respondAnalyticsError(w, "analytics.health_score", err, user.ID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"period":          toPeriodResponse(from, to),
		"health_score":    analyticsdomain.HealthScore(overview.SavingsRate),
		"savings_rate":    overview.SavingsRate,
		"recommendations": recommendations(overview.SavingsRate),
		"overview":        overview,
	})
}

func recommendations(savingsRate float64) []string {
	if savingsRate < 20 {
		return []string{
			"Consider tracking your daily expenses more closely",
			"Look for areas where you can reduce discretionary spending",
			"Set up automatic transfers to savings account",
		}
	}
	return []string{
		"Great job maintaining healthy savings!",
		"Consider investing your surplus savings",
		"Review your financial goals and adjust if needed",
	}
}

func (h *Handlers) respondAnalyticsError(w http.ResponseWriter, op string, err error, userID string) {
	switch {
	case errors.Is(err, analyticsdomain.ErrInvalidRange),
		errors.Is(err, analyticsdomain.ErrInvalidPeriod),
		errors.Is(err, analyticsdomain.ErrInvalidMonth):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.log.InternalError(op+": aggregation failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func toPeriodResponse(from, to time.Time) periodResponse {
	return periodResponse{From: from.Format("2006-01-02"), To: to.Format("2006-01-02")}
}

func firstOrNil(entries []analyticsdomain.CategoryBreakdownEntry) interface{} {
	if len(entries) == 0 {
		return nil
	}
	return entries[0]
}
