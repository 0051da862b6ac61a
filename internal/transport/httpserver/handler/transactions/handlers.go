package transactions

import (
	"errors"
	"net/http"
	"time"

	categoriesdomain "fintrack/internal/domain/categories"
	transactionsdomain "fintrack/internal/domain/transactions"
	"fintrack/internal/transport/httpserver/middleware"
	"fintrack/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Transactions *transactionsdomain.Service
	Categories   *categoriesdomain.Service
	log          logger.Logger
}

func New(transactions *transactionsdomain.Service, categories *categoriesdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{Transactions: transactions, Categories: categories, log: log}
}

type transactionResponse struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Amount       float64   `json:"amount"`
	Type         string    `json:"type"`
	Date         string    `json:"date"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
}

type createTransactionRequest struct {
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Amount       float64 `json:"amount"`
	Type         string  `json:"type"`
	Date         string  `json:"date"`
	Note         string  `json:"note"`
}

type updateTransactionRequest struct {
	CategoryID   *string  `json:"category_id"`
	CategoryName *string  `json:"category_name"`
	Amount       *float64 `json:"amount"`
	Type         *string  `json:"type"`
	Date         *string  `json:"date"`
	Note         *string  `json:"note"`
}

func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	items, err := h.Transactions.List(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("transactions.list: list failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]transactionResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toTransactionResponse(item.Transaction, item.CategoryName))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": response,
		"count":        len(response),
	})
}

func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
		return
	}

	created, err := h.Transactions.Create(r.Context(), transactionsdomain.CreateInput{
		UserID:       user.ID,
		CategoryID:   req.CategoryID,
		CategoryName: req.CategoryName,
		Amount:       req.Amount,
		Type:         req.Type,
		Date:         date,
		Note:         req.Note,
	})
	if err != nil {
		h.respondTransactionError(w, "transactions.create", err, user.ID)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(created.Transaction, created.CategoryName))
}

func (h *Handlers) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req updateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := parseOptionalDate(*req.Date)
		if err != nil || parsed == nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	updated, err := h.Transactions.Update(r.Context(), transactionsdomain.UpdateInput{
		UserID:       user.ID,
		ID:           chi.URLParam(r, "id"),
		CategoryID:   req.CategoryID,
		CategoryName: req.CategoryName,
		Amount:       req.Amount,
		Type:         req.Type,
		Date:         date,
		Note:         req.Note,
	})
	if err != nil {
		h.respondTransactionError(w, "transactions.update", err, user.ID)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(*updated, ""))
}

func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	transactionID := chi.URLParam(r, "id")
	if err := h.Transactions.Delete(r.Context(), user.ID, transactionID); err != nil {
		if errors.Is(err, transactionsdomain.ErrTransactionNotFound) {
			h.log.BusinessError("transactions.delete: not found", err, "user_id", user.ID, "transaction_id", transactionID)
			writeError(w, http.StatusNotFound, "transaction_not_found", "transaction not found")
			return
		}
		h.log.InternalError("transactions.delete: delete failed", err, "user_id", user.ID, "transaction_id", transactionID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"deleted_id": transactionID})
}

func (h *Handlers) respondTransactionError(w http.ResponseWriter, op string, err error, userID string) {
	switch {
	case errors.Is(err, transactionsdomain.ErrTransactionNotFound):
		h.log.BusinessError(op+": not found", err, "user_id", userID)
		writeError(w, http.StatusNotFound, "transaction_not_found", "transaction not found")
	case errors.Is(err, transactionsdomain.ErrCategoryNotFound):
		h.log.BusinessError(op+": category not found", err, "user_id", userID)
		writeError(w, http.StatusBadRequest, "category_not_found", "category not found")
	case errors.Is(err, transactionsdomain.ErrCategoryRequired),
		errors.Is(err, transactionsdomain.ErrInvalidAmount),
		errors.Is(err, transactionsdomain.ErrInvalidType):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.log.InternalError(op+": failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func toTransactionResponse(t transactionsdomain.Transaction, categoryName string) transactionResponse {
	return transactionResponse{
		ID:           t.ID,
		CategoryID:   t.CategoryID,
		CategoryName: categoryName,
		Amount:       t.Amount,
		Type:         t.Type,
		Date:         t.Date.Format("2006-01-02"),
		Note:         t.Note,
		CreatedAt:    t.CreatedAt,
	}
}
