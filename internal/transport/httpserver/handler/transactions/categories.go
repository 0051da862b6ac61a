package transactions

import (
	"errors"
	"net/http"
	"time"

	categoriesdomain "fintrack/internal/domain/categories"
	"fintrack/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Scope     string    `json:"scope"`
	CreatedAt time.Time `json:"created_at"`
}

type categoryUsageResponse struct {
	categoryResponse
	TransactionCount int64   `json:"transaction_count"`
	TotalAmount      float64 `json:"total_amount"`
}

type createCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	items, err := h.Categories.ListVisible(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("categories.list: list failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]categoryResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toCategoryResponse(item))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": response})
}

// ListCategoriesWithUsage serves the transaction-centric category view:
// every visible category annotated with the caller's usage against it.
func (h *Handlers) ListCategoriesWithUsage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	items, err := h.Categories.ListWithUsage(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("categories.usage: list failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]categoryUsageResponse, 0, len(items))
	for _, item := range items {
		response = append(response, categoryUsageResponse{
			categoryResponse: toCategoryResponse(item.Category),
			TransactionCount: item.TransactionCount,
			TotalAmount:      item.TotalAmount,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": response})
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	created, err := h.Categories.CreateCustom(r.Context(), categoriesdomain.CreateInput{
		OwnerID: user.ID,
		Name:    req.Name,
		Type:    req.Type,
	})
	if err != nil {
		switch {
		case errors.Is(err, categoriesdomain.ErrCategoryExists):
			h.log.BusinessError("categories.create: name taken", err, "user_id", user.ID)
			writeError(w, http.StatusBadRequest, "category_exists", "you already have a category with this name")
		case errors.Is(err, categoriesdomain.ErrInvalidName),
			errors.Is(err, categoriesdomain.ErrInvalidType):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("categories.create: create failed", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(*created))
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	categoryID := chi.URLParam(r, "id")
	if err := h.Categories.DeleteCustom(r.Context(), user.ID, categoryID); err != nil {
		switch {
		case errors.Is(err, categoriesdomain.ErrCategoryNotFound):
			h.log.BusinessError("categories.delete: not found", err, "user_id", user.ID, "category_id", categoryID)
			writeError(w, http.StatusNotFound, "category_not_found", "category not found")
		case errors.Is(err, categoriesdomain.ErrCategoryGlobal):
			h.log.BusinessError("categories.delete: global category", err, "user_id", user.ID, "category_id", categoryID)
			writeError(w, http.StatusBadRequest, "category_global", "cannot delete a global category")
		case errors.Is(err, categoriesdomain.ErrCategoryInUse):
			h.log.BusinessError("categories.delete: in use", err, "user_id", user.ID, "category_id", categoryID)
			writeError(w, http.StatusBadRequest, "category_in_use", "cannot delete a category that has transactions")
		default:
			h.log.InternalError("categories.delete: delete failed", err, "user_id", user.ID, "category_id", categoryID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"deleted_id": categoryID})
}

func toCategoryResponse(c categoriesdomain.Category) categoryResponse {
	scope := "custom"
	if c.OwnerID == nil {
		scope = "default"
	}
	return categoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type,
		Scope:     scope,
		CreatedAt: c.CreatedAt,
	}
}
