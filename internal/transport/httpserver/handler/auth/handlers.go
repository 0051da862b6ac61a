package auth

import (
	"errors"
	"net/http"
	"time"

	userdomain "fintrack/internal/domain/user"
	"fintrack/internal/transport/httpserver/middleware"
	"fintrack/pkg/logger"
)

type Handlers struct {
	Users  *userdomain.Service
	Tokens *middleware.TokenManager
	log    logger.Logger
}

func New(users *userdomain.Service, tokens *middleware.TokenManager, log logger.Logger) *Handlers {
	return &Handlers{Users: users, Tokens: tokens, log: log}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	created, err := h.Users.Register(r.Context(), userdomain.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrEmailTaken):
			h.log.BusinessError("auth.signup: email taken", err)
			writeError(w, http.StatusBadRequest, "email_taken", "user already exists with this email")
		case errors.Is(err, userdomain.ErrMissingFields),
			errors.Is(err, userdomain.ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("auth.signup: register failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	token, err := h.Tokens.Issue(created.ID)
	if err != nil {
		h.log.InternalError("auth.signup: issue token failed", err, "user_id", created.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Token: token,
		User: userResponse{
			ID:        created.ID,
			Name:      created.Name,
			Email:     created.Email,
			CreatedAt: created.CreatedAt,
		},
	})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	found, err := h.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userdomain.ErrInvalidCredentials) {
			h.log.BusinessError("auth.login: invalid credentials", err)
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
			return
		}
		h.log.InternalError("auth.login: authenticate failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	token, err := h.Tokens.Issue(found.ID)
	if err != nil {
		h.log.InternalError("auth.login: issue token failed", err, "user_id", found.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Token: token,
		User: userResponse{
			ID:        found.ID,
			Name:      found.Name,
			Email:     found.Email,
			CreatedAt: found.CreatedAt,
		},
	})
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	stored, err := h.Users.GetByID(r.Context(), caller.ID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
			return
		}
		h.log.InternalError("auth.me: get user failed", err, "user_id", caller.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		ID:        stored.ID,
		Name:      stored.Name,
		Email:     stored.Email,
		CreatedAt: stored.CreatedAt,
	})
}
