package transport

import (
	"context"
	"encoding/json"
	"net/http"

	"account-service/internal/logger"
	"account-service/internal/role"
	"account-service/internal/user"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	UserSvc  user.Service
	Roles    role.Repository
	DB       Pinger
	validate *validator.Validate
}

func NewHandler(userSvc user.Service, roles role.Repository, db Pinger) *Handler {
	return &Handler{
		UserSvc:  userSvc,
		Roles:    roles,
		DB:       db,
		validate: NewValidator(),
	}
}

// Register mounts the REST routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /signup", h.Signup)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /get_users", h.GetUsers)
	mux.HandleFunc("GET /roles", h.GetRoles)
	mux.HandleFunc("GET /healthz", h.Health)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(h.validate); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.UserSvc.Signup(r.Context(), req.ToInput()); err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "signup successful", http.StatusCreated)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.UserSvc.Login(r.Context(), req.Email, req.Password); err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "login successful", http.StatusOK)
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserSvc.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) GetRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Roles.List(r.Context())
	if err != nil {
		WriteJSONError(w, msgInternal, http.StatusInternalServerError)
		return
	}
	WriteJSON(w, http.StatusOK, roles)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.PingContext(r.Context()); err != nil {
		logger.FromCtx(r.Context()).Warn("health check failed", zap.Error(err))
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
