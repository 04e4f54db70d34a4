package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	commonerrors "github.com/dmedvedev/secure-content/internal/common/errors"
	commonhttp "github.com/dmedvedev/secure-content/internal/common/http"
	"github.com/dmedvedev/secure-content/internal/common/logger"
	"github.com/dmedvedev/secure-content/internal/user/service"
)

type Handler struct {
	users  *service.UserService
	errors *commonhttp.ErrorHandler
	log    *logger.Logger
}

func NewHandler(users *service.UserService, log *logger.Logger) *Handler {
	return &Handler{
		users:  users,
		errors: commonhttp.NewErrorHandler(log),
		log:    log,
	}
}

// Routes mounts the protected user directory endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.getByID)
	r.Get("/username/{username}", h.getByUsername)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetAllUsers(r.Context())
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		// A non-numeric id cannot name a user.
		h.errors.HandleError(w, r, commonerrors.ErrUserNotFound)
		return
	}

	user, err := h.users.GetUserByID(r.Context(), id)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) getByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUserByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, user)
}
