package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	commonerrors "github.com/dmedvedev/secure-content/internal/common/errors"
	commonhttp "github.com/dmedvedev/secure-content/internal/common/http"
	"github.com/dmedvedev/secure-content/internal/common/jwtverify"
	"github.com/dmedvedev/secure-content/internal/common/logger"
	"github.com/dmedvedev/secure-content/internal/content/service"
)

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Handler struct {
	content *service.ContentService
	errors  *commonhttp.ErrorHandler
	log     *logger.Logger
}

func NewHandler(content *service.ContentService, log *logger.Logger) *Handler {
	return &Handler{
		content: content,
		errors:  commonhttp.NewErrorHandler(log),
		log:     log,
	}
}

// Routes mounts the protected post endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.getByID)
	r.Get("/user/{username}", h.listByUser)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	principal, ok := jwtverify.FromContext(r.Context())
	if !ok {
		// The guard runs before this handler; no claims means a wiring bug,
		// but the caller still gets the uniform rejection.
		h.errors.HandleError(w, r, commonerrors.ErrMissingAuthorization)
		return
	}

	var req createPostRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("create post failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	post, err := h.content.CreatePost(r.Context(), principal, req.Title, req.Content)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, post)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	posts, err := h.content.ListPosts(r.Context())
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, posts)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errors.HandleError(w, r, commonerrors.ErrPostNotFound)
		return
	}

	post, err := h.content.GetPost(r.Context(), id)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) listByUser(w http.ResponseWriter, r *http.Request) {
	posts, err := h.content.ListPostsByUser(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, posts)
}
