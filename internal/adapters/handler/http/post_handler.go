package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/blog/internal/core/domain"
	"github.com/vncsmyrnk/blog/internal/core/ports"
	"github.com/vncsmyrnk/blog/internal/logging"
)

type PostHandler struct {
	service     ports.PostService
	log         logging.Logger
	defaultSize int
	maxSize     int
}

func NewPostHandler(service ports.PostService, log logging.Logger, defaultSize, maxSize int) *PostHandler {
	return &PostHandler{
		service:     service,
		log:         log,
		defaultSize: defaultSize,
		maxSize:     maxSize,
	}
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type listPostsResponse struct {
	Blogs       []*domain.Post `json:"blogs"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
}

type listAuthorPostsResponse struct {
	Blogs      []*domain.Post `json:"blogs"`
	TotalPages int            `json:"totalPages"`
}

type updatePostResponse struct {
	Message string       `json:"message"`
	Blog    *domain.Post `json:"blog"`
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var req createPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.service.Create(r.Context(), user.ID, ports.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), h.pagination(r))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, listPostsResponse{
		Blogs:       page.Posts,
		TotalPages:  page.TotalPages(),
		CurrentPage: page.Page,
	})
}

func (h *PostHandler) ListPostsByAuthor(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListByAuthor(r.Context(), chi.URLParam(r, "userId"), h.pagination(r))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, listAuthorPostsResponse{
		Blogs:      page.Posts,
		TotalPages: page.TotalPages(),
	})
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var req updatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.service.Update(r.Context(), user.ID, chi.URLParam(r, "id"), ports.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, updatePostResponse{
		Message: "Blog updated successfully",
		Blog:    post,
	})
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	if err := h.service.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeMessage(w, http.StatusOK, "Blog deleted successfully")
}

// pagination reads page and limit from the query. Missing, non-numeric or
// non-positive values fall back to the defaults; limit is capped at maxSize.
func (h *PostHandler) pagination(r *http.Request) domain.Pagination {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	return domain.Pagination{Page: page, Limit: limit}.Normalize(h.defaultSize, h.maxSize)
}
