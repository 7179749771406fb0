package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/blog"
	"blog-backend/internal/shared/query"
	"blog-backend/internal/shared/response"
)

// listOptions whitelists the listing parameters. Sort keys keep the
// camelCase spelling clients send (`sort=-createdAt`); values are the
// actual columns.
var listOptions = query.Options{
	Filterable: map[string]string{
		"category": "category",
		"title":    "title",
		"author":   "author_id",
	},
	Sortable: map[string]string{
		"createdAt": "created_at",
		"title":     "title",
		"category":  "category",
	},
	DefaultSort: query.Sort{Column: "created_at", Desc: true},
}

// BlogHandler translates HTTP requests into blog service calls.
type BlogHandler struct {
	service blog.Service
}

func NewBlogHandler(service blog.Service) *BlogHandler {
	return &BlogHandler{service: service}
}

// ========================================
// BLOG ENDPOINTS
// ========================================

// Create handles POST /blogs
func (h *BlogHandler) Create(c *gin.Context) {
	// STEP 1: PARSE REQUEST BODY
	var req blog.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// STEP 2: CALL SERVICE LAYER
	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// STEP 3: SUCCESS RESPONSE
	c.Header("Location", "/api/v1/blogs/"+res.ID.String())
	response.Success(c, http.StatusCreated, res)
}

// List handles GET /blogs
func (h *BlogHandler) List(c *gin.Context) {
	// STEP 1: TRANSLATE THE QUERY STRING
	// Unknown parameters are ignored, limit/skip are clamped.
	q := query.Parse(c.Request.URL.Query(), listOptions)

	// STEP 2: FETCH PAGE + TOTALS
	res, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// STEP 3: SUCCESS WITH NAVIGATION LINKS
	meta := &response.Meta{
		Limit:      q.Limit,
		Skip:       q.Skip,
		Total:      res.Total,
		TotalPages: res.TotalPages,
		Links:      query.Links(c.Request.URL.Path, c.Request.URL.Query(), q.Limit, q.Skip, res.Total),
	}
	response.SuccessWithMeta(c, http.StatusOK, res.Blogs, meta)
}

// GetByID handles GET /blogs/:id
func (h *BlogHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid blog ID")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// Update handles PUT /blogs/:id
func (h *BlogHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid blog ID")
		return
	}

	var req blog.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// Delete handles DELETE /blogs/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid blog ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Blog deleted successfully"})
}

// ========================================
// COMMENT ENDPOINTS
// ========================================

// AddComment handles POST /blogs/:id/comments
func (h *BlogHandler) AddComment(c *gin.Context) {
	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid blog ID")
		return
	}

	var req blog.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	b, err := h.service.AddComment(c.Request.Context(), blogID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// The full updated blog comes back so clients see the fresh sequence.
	response.Success(c, http.StatusCreated, b)
}

// ListComments handles GET /blogs/:id/comments
func (h *BlogHandler) ListComments(c *gin.Context) {
	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid blog ID")
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), blogID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comments)
}

// GetComment handles GET /blogs/:id/comments/:commentId
func (h *BlogHandler) GetComment(c *gin.Context) {
	blogID, commentID, ok := h.parseCommentPath(c)
	if !ok {
		return
	}

	comment, err := h.service.GetComment(c.Request.Context(), blogID, commentID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comment)
}

// UpdateComment handles PUT /blogs/:id/comments/:commentId
func (h *BlogHandler) UpdateComment(c *gin.Context) {
	blogID, commentID, ok := h.parseCommentPath(c)
	if !ok {
		return
	}

	var req blog.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	b, err := h.service.UpdateComment(c.Request.Context(), blogID, commentID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// DeleteComment handles DELETE /blogs/:id/comments/:commentId
func (h *BlogHandler) DeleteComment(c *gin.Context) {
	blogID, commentID, ok := h.parseCommentPath(c)
	if !ok {
		return
	}

	b, err := h.service.DeleteComment(c.Request.Context(), blogID, commentID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// ========================================
// HELPER FUNCTIONS
// ========================================

func (h *BlogHandler) parseCommentPath(c *gin.Context) (blogID, commentID uuid.UUID, ok bool) {
	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid blog ID")
		return uuid.Nil, uuid.Nil, false
	}
	commentID, err = uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.BadRequest(c, "Invalid comment ID")
		return uuid.Nil, uuid.Nil, false
	}
	return blogID, commentID, true
}

// handleError maps domain errors to HTTP responses.
func (h *BlogHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors

	switch {
	// 400 Bad Request - field validation failed
	case errors.As(err, &validationErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", validationErrs)

	// 404 Not Found - the message names the missing id
	case blog.IsNotFound(err):
		response.NotFound(c, err.Error())

	// 500 Internal Server Error
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled service error")
		response.InternalServerError(c, "Internal server error")
	}
}
