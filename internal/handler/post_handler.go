package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/middleware"
	"blogapi/internal/service"
	"blogapi/internal/validation"
)

// PostHandler handles post CRUD endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// GetPost godoc
// @Summary Get a post by id
// @Tags posts
// @Produce json
// @Param postId path string true "Post ID (24 hex chars)"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 422 {object} Envelope
// @Router /posts/{postId} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := validation.PostID(c.Param("postId"))
	if err != nil {
		return err
	}

	post, err := h.postService.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Successfully retrieved Post", post)
}

// GetAllPosts godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size, 1-50 (default 5)"
// @Param orderBy query string false "Sort field: createdAt, title, name (default createdAt)"
// @Param order query string false "Sort direction: asc, desc (default desc)"
// @Success 200 {object} Envelope
// @Failure 422 {object} Envelope
// @Router /posts [get]
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	q, err := validation.ParseListQuery(
		c.QueryParam("page"),
		c.QueryParam("limit"),
		c.QueryParam("orderBy"),
		c.QueryParam("order"),
	)
	if err != nil {
		return err
	}

	posts, err := h.postService.GetAllPosts(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "All posts", posts)
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.CreatePostRequest true "Post content"
// @Success 201 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 422 {object} Envelope
// @Router /posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req validation.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), middleware.UserID(c), &req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Post created successfully", post)
}

// UpdatePost godoc
// @Summary Update a post (owner only)
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path string true "Post ID (24 hex chars)"
// @Param request body validation.UpdatePostRequest true "Fields to update"
// @Success 200 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 422 {object} Envelope
// @Router /posts/{postId} [patch]
func (h *PostHandler) UpdatePost(c echo.Context) error {
	postID, err := validation.PostID(c.Param("postId"))
	if err != nil {
		return err
	}

	var req validation.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postService.UpdatePost(c.Request().Context(), middleware.UserID(c), postID, &req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Post updated successfully", post)
}

// DeletePost godoc
// @Summary Delete a post (owner only)
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param postId path string true "Post ID (24 hex chars)"
// @Success 200 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 422 {object} Envelope
// @Router /posts/{postId} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	postID, err := validation.PostID(c.Param("postId"))
	if err != nil {
		return err
	}

	post, err := h.postService.DeletePost(c.Request().Context(), middleware.UserID(c), postID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Post deleted successfully", post)
}
