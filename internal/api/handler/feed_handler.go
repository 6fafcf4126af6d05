package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/feedstream/feed-api/internal/api/middleware"
	"github.com/feedstream/feed-api/internal/core/ports"
)

// FeedHandler handles HTTP requests for the post feed.
type FeedHandler struct {
	service ports.PostService
}

func NewFeedHandler(service ports.PostService) *FeedHandler {
	return &FeedHandler{service: service}
}

// List handles GET /feed/posts.
//
// @Summary      List posts, newest first
// @Tags         feed
// @Produce      json
// @Param        page  query     int  false  "1-based page number (page size is 2)"
// @Success      200   {object}  listPostsResponse
// @Router       /feed/posts [get]
func (h *FeedHandler) List(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	result, err := h.service.ListPosts(c.Request().Context(), page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listPostsResponse{
		Message:    "fetched posts successfully",
		Posts:      result.Posts,
		TotalItems: result.Total,
	})
}

// Get handles GET /feed/post/:id.
//
// @Summary      Get a single post
// @Tags         feed
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      404  {object}  errorResponse
// @Router       /feed/post/{id} [get]
func (h *FeedHandler) Get(c echo.Context) error {
	post, err := h.service.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postResponse{Message: "post fetched", Post: post})
}

// Create handles POST /feed/post.
//
// @Summary      Create a post
// @Tags         feed
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postRequest  true  "Post fields"
// @Success      201   {object}  postResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /feed/post [post]
func (h *FeedHandler) Create(c echo.Context) error {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.service.CreatePost(c.Request().Context(), middleware.FromEcho(c), ports.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, postResponse{Message: "post created", Post: post})
}

// Update handles PUT /feed/post/:id.
//
// @Summary      Update a post (creator only)
// @Tags         feed
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Post id"
// @Param        body  body      postRequest  true  "Post fields"
// @Success      200   {object}  postResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /feed/post/{id} [put]
func (h *FeedHandler) Update(c echo.Context) error {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.service.UpdatePost(c.Request().Context(), middleware.FromEcho(c), ports.UpdatePostInput{
		ID:       c.Param("id"),
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, postResponse{Message: "post updated", Post: post})
}

// Delete handles DELETE /feed/post/:id.
//
// @Summary      Delete a post (creator only)
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /feed/post/{id} [delete]
func (h *FeedHandler) Delete(c echo.Context) error {
	if err := h.service.DeletePost(c.Request().Context(), middleware.FromEcho(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "post deleted"})
}
