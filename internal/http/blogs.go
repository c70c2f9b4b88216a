package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-dashboard/internal/repository"
	"blog-dashboard/internal/service"
)

type createBlogRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// updateBlogRequest keeps absent fields nil so they are left unchanged.
type updateBlogRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (h *Handler) listBlogs(c *gin.Context) {
	blogs, err := h.blogs.ListBlogs(c.Request.Context(), service.BlogQuery{
		UserID:         c.Query("userId"),
		CategoryID:     c.Query("categoryId"),
		SearchKeywords: c.Query("searchKeywords"),
		StartDate:      c.Query("startDate"),
		EndDate:        c.Query("endDate"),
	})
	if err != nil {
		h.respondError(c, "fetching blogs", err)
		return
	}

	resp := make([]BlogResponse, len(blogs))
	for i := range blogs {
		resp[i] = blogToResponse(blogs[i])
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blogs fetched", "blogs": resp})
}

func (h *Handler) createBlog(c *gin.Context) {
	var req createBlogRequest
	if !bindBody(c, &req) {
		return
	}

	blog, err := h.blogs.CreateBlog(c.Request.Context(), c.Query("userId"), c.Query("categoryId"), service.BlogInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(c, "creating blog", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Blog created", "blog": blogToResponse(*blog)})
}

func (h *Handler) getBlog(c *gin.Context) {
	blog, err := h.blogs.GetBlog(c.Request.Context(), c.Query("userId"), c.Query("categoryId"), c.Param("blog"))
	if err != nil {
		h.respondError(c, "fetching blog", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog fetched", "blog": blogToResponse(*blog)})
}

func (h *Handler) updateBlog(c *gin.Context) {
	var req updateBlogRequest
	if !bindBody(c, &req) {
		return
	}

	blog, err := h.blogs.UpdateBlog(c.Request.Context(), c.Query("userId"), c.Param("blog"), repository.BlogPatch{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(c, "updating blog", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog updated", "blog": blogToResponse(*blog)})
}

func (h *Handler) deleteBlog(c *gin.Context) {
	blog, err := h.blogs.DeleteBlog(c.Request.Context(), c.Query("userId"), c.Param("blog"))
	if err != nil {
		h.respondError(c, "deleting blog", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog deleted", "blog": blogToResponse(*blog)})
}
