package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type categoryRequest struct {
	Title string `json:"title"`
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.categories.ListCategories(c.Request.Context(), c.Query("userId"))
	if err != nil {
		h.respondError(c, "fetching categories", err)
		return
	}

	resp := make([]CategoryResponse, len(categories))
	for i := range categories {
		resp[i] = categoryToResponse(categories[i])
	}
	c.JSON(http.StatusOK, gin.H{"message": "Categories fetched", "categories": resp})
}

func (h *Handler) createCategory(c *gin.Context) {
	var req categoryRequest
	if !bindBody(c, &req) {
		return
	}

	category, err := h.categories.CreateCategory(c.Request.Context(), c.Query("userId"), req.Title)
	if err != nil {
		h.respondError(c, "creating category", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": categoryToResponse(*category)})
}

func (h *Handler) updateCategory(c *gin.Context) {
	var req categoryRequest
	if !bindBody(c, &req) {
		return
	}

	category, err := h.categories.RenameCategory(c.Request.Context(), c.Query("userId"), c.Param("category"), req.Title)
	if err != nil {
		h.respondError(c, "updating category", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated", "category": categoryToResponse(*category)})
}

func (h *Handler) deleteCategory(c *gin.Context) {
	category, err := h.categories.DeleteCategory(c.Request.Context(), c.Query("userId"), c.Param("category"))
	if err != nil {
		h.respondError(c, "deleting category", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted", "category": categoryToResponse(*category)})
}
