package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"blog-dashboard/internal/auth"
	"blog-dashboard/internal/service"
	"blog-dashboard/internal/storage"
)

// Options tunes the middleware chain and the archive listing.
type Options struct {
	AuthEnabled   bool
	JWTSecret     string
	RateLimit     float64
	RateBurst     int
	AllowOrigins  []string
	Bucket        string
	ArchivePrefix string
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users      service.UserService
	categories service.CategoryService
	blogs      service.BlogService
	storage    storage.Service
	logger     *logrus.Logger
	opts       Options
}

func NewHandler(users service.UserService, categories service.CategoryService, blogs service.BlogService, store storage.Service, logger *logrus.Logger, opts Options) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:      users,
		categories: categories,
		blogs:      blogs,
		storage:    store,
		logger:     logger,
		opts:       opts,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(
		requestID(),
		requestLogger(h.logger),
		recovery(h.logger),
		corsMiddleware(h.opts.AllowOrigins),
		secureHeaders(),
	)
	if h.opts.RateLimit > 0 {
		router.Use(newClientLimiter(h.opts.RateLimit, h.opts.RateBurst).middleware())
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	router.GET("/archive/objects", h.listArchivedObjects)

	router.GET("/users", h.listUsers)
	router.POST("/users", h.createUser)
	router.PATCH("/users", h.updateUser)
	router.DELETE("/users", h.deleteUser)

	var guard []gin.HandlerFunc
	if h.opts.AuthEnabled {
		guard = append(guard, auth.Middleware(auth.NewVerifier(h.opts.JWTSecret)))
	}

	categories := router.Group("/categories", guard...)
	{
		categories.GET("", h.listCategories)
		categories.POST("", h.createCategory)
		categories.PATCH("/:category", h.updateCategory)
		categories.DELETE("/:category", h.deleteCategory)
	}

	blogs := router.Group("/blogs", guard...)
	{
		blogs.GET("", h.listBlogs)
		blogs.POST("", h.createBlog)
		blogs.GET("/:blog", h.getBlog)
		blogs.PATCH("/:blog", h.updateBlog)
		blogs.DELETE("/:blog", h.deleteBlog)
	}
}

func (h *Handler) listArchivedObjects(c *gin.Context) {
	if h.storage == nil || h.opts.Bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Storage service not configured"})
		return
	}

	prefix := c.Query("prefix")
	if prefix == "" {
		prefix = h.opts.ArchivePrefix
	}
	objects, err := h.storage.ListObjects(c.Request.Context(), h.opts.Bucket, prefix)
	if err != nil {
		h.logger.WithError(err).Warn("list archived objects")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error in listing archived objects: " + err.Error()})
		return
	}

	resp := make([]StorageObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, gin.H{"message": "Archived objects fetched", "objects": resp})
}

type StorageObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"lastModified,omitempty"`
}

func objectToResponse(obj storage.ObjectInfo) StorageObjectResponse {
	resp := StorageObjectResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.UTC().Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}
