package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-dashboard/internal/domain"
)

// isoMillis matches the ISO-8601 form documents are serialized with.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type UserResponse struct {
	ID        string `json:"_id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type CategoryResponse struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	User      string `json:"user"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type BlogResponse struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	User        string `json:"user"`
	Category    string `json:"category"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

func userToResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: formatTime(u.CreatedAt),
		UpdatedAt: formatTime(u.UpdatedAt),
	}
}

func categoryToResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Title:     c.Title,
		User:      c.UserID,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func blogToResponse(b domain.Blog) BlogResponse {
	return BlogResponse{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		User:        b.UserID,
		Category:    b.CategoryID,
		CreatedAt:   formatTime(b.CreatedAt),
		UpdatedAt:   formatTime(b.UpdatedAt),
	}
}

// respondError writes the status and message for a workflow error. op names the
// operation in the message of unexpected failures, e.g. "creating blog".
func (h *Handler) respondError(c *gin.Context, op string, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		de = domain.Unexpected(err)
	}

	switch de.Kind {
	case domain.KindInvalidArgument:
		c.JSON(http.StatusBadRequest, gin.H{"message": de.Message})
	case domain.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": de.Message})
	default:
		h.logger.WithError(err).WithField("request_id", c.GetString(requestIDKey)).Errorf("error in %s", op)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error in " + op + ": " + de.Error()})
	}
}

// bindBody decodes an optional JSON body into dst. An empty body leaves dst untouched.
func bindBody(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return false
	}
	return true
}
