package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-dashboard/internal/service"
)

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	UserID      string `json:"userId"`
	NewUsername string `json:"newUsername"`
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, "fetching users", err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, gin.H{"message": "Users fetched", "users": resp})
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if !bindBody(c, &req) {
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), service.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, "creating user", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User is Created", "user": userToResponse(*user)})
}

func (h *Handler) updateUser(c *gin.Context) {
	var req updateUserRequest
	if !bindBody(c, &req) {
		return
	}

	user, err := h.users.RenameUser(c.Request.Context(), req.UserID, req.NewUsername)
	if err != nil {
		h.respondError(c, "updating user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User is updated", "user": userToResponse(*user)})
}

func (h *Handler) deleteUser(c *gin.Context) {
	user, err := h.users.DeleteUser(c.Request.Context(), c.Query("userId"))
	if err != nil {
		h.respondError(c, "deleting user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User is deleted", "user": userToResponse(*user)})
}
