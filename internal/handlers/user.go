package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/giffyduck/insightnotes-backend/internal/apperr"
  "github.com/giffyduck/insightnotes-backend/internal/services"
)

type UserHandler struct {
  userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetProfile(c *gin.Context) {
  me, err := uh.userService.GetMe(c.Request.Context())
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"profile": me})
}

func (uh *UserHandler) UpdateProfile(c *gin.Context) {
  var req struct {
    Name  string  `json:"name"`
    Phone *string `json:"phone"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apperr.Validation("invalid request body"))
    return
  }
  updated, err := uh.userService.UpdateProfile(c.Request.Context(), req.Name, req.Phone)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"profile": updated})
}
