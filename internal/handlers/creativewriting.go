package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/giffyduck/insightnotes-backend/internal/apperr"
  "github.com/giffyduck/insightnotes-backend/internal/services"
)

type CreativeWritingHandler struct {
  writingService services.CreativeWritingService
}

func NewCreativeWritingHandler(writingService services.CreativeWritingService) *CreativeWritingHandler {
  return &CreativeWritingHandler{writingService: writingService}
}

func (ch *CreativeWritingHandler) List(c *gin.Context) {
  writings := ch.writingService.List(c.Request.Context(), c.Query("category"))
  RespondOK(c, gin.H{"writings": writings})
}

func (ch *CreativeWritingHandler) Categories(c *gin.Context) {
  categories := ch.writingService.Categories(c.Request.Context())
  RespondOK(c, gin.H{"categories": categories})
}

func (ch *CreativeWritingHandler) Get(c *gin.Context) {
  writingID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apperr.Validation("invalid writing id"))
    return
  }
  writing, err := ch.writingService.Get(c.Request.Context(), writingID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"writing": writing})
}

func (ch *CreativeWritingHandler) Create(c *gin.Context) {
  var req services.CreateWritingRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apperr.Validation("invalid request body"))
    return
  }
  writing, err := ch.writingService.Create(c.Request.Context(), req)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"writing": writing})
}

func (ch *CreativeWritingHandler) Update(c *gin.Context) {
  writingID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apperr.Validation("invalid writing id"))
    return
  }
  var req services.UpdateWritingRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apperr.Validation("invalid request body"))
    return
  }
  writing, err := ch.writingService.Update(c.Request.Context(), writingID, req)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"writing": writing})
}

func (ch *CreativeWritingHandler) Delete(c *gin.Context) {
  writingID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apperr.Validation("invalid writing id"))
    return
  }
  if err := ch.writingService.Delete(c.Request.Context(), writingID); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": true})
}

func (ch *CreativeWritingHandler) Append(c *gin.Context) {
  writingID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apperr.Validation("invalid writing id"))
    return
  }
  var req struct {
    Text string `json:"text"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apperr.Validation("invalid request body"))
    return
  }
  if err := ch.writingService.AppendText(c.Request.Context(), writingID, req.Text); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": true})
}
