package handlers

import (
  "errors"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/giffyduck/insightnotes-backend/internal/apperr"
  "github.com/giffyduck/insightnotes-backend/internal/chathistory"
  "github.com/giffyduck/insightnotes-backend/internal/requestdata"
  "github.com/giffyduck/insightnotes-backend/internal/services"
)

type ChatHandler struct {
  assistant services.AssistantService
  histories chathistory.Store
}

func NewChatHandler(assistant services.AssistantService, histories chathistory.Store) *ChatHandler {
  return &ChatHandler{assistant: assistant, histories: histories}
}

// Ask always responds 200: assistant failures arrive as an inline HTML
// error bubble, not an error status, so the chat UI never hard-fails.
func (ch *ChatHandler) Ask(c *gin.Context) {
  var req services.AskRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apperr.Validation("invalid request body"))
    return
  }
  if req.ChatID != "" {
    if _, err := ch.ownedHistory(c, req.ChatID); err != nil {
      RespondError(c, err)
      return
    }
  }
  answer, chatID := ch.assistant.Ask(c.Request.Context(), req)
  RespondOK(c, gin.H{"answer": answer, "chat_id": chatID})
}

func (ch *ChatHandler) Insights(c *gin.Context) {
  insights := ch.assistant.Insights(c.Request.Context())
  RespondOK(c, gin.H{"insights": insights})
}

func (ch *ChatHandler) CreateHistory(c *gin.Context) {
  userID := requestdata.CurrentUserID(c.Request.Context())
  if userID == uuid.Nil {
    RespondError(c, apperr.Unauthenticated("No resolvable session"))
    return
  }
  history, err := ch.histories.CreateHistory(userID.String())
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"history": history})
}

func (ch *ChatHandler) ListHistories(c *gin.Context) {
  userID := requestdata.CurrentUserID(c.Request.Context())
  if userID == uuid.Nil {
    RespondError(c, apperr.Unauthenticated("No resolvable session"))
    return
  }
  histories, err := ch.histories.ListFor(userID.String())
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"histories": histories})
}

func (ch *ChatHandler) GetHistory(c *gin.Context) {
  history, err := ch.ownedHistory(c, c.Param("id"))
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"history": history})
}

func (ch *ChatHandler) ClearHistory(c *gin.Context) {
  if _, err := ch.ownedHistory(c, c.Param("id")); err != nil {
    RespondError(c, err)
    return
  }
  if err := ch.histories.Clear(c.Param("id")); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": true})
}

func (ch *ChatHandler) DeleteHistory(c *gin.Context) {
  if _, err := ch.ownedHistory(c, c.Param("id")); err != nil {
    // Deleting an id that no longer exists still reports success.
    if errors.Is(err, apperr.ErrNotFound) {
      RespondOK(c, gin.H{"success": true})
      return
    }
    RespondError(c, err)
    return
  }
  if err := ch.histories.Delete(c.Param("id")); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": true})
}

// ownedHistory loads a history and verifies it belongs to the requester;
// someone else's history id behaves exactly like a missing one.
func (ch *ChatHandler) ownedHistory(c *gin.Context, historyID string) (*chathistory.History, error) {
  userID := requestdata.CurrentUserID(c.Request.Context())
  if userID == uuid.Nil {
    return nil, apperr.Unauthenticated("No resolvable session")
  }
  history, err := ch.histories.Get(historyID)
  if err != nil {
    return nil, err
  }
  if history.UserID != userID.String() {
    return nil, apperr.NotFound("chat history")
  }
  return history, nil
}
