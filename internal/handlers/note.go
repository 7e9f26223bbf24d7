package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/giffyduck/insightnotes-backend/internal/apperr"
  "github.com/giffyduck/insightnotes-backend/internal/services"
)

type NoteHandler struct {
  noteService services.NoteService
}

func NewNoteHandler(noteService services.NoteService) *NoteHandler {
  return &NoteHandler{noteService: noteService}
}

func (nh *NoteHandler) List(c *gin.Context) {
  notes := nh.noteService.List(c.Request.Context(), c.Query("type"))
  RespondOK(c, gin.H{"notes": notes})
}

func (nh *NoteHandler) Get(c *gin.Context) {
  noteID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apperr.Validation("invalid note id"))
    return
  }
  note, err := nh.noteService.Get(c.Request.Context(), noteID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"note": note})
}

func (nh *NoteHandler) Create(c *gin.Context) {
  var req services.CreateNoteRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apperr.Validation("invalid request body"))
    return
  }
  note, err := nh.noteService.Create(c.Request.Context(), req)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"note": note})
}

func (nh *NoteHandler) Update(c *gin.Context) {
  noteID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apperr.Validation("invalid note id"))
    return
  }
  var req services.UpdateNoteRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apperr.Validation("invalid request body"))
    return
  }
  note, err := nh.noteService.Update(c.Request.Context(), noteID, req)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"note": note})
}

func (nh *NoteHandler) Delete(c *gin.Context) {
  noteID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apperr.Validation("invalid note id"))
    return
  }
  if err := nh.noteService.Delete(c.Request.Context(), noteID); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": true})
}

func (nh *NoteHandler) Append(c *gin.Context) {
  noteID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apperr.Validation("invalid note id"))
    return
  }
  var req struct {
    Text string `json:"text"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apperr.Validation("invalid request body"))
    return
  }
  if err := nh.noteService.AppendText(c.Request.Context(), noteID, req.Text); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": true})
}
