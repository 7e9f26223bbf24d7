package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/giffyduck/insightnotes-backend/internal/apperr"
)

type APIError struct {
  Message string `json:"message"`
  Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

// RespondError classifies a service error into its HTTP status and short
// code via the apperr taxonomy.
func RespondError(c *gin.Context, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(apperr.HTTPStatus(err), ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    apperr.Code(err),
    },
  })
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}
