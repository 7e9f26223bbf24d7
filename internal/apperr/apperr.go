package apperr

import (
  "errors"
  "fmt"
  "net/http"
)

// Sentinels for the application error taxonomy. Services wrap these with
// fmt.Errorf("...: %w", ...) so handlers can classify with errors.Is while
// the wrapped message keeps the diagnostic detail.
var (
  // ErrUnauthenticated means no resolvable session for the request.
  ErrUnauthenticated = errors.New("unauthenticated")
  // ErrSessionUnknown means session resolution itself failed (token store
  // unreachable), which is distinct from a genuinely logged-out caller.
  ErrSessionUnknown = errors.New("session unknown")
  // ErrNotFound covers both absent entities and entities owned by someone
  // else; callers cannot tell the two apart.
  ErrNotFound = errors.New("not found")
  // ErrValidation is a rejected input, e.g. a missing title at creation.
  ErrValidation = errors.New("validation failure")
  // ErrStore wraps any backing store failure.
  ErrStore = errors.New("store failure")
  // ErrAIConfiguration is a missing or invalid generative API credential.
  ErrAIConfiguration = errors.New("ai configuration failure")
  // ErrAITransport is a network, quota or model failure from the
  // generative API.
  ErrAITransport = errors.New("ai transport failure")
)

func Unauthenticated(msg string) error {
  return fmt.Errorf("%s: %w", msg, ErrUnauthenticated)
}

func NotFound(kind string) error {
  return fmt.Errorf("%s: %w", kind, ErrNotFound)
}

func Validation(msg string) error {
  return fmt.Errorf("%s: %w", msg, ErrValidation)
}

func Store(err error) error {
  if err == nil {
    return nil
  }
  return fmt.Errorf("%v: %w", err, ErrStore)
}

// HTTPStatus maps a taxonomy error to the status the handlers respond with.
func HTTPStatus(err error) int {
  switch {
  case errors.Is(err, ErrUnauthenticated):
    return http.StatusUnauthorized
  case errors.Is(err, ErrSessionUnknown):
    return http.StatusServiceUnavailable
  case errors.Is(err, ErrNotFound):
    return http.StatusNotFound
  case errors.Is(err, ErrValidation):
    return http.StatusBadRequest
  case errors.Is(err, ErrAIConfiguration), errors.Is(err, ErrAITransport):
    return http.StatusBadGateway
  case errors.Is(err, ErrStore):
    return http.StatusInternalServerError
  default:
    return http.StatusInternalServerError
  }
}

// Code returns the short machine-readable code for the error envelope.
func Code(err error) string {
  switch {
  case errors.Is(err, ErrUnauthenticated):
    return "unauthenticated"
  case errors.Is(err, ErrSessionUnknown):
    return "session_unknown"
  case errors.Is(err, ErrNotFound):
    return "not_found"
  case errors.Is(err, ErrValidation):
    return "validation_failure"
  case errors.Is(err, ErrAIConfiguration):
    return "ai_configuration_failure"
  case errors.Is(err, ErrAITransport):
    return "ai_transport_failure"
  case errors.Is(err, ErrStore):
    return "store_failure"
  default:
    return "internal_error"
  }
}
