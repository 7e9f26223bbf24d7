package requestdata

import (
  "context"
  "github.com/google/uuid"
)

var requestDataKey = struct{}{}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  val := ctx.Value(requestDataKey)
  if rd, ok := val.(*RequestData); ok {
    return rd
  }
  return nil
}

// CurrentUserID resolves the authenticated identity for the request, or
// uuid.Nil when there is none. Every persistence operation scopes itself
// through this.
func CurrentUserID(ctx context.Context) uuid.UUID {
  rd := GetRequestData(ctx)
  if rd == nil {
    return uuid.Nil
  }
  return rd.UserID
}

type RequestData struct {
  TokenString   string
  RefreshToken  string
  UserID        uuid.UUID
}
