package services

import (
  "context"
  "errors"
  "fmt"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/giffyduck/insightnotes-backend/internal/apperr"
  "github.com/giffyduck/insightnotes-backend/internal/logger"
  "github.com/giffyduck/insightnotes-backend/internal/normalization"
  "github.com/giffyduck/insightnotes-backend/internal/repos"
  "github.com/giffyduck/insightnotes-backend/internal/requestdata"
  "github.com/giffyduck/insightnotes-backend/internal/types"
)

type UserService interface {
  GetMe(ctx context.Context) (*types.User, error)
  UpdateProfile(ctx context.Context, name string, phone *string) (*types.User, error)
}

type userService struct {
  db       *gorm.DB
  log      *logger.Logger
  userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
  userID := requestdata.CurrentUserID(ctx)
  if userID == uuid.Nil {
    return nil, apperr.Unauthenticated("No resolvable session")
  }
  users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, apperr.Store(fmt.Errorf("Failed to fetch profile: %w", err))
  }
  if len(users) == 0 {
    return nil, apperr.NotFound("profile")
  }
  return users[0], nil
}

func (us *userService) UpdateProfile(ctx context.Context, name string, phone *string) (*types.User, error) {
  userID := requestdata.CurrentUserID(ctx)
  if userID == uuid.Nil {
    return nil, apperr.Unauthenticated("You must be logged in to update your profile")
  }
  fields := map[string]interface{}{
    "name": normalization.ParseFreeText(name),
  }
  if phone != nil {
    fields["phone"] = normalization.ParseFreeText(*phone)
  }
  updated, err := us.userRepo.UpdateProfile(ctx, nil, userID, fields)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.NotFound("profile")
    }
    return nil, apperr.Store(fmt.Errorf("Failed to update profile: %w", err))
  }
  return updated, nil
}
