package utils

import (
  "context"
  "golang.org/x/crypto/bcrypt"
  "github.com/giffyduck/insightnotes-backend/internal/apperr"
  "github.com/giffyduck/insightnotes-backend/internal/logger"
  "github.com/giffyduck/insightnotes-backend/internal/normalization"
  "github.com/giffyduck/insightnotes-backend/internal/repos"
  "github.com/giffyduck/insightnotes-backend/internal/types"
)

func ValidateRegistration(ctx context.Context, userRepo repos.UserRepo, log *logger.Logger, user *types.User) error {
  if user == nil {
    return apperr.Validation("No user given, cannot proceed with registration")
  }
  if user.Email == "" {
    return apperr.Validation("An email is required to register")
  }
  emailExists, err := userRepo.EmailExists(ctx, nil, user.Email)
  if err != nil {
    return apperr.Store(err)
  }
  if emailExists {
    return apperr.Validation("Email is already in use")
  }
  if user.Password == "" {
    return apperr.Validation("A password is required to register")
  }
  return nil
}

func ValidateLogin(email, password string) error {
  if email == "" {
    return apperr.Validation("Email is required to login")
  }
  if password == "" {
    return apperr.Validation("Password is required to login")
  }
  return nil
}

func HashPassword(ctx context.Context, log *logger.Logger, user *types.User) error {
  hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if err != nil {
    return apperr.Validation("Failed to hash password")
  }
  user.Password = string(hashedPassword)
  return nil
}

func NormalizeUserFields(ctx context.Context, user *types.User) {
  user.Email = normalization.ParseInputString(user.Email)
  user.Name = normalization.ParseFreeText(user.Name)
  user.Phone = normalization.ParseFreeText(user.Phone)
}
