package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// CategoryGeneral is the fallback bucket for writings saved without an
// explicit category. The UI additionally suggests Poetry, Short Stories,
// Journal and Novel, but the column is free-form.
const CategoryGeneral = "general"

type CreativeWriting struct {
  ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
  Title       string                      `gorm:"not null;column:title" json:"title"`
  Content     string                      `gorm:"column:content" json:"content"`
  Tags        datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
  Category    *string                     `gorm:"index;column:category" json:"category"`
  UserID      uuid.UUID                   `gorm:"index;not null;column:user_id" json:"user_id"`
  User        *User                       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  CreatedAt   time.Time                   `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time                   `gorm:"not null" json:"updated_at"`
}

func (CreativeWriting) TableName() string {
  return "creative_writings"
}

func (cw *CreativeWriting) Normalize() {
  if cw.Tags == nil {
    cw.Tags = datatypes.JSONSlice[string]{}
  }
}

// CategoryOrDefault resolves the nullable column to the conventional
// fallback.
func (cw *CreativeWriting) CategoryOrDefault() string {
  if cw.Category == nil || *cw.Category == "" {
    return CategoryGeneral
  }
  return *cw.Category
}
