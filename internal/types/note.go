package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

const (
  NoteTypeAcademic = "academic"
  NoteTypeCreative = "creative"
)

type Note struct {
  ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
  Title       string                      `gorm:"not null;column:title" json:"title"`
  Content     string                      `gorm:"column:content" json:"content"`
  Tags        datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
  Type        string                      `gorm:"index;not null;default:academic;column:type" json:"type"`
  UserID      uuid.UUID                   `gorm:"index;not null;column:user_id" json:"user_id"`
  User        *User                       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  CreatedAt   time.Time                   `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time                   `gorm:"not null" json:"updated_at"`
}

func (Note) TableName() string {
  return "notes"
}

// Normalize fills defaults for rows that predate the current shape: nil tags
// become an empty list and an absent or unrecognized type falls back to
// academic. Total and side-effect free.
func (n *Note) Normalize() {
  if n.Tags == nil {
    n.Tags = datatypes.JSONSlice[string]{}
  }
  if n.Type != NoteTypeAcademic && n.Type != NoteTypeCreative {
    n.Type = NoteTypeAcademic
  }
}
