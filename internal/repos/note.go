package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/giffyduck/insightnotes-backend/internal/logger"
  "github.com/giffyduck/insightnotes-backend/internal/types"
)

// ContentSeparator joins appended text onto existing note content.
const ContentSeparator = "\n\n"

type NoteRepo interface {
  Create(ctx context.Context, tx *gorm.DB, notes []*types.Note) ([]*types.Note, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, noteType string) ([]*types.Note, error)
  GetByIDForUser(ctx context.Context, tx *gorm.DB, noteID, userID uuid.UUID) (*types.Note, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, noteID, userID uuid.UUID, fields map[string]interface{}) (*types.Note, error)
  DeleteByIDForUser(ctx context.Context, tx *gorm.DB, noteID, userID uuid.UUID) error
  AppendContent(ctx context.Context, tx *gorm.DB, noteID, userID uuid.UUID, text string) error
}

type noteRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
  repoLog := baseLog.With("repo", "NoteRepo")
  return &noteRepo{db: db, log: repoLog}
}

func (nr *noteRepo) Create(ctx context.Context, tx *gorm.DB, notes []*types.Note) ([]*types.Note, error) {
  transaction := tx
  if transaction == nil {
    transaction = nr.db
  }

  if len(notes) == 0 {
    return []*types.Note{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&notes).Error; err != nil {
    return nil, err
  }

  return notes, nil
}

func (nr *noteRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, noteType string) ([]*types.Note, error) {
  transaction := tx
  if transaction == nil {
    transaction = nr.db
  }

  var results []*types.Note

  query := transaction.WithContext(ctx).
    Where("user_id = ?", userID)
  if noteType != "" {
    query = query.Where("type = ?", noteType)
  }

  if err := query.
    Order("updated_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  for _, note := range results {
    note.Normalize()
  }
  return results, nil
}

func (nr *noteRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, noteID, userID uuid.UUID) (*types.Note, error) {
  transaction := tx
  if transaction == nil {
    transaction = nr.db
  }

  var result types.Note
  if err := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", noteID, userID).
    First(&result).Error; err != nil {
    return nil, err
  }
  result.Normalize()
  return &result, nil
}

func (nr *noteRepo) UpdateFields(ctx context.Context, tx *gorm.DB, noteID, userID uuid.UUID, fields map[string]interface{}) (*types.Note, error) {
  transaction := tx
  if transaction == nil {
    transaction = nr.db
  }

  res := transaction.WithContext(ctx).
    Model(&types.Note{}).
    Where("id = ? AND user_id = ?", noteID, userID).
    Updates(fields)
  if res.Error != nil {
    return nil, res.Error
  }
  if res.RowsAffected == 0 {
    return nil, gorm.ErrRecordNotFound
  }

  return nr.GetByIDForUser(ctx, transaction, noteID, userID)
}

// DeleteByIDForUser is idempotent: deleting an id that is already gone is
// not an error, matching the store semantics at the API boundary.
func (nr *noteRepo) DeleteByIDForUser(ctx context.Context, tx *gorm.DB, noteID, userID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = nr.db
  }

  if err := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", noteID, userID).
    Delete(&types.Note{}).Error; err != nil {
    return err
  }
  return nil
}

// AppendContent concatenates text onto the stored content in a single
// UPDATE, so two concurrent appends cannot lose each other the way a
// read-then-write would.
func (nr *noteRepo) AppendContent(ctx context.Context, tx *gorm.DB, noteID, userID uuid.UUID, text string) error {
  transaction := tx
  if transaction == nil {
    transaction = nr.db
  }

  res := transaction.WithContext(ctx).
    Model(&types.Note{}).
    Where("id = ? AND user_id = ?", noteID, userID).
    Updates(map[string]interface{}{
      "content": gorm.Expr("content || ?", ContentSeparator+text),
    })
  if res.Error != nil {
    return res.Error
  }
  if res.RowsAffected == 0 {
    return gorm.ErrRecordNotFound
  }
  return nil
}
