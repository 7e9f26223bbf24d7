package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/giffyduck/insightnotes-backend/internal/logger"
  "github.com/giffyduck/insightnotes-backend/internal/types"
)

type CreativeWritingRepo interface {
  Create(ctx context.Context, tx *gorm.DB, writings []*types.CreativeWriting) ([]*types.CreativeWriting, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, category string) ([]*types.CreativeWriting, error)
  GetByIDForUser(ctx context.Context, tx *gorm.DB, writingID, userID uuid.UUID) (*types.CreativeWriting, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, writingID, userID uuid.UUID, fields map[string]interface{}) (*types.CreativeWriting, error)
  DeleteByIDForUser(ctx context.Context, tx *gorm.DB, writingID, userID uuid.UUID) error
  AppendContent(ctx context.Context, tx *gorm.DB, writingID, userID uuid.UUID, text string) error
  DistinctCategories(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]string, error)
}

type creativeWritingRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCreativeWritingRepo(db *gorm.DB, baseLog *logger.Logger) CreativeWritingRepo {
  repoLog := baseLog.With("repo", "CreativeWritingRepo")
  return &creativeWritingRepo{db: db, log: repoLog}
}

func (cwr *creativeWritingRepo) Create(ctx context.Context, tx *gorm.DB, writings []*types.CreativeWriting) ([]*types.CreativeWriting, error) {
  transaction := tx
  if transaction == nil {
    transaction = cwr.db
  }

  if len(writings) == 0 {
    return []*types.CreativeWriting{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&writings).Error; err != nil {
    return nil, err
  }

  return writings, nil
}

func (cwr *creativeWritingRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, category string) ([]*types.CreativeWriting, error) {
  transaction := tx
  if transaction == nil {
    transaction = cwr.db
  }

  var results []*types.CreativeWriting

  query := transaction.WithContext(ctx).
    Where("user_id = ?", userID)
  if category != "" {
    query = query.Where("category = ?", category)
  }

  if err := query.
    Order("updated_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  for _, writing := range results {
    writing.Normalize()
  }
  return results, nil
}

func (cwr *creativeWritingRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, writingID, userID uuid.UUID) (*types.CreativeWriting, error) {
  transaction := tx
  if transaction == nil {
    transaction = cwr.db
  }

  var result types.CreativeWriting
  if err := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", writingID, userID).
    First(&result).Error; err != nil {
    return nil, err
  }
  result.Normalize()
  return &result, nil
}

func (cwr *creativeWritingRepo) UpdateFields(ctx context.Context, tx *gorm.DB, writingID, userID uuid.UUID, fields map[string]interface{}) (*types.CreativeWriting, error) {
  transaction := tx
  if transaction == nil {
    transaction = cwr.db
  }

  res := transaction.WithContext(ctx).
    Model(&types.CreativeWriting{}).
    Where("id = ? AND user_id = ?", writingID, userID).
    Updates(fields)
  if res.Error != nil {
    return nil, res.Error
  }
  if res.RowsAffected == 0 {
    return nil, gorm.ErrRecordNotFound
  }

  return cwr.GetByIDForUser(ctx, transaction, writingID, userID)
}

func (cwr *creativeWritingRepo) DeleteByIDForUser(ctx context.Context, tx *gorm.DB, writingID, userID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = cwr.db
  }

  if err := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", writingID, userID).
    Delete(&types.CreativeWriting{}).Error; err != nil {
    return err
  }
  return nil
}

func (cwr *creativeWritingRepo) AppendContent(ctx context.Context, tx *gorm.DB, writingID, userID uuid.UUID, text string) error {
  transaction := tx
  if transaction == nil {
    transaction = cwr.db
  }

  res := transaction.WithContext(ctx).
    Model(&types.CreativeWriting{}).
    Where("id = ? AND user_id = ?", writingID, userID).
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

func (cwr *creativeWritingRepo) DistinctCategories(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]string, error) {
  transaction := tx
  if transaction == nil {
    transaction = cwr.db
  }

  var results []string
  if err := transaction.WithContext(ctx).
    Model(&types.CreativeWriting{}).
    Where("user_id = ? AND category IS NOT NULL AND category <> ''", userID).
    Distinct("category").
    Order("category ASC").
    Pluck("category", &results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
