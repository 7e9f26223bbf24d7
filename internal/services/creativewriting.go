package services

import (
  "context"
  "errors"
  "fmt"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/giffyduck/insightnotes-backend/internal/apperr"
  "github.com/giffyduck/insightnotes-backend/internal/logger"
  "github.com/giffyduck/insightnotes-backend/internal/normalization"
  "github.com/giffyduck/insightnotes-backend/internal/repos"
  "github.com/giffyduck/insightnotes-backend/internal/requestdata"
  "github.com/giffyduck/insightnotes-backend/internal/types"
)

type CreateWritingRequest struct {
  Title    string   `json:"title"`
  Content  string   `json:"content"`
  Tags     []string `json:"tags"`
  Category string   `json:"category"`
}

type UpdateWritingRequest struct {
  Title    *string   `json:"title"`
  Content  *string   `json:"content"`
  Tags     *[]string `json:"tags"`
  Category *string   `json:"category"`
}

type CreativeWritingService interface {
  List(ctx context.Context, category string) []*types.CreativeWriting
  Get(ctx context.Context, writingID uuid.UUID) (*types.CreativeWriting, error)
  Create(ctx context.Context, req CreateWritingRequest) (*types.CreativeWriting, error)
  Update(ctx context.Context, writingID uuid.UUID, req UpdateWritingRequest) (*types.CreativeWriting, error)
  Delete(ctx context.Context, writingID uuid.UUID) error
  AppendText(ctx context.Context, writingID uuid.UUID, text string) error
  Categories(ctx context.Context) []string
}

type creativeWritingService struct {
  db          *gorm.DB
  log         *logger.Logger
  writingRepo repos.CreativeWritingRepo
}

func NewCreativeWritingService(db *gorm.DB, log *logger.Logger, writingRepo repos.CreativeWritingRepo) CreativeWritingService {
  serviceLog := log.With("service", "CreativeWritingService")
  return &creativeWritingService{db: db, log: serviceLog, writingRepo: writingRepo}
}

func (cws *creativeWritingService) List(ctx context.Context, category string) []*types.CreativeWriting {
  userID := requestdata.CurrentUserID(ctx)
  if userID == uuid.Nil {
    cws.log.Debug("List called without a session, returning empty")
    return []*types.CreativeWriting{}
  }
  writings, err := cws.writingRepo.ListByUser(ctx, nil, userID, category)
  if err != nil {
    cws.log.Error("Error fetching creative writings", "error", err)
    return []*types.CreativeWriting{}
  }
  return writings
}

func (cws *creativeWritingService) Get(ctx context.Context, writingID uuid.UUID) (*types.CreativeWriting, error) {
  userID := requestdata.CurrentUserID(ctx)
  if userID == uuid.Nil {
    return nil, apperr.Unauthenticated("No resolvable session")
  }
  writing, err := cws.writingRepo.GetByIDForUser(ctx, nil, writingID, userID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.NotFound("creative writing")
    }
    return nil, apperr.Store(fmt.Errorf("Error fetching creative writing: %w", err))
  }
  return writing, nil
}

func (cws *creativeWritingService) Create(ctx context.Context, req CreateWritingRequest) (*types.CreativeWriting, error) {
  userID := requestdata.CurrentUserID(ctx)
  if userID == uuid.Nil {
    return nil, apperr.Unauthenticated("You must be logged in to save writings")
  }

  title := normalization.ParseFreeText(req.Title)
  if title == "" {
    return nil, apperr.Validation("A title is required to save a writing")
  }

  category := normalization.ParseFreeText(req.Category)
  if category == "" {
    category = types.CategoryGeneral
  }

  writing := &types.CreativeWriting{
    ID:       uuid.New(),
    Title:    title,
    Content:  req.Content,
    Tags:     datatypes.NewJSONSlice(normalization.DedupeTags(req.Tags)),
    Category: &category,
    UserID:   userID,
  }
  created, err := cws.writingRepo.Create(ctx, nil, []*types.CreativeWriting{writing})
  if err != nil {
    cws.log.Error("Error creating new creative writing", "error", err)
    return nil, apperr.Store(fmt.Errorf("Failed to save creative writing: %w", err))
  }
  return created[0], nil
}

func (cws *creativeWritingService) Update(ctx context.Context, writingID uuid.UUID, req UpdateWritingRequest) (*types.CreativeWriting, error) {
  userID := requestdata.CurrentUserID(ctx)
  if userID == uuid.Nil {
    return nil, apperr.Unauthenticated("You must be logged in to update writings")
  }

  fields := map[string]interface{}{}
  if req.Title != nil {
    title := normalization.ParseFreeText(*req.Title)
    if title == "" {
      return nil, apperr.Validation("A writing title cannot be blank")
    }
    fields["title"] = title
  }
  if req.Content != nil {
    fields["content"] = *req.Content
  }
  if req.Tags != nil {
    fields["tags"] = datatypes.NewJSONSlice(normalization.DedupeTags(*req.Tags))
  }
  if req.Category != nil {
    category := normalization.ParseFreeText(*req.Category)
    if category == "" {
      category = types.CategoryGeneral
    }
    fields["category"] = category
  }
  if len(fields) == 0 {
    return cws.Get(ctx, writingID)
  }

  updated, err := cws.writingRepo.UpdateFields(ctx, nil, writingID, userID, fields)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.NotFound("creative writing")
    }
    cws.log.Error("Error updating creative writing", "error", err)
    return nil, apperr.Store(fmt.Errorf("Error updating creative writing: %w", err))
  }
  return updated, nil
}

func (cws *creativeWritingService) Delete(ctx context.Context, writingID uuid.UUID) error {
  userID := requestdata.CurrentUserID(ctx)
  if userID == uuid.Nil {
    return apperr.Unauthenticated("You must be logged in to delete writings")
  }
  if err := cws.writingRepo.DeleteByIDForUser(ctx, nil, writingID, userID); err != nil {
    cws.log.Error("Error deleting creative writing", "error", err)
    return apperr.Store(fmt.Errorf("Failed to delete creative writing: %w", err))
  }
  return nil
}

func (cws *creativeWritingService) AppendText(ctx context.Context, writingID uuid.UUID, text string) error {
  userID := requestdata.CurrentUserID(ctx)
  if userID == uuid.Nil {
    return apperr.Unauthenticated("You must be logged in to update writings")
  }
  if text == "" {
    return apperr.Validation("No text supplied to append")
  }
  if err := cws.writingRepo.AppendContent(ctx, nil, writingID, userID, text); err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return apperr.NotFound("creative writing")
    }
    cws.log.Error("Error adding selected text to creative writing", "error", err)
    return apperr.Store(fmt.Errorf("Error adding selected text to creative writing: %w", err))
  }
  return nil
}

// Categories lists the caller's distinct non-empty categories. Like List,
// it degrades to empty rather than failing a picker UI.
func (cws *creativeWritingService) Categories(ctx context.Context) []string {
  userID := requestdata.CurrentUserID(ctx)
  if userID == uuid.Nil {
    return []string{}
  }
  categories, err := cws.writingRepo.DistinctCategories(ctx, nil, userID)
  if err != nil {
    cws.log.Error("Error fetching creative writing categories", "error", err)
    return []string{}
  }
  return categories
}
