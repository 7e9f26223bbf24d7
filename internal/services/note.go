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

// CreateNoteRequest carries the caller-supplied fields for a new note.
// Everything except Title is optional; defaults are filled here, at
// creation only, never on update.
type CreateNoteRequest struct {
  Title   string   `json:"title"`
  Content string   `json:"content"`
  Tags    []string `json:"tags"`
  Type    string   `json:"type"`
}

// UpdateNoteRequest is a partial update: nil fields are left untouched.
type UpdateNoteRequest struct {
  Title   *string   `json:"title"`
  Content *string   `json:"content"`
  Tags    *[]string `json:"tags"`
}

type NoteService interface {
  List(ctx context.Context, noteType string) []*types.Note
  Get(ctx context.Context, noteID uuid.UUID) (*types.Note, error)
  Create(ctx context.Context, req CreateNoteRequest) (*types.Note, error)
  Update(ctx context.Context, noteID uuid.UUID, req UpdateNoteRequest) (*types.Note, error)
  Delete(ctx context.Context, noteID uuid.UUID) error
  AppendText(ctx context.Context, noteID uuid.UUID, text string) error
}

type noteService struct {
  db       *gorm.DB
  log      *logger.Logger
  noteRepo repos.NoteRepo
}

func NewNoteService(db *gorm.DB, log *logger.Logger, noteRepo repos.NoteRepo) NoteService {
  serviceLog := log.With("service", "NoteService")
  return &noteService{db: db, log: serviceLog, noteRepo: noteRepo}
}

// List returns the caller's notes ordered by updated_at descending,
// optionally narrowed by type. Unauthenticated callers and store failures
// both degrade to an empty list; dashboards must never hard-fail on a
// transient read error.
func (ns *noteService) List(ctx context.Context, noteType string) []*types.Note {
  userID := requestdata.CurrentUserID(ctx)
  if userID == uuid.Nil {
    ns.log.Debug("List called without a session, returning empty")
    return []*types.Note{}
  }
  if noteType != "" && noteType != types.NoteTypeAcademic && noteType != types.NoteTypeCreative {
    ns.log.Debug("Unknown note type filter, returning empty", "type", noteType)
    return []*types.Note{}
  }
  notes, err := ns.noteRepo.ListByUser(ctx, nil, userID, noteType)
  if err != nil {
    ns.log.Error("Error fetching notes", "error", err)
    return []*types.Note{}
  }
  return notes
}

func (ns *noteService) Get(ctx context.Context, noteID uuid.UUID) (*types.Note, error) {
  userID := requestdata.CurrentUserID(ctx)
  if userID == uuid.Nil {
    return nil, apperr.Unauthenticated("No resolvable session")
  }
  note, err := ns.noteRepo.GetByIDForUser(ctx, nil, noteID, userID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.NotFound("note")
    }
    return nil, apperr.Store(fmt.Errorf("Error fetching note: %w", err))
  }
  return note, nil
}

func (ns *noteService) Create(ctx context.Context, req CreateNoteRequest) (*types.Note, error) {
  userID := requestdata.CurrentUserID(ctx)
  if userID == uuid.Nil {
    return nil, apperr.Unauthenticated("You must be logged in to save notes")
  }

  title := normalization.ParseFreeText(req.Title)
  if title == "" {
    return nil, apperr.Validation("A title is required to save a note")
  }

  noteType := req.Type
  if noteType == "" {
    noteType = types.NoteTypeAcademic
  }
  if noteType != types.NoteTypeAcademic && noteType != types.NoteTypeCreative {
    return nil, apperr.Validation("Note type must be academic or creative")
  }

  note := &types.Note{
    ID:      uuid.New(),
    Title:   title,
    Content: req.Content,
    Tags:    datatypes.NewJSONSlice(normalization.DedupeTags(req.Tags)),
    Type:    noteType,
    UserID:  userID,
  }
  created, err := ns.noteRepo.Create(ctx, nil, []*types.Note{note})
  if err != nil {
    ns.log.Error("Error saving note", "error", err)
    return nil, apperr.Store(fmt.Errorf("Error saving note: %w", err))
  }
  return created[0], nil
}

// Update applies only the supplied fields; omitted fields keep their
// pre-update values. updated_at is refreshed at the moment of the write.
func (ns *noteService) Update(ctx context.Context, noteID uuid.UUID, req UpdateNoteRequest) (*types.Note, error) {
  userID := requestdata.CurrentUserID(ctx)
  if userID == uuid.Nil {
    return nil, apperr.Unauthenticated("You must be logged in to update notes")
  }

  fields := map[string]interface{}{}
  if req.Title != nil {
    title := normalization.ParseFreeText(*req.Title)
    if title == "" {
      return nil, apperr.Validation("A note title cannot be blank")
    }
    fields["title"] = title
  }
  if req.Content != nil {
    fields["content"] = *req.Content
  }
  if req.Tags != nil {
    fields["tags"] = datatypes.NewJSONSlice(normalization.DedupeTags(*req.Tags))
  }
  if len(fields) == 0 {
    return ns.Get(ctx, noteID)
  }

  updated, err := ns.noteRepo.UpdateFields(ctx, nil, noteID, userID, fields)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.NotFound("note")
    }
    ns.log.Error("Error updating note", "error", err)
    return nil, apperr.Store(fmt.Errorf("Error updating note: %w", err))
  }
  return updated, nil
}

func (ns *noteService) Delete(ctx context.Context, noteID uuid.UUID) error {
  userID := requestdata.CurrentUserID(ctx)
  if userID == uuid.Nil {
    return apperr.Unauthenticated("You must be logged in to delete notes")
  }
  if err := ns.noteRepo.DeleteByIDForUser(ctx, nil, noteID, userID); err != nil {
    ns.log.Error("Error deleting note", "error", err)
    return apperr.Store(fmt.Errorf("Error deleting note: %w", err))
  }
  return nil
}

// AppendText adds text onto the note's content behind a blank-line
// separator, using the store's atomic concat so concurrent appends cannot
// lose each other.
func (ns *noteService) AppendText(ctx context.Context, noteID uuid.UUID, text string) error {
  userID := requestdata.CurrentUserID(ctx)
  if userID == uuid.Nil {
    return apperr.Unauthenticated("You must be logged in to update notes")
  }
  if text == "" {
    return apperr.Validation("No text supplied to append")
  }
  if err := ns.noteRepo.AppendContent(ctx, nil, noteID, userID, text); err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return apperr.NotFound("note")
    }
    ns.log.Error("Error adding selected text to note", "error", err)
    return apperr.Store(fmt.Errorf("Error adding selected text to note: %w", err))
  }
  return nil
}
