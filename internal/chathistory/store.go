package chathistory

import (
  "encoding/json"
  "fmt"
  "os"
  "path/filepath"
  "sync"
  "time"
  "github.com/google/uuid"
  "github.com/giffyduck/insightnotes-backend/internal/apperr"
  "github.com/giffyduck/insightnotes-backend/internal/logger"
)

const (
  RoleUser      = "user"
  RoleAssistant = "assistant"
)

// envelopeVersion guards the on-disk format so it can evolve without
// guessing at unversioned payloads.
const envelopeVersion = 1

type Message struct {
  Role      string `json:"role"`
  Content   string `json:"content"`
  Timestamp int64  `json:"timestamp"`
}

type History struct {
  ID        string    `json:"id"`
  Messages  []Message `json:"messages"`
  CreatedAt int64     `json:"createdAt"`
  UpdatedAt int64     `json:"updatedAt"`
  UserID    string    `json:"userId"`
}

type envelope struct {
  Version   int       `json:"version"`
  Histories []History `json:"histories"`
}

type Store interface {
  CreateHistory(userID string) (*History, error)
  Append(historyID string, msg Message) error
  Get(historyID string) (*History, error)
  Clear(historyID string) error
  Delete(historyID string) error
  ListFor(userID string) ([]History, error)
}

// fileStore keeps every history in one JSON file and rewrites the whole
// collection on each mutation. That mirrors the single serialized blob the
// product stores client-side: it is not durable storage, holds no indexes,
// and a second process writing the same file is last-writer-wins at
// whole-collection granularity. The mutex only serializes callers within
// this process.
type fileStore struct {
  path string
  log  *logger.Logger
  mu   sync.Mutex
}

func NewFileStore(path string, log *logger.Logger) (Store, error) {
  storeLog := log.With("service", "ChatHistoryStore")
  if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
    return nil, fmt.Errorf("Failed to create chat history directory: %w", err)
  }
  return &fileStore{path: path, log: storeLog}, nil
}

func (fs *fileStore) CreateHistory(userID string) (*History, error) {
  fs.mu.Lock()
  defer fs.mu.Unlock()

  env, err := fs.load()
  if err != nil {
    return nil, err
  }
  now := time.Now().UnixMilli()
  history := History{
    ID:        fmt.Sprintf("chat_%d_%s", now, uuid.NewString()[:8]),
    Messages:  []Message{},
    CreatedAt: now,
    UpdatedAt: now,
    UserID:    userID,
  }
  env.Histories = append(env.Histories, history)
  if err := fs.save(env); err != nil {
    return nil, err
  }
  return &history, nil
}

func (fs *fileStore) Append(historyID string, msg Message) error {
  fs.mu.Lock()
  defer fs.mu.Unlock()

  env, err := fs.load()
  if err != nil {
    return err
  }
  for i := range env.Histories {
    if env.Histories[i].ID == historyID {
      env.Histories[i].Messages = append(env.Histories[i].Messages, msg)
      env.Histories[i].UpdatedAt = time.Now().UnixMilli()
      return fs.save(env)
    }
  }
  return apperr.NotFound("chat history")
}

func (fs *fileStore) Get(historyID string) (*History, error) {
  fs.mu.Lock()
  defer fs.mu.Unlock()

  env, err := fs.load()
  if err != nil {
    return nil, err
  }
  for i := range env.Histories {
    if env.Histories[i].ID == historyID {
      found := env.Histories[i]
      return &found, nil
    }
  }
  return nil, apperr.NotFound("chat history")
}

// Clear empties the message log while keeping the history id and owner.
func (fs *fileStore) Clear(historyID string) error {
  fs.mu.Lock()
  defer fs.mu.Unlock()

  env, err := fs.load()
  if err != nil {
    return err
  }
  for i := range env.Histories {
    if env.Histories[i].ID == historyID {
      env.Histories[i].Messages = []Message{}
      env.Histories[i].UpdatedAt = time.Now().UnixMilli()
      return fs.save(env)
    }
  }
  return apperr.NotFound("chat history")
}

func (fs *fileStore) Delete(historyID string) error {
  fs.mu.Lock()
  defer fs.mu.Unlock()

  env, err := fs.load()
  if err != nil {
    return err
  }
  kept := env.Histories[:0]
  for _, h := range env.Histories {
    if h.ID != historyID {
      kept = append(kept, h)
    }
  }
  // Deleting an id that is already gone still reports success.
  env.Histories = kept
  return fs.save(env)
}

func (fs *fileStore) ListFor(userID string) ([]History, error) {
  fs.mu.Lock()
  defer fs.mu.Unlock()

  env, err := fs.load()
  if err != nil {
    return nil, err
  }
  results := []History{}
  for _, h := range env.Histories {
    if h.UserID == userID {
      results = append(results, h)
    }
  }
  return results, nil
}

func (fs *fileStore) load() (*envelope, error) {
  data, err := os.ReadFile(fs.path)
  if err != nil {
    if os.IsNotExist(err) {
      return &envelope{Version: envelopeVersion, Histories: []History{}}, nil
    }
    return nil, fmt.Errorf("Failed to read chat histories: %w", err)
  }
  var env envelope
  if err := json.Unmarshal(data, &env); err != nil {
    fs.log.Warn("Chat history file is corrupt, starting fresh", "error", err)
    return &envelope{Version: envelopeVersion, Histories: []History{}}, nil
  }
  if env.Histories == nil {
    env.Histories = []History{}
  }
  return &env, nil
}

func (fs *fileStore) save(env *envelope) error {
  env.Version = envelopeVersion
  data, err := json.Marshal(env)
  if err != nil {
    return fmt.Errorf("Failed to encode chat histories: %w", err)
  }
  if err := os.WriteFile(fs.path, data, 0o644); err != nil {
    return fmt.Errorf("Failed to write chat histories: %w", err)
  }
  return nil
}
