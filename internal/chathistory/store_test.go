package chathistory

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/giffyduck/insightnotes-backend/internal/apperr"
	"github.com/giffyduck/insightnotes-backend/internal/logger"
)

func newStore(t *testing.T) (Store, string) {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	path := filepath.Join(t.TempDir(), "histories.json")
	store, err := NewFileStore(path, log)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return store, path
}

func TestCreateHistory_IDShapeAndOwner(t *testing.T) {
	store, _ := newStore(t)

	h, err := store.CreateHistory("user-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.HasPrefix(h.ID, "chat_") {
		t.Fatalf("unexpected id: %q", h.ID)
	}
	if h.UserID != "user-1" {
		t.Fatalf("unexpected owner: %q", h.UserID)
	}
	if h.Messages == nil || len(h.Messages) != 0 {
		t.Fatalf("expected empty message log, got %#v", h.Messages)
	}
	if h.CreatedAt == 0 || h.UpdatedAt != h.CreatedAt {
		t.Fatalf("unexpected timestamps: created=%d updated=%d", h.CreatedAt, h.UpdatedAt)
	}
}

func TestAppend_OrderAndPersistence(t *testing.T) {
	store, path := newStore(t)

	h, err := store.CreateHistory("user-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := store.Append(h.ID, Message{Role: RoleUser, Content: "q1", Timestamp: 1}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := store.Append(h.ID, Message{Role: RoleAssistant, Content: "a1", Timestamp: 2}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, err := store.Get(h.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got.Messages))
	}
	if got.Messages[0].Content != "q1" || got.Messages[1].Content != "a1" {
		t.Fatalf("unexpected order: %#v", got.Messages)
	}
	if got.UpdatedAt < got.CreatedAt {
		t.Fatalf("expected updated_at to advance")
	}

	// A second store over the same file sees the committed state.
	log, _ := logger.New("development")
	reopened, err := NewFileStore(path, log)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	again, err := reopened.Get(h.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(again.Messages) != 2 {
		t.Fatalf("expected persisted messages, got %#v", again.Messages)
	}
}

func TestAppend_UnknownHistory(t *testing.T) {
	store, _ := newStore(t)

	err := store.Append("chat_0_missing", Message{Role: RoleUser, Content: "q"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestClear_KeepsIdentity(t *testing.T) {
	store, _ := newStore(t)

	h, err := store.CreateHistory("user-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := store.Append(h.ID, Message{Role: RoleUser, Content: "q"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := store.Clear(h.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, err := store.Get(h.ID)
	if err != nil {
		t.Fatalf("expected history to survive clear, got %v", err)
	}
	if len(got.Messages) != 0 {
		t.Fatalf("expected empty message log, got %#v", got.Messages)
	}
	if got.UserID != "user-1" {
		t.Fatalf("expected owner preserved, got %q", got.UserID)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	store, _ := newStore(t)

	h, err := store.CreateHistory("user-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := store.Delete(h.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := store.Delete(h.ID); err != nil {
		t.Fatalf("expected repeat delete to succeed, got %v", err)
	}
	if _, err := store.Get(h.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestListFor_ScopedToOwner(t *testing.T) {
	store, _ := newStore(t)

	if _, err := store.CreateHistory("alice"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := store.CreateHistory("alice"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := store.CreateHistory("bob"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	mine, err := store.ListFor("alice")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 histories for alice, got %d", len(mine))
	}
	none, err := store.ListFor("carol")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty list, got %#v", none)
	}
}

func TestLoad_CorruptFileStartsFresh(t *testing.T) {
	store, path := newStore(t)

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	h, err := store.CreateHistory("user-1")
	if err != nil {
		t.Fatalf("expected fresh envelope after corruption, got %v", err)
	}
	histories, err := store.ListFor("user-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(histories) != 1 || histories[0].ID != h.ID {
		t.Fatalf("unexpected histories: %#v", histories)
	}
}
