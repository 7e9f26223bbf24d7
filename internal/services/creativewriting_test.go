package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giffyduck/insightnotes-backend/internal/apperr"
	"github.com/giffyduck/insightnotes-backend/internal/repos"
	"github.com/giffyduck/insightnotes-backend/internal/types"
)

func newWritingEnv(t *testing.T) (context.Context, CreativeWritingService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	svc := NewCreativeWritingService(db, log, repos.NewCreativeWritingRepo(db, log))
	return ctxForUser(newTestUser(t, db)), svc, db
}

func TestWritingCreate_DefaultsCategoryToGeneral(t *testing.T) {
	ctx, svc, _ := newWritingEnv(t)

	writing, err := svc.Create(ctx, CreateWritingRequest{Title: "Ode"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if writing.CategoryOrDefault() != types.CategoryGeneral {
		t.Fatalf("expected general category, got %q", writing.CategoryOrDefault())
	}
}

func TestWritingCreate_KeepsExplicitCategory(t *testing.T) {
	ctx, svc, _ := newWritingEnv(t)

	writing, err := svc.Create(ctx, CreateWritingRequest{Title: "Ode", Category: "poetry"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if writing.CategoryOrDefault() != "poetry" {
		t.Fatalf("expected poetry, got %q", writing.CategoryOrDefault())
	}
}

func TestWritingUpdate_BlankCategoryFallsBackToGeneral(t *testing.T) {
	ctx, svc, _ := newWritingEnv(t)

	writing, err := svc.Create(ctx, CreateWritingRequest{Title: "Ode", Category: "poetry"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	blank := "  "
	updated, err := svc.Update(ctx, writing.ID, UpdateWritingRequest{Category: &blank})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.CategoryOrDefault() != types.CategoryGeneral {
		t.Fatalf("expected general after blanking category, got %q", updated.CategoryOrDefault())
	}
}

func TestWritingList_FiltersByCategoryAndOwner(t *testing.T) {
	ctx, svc, db := newWritingEnv(t)

	if _, err := svc.Create(ctx, CreateWritingRequest{Title: "a", Category: "poetry"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := svc.Create(ctx, CreateWritingRequest{Title: "b"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	otherCtx := ctxForUser(newTestUser(t, db))
	if _, err := svc.Create(otherCtx, CreateWritingRequest{Title: "c", Category: "poetry"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	poetry := svc.List(ctx, "poetry")
	if len(poetry) != 1 || poetry[0].Title != "a" {
		t.Fatalf("unexpected poetry list: %#v", poetry)
	}
	all := svc.List(ctx, "")
	if len(all) != 2 {
		t.Fatalf("expected 2 writings for owner, got %d", len(all))
	}
}

func TestWritingCategories_DistinctSorted(t *testing.T) {
	ctx, svc, db := newWritingEnv(t)

	for _, category := range []string{"poetry", "fiction", "poetry", ""} {
		if _, err := svc.Create(ctx, CreateWritingRequest{Title: "t", Category: category}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	otherCtx := ctxForUser(newTestUser(t, db))
	if _, err := svc.Create(otherCtx, CreateWritingRequest{Title: "t", Category: "memoir"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got := svc.Categories(ctx)
	want := []string{"fiction", "general", "poetry"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestWritingCategories_DegradesToEmpty(t *testing.T) {
	_, svc, _ := newWritingEnv(t)

	if got := svc.Categories(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty categories without a session, got %v", got)
	}
}

func TestWritingDelete_Idempotent(t *testing.T) {
	ctx, svc, _ := newWritingEnv(t)

	writing, err := svc.Create(ctx, CreateWritingRequest{Title: "doomed"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := svc.Delete(ctx, writing.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := svc.Delete(ctx, writing.ID); err != nil {
		t.Fatalf("expected repeat delete to succeed, got %v", err)
	}
}

func TestWritingAppendText_RoundTrip(t *testing.T) {
	ctx, svc, _ := newWritingEnv(t)

	writing, err := svc.Create(ctx, CreateWritingRequest{Title: "t", Content: "stanza one"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := svc.AppendText(ctx, writing.ID, "stanza two"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got, err := svc.Get(ctx, writing.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Content != "stanza one"+repos.ContentSeparator+"stanza two" {
		t.Fatalf("unexpected content: %q", got.Content)
	}
	if err := svc.AppendText(ctx, uuid.New(), "x"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
