package services

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/giffyduck/insightnotes-backend/internal/chathistory"
	"github.com/giffyduck/insightnotes-backend/internal/repos"
)

func TestIsGreeting_PrefixWithWordBoundary(t *testing.T) {
	cases := []struct {
		query string
		want  bool
	}{
		{"hi", true},
		{"Hi there", true},
		{"  HELLO  ", true},
		{"hey, what's up", true},
		{"good morning!", true},
		{"hire a venue", false},
		{"history of rome", false},
		{"heyday of jazz", false},
		{"explain photosynthesis", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := isGreeting(tc.query); got != tc.want {
			t.Fatalf("isGreeting(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestBuildAssistantPrompt_NoContextSectionWhenEmpty(t *testing.T) {
	prompt := buildAssistantPrompt("hello", false, nil, nil)
	if strings.Contains(prompt, "for context") {
		t.Fatalf("expected no context section, got:\n%s", prompt)
	}
	if strings.Contains(prompt, "Previous conversation history") {
		t.Fatalf("expected no history section, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, `User message: "hello"`) {
		t.Fatalf("expected quoted user message, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "educational assistant") {
		t.Fatalf("expected academic preamble, got:\n%s", prompt)
	}
}

func TestBuildAssistantPrompt_CreativeContextBlocks(t *testing.T) {
	items := []ContextItem{
		{Title: "Poem", Content: "roses", Creative: true, Tags: []string{"verse"}},
		{Title: "Story", Content: "once", Creative: true},
	}
	history := []chathistory.Message{
		{Role: chathistory.RoleUser, Content: "draft an intro"},
		{Role: chathistory.RoleAssistant, Content: "<p>Here.</p>"},
	}
	prompt := buildAssistantPrompt("continue it", true, items, history)

	if !strings.Contains(prompt, "creative writing assistant") {
		t.Fatalf("expected creative preamble, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "User's creative writings for context") {
		t.Fatalf("expected creative context header, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Title: Poem\nContent: roses\nCategory: general\nTags: verse") {
		t.Fatalf("expected serialized writing block, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Tags: None") {
		t.Fatalf("expected tagless fallback, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Previous conversation history:\nuser: draft an intro") {
		t.Fatalf("expected history block, got:\n%s", prompt)
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`[{"a":1}]`, `[{"a":1}]`},
		{"```json\n[1,2]\n```", "[1,2]"},
		{"```\n[1]\n```", "[1]"},
		{"  [1]  ", "[1]"},
	}
	for _, tc := range cases {
		if got := stripCodeFence(tc.in); got != tc.want {
			t.Fatalf("stripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

type fakeGemini struct {
	called  bool
	prompt  string
	opts    GenerateOptions
	resp    string
	err     error
}

func (f *fakeGemini) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	_ = ctx
	f.called = true
	f.prompt = prompt
	f.opts = opts
	if f.err != nil {
		return "", f.err
	}
	return f.resp, nil
}

func newAssistantEnv(t *testing.T, gemini GeminiClient) (context.Context, AssistantService, chathistory.Store, NoteService) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	noteSvc := NewNoteService(db, log, repos.NewNoteRepo(db, log))
	writingSvc := NewCreativeWritingService(db, log, repos.NewCreativeWritingRepo(db, log))
	store, err := chathistory.NewFileStore(filepath.Join(t.TempDir(), "histories.json"), log)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	svc := NewAssistantService(log, gemini, noteSvc, writingSvc, store)
	return ctxForUser(newTestUser(t, db)), svc, store, noteSvc
}

func TestAsk_RecordsExchangeAndSanitizes(t *testing.T) {
	fake := &fakeGemini{resp: "<p>Answer</p><script>alert(1)</script>"}
	ctx, svc, store, noteSvc := newAssistantEnv(t, fake)

	if _, err := noteSvc.Create(ctx, CreateNoteRequest{Title: "Physics", Content: "F=ma"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	answer, chatID := svc.Ask(ctx, AskRequest{Query: "what is newton's second law?"})
	if !fake.called {
		t.Fatalf("expected model call")
	}
	if !strings.Contains(fake.prompt, "Title: Physics\nContent: F=ma") {
		t.Fatalf("expected note in prompt, got:\n%s", fake.prompt)
	}
	if fake.opts.Temperature != 0.7 || fake.opts.TopP != 0.95 || fake.opts.TopK != 40 || fake.opts.MaxOutputTokens != 2048 {
		t.Fatalf("unexpected options: %#v", fake.opts)
	}
	if strings.Contains(answer, "<script>") {
		t.Fatalf("expected script stripped, got %q", answer)
	}
	if !strings.Contains(answer, "<p>Answer</p>") {
		t.Fatalf("unexpected answer: %q", answer)
	}
	if chatID == "" {
		t.Fatalf("expected a chat id")
	}
	h, err := store.Get(chatID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(h.Messages) != 2 || h.Messages[0].Role != chathistory.RoleUser || h.Messages[1].Role != chathistory.RoleAssistant {
		t.Fatalf("unexpected history: %#v", h.Messages)
	}
}

func TestAsk_CreativeRaisesTemperature(t *testing.T) {
	fake := &fakeGemini{resp: "<p>ok</p>"}
	ctx, svc, _, _ := newAssistantEnv(t, fake)

	svc.Ask(ctx, AskRequest{Query: "write a haiku", Creative: true})
	if fake.opts.Temperature != 0.9 {
		t.Fatalf("expected creative temperature 0.9, got %v", fake.opts.Temperature)
	}
}

func TestAsk_GreetingSkipsContext(t *testing.T) {
	fake := &fakeGemini{resp: "<p>hello!</p>"}
	ctx, svc, _, noteSvc := newAssistantEnv(t, fake)

	if _, err := noteSvc.Create(ctx, CreateNoteRequest{Title: "Secret", Content: "hidden"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	svc.Ask(ctx, AskRequest{Query: "hello"})
	if strings.Contains(fake.prompt, "Secret") {
		t.Fatalf("expected greeting prompt without notes, got:\n%s", fake.prompt)
	}
}

func TestAsk_NilClientReturnsConfigBubble(t *testing.T) {
	ctx, svc, _, _ := newAssistantEnv(t, nil)

	answer, chatID := svc.Ask(ctx, AskRequest{Query: "anything"})
	if answer != "<p>Error: GEMINI_API_KEY is not set in environment variables</p>" {
		t.Fatalf("unexpected answer: %q", answer)
	}
	if chatID != "" {
		t.Fatalf("expected no chat id, got %q", chatID)
	}
}

func TestAsk_TransportFailureReturnsErrorBubble(t *testing.T) {
	fake := &fakeGemini{err: context.DeadlineExceeded}
	ctx, svc, _, _ := newAssistantEnv(t, fake)

	answer, _ := svc.Ask(ctx, AskRequest{Query: "anything"})
	if !strings.HasPrefix(answer, "<p>Error:") {
		t.Fatalf("expected inline error bubble, got %q", answer)
	}
}

func TestInsights_ParsesModelJSON(t *testing.T) {
	fake := &fakeGemini{resp: "```json\n[{\"question\": \"Q1?\", \"answer\": \"<p>A1</p>\"}]\n```"}
	ctx, svc, _, noteSvc := newAssistantEnv(t, fake)

	if _, err := noteSvc.Create(ctx, CreateNoteRequest{Title: "Physics", Content: "F=ma"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	insights := svc.Insights(ctx)
	if len(insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(insights))
	}
	if insights[0].Question != "Q1?" || insights[0].Answer != "<p>A1</p>" {
		t.Fatalf("unexpected insight: %#v", insights[0])
	}
	if !strings.Contains(fake.prompt, "NOTE 1 (ID: ") {
		t.Fatalf("expected note block in prompt, got:\n%s", fake.prompt)
	}
}

func TestInsights_NoNotesFallback(t *testing.T) {
	fake := &fakeGemini{resp: "[]"}
	ctx, svc, _, _ := newAssistantEnv(t, fake)

	insights := svc.Insights(ctx)
	if len(insights) != 1 || insights[0].Question != "No notes available" {
		t.Fatalf("unexpected fallback: %#v", insights)
	}
	if fake.called {
		t.Fatalf("expected no model call without notes")
	}
}

func TestInsights_UnparseableResponseFallback(t *testing.T) {
	fake := &fakeGemini{resp: "sorry, I cannot do that"}
	ctx, svc, _, noteSvc := newAssistantEnv(t, fake)

	if _, err := noteSvc.Create(ctx, CreateNoteRequest{Title: "t", Content: "c"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	insights := svc.Insights(ctx)
	if len(insights) != 1 || !strings.Contains(insights[0].Answer, "error processing") {
		t.Fatalf("unexpected fallback: %#v", insights)
	}
}
