package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"
  "time"
  "unicode"
  "github.com/google/uuid"
  "github.com/giffyduck/insightnotes-backend/internal/chathistory"
  "github.com/giffyduck/insightnotes-backend/internal/logger"
  "github.com/giffyduck/insightnotes-backend/internal/requestdata"
  "github.com/giffyduck/insightnotes-backend/internal/types"
  "github.com/giffyduck/insightnotes-backend/internal/utils"
)

// ContextItem is one note or writing serialized into the prompt to ground
// the model's answer.
type ContextItem struct {
  Title    string
  Content  string
  Tags     []string
  Category string
  Creative bool
}

type AskRequest struct {
  Query    string `json:"query"`
  Creative bool   `json:"creative"`
  ChatID   string `json:"chat_id"`
}

type Insight struct {
  ID       string `json:"id"`
  Question string `json:"question"`
  Answer   string `json:"answer"`
}

type AssistantService interface {
  // Ask returns response HTML and the chat history id the exchange was
  // recorded under. It never returns an error: failures come back as an
  // inline error bubble so the chat UI stays alive.
  Ask(ctx context.Context, req AskRequest) (string, string)
  Insights(ctx context.Context) []Insight
}

type assistantService struct {
  log             *logger.Logger
  gemini          GeminiClient
  noteService     NoteService
  writingService  CreativeWritingService
  histories       chathistory.Store
  maxContextItems int
}

// NewAssistantService accepts a nil gemini client: a deployment without a
// configured credential still serves chat, but every ask degrades to a
// configuration-error bubble.
func NewAssistantService(
  log *logger.Logger,
  gemini GeminiClient,
  noteService NoteService,
  writingService CreativeWritingService,
  histories chathistory.Store,
) AssistantService {
  serviceLog := log.With("service", "AssistantService")
  maxItems := utils.GetEnvAsInt("AI_MAX_CONTEXT_ITEMS", 20, log)
  return &assistantService{
    log:             serviceLog,
    gemini:          gemini,
    noteService:     noteService,
    writingService:  writingService,
    histories:       histories,
    maxContextItems: maxItems,
  }
}

var greetings = []string{
  "hi", "hello", "hey", "greetings",
  "good morning", "good afternoon", "good evening",
}

// isGreeting routes small talk away from the notes-grounded prompt path.
// Case-insensitive prefix match with a word boundary, so "Hello there"
// matches but "hire a venue" does not.
func isGreeting(query string) bool {
  q := strings.ToLower(strings.TrimSpace(query))
  for _, g := range greetings {
    if !strings.HasPrefix(q, g) {
      continue
    }
    if len(q) == len(g) {
      return true
    }
    next := rune(q[len(g)])
    if !unicode.IsLetter(next) && !unicode.IsDigit(next) {
      return true
    }
  }
  return false
}

const formattingDirectives = `Important instructions:
1. Answer should be relevant to the content.
2. ALWAYS format your response with bullets, numbered lists, and clear sections.
3. Break information into digestible chunks with clear headings when appropriate.
4. Do NOT use markdown, code blocks, or wrap responses in triple backticks.
5. Format the response in clean HTML with proper tags but without explicit html declarations.
6. Use <br> for line breaks, <ul> for bullet lists, and <ol> for numbered lists.
7. Use <b> for emphasis and <h3> headings to organize longer answers.`

// buildAssistantPrompt assembles the single prompt string: role preamble,
// an optional serialized context block, an optional prior-conversation
// block, the literal user query, and the fixed output-formatting contract.
// An empty items slice produces no context section at all.
func buildAssistantPrompt(query string, creative bool, items []ContextItem, history []chathistory.Message) string {
  var b strings.Builder

  if creative {
    b.WriteString("You are a creative writing assistant helping with stories, poetry, and other creative works.\n")
  } else {
    b.WriteString("You are an AI educational assistant helping a student with their notes. Provide helpful, engaging responses.\n")
  }

  if len(items) > 0 {
    if creative {
      b.WriteString("\nUser's creative writings for context (reference these if relevant):\n")
    } else {
      b.WriteString("\nUser's notes for context (reference these if relevant):\n")
    }
    blocks := make([]string, 0, len(items))
    for _, item := range items {
      var ib strings.Builder
      fmt.Fprintf(&ib, "Title: %s\nContent: %s", item.Title, item.Content)
      if item.Creative {
        category := item.Category
        if category == "" {
          category = types.CategoryGeneral
        }
        fmt.Fprintf(&ib, "\nCategory: %s", category)
      }
      if len(item.Tags) > 0 {
        fmt.Fprintf(&ib, "\nTags: %s", strings.Join(item.Tags, ", "))
      } else {
        ib.WriteString("\nTags: None")
      }
      blocks = append(blocks, ib.String())
    }
    b.WriteString(strings.Join(blocks, "\n\n"))
    b.WriteString("\n")
  }

  if len(history) > 0 {
    b.WriteString("\nPrevious conversation history:\n")
    lines := make([]string, 0, len(history))
    for _, msg := range history {
      lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
    }
    b.WriteString(strings.Join(lines, "\n\n"))
    b.WriteString("\n")
  }

  fmt.Fprintf(&b, "\nUser message: %q\n\n", query)
  b.WriteString(formattingDirectives)
  return b.String()
}

func (s *assistantService) Ask(ctx context.Context, req AskRequest) (string, string) {
  userID := requestdata.CurrentUserID(ctx)

  var items []ContextItem
  if !isGreeting(req.Query) {
    items = s.gatherContext(ctx, req.Creative)
  }

  var history []chathistory.Message
  if req.ChatID != "" {
    if h, err := s.histories.Get(req.ChatID); err == nil {
      history = h.Messages
    } else {
      s.log.Debug("Chat history not found, continuing without memory", "chat_id", req.ChatID)
    }
  }

  prompt := buildAssistantPrompt(req.Query, req.Creative, items, history)

  opts := GenerateOptions{
    Temperature:     0.7,
    TopP:            0.95,
    TopK:            40,
    MaxOutputTokens: 2048,
  }
  if req.Creative {
    // Creative mode trades determinism for voice.
    opts.Temperature = 0.9
  }

  if s.gemini == nil {
    return "<p>Error: GEMINI_API_KEY is not set in environment variables</p>", req.ChatID
  }

  raw, err := s.gemini.Generate(ctx, prompt, opts)
  if err != nil {
    s.log.Error("Error generating assistant response", "error", err)
    return fmt.Sprintf("<p>Error: %s</p>", "Failed to generate response. Please try again."), req.ChatID
  }
  answer := SanitizeAIHTML(raw)

  chatID := s.recordExchange(req.ChatID, userID, req.Query, answer)
  return answer, chatID
}

func (s *assistantService) gatherContext(ctx context.Context, creative bool) []ContextItem {
  var items []ContextItem
  if creative {
    for _, w := range s.writingService.List(ctx, "") {
      items = append(items, ContextItem{
        Title:    w.Title,
        Content:  w.Content,
        Tags:     []string(w.Tags),
        Category: w.CategoryOrDefault(),
        Creative: true,
      })
    }
  } else {
    for _, n := range s.noteService.List(ctx, types.NoteTypeAcademic) {
      items = append(items, ContextItem{
        Title:   n.Title,
        Content: n.Content,
        Tags:    []string(n.Tags),
      })
    }
  }
  if len(items) > s.maxContextItems {
    items = items[:s.maxContextItems]
  }
  return items
}

// recordExchange appends the question/answer pair to the conversation log,
// creating a fresh history when the caller did not supply one.
func (s *assistantService) recordExchange(chatID string, userID uuid.UUID, query, answer string) string {
  if userID == uuid.Nil && chatID == "" {
    return ""
  }
  if chatID == "" {
    h, err := s.histories.CreateHistory(userID.String())
    if err != nil {
      s.log.Warn("Failed to create chat history", "error", err)
      return ""
    }
    chatID = h.ID
  }
  now := time.Now().UnixMilli()
  if err := s.histories.Append(chatID, chathistory.Message{Role: chathistory.RoleUser, Content: query, Timestamp: now}); err != nil {
    s.log.Warn("Failed to record user message", "error", err)
    return chatID
  }
  if err := s.histories.Append(chatID, chathistory.Message{Role: chathistory.RoleAssistant, Content: answer, Timestamp: time.Now().UnixMilli()}); err != nil {
    s.log.Warn("Failed to record assistant message", "error", err)
  }
  return chatID
}

const insightsDirectives = `Important instructions:
1. Generate exactly 5 question and answer pairs grounded in the notes.
2. Respond with a JSON array only: [{"question": "...", "answer": "..."}].
3. Each answer must be clean HTML without markdown, code blocks, or triple backticks.
4. Use <br> for line breaks, <ul> for bullet lists, and <ol> for numbered lists.`

func (s *assistantService) Insights(ctx context.Context) []Insight {
  notes := s.noteService.List(ctx, "")
  if len(notes) == 0 {
    return []Insight{{
      ID:       fmt.Sprintf("%d", time.Now().UnixMilli()),
      Question: "No notes available",
      Answer:   "<p>You don't have any notes yet. Start by creating some notes!</p>",
    }}
  }
  if len(notes) > s.maxContextItems {
    notes = notes[:s.maxContextItems]
  }

  var b strings.Builder
  b.WriteString("You are an AI assistant helping a student with their notes. Your task is to generate insightful questions and answers based on the notes provided.\n\nHere are the user's notes:\n")
  for i, note := range notes {
    fmt.Fprintf(&b, "\n=============== NOTE %d (ID: %s) ===============\n\n%s\n\nCreated: %s\nLast updated: %s\n=============== END OF NOTE %d ===============\n",
      i+1, note.ID, note.Content, note.CreatedAt.Format(time.RFC3339), note.UpdatedAt.Format(time.RFC3339), i+1)
  }
  b.WriteString("\n")
  b.WriteString(insightsDirectives)

  if s.gemini == nil {
    return []Insight{{
      ID:       fmt.Sprintf("%d", time.Now().UnixMilli()),
      Question: "What are the key points in these notes?",
      Answer:   "<p>Error: GEMINI_API_KEY is not set in environment variables</p>",
    }}
  }

  raw, err := s.gemini.Generate(ctx, b.String(), GenerateOptions{
    Temperature:     0.7,
    TopP:            0.95,
    TopK:            40,
    MaxOutputTokens: 2048,
  })
  if err != nil {
    s.log.Error("Error generating insights", "error", err)
    return []Insight{{
      ID:       fmt.Sprintf("%d", time.Now().UnixMilli()),
      Question: "What are the key points in these notes?",
      Answer:   "<p>Error: Failed to generate insights. Please try again.</p>",
    }}
  }

  var parsed []struct {
    Question string `json:"question"`
    Answer   string `json:"answer"`
  }
  if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil || len(parsed) == 0 {
    s.log.Warn("Error parsing insights response", "error", err)
    return []Insight{{
      ID:       fmt.Sprintf("%d", time.Now().UnixMilli()),
      Question: "What are the key points in these notes?",
      Answer:   "<p>There was an error processing the notes. Please try again.</p>",
    }}
  }

  insights := make([]Insight, 0, len(parsed))
  for i, p := range parsed {
    insights = append(insights, Insight{
      ID:       fmt.Sprintf("%d%d", time.Now().UnixMilli(), i),
      Question: p.Question,
      Answer:   SanitizeAIHTML(p.Answer),
    })
  }
  return insights
}

// stripCodeFence tolerates models that wrap JSON in a fenced block despite
// the directives.
func stripCodeFence(raw string) string {
  s := strings.TrimSpace(raw)
  if !strings.HasPrefix(s, "```") {
    return s
  }
  s = strings.TrimPrefix(s, "```json")
  s = strings.TrimPrefix(s, "```")
  s = strings.TrimSuffix(strings.TrimSpace(s), "```")
  return strings.TrimSpace(s)
}
