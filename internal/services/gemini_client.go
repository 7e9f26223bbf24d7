package services

import (
  "context"
  "fmt"
  "google.golang.org/genai"
  "github.com/giffyduck/insightnotes-backend/internal/apperr"
  "github.com/giffyduck/insightnotes-backend/internal/logger"
  "github.com/giffyduck/insightnotes-backend/internal/utils"
)

type GenerateOptions struct {
  Temperature     float32
  TopP            float32
  TopK            float32
  MaxOutputTokens int32
}

type GeminiClient interface {
  Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

type geminiClient struct {
  log    *logger.Logger
  client *genai.Client
  model  string
}

// NewGeminiClient fails at construction when no credential is configured,
// so a misconfigured deployment is detectable at startup instead of on the
// first chat message.
func NewGeminiClient(ctx context.Context, log *logger.Logger) (GeminiClient, error) {
  serviceLog := log.With("service", "GeminiClient")
  apiKey := utils.GetEnv("GEMINI_API_KEY", "", log)
  if apiKey == "" {
    return nil, fmt.Errorf("GEMINI_API_KEY is not set: %w", apperr.ErrAIConfiguration)
  }
  model := utils.GetEnv("GEMINI_MODEL", "gemini-2.0-flash", log)

  client, err := genai.NewClient(ctx, &genai.ClientConfig{
    APIKey:  apiKey,
    Backend: genai.BackendGeminiAPI,
  })
  if err != nil {
    return nil, fmt.Errorf("Failed to create Gemini client: %v: %w", err, apperr.ErrAIConfiguration)
  }
  return &geminiClient{log: serviceLog, client: client, model: model}, nil
}

// Generate performs a single non-streaming completion and returns the raw
// response text. The return value is opaque; formatting guarantees live in
// the prompt, not here.
func (gc *geminiClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
  cfg := &genai.GenerateContentConfig{
    Temperature:     genai.Ptr[float32](opts.Temperature),
    TopP:            genai.Ptr[float32](opts.TopP),
    TopK:            genai.Ptr[float32](opts.TopK),
    MaxOutputTokens: opts.MaxOutputTokens,
  }
  result, err := gc.client.Models.GenerateContent(ctx, gc.model, genai.Text(prompt), cfg)
  if err != nil {
    gc.log.Error("Gemini api call failed", "error", err)
    return "", fmt.Errorf("gemini api call failed: %v: %w", err, apperr.ErrAITransport)
  }
  text := result.Text()
  if text == "" {
    return "", fmt.Errorf("gemini returned an empty response: %w", apperr.ErrAITransport)
  }
  return text, nil
}
