package normalization

import (
  "strings"
)

func ParseInputString(input string) string {
  normalized := strings.ToLower(strings.TrimSpace(input))
  return normalized
}

// ParseFreeText trims surrounding whitespace but preserves case, for titles
// and note bodies where lowercasing would destroy user content.
func ParseFreeText(input string) string {
  return strings.TrimSpace(input)
}

// DedupeTags preserves first-occurrence order while dropping duplicates and
// whitespace-only entries.
func DedupeTags(tags []string) []string {
  if len(tags) == 0 {
    return []string{}
  }
  seen := make(map[string]struct{}, len(tags))
  out := make([]string, 0, len(tags))
  for _, tag := range tags {
    trimmed := strings.TrimSpace(tag)
    if trimmed == "" {
      continue
    }
    if _, dup := seen[trimmed]; dup {
      continue
    }
    seen[trimmed] = struct{}{}
    out = append(out, trimmed)
  }
  return out
}
