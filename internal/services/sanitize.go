package services

import (
  "github.com/microcosm-cc/bluemonday"
)

// aiHTMLPolicy is the allow-list for text coming back from the generative
// API before it reaches a browser: headings, paragraphs, lists, emphasis
// and line breaks, exactly the tag set the prompt instructs the model to
// use. Everything else (scripts, attributes, links) is stripped.
var aiHTMLPolicy = func() *bluemonday.Policy {
  p := bluemonday.NewPolicy()
  p.AllowElements(
    "h1", "h2", "h3", "h4", "h5", "h6",
    "p", "br",
    "ul", "ol", "li",
    "b", "strong", "em", "i",
  )
  return p
}()

func SanitizeAIHTML(raw string) string {
  return aiHTMLPolicy.Sanitize(raw)
}
