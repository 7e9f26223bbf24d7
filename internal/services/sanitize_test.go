package services

import (
	"strings"
	"testing"
)

func TestSanitizeAIHTML_KeepsAllowedTags(t *testing.T) {
	in := "<h3>Topic</h3><p>One<br>Two</p><ul><li><b>bold</b> and <em>em</em></li></ul>"
	if got := SanitizeAIHTML(in); got != in {
		t.Fatalf("expected allowed markup preserved, got %q", got)
	}
}

func TestSanitizeAIHTML_StripsDangerousMarkup(t *testing.T) {
	cases := []struct {
		in      string
		banned  string
	}{
		{`<p>ok</p><script>alert(1)</script>`, "<script"},
		{`<p onclick="x()">ok</p>`, "onclick"},
		{`<a href="javascript:x()">link</a>`, "<a"},
		{`<img src=x onerror=alert(1)>`, "<img"},
		{`<iframe src="https://evil.example"></iframe>`, "<iframe"},
	}
	for _, tc := range cases {
		got := SanitizeAIHTML(tc.in)
		if strings.Contains(got, tc.banned) {
			t.Fatalf("expected %q stripped from %q, got %q", tc.banned, tc.in, got)
		}
	}
}
