package sanitize

import (
	"strings"
	"testing"
)

func TestCleanNeutralizesMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{`<script>alert("xss");</script>`, "&lt;script&gt;alert(&quot;xss&quot;);&lt;/script&gt;"},
		{`<img src=x onerror='steal()'>`, "&lt;img src=x onerror=&#39;steal()&#39;&gt;"},
		{"a < b > c", "a &lt; b &gt; c"},
		{"fish & chips", "fish &amp; chips"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"plain",
		`<script>alert("xss");</script>`,
		"fish & chips",
		"&amp; already escaped",
		"&lt;div&gt;",
		"&#39;quoted&#39;",
		"&copy; entity passes through",
		"mixed <b>&amp;</b> 'bag'",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestCleanLeavesNoRawDelimiters(t *testing.T) {
	inputs := []string{
		`<script>`,
		`"><svg onload=alert(1)>`,
		`' OR '1'='1`,
		`<<<>>>""''`,
	}
	for _, in := range inputs {
		got := Clean(in)
		if strings.ContainsAny(got, `<>"'`) {
			t.Errorf("Clean(%q) = %q still contains a raw delimiter", in, got)
		}
	}
}

func TestCleanPreservesNonMarkup(t *testing.T) {
	in := "Ünïcøde, tabs\tand\nnewlines 123"
	if got := Clean(in); got != in {
		t.Errorf("Clean(%q) = %q, want unchanged", in, got)
	}
}

func TestFields(t *testing.T) {
	payload := map[string]any{
		"title":     "<b>hi</b>",
		"folder_id": float64(3),
	}
	Fields(payload)
	if payload["title"] != "&lt;b&gt;hi&lt;/b&gt;" {
		t.Errorf("title = %q, want escaped form", payload["title"])
	}
	if payload["folder_id"] != float64(3) {
		t.Errorf("folder_id modified: %v", payload["folder_id"])
	}
}
