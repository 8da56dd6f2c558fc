package markup_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-credlink/pkg/markup"
)

func TestEmphasis(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Go to Settings", "Go to Settings"},
		{"single span", "Open **Settings** first", "Open <strong>Settings</strong> first"},
		{"two spans", "**Users** then **Add user**", "<strong>Users</strong> then <strong>Add user</strong>"},
		{"unterminated", "Open **Settings first", "Open **Settings first"},
		{"empty span", "a **** b", "a <strong></strong> b"},
		{"escapes html", "click <b>here</b>", "click &lt;b&gt;here&lt;/b&gt;"},
		{"escapes inside span", "**<b>hi</b>**", "<strong>&lt;b&gt;hi&lt;/b&gt;</strong>"},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := markup.Emphasis(tt.in); got != tt.want {
				t.Fatalf("Emphasis(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEmphasisNeverEmitsActiveMarkup(t *testing.T) {
	got := markup.Emphasis(`**bold** <script>alert(1)</script>`)
	if strings.Contains(got, "<script") {
		t.Fatalf("script survived sanitization: %q", got)
	}
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Fatalf("emphasis lost: %q", got)
	}
}
