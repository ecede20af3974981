package link

import "testing"

// TestResolve tests reference resolution against a base address.
func TestResolve(t *testing.T) {
	t.Parallel()

	r := NewResolver("https://www.example.org/articles/index.html?tab=1")

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"absolute", "https://other.org/a", "https://other.org/a"},
		{"relative path", "page2.html", "https://www.example.org/articles/page2.html"},
		{"root relative", "/downloads/file.pdf", "https://www.example.org/downloads/file.pdf"},
		{"protocol relative", "//cdn.example.org/x.js", "https://cdn.example.org/x.js"},
		{"query only", "?page=2", "https://www.example.org/articles/index.html?page=2"},
		{"fragment only", "#section", "https://www.example.org/articles/index.html?tab=1#section"},
		{"surrounding whitespace", "  /about  ", "https://www.example.org/about"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := r.Resolve(tt.ref); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

// TestResolveMalformedBase ensures a bad base degrades to pass-through.
func TestResolveMalformedBase(t *testing.T) {
	t.Parallel()

	r := NewResolver("http://bad base %%")
	if got := r.Resolve("/path"); got != "/path" {
		t.Errorf("Resolve with malformed base = %q, want pass-through", got)
	}
	if r.IsInternal("https://example.org/") {
		t.Error("IsInternal should be false for hosted URL with no base")
	}
}

// TestNormalize tests URL canonicalization rules.
func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips fragment", "https://example.org/a#top", "https://example.org/a"},
		{"defaults empty path", "https://example.org", "https://example.org/"},
		{"defaults empty scheme", "//example.org/a", "https://example.org/a"},
		{"keeps query", "http://example.org/a?x=1&y=2", "http://example.org/a?x=1&y=2"},
		{"no host unchanged", "/relative/only", "/relative/only"},
		{"already normal", "https://example.org/a?x=1", "https://example.org/a?x=1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
			// Normalization must be idempotent.
			if again := Normalize(got); again != got {
				t.Errorf("Normalize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

// TestIsInternal tests domain membership classification.
func TestIsInternal(t *testing.T) {
	t.Parallel()

	r := NewResolver("https://www.example.org/")

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"same host", "https://www.example.org/page", true},
		{"same host other scheme", "http://www.example.org/page", true},
		{"case-insensitive host", "https://WWW.EXAMPLE.ORG/page", true},
		{"different host", "https://other.org/page", false},
		{"subdomain is external", "https://blog.example.org/", false},
		{"hostless with path", "/local/page", true},
		{"hostless without path", "mailto:someone@example.org", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := r.IsInternal(tt.in); got != tt.want {
				t.Errorf("IsInternal(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
