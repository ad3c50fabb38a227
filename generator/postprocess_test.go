package generator

import (
	"strings"
	"testing"

	"github.com/EDWNKR/AI-BLOG-WRITER/apperr"
)

func TestPostProcessInternalLinks(t *testing.T) {
	md, err := PostProcess("Read [INTERNAL_LINK: keyword research] and [INTERNAL_LINK:on-page SEO] next.")
	if err != nil {
		t.Fatal(err)
	}
	want := "Read [keyword research] and [on-page SEO] next."
	if md != want {
		t.Fatalf("got %q, want %q", md, want)
	}
}

func TestPostProcessEmptyOutput(t *testing.T) {
	for _, raw := range []string{"", "   \n\t", "```\n```"} {
		_, err := PostProcess(raw)
		if err == nil {
			t.Fatalf("expected an error for %q", raw)
		}
		if _, ok := apperr.AsUpstream(err); !ok {
			t.Fatalf("expected an upstream error, got %v", err)
		}
	}
}

func TestPostProcessStripsWrappingFence(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{
			"markdown fence",
			"```markdown\n# Title\n\nBody.\n```",
			"# Title\n\nBody.",
		},
		{
			"bare fence",
			"```\n# Title\n```",
			"# Title",
		},
		{
			"inner fence kept",
			"# Title\n\n```\ncode\n```",
			"# Title\n\n```\ncode\n```",
		},
		{
			"unclosed fence kept",
			"```markdown\n# Title",
			"```markdown\n# Title",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := PostProcess(tc.raw)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPostProcessTrimsWhitespace(t *testing.T) {
	got, err := PostProcess("\n\n# Title\n\nBody.\n\n")
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(got, "\n") || strings.HasSuffix(got, "\n") {
		t.Fatalf("output not trimmed: %q", got)
	}
}
