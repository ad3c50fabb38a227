package format

import (
	"strings"
	"testing"
)

func TestHTMLToMarkdown(t *testing.T) {
	src := `<h1>Guide</h1>
<p>Intro paragraph.</p>
<h2>Steps</h2>
<ol>
<li>First step</li>
<li>Second step</li>
</ol>
<h3>Tips</h3>
<ul>
<li>One</li>
<li>Two</li>
</ul>
<p>See <a href="https://example.com">docs</a> and <strong>bold</strong> text.</p>`

	md := HTMLToMarkdown(src)

	for _, want := range []string{
		"# Guide",
		"## Steps",
		"### Tips",
		"1. First step",
		"2. Second step",
		"- One",
		"- Two",
		"[docs](https://example.com)",
		"**bold**",
		"Intro paragraph.",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("missing %q in:\n%s", want, md)
		}
	}
	if strings.Contains(md, "<") {
		t.Fatalf("unstripped markup in:\n%s", md)
	}
}

func TestHTMLToMarkdownLooseListItems(t *testing.T) {
	src := "<ul>\n<li>\n<p>Wrapped item</p>\n</li>\n<li>\n<p>Another</p>\n</li>\n</ul>"
	md := HTMLToMarkdown(src)
	if !strings.Contains(md, "- Wrapped item") || !strings.Contains(md, "- Another") {
		t.Fatalf("loose items not flattened:\n%s", md)
	}
	if strings.Contains(md, "- \n") {
		t.Fatalf("paragraph breaks leaked into list items:\n%s", md)
	}
}

func TestHTMLToMarkdownEntities(t *testing.T) {
	md := HTMLToMarkdown("<p>Fish &amp; chips &lt;3</p>")
	if !strings.Contains(md, "Fish & chips <3") {
		t.Fatalf("entities not unescaped: %q", md)
	}
}

// Converting Markdown to HTML and back keeps the document structure:
// heading levels, list shapes, emphasis, and links all survive.
func TestMarkdownRoundTrip(t *testing.T) {
	src := strings.Join([]string{
		"# Guide",
		"",
		"Intro paragraph.",
		"",
		"## Steps",
		"",
		"1. First step",
		"2. Second step",
		"",
		"### Tips",
		"",
		"- One",
		"- Two",
		"",
		"See [docs](https://example.com) and **bold** text.",
	}, "\n")

	html, err := MarkdownToHTML(src)
	if err != nil {
		t.Fatal(err)
	}
	back := HTMLToMarkdown(html)

	for _, want := range []string{
		"# Guide",
		"## Steps",
		"### Tips",
		"1. First step",
		"- One",
		"[docs](https://example.com)",
		"**bold**",
	} {
		if !strings.Contains(back, want) {
			t.Fatalf("round trip lost %q:\n%s", want, back)
		}
	}
	// The hierarchy is already normalized, so normalization is a no-op.
	if normalized := NormalizeHeadings(back); normalized != back {
		t.Fatalf("round trip broke the heading hierarchy:\n%s\nvs:\n%s", normalized, back)
	}
}
