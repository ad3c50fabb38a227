// Package format normalizes generated blog text: it enforces the heading
// hierarchy, counts words, and converts between Markdown and HTML.
package format

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/EDWNKR/AI-BLOG-WRITER/apperr"
)

// Format is the requested output representation of generated content.
type Format string

const (
	Markdown Format = "markdown"
	HTML     Format = "html"
)

// ParseFormat maps user input onto the closed Format set.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md", "":
		return Markdown, nil
	case "html":
		return HTML, nil
	default:
		return Markdown, apperr.NewInput("format", "must be markdown or html")
	}
}

// Ext returns the download file extension for the format.
func (f Format) Ext() string {
	if f == HTML {
		return ".html"
	}
	return ".md"
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	if f == HTML {
		return "text/html; charset=utf-8"
	}
	return "text/markdown; charset=utf-8"
}

// Content is one formatted generation result. Read-only after creation and
// held only for the duration of a session.
type Content struct {
	Body      string `json:"body"`
	WordCount int    `json:"word_count"`
	Format    Format `json:"format"`
}

// WordCount counts whitespace-delimited tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Render produces the final Content for raw generated Markdown: headings are
// normalized, the body is converted when HTML output was requested, and the
// word count is computed on the final body. When conversion fails, Render
// still returns usable pass-through Markdown content alongside a FormatError
// so the caller can degrade instead of failing the whole request.
func Render(raw string, f Format) (Content, error) {
	md := NormalizeHeadings(raw)
	if f == HTML {
		html, err := MarkdownToHTML(md)
		if err != nil {
			fallback := Content{Body: md, WordCount: WordCount(md), Format: Markdown}
			return fallback, &apperr.FormatError{Reason: "markdown to html conversion failed", Cause: err}
		}
		return Content{Body: html, WordCount: WordCount(html), Format: HTML}, nil
	}
	return Content{Body: md, WordCount: WordCount(md), Format: Markdown}, nil
}

// MarkdownToHTML converts Markdown to HTML.
func MarkdownToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// NormalizeHeadings rewrites ATX heading markers so the hierarchy is strictly
// H1 (at most one, the first wins) > H2 > H3: later H1s demote to H2,
// anything deeper than H3 clamps to H3, and an H3 appearing before any H2
// promotes to H2. Fenced code blocks are left untouched. Text without any
// heading passes through unchanged; headings are never synthesized.
func NormalizeHeadings(md string) string {
	lines := strings.Split(md, "\n")
	inFence := false
	sawH1 := false
	sawH2 := false

	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		level, rest, ok := splitHeading(trimmed)
		if !ok {
			continue
		}
		switch {
		case level == 1 && !sawH1:
			sawH1 = true
		case level == 1:
			level = 2
		}
		if level > 3 {
			level = 3
		}
		if level == 3 && !sawH2 {
			level = 2
		}
		if level == 2 {
			sawH2 = true
		}
		lines[i] = strings.Repeat("#", level) + " " + rest
	}
	return strings.Join(lines, "\n")
}

// splitHeading parses an ATX heading line into its level and text.
func splitHeading(line string) (int, string, bool) {
	if !strings.HasPrefix(line, "#") {
		return 0, "", false
	}
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level > 6 || level == len(line) {
		return 0, "", false
	}
	if line[level] != ' ' && line[level] != '\t' {
		return 0, "", false
	}
	return level, strings.TrimSpace(line[level:]), true
}
