package format

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	headingRe = regexp.MustCompile(`(?s)<h([1-6])[^>]*>(.*?)</h[1-6]>`)
	olRe      = regexp.MustCompile(`(?s)<ol[^>]*>(.*?)</ol>`)
	ulRe      = regexp.MustCompile(`(?s)<ul[^>]*>(.*?)</ul>`)
	liRe      = regexp.MustCompile(`(?s)<li[^>]*>(.*?)</li>`)
	strongRe  = regexp.MustCompile(`(?s)<(?:strong|b)[^>]*>(.*?)</(?:strong|b)>`)
	emRe      = regexp.MustCompile(`(?s)<(?:em|i)[^>]*>(.*?)</(?:em|i)>`)
	codeRe    = regexp.MustCompile(`(?s)<code[^>]*>(.*?)</code>`)
	linkRe    = regexp.MustCompile(`(?s)<a[^>]*href="([^"]*)"[^>]*>(.*?)</a>`)
	paraRe    = regexp.MustCompile(`(?s)<p[^>]*>(.*?)</p>`)
	brRe      = regexp.MustCompile(`<br\s*/?>`)
	tagRe     = regexp.MustCompile(`<[^>]+>`)
	blankRe   = regexp.MustCompile(`\n{3,}`)
)

// HTMLToMarkdown converts the structural elements of an HTML document
// (headings, bullet and numbered lists, emphasis, links, paragraphs) back to
// Markdown. The round trip preserves structure, not bytes; markup outside
// that set is reduced to its text.
func HTMLToMarkdown(src string) string {
	out := headingRe.ReplaceAllStringFunc(src, func(block string) string {
		parts := headingRe.FindStringSubmatch(block)
		if len(parts) != 3 {
			return block
		}
		level := int(parts[1][0] - '0')
		text := strings.TrimSpace(parts[2])
		return "\n" + strings.Repeat("#", level) + " " + text + "\n\n"
	})

	out = olRe.ReplaceAllStringFunc(out, func(block string) string {
		items := liRe.FindAllStringSubmatch(block, -1)
		if len(items) == 0 {
			return block
		}
		var b strings.Builder
		b.WriteString("\n")
		for i, item := range items {
			fmt.Fprintf(&b, "%d. %s\n", i+1, listItemText(item[1]))
		}
		b.WriteString("\n")
		return b.String()
	})

	out = ulRe.ReplaceAllStringFunc(out, func(block string) string {
		items := liRe.FindAllStringSubmatch(block, -1)
		if len(items) == 0 {
			return block
		}
		var b strings.Builder
		b.WriteString("\n")
		for _, item := range items {
			b.WriteString("- ")
			b.WriteString(listItemText(item[1]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		return b.String()
	})

	out = strongRe.ReplaceAllString(out, "**$1**")
	out = emRe.ReplaceAllString(out, "*$1*")
	out = codeRe.ReplaceAllString(out, "`$1`")
	out = linkRe.ReplaceAllString(out, "[$2]($1)")
	out = paraRe.ReplaceAllStringFunc(out, func(block string) string {
		parts := paraRe.FindStringSubmatch(block)
		if len(parts) != 2 {
			return block
		}
		return strings.TrimSpace(parts[1]) + "\n\n"
	})
	out = brRe.ReplaceAllString(out, "\n")
	out = tagRe.ReplaceAllString(out, "")

	out = html.UnescapeString(out)
	out = blankRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out) + "\n"
}

// listItemText flattens one <li> body to a single Markdown line. Loose list
// items carry their own <p> wrappers, which must not become paragraph breaks
// inside the list.
func listItemText(item string) string {
	item = paraRe.ReplaceAllString(item, "$1 ")
	return strings.Join(strings.Fields(strings.TrimSpace(item)), " ")
}
