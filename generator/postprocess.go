package generator

import (
	"regexp"
	"strings"

	"github.com/EDWNKR/AI-BLOG-WRITER/apperr"
)

var internalLinkRe = regexp.MustCompile(`\[INTERNAL_LINK:\s*([^\]]*)\]`)

// PostProcess validates the raw model output and rewrites internal link
// placeholders of the form [INTERNAL_LINK: topic] into plain [topic] links.
func PostProcess(raw string) (string, error) {
	md := strings.TrimSpace(raw)
	md = stripWrappingFence(md)
	if md == "" {
		return "", apperr.UpstreamStatus("openai", 0, "model returned empty content")
	}
	md = internalLinkRe.ReplaceAllStringFunc(md, func(m string) string {
		sub := internalLinkRe.FindStringSubmatch(m)
		return "[" + strings.TrimSpace(sub[1]) + "]"
	})
	return md, nil
}

// Models occasionally wrap the whole document in a ```markdown fence.
func stripWrappingFence(md string) string {
	if !strings.HasPrefix(md, "```") {
		return md
	}
	lines := strings.Split(md, "\n")
	if len(lines) < 2 {
		return md
	}
	first := strings.TrimSpace(lines[0])
	last := strings.TrimSpace(lines[len(lines)-1])
	if last != "```" {
		return md
	}
	if first != "```" && first != "```markdown" && first != "```md" {
		return md
	}
	return strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
}
