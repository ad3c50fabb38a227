package generator

import (
	"fmt"
	"strings"
)

// Prompt is the message set sent to the LLM.
type Prompt struct {
	System  string
	User    string
	History []Message
}

// Message carries a small amount of optional history.
type Message struct {
	Role    string
	Content string
}

const systemPrompt = "You are an expert blog writer skilled in SEO and creating engaging, well-structured content."

// BuildBlogPrompt renders a BlogRequest into the first-draft prompt. Every
// request field that is set contributes its own instruction line; empty
// fields contribute nothing.
func BuildBlogPrompt(req BlogRequest) Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a comprehensive, engaging, and well-structured blog post titled %q.\n\n", req.Title)
	sb.WriteString("The blog post should:\n")
	fmt.Fprintf(&sb, "- Be written in a %s tone\n", req.Tone)
	if len(req.Keywords) > 0 {
		fmt.Fprintf(&sb, "- Target these SEO keywords: %s\n", strings.Join(req.Keywords, ", "))
		sb.WriteString("- Include every keyword at least once\n")
	}
	sb.WriteString("- Include appropriate H2 and H3 headers\n")
	sb.WriteString("- Use bullet points and numbered lists where appropriate\n")
	sb.WriteString("- Include placeholders for internal links in the form [related topic]\n")
	fmt.Fprintf(&sb, "- Be approximately %d words (%s length)\n", req.TargetWords(), req.LengthBucket())
	sb.WriteString("- Include an introduction and a conclusion\n")
	sb.WriteString("\nFormat the output as Markdown.\n")

	return Prompt{
		System:  systemPrompt,
		User:    sb.String(),
		History: nil,
	}
}

// BuildRevisionPrompt renders a follow-up prompt that applies one comment to
// the previous Markdown draft with minimal edits.
func BuildRevisionPrompt(req BlogRequest, prevMarkdown, comment string, history []Turn) Prompt {
	var sb strings.Builder
	sb.WriteString("You are an expert blog editor. Apply the requested changes with minimal edits and keep the Markdown structure intact.\n")
	sb.WriteString("- Keep the heading hierarchy (one H1, then H2/H3 sections)\n")
	sb.WriteString("- Keep bullet points and numbered lists formatted as lists\n")
	if len(req.Keywords) > 0 {
		fmt.Fprintf(&sb, "- Keep every SEO keyword present at least once: %s\n", strings.Join(req.Keywords, ", "))
	}
	fmt.Fprintf(&sb, "- Stay close to the original target of approximately %d words\n", req.TargetWords())

	user := fmt.Sprintf("Current draft:\n%s\n\nRequested changes: %s\n\nReturn the complete revised blog post as Markdown.", prevMarkdown, comment)

	// Carry earlier comments so repeated asks stay consistent.
	var msgs []Message
	for _, t := range history {
		if t.Comment == "" {
			continue
		}
		msgs = append(msgs, Message{Role: "user", Content: t.Comment})
	}

	return Prompt{
		System:  sb.String(),
		User:    user,
		History: msgs,
	}
}
