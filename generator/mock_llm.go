package generator

import (
	"context"
	"strings"
)

// MockLLM is a simple placeholder implementation for local debugging that
// never calls an external model.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	// Shape the output like a real draft so the formatter has something to chew on.
	var sb strings.Builder
	sb.WriteString("# Sample Generated Post\n\n")
	sb.WriteString("An introduction paragraph that frames the topic and what the reader will learn.\n\n")
	sb.WriteString("## Overview\n\n")
	sb.WriteString("- First supporting point\n")
	sb.WriteString("- Second supporting point\n\n")
	sb.WriteString("## Putting It Into Practice\n\n")
	sb.WriteString("1. Start with the basics\n")
	sb.WriteString("2. Iterate on what works\n\n")
	sb.WriteString("See also [INTERNAL_LINK: related topic].\n\n")
	sb.WriteString("## Conclusion\n\n")
	sb.WriteString("A closing paragraph for the brief below:\n\n")
	sb.WriteString("```\n")
	sb.WriteString(prompt.User)
	sb.WriteString("\n```\n")
	return sb.String(), nil
}
