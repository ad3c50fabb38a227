package generator

import (
	"context"
	"errors"
)

// Agent turns one BlogRequest into generated Markdown, either a first draft
// or a comment-driven revision.
type Agent struct {
	llm LLMClient
}

func NewAgent(llm LLMClient) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{llm: llm}, nil
}

// Generate produces the first draft when prevMarkdown is empty, otherwise a
// revision of it. The returned string is post-processed Markdown.
func (a *Agent) Generate(ctx context.Context, req BlogRequest, prevMarkdown, comment string, history []Turn) (string, error) {
	var prompt Prompt
	if prevMarkdown == "" {
		prompt = BuildBlogPrompt(req)
	} else {
		prompt = BuildRevisionPrompt(req, prevMarkdown, comment, history)
	}

	raw, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return PostProcess(raw)
}
