package generator

import (
	"context"
	"time"

	"github.com/EDWNKR/AI-BLOG-WRITER/format"
	"github.com/EDWNKR/AI-BLOG-WRITER/imagegen"
)

// Session holds one blog request's generation state for the lifetime of the
// request. Nothing here outlives the process; exported copies live on the
// destination platforms.
type Session struct {
	ID       string
	Request  BlogRequest
	Markdown string         // normalized Markdown source, kept for revisions
	Content  format.Content // rendered body in the requested output format
	Image    *imagegen.Image
	History  []Turn
	Warnings []string
	agent    *Agent
}

// NewSession creates a session; no draft exists until Propose runs.
func NewSession(id string, req BlogRequest, agent *Agent) *Session {
	return &Session{
		ID:      id,
		Request: req,
		agent:   agent,
	}
}

// Propose generates and renders the first draft.
func (s *Session) Propose(ctx context.Context) (format.Content, error) {
	md, err := s.agent.Generate(ctx, s.Request, "", "", s.History)
	if err != nil {
		return format.Content{}, err
	}
	return s.setDraft(md, "", "initial draft"), nil
}

// Revise applies one user comment to the current draft.
func (s *Session) Revise(ctx context.Context, comment string) (format.Content, error) {
	md, err := s.agent.Generate(ctx, s.Request, s.Markdown, comment, s.History)
	if err != nil {
		return format.Content{}, err
	}
	return s.setDraft(md, comment, "revision"), nil
}

// Warn records a non-fatal problem to surface alongside the content.
func (s *Session) Warn(msg string) {
	s.Warnings = append(s.Warnings, msg)
}

// setDraft normalizes, renders, and records one generation round. A failed
// HTML conversion degrades to the Markdown body and leaves a warning.
func (s *Session) setDraft(md, comment, summary string) format.Content {
	content, err := format.Render(md, s.Request.Format)
	if err != nil {
		s.Warn(err.Error())
	}
	s.Markdown = format.NormalizeHeadings(md)
	s.Content = content
	s.History = append(s.History, Turn{
		Comment:   comment,
		Summary:   summary,
		Content:   content,
		CreatedAt: time.Now(),
	})
	return content
}
