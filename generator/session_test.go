package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/EDWNKR/AI-BLOG-WRITER/format"
)

type fakeLLM struct {
	replies []string
	prompts []Prompt
	err     error
}

func (f *fakeLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func TestSessionProposeAndRevise(t *testing.T) {
	llm := &fakeLLM{replies: []string{
		"# First Draft\n\nIntro with [INTERNAL_LINK: related topic].\n\n## Section\n\nBody.",
		"# Revised Draft\n\nShorter intro.\n\n## Section\n\nBody.",
	}}
	agent, err := NewAgent(llm)
	if err != nil {
		t.Fatal(err)
	}
	req, err := BlogRequest{Title: "Test Post", Length: LengthShort}.Normalize()
	if err != nil {
		t.Fatal(err)
	}
	sess := NewSession("s1", req, agent)

	content, err := sess.Propose(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(content.Body, "[related topic]") {
		t.Fatalf("internal link placeholder not rewritten: %q", content.Body)
	}
	if content.Format != format.Markdown {
		t.Fatalf("format=%q", content.Format)
	}
	if content.WordCount == 0 {
		t.Fatal("expected a word count")
	}
	if len(sess.History) != 1 || sess.History[0].Summary != "initial draft" {
		t.Fatalf("history=%+v", sess.History)
	}

	revised, err := sess.Revise(context.Background(), "shorten the intro")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(revised.Body, "Revised Draft") {
		t.Fatalf("revision not applied: %q", revised.Body)
	}
	if len(sess.History) != 2 || sess.History[1].Comment != "shorten the intro" {
		t.Fatalf("history=%+v", sess.History)
	}

	// The revision prompt must feed the previous draft back in.
	if len(llm.prompts) != 2 {
		t.Fatalf("prompts=%d", len(llm.prompts))
	}
	if !strings.Contains(llm.prompts[1].User, "First Draft") {
		t.Fatalf("revision prompt missing previous markdown: %q", llm.prompts[1].User)
	}
}

func TestSessionProposeRendersHTML(t *testing.T) {
	llm := &fakeLLM{replies: []string{"# Title\n\nA paragraph."}}
	agent, _ := NewAgent(llm)
	req, _ := BlogRequest{Title: "HTML Post", Format: format.HTML}.Normalize()
	sess := NewSession("s2", req, agent)

	content, err := sess.Propose(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if content.Format != format.HTML {
		t.Fatalf("format=%q", content.Format)
	}
	if !strings.Contains(content.Body, "<h1>") {
		t.Fatalf("expected rendered HTML, got %q", content.Body)
	}
	// Revisions keep working from the Markdown source.
	if !strings.Contains(sess.Markdown, "# Title") {
		t.Fatalf("markdown source lost: %q", sess.Markdown)
	}
}

func TestSessionProposeSurfacesLLMError(t *testing.T) {
	llm := &fakeLLM{err: errors.New("rate limited")}
	agent, _ := NewAgent(llm)
	req, _ := BlogRequest{Title: "Failing Post"}.Normalize()
	sess := NewSession("s3", req, agent)

	if _, err := sess.Propose(context.Background()); err == nil {
		t.Fatal("expected the LLM error to surface")
	}
	if len(sess.History) != 0 {
		t.Fatalf("failed round must not be recorded: %+v", sess.History)
	}
}

func TestNewAgentRequiresLLM(t *testing.T) {
	if _, err := NewAgent(nil); err == nil {
		t.Fatal("expected an error for a nil client")
	}
}

func TestMockLLMProducesUsableDraft(t *testing.T) {
	out, err := MockLLM{}.Complete(context.Background(), BuildBlogPrompt(BlogRequest{Title: "x", Tone: ToneProfessional, Length: LengthShort}))
	if err != nil {
		t.Fatal(err)
	}
	md, err := PostProcess(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(md, "## ") {
		t.Fatalf("mock draft missing sections: %q", md)
	}
	if strings.Contains(md, "INTERNAL_LINK") {
		t.Fatalf("internal link placeholder survived post-processing: %q", md)
	}
}
