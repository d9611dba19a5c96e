package testutils

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/kosuke/pkg/ports"
)

// ScriptedPrompter is a ports.Prompter that answers prompts from a fixed
// script. When the script runs out, Ask reports ports.ErrInputClosed, the same
// as a closed terminal. The word "abort" yields ports.ErrUserAborted.
type ScriptedPrompter struct {
	mu      sync.Mutex
	answers []string

	Prompts []string
	Shown   []string
	Notices []Notice
}

// Notice is one recorded Notify call.
type Notice struct {
	Level   ports.NoticeLevel
	Message string
}

// NewScriptedPrompter creates a prompter that replays answers in order.
func NewScriptedPrompter(answers ...string) *ScriptedPrompter {
	return &ScriptedPrompter{answers: answers}
}

func (s *ScriptedPrompter) Show(markdown string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Shown = append(s.Shown, markdown)
}

func (s *ScriptedPrompter) Notify(level ports.NoticeLevel, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notices = append(s.Notices, Notice{Level: level, Message: message})
}

func (s *ScriptedPrompter) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prompts = append(s.Prompts, prompt)

	if len(s.answers) == 0 {
		return "", ports.ErrInputClosed
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]

	if strings.EqualFold(answer, "abort") {
		return "", ports.ErrUserAborted
	}
	return strings.TrimSpace(answer), nil
}

// Remaining returns the number of unused answers.
func (s *ScriptedPrompter) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

// Errors returns the messages of every NoticeError recorded so far.
func (s *ScriptedPrompter) Errors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, n := range s.Notices {
		if n.Level == ports.NoticeError {
			out = append(out, n.Message)
		}
	}
	return out
}

// AskedContaining reports whether any prompt contained substr.
func (s *ScriptedPrompter) AskedContaining(substr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.Prompts {
		if strings.Contains(p, substr) {
			return true
		}
	}
	return false
}

// ChdirTemp switches the working directory to a fresh temp dir for the
// duration of the test. Tests using it must not run in parallel.
func ChdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}
