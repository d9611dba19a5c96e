package ports

import (
	"context"
	"errors"
)

// ErrUserAborted is returned by Ask when the operator types an abort word.
var ErrUserAborted = errors.New("aborted by operator")

// ErrInputClosed is returned by Ask when the input stream reaches EOF.
var ErrInputClosed = errors.New("input closed")

// NoticeLevel styles a one-line status message.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

// Prompter is the operator-facing I/O used by the wizard.
type Prompter interface {
	// Show renders a block of markdown instructions.
	Show(markdown string)

	// Notify prints a one-line status message.
	Notify(level NoticeLevel, message string)

	// Ask prints prompt and blocks until the operator answers, the context is
	// cancelled or the input closes. The answer is trimmed.
	Ask(ctx context.Context, prompt string) (string, error)
}
