package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/kosuke/pkg/ports"
)

// ContentRenderer turns markdown into terminal output.
type ContentRenderer func(markdown string) (string, error)

// NoticeStyler formats a one-line status message.
type NoticeStyler func(level ports.NoticeLevel, message string) string

var abortWords = map[string]bool{
	"abort": true,
	"quit":  true,
	"exit":  true,
}

// quotedAbortWord returns the bare word for a quoted abort word, so "exit"
// in quotes is an answer and not a request to stop.
func quotedAbortWord(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	q := s[0]
	if (q != '"' && q != '\'') || s[len(s)-1] != q {
		return "", false
	}
	word := s[1 : len(s)-1]
	if !abortWords[strings.ToLower(word)] {
		return "", false
	}
	return word, true
}

// TextPrompter implements ports.Prompter over a line-oriented reader and writer.
type TextPrompter struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer
	Styler   NoticeStyler

	inputChan chan inputResult
	startOnce sync.Once

	mu       sync.Mutex
	awaiting bool
}

type inputResult struct {
	text string
	err  error
}

// TextPrompterOption defines configuration for TextPrompter.
type TextPrompterOption func(*TextPrompter)

// WithPrompterRenderer configures the markdown renderer used by Show.
func WithPrompterRenderer(renderer ContentRenderer) TextPrompterOption {
	return func(tp *TextPrompter) {
		tp.Renderer = renderer
	}
}

// WithNoticeStyler configures how Notify decorates messages.
func WithNoticeStyler(styler NoticeStyler) TextPrompterOption {
	return func(tp *TextPrompter) {
		tp.Styler = styler
	}
}

// NewTextPrompter creates a prompter for standard text IO.
func NewTextPrompter(r io.Reader, w io.Writer, opts ...TextPrompterOption) *TextPrompter {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	tp := &TextPrompter{
		Reader: bufio.NewReader(r),
		Writer: w,
		Styler: PlainNotice,
	}
	for _, opt := range opts {
		opt(tp)
	}
	return tp
}

func (tp *TextPrompter) initPump() {
	tp.startOnce.Do(func() {
		tp.inputChan = make(chan inputResult, DefaultInputBufferSize)
		go tp.pump()
	})
}

func (tp *TextPrompter) pump() {
	for {
		text, err := tp.Reader.ReadString('\n')

		if text != "" {
			tp.inputChan <- inputResult{text: text}
		}

		if err != nil {
			if err == io.EOF {
				close(tp.inputChan)
				return
			}
			tp.inputChan <- inputResult{err: err}
			// Backoff for non-fatal errors to prevent CPU spikes on persistent failure
			time.Sleep(50 * time.Millisecond)
		}
	}
}

// Show renders markdown through the configured renderer, falling back to the
// raw text when rendering fails.
func (tp *TextPrompter) Show(markdown string) {
	output := markdown
	if tp.Renderer != nil {
		if rendered, err := tp.Renderer(markdown); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(tp.Writer, strings.TrimRight(output, "\n"))
}

// Notify prints a styled status line.
func (tp *TextPrompter) Notify(level ports.NoticeLevel, message string) {
	styler := tp.Styler
	if styler == nil {
		styler = PlainNotice
	}
	fmt.Fprintln(tp.Writer, styler(level, message))
}

// Ask prints prompt and waits for a line. Oversized or malformed lines are
// rejected and asked again.
func (tp *TextPrompter) Ask(ctx context.Context, prompt string) (string, error) {
	tp.initPump()
	tp.setAwaiting(true)
	defer tp.setAwaiting(false)

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprint(tp.Writer, prompt+" ")
		}

		select {
		case <-ctx.Done():
			// the prompt line stays open; the caller decides how to close it
			return "", ctx.Err()
		case res, ok := <-tp.inputChan:
			if !ok {
				return "", ports.ErrInputClosed
			}
			if res.err != nil {
				return "", res.err
			}

			clean, err := SanitizeInput(res.text)
			if err != nil {
				fmt.Fprintln(tp.Writer, PlainNotice(ports.NoticeError, fmt.Sprintf("%v. Please try again.", err)))
				continue
			}
			if abortWords[strings.ToLower(clean)] {
				return "", ports.ErrUserAborted
			}
			if word, ok := quotedAbortWord(clean); ok {
				return word, nil
			}
			return clean, nil
		}
	}
}

// Awaiting reports whether a prompt is currently waiting for input.
func (tp *TextPrompter) Awaiting() bool {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	return tp.awaiting
}

func (tp *TextPrompter) setAwaiting(v bool) {
	tp.mu.Lock()
	tp.awaiting = v
	tp.mu.Unlock()
}

// PlainNotice prefixes message with a marker for its level.
func PlainNotice(level ports.NoticeLevel, message string) string {
	switch level {
	case ports.NoticeSuccess:
		return "✅ " + message
	case ports.NoticeWarning:
		return "⚠️  " + message
	case ports.NoticeError:
		return "❌ " + message
	default:
		return "ℹ️  " + message
	}
}
