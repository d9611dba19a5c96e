package runner_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/kosuke/pkg/ports"
	"github.com/aretw0/kosuke/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPrompter_Ask(t *testing.T) {
	var out bytes.Buffer
	tp := runner.NewTextPrompter(strings.NewReader("  my-app \nsecond\r\n"), &out)

	first, err := tp.Ask(context.Background(), "Name:")
	require.NoError(t, err)
	assert.Equal(t, "my-app", first)

	second, err := tp.Ask(context.Background(), "Again:")
	require.NoError(t, err)
	assert.Equal(t, "second", second)

	assert.Equal(t, "Name: Again: ", out.String())
}

func TestTextPrompter_AbortWords(t *testing.T) {
	for _, word := range []string{"abort", "QUIT", "exit"} {
		t.Run(word, func(t *testing.T) {
			tp := runner.NewTextPrompter(strings.NewReader(word+"\n"), io.Discard)
			_, err := tp.Ask(context.Background(), ">")
			assert.ErrorIs(t, err, ports.ErrUserAborted)
		})
	}
}

func TestTextPrompter_QuotedAbortWordIsAnAnswer(t *testing.T) {
	tp := runner.NewTextPrompter(strings.NewReader("\"exit\"\n'Quit'\n\"other\"\n"), io.Discard)

	answer, err := tp.Ask(context.Background(), ">")
	require.NoError(t, err)
	assert.Equal(t, "exit", answer)

	answer, err = tp.Ask(context.Background(), ">")
	require.NoError(t, err)
	assert.Equal(t, "Quit", answer)

	answer, err = tp.Ask(context.Background(), ">")
	require.NoError(t, err)
	assert.Equal(t, `"other"`, answer)
}

func TestTextPrompter_ClosedInput(t *testing.T) {
	tp := runner.NewTextPrompter(strings.NewReader("last"), io.Discard)

	answer, err := tp.Ask(context.Background(), ">")
	require.NoError(t, err)
	assert.Equal(t, "last", answer)

	_, err = tp.Ask(context.Background(), ">")
	assert.ErrorIs(t, err, ports.ErrInputClosed)
}

func TestTextPrompter_ContextCancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	tp := runner.NewTextPrompter(pr, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := tp.Ask(ctx, ">")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, tp.Awaiting())
}

func TestTextPrompter_RejectsOversizedInput(t *testing.T) {
	t.Setenv(runner.EnvMaxInputSize, "8")
	var out bytes.Buffer
	tp := runner.NewTextPrompter(strings.NewReader("0123456789abcdef\nok\n"), &out)

	answer, err := tp.Ask(context.Background(), ">")
	require.NoError(t, err)
	assert.Equal(t, "ok", answer)
	assert.Contains(t, out.String(), "Please try again")
}

func TestTextPrompter_ShowAndNotify(t *testing.T) {
	var out bytes.Buffer
	tp := runner.NewTextPrompter(strings.NewReader(""), &out,
		runner.WithPrompterRenderer(func(md string) (string, error) { return "<" + md + ">\n\n", nil }),
		runner.WithNoticeStyler(func(level ports.NoticeLevel, msg string) string { return "[" + msg + "]" }),
	)

	tp.Show("# Title")
	tp.Notify(ports.NoticeSuccess, "done")

	assert.Equal(t, "<# Title>\n[done]\n", out.String())
}

func TestPlainNotice(t *testing.T) {
	assert.Equal(t, "✅ ok", runner.PlainNotice(ports.NoticeSuccess, "ok"))
	assert.Equal(t, "❌ bad", runner.PlainNotice(ports.NoticeError, "bad"))
	assert.True(t, strings.HasSuffix(runner.PlainNotice(ports.NoticeInfo, "fyi"), "fyi"))
}
