// pkg/vision_io/terminal.go
//
// All interactive IO flows through Terminal so menus and prompts can be
// driven by scripted readers and writers in tests. User-visible text is
// written here and mirrored to the structured log at debug level.

package vision_io

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/wastevision/visionctl/pkg/vision_err"
	"go.uber.org/zap"
	"golang.org/x/term"
)

type Terminal struct {
	in          *bufio.Reader
	out         io.Writer
	errOut      io.Writer
	interactive bool
}

// NewTerminal builds a terminal over arbitrary streams. Used by tests
// and by any caller that needs redirected IO.
func NewTerminal(in io.Reader, out, errOut io.Writer) *Terminal {
	return &Terminal{
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
	}
}

// DefaultTerminal wires the process streams and detects whether both
// ends are attached to a TTY.
func DefaultTerminal() *Terminal {
	t := NewTerminal(os.Stdin, os.Stdout, os.Stderr)
	t.interactive = term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	return t
}

func (t *Terminal) Interactive() bool {
	return t.interactive
}

// Out exposes the output stream for subprocesses that should write
// directly to the operator's terminal.
func (t *Terminal) Out() io.Writer {
	return t.out
}

func (t *Terminal) Print(text string) {
	fmt.Fprint(t.out, text)
}

func (t *Terminal) Printf(format string, args ...interface{}) {
	fmt.Fprintf(t.out, format, args...)
}

func (t *Terminal) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(t.errOut, format, args...)
}

// ClearScreen resets the display before a render pass. It emits nothing
// when the terminal is not interactive, keeping captured output stable.
func (t *Terminal) ClearScreen() {
	if t.interactive {
		fmt.Fprint(t.out, "\x1b[2J\x1b[H")
	}
}

// ReadLine prints prompt, then reads one line and trims surrounding
// whitespace. EOF and closed input map to vision_err.ErrInterrupted;
// read errors are never converted into validation failures.
func (t *Terminal) ReadLine(ctx context.Context, prompt string) (string, error) {
	logger := otelzap.Ctx(ctx)
	if prompt != "" {
		logger.Debug("terminal prompt: " + prompt)
		fmt.Fprint(t.out, prompt)
	}

	if err := ctx.Err(); err != nil {
		return "", cerr.Wrap(vision_err.ErrInterrupted, "context cancelled")
	}

	line, err := t.in.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			// A final unterminated line still counts as input.
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				return trimmed, nil
			}
			logger.Debug("terminal input closed", zap.String("prompt", prompt))
			return "", cerr.Wrap(vision_err.ErrInterrupted, "input stream closed")
		}
		return "", cerr.Wrap(err, "failed to read input")
	}

	return strings.TrimSpace(line), nil
}

// Acknowledge blocks until the user presses Enter. Read failures
// propagate so cancellation during the pause unwinds the caller.
func (t *Terminal) Acknowledge(ctx context.Context) error {
	_, err := t.ReadLine(ctx, "\nPress Enter to continue...")
	return err
}
