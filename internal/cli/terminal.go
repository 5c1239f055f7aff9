package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/survey-system/surveyconsole/internal/client"
	"golang.org/x/term"
)

// TerminalNotifier prints the client's notifications to the terminal (stderr)
type TerminalNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminalNotifier(w io.Writer) *TerminalNotifier {
	return &TerminalNotifier{w: w}
}

func (n *TerminalNotifier) Notify(_ context.Context, notification client.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "[%s] %s\n", notification.Level, notification.Message)
}

// LoginHint is the cli's navigator: there is nowhere to redirect to, so it tells the user how to log in
// and which command to run again.
type LoginHint struct {
	mu      sync.Mutex
	w       io.Writer
	binary  string
	printed bool
}

func NewLoginHint(w io.Writer, binary string) *LoginHint {
	return &LoginHint{w: w, binary: binary}
}

func (l *LoginHint) RedirectToLogin(_ context.Context, returnTo string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.printed {
		return client.ErrDuplicateNavigation
	}
	l.printed = true

	fmt.Fprintf(l.w, "Log in with `%s login`", l.binary)
	if returnTo != "" {
		fmt.Fprintf(l.w, " and then run `%s` again", returnTo)
	}
	fmt.Fprintln(l.w, ".")
	return nil
}

// readPassword prompts for a password without echo when in is a terminal, otherwise it reads one line
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
