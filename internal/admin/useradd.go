// Package admin implements the useradd command: it provisions the
// principals that may exchange credentials for tokens.
package admin

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/tokenkeeper/internal/flagx"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// UserManager is the part of services.UserService the command drives.
type UserManager interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	SetActive(ctx context.Context, username string, active bool) error
}

type Options struct {
	Username   string
	Activate   bool
	Deactivate bool
}

// ParseArgs reads -u, -activate and -deactivate from args and ignores
// everything else, so the server's own flags (-driver, -d, -c) can be
// passed on the same command line.
func ParseArgs(args []string) (Options, error) {
	var o Options

	fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&o.Username, "u", "", "username")
	fs.BoolVar(&o.Activate, "activate", false, "re-enable an existing user")
	fs.BoolVar(&o.Deactivate, "deactivate", false, "disable an existing user")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-u", "-activate", "-deactivate"})); err != nil {
		return o, err
	}

	if strings.TrimSpace(o.Username) == "" {
		return o, errors.New("-u is required")
	}
	if o.Activate && o.Deactivate {
		return o, errors.New("-activate and -deactivate are mutually exclusive")
	}
	return o, nil
}

// GetPassword prompts on w and reads a password without echo when stdin is
// a terminal, or a single line from r otherwise.
func GetPassword(r *bufio.Reader, w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if isTerminal(fd) {
		if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
			return "", err
		}
		pw, err := readPassword(fd)
		fmt.Fprintln(w)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}

	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Run applies o through m. Activation changes need no password.
func Run(ctx context.Context, m UserManager, o Options, password func() (string, error), w io.Writer) error {
	switch {
	case o.Activate, o.Deactivate:
		if err := m.SetActive(ctx, o.Username, o.Activate); err != nil {
			return fmt.Errorf("unable to update %q: %w", o.Username, err)
		}
		state := "active"
		if o.Deactivate {
			state = "inactive"
		}
		_, err := fmt.Fprintf(w, "user %s is now %s\n", o.Username, state)
		return err
	}

	pw, err := password()
	if err != nil {
		return fmt.Errorf("unable to read password: %w", err)
	}

	u, err := m.Register(ctx, o.Username, pw)
	if err != nil {
		return fmt.Errorf("unable to create %q: %w", o.Username, err)
	}

	_, err = fmt.Fprintf(w, "created user %s (%s)\n", u.UserName, u.ID)
	return err
}
