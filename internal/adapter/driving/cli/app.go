// Package cli is the shipadmin command-line front end. Each command plays the
// role of one screen: it calls a service, renders the result, and maps
// failures onto a message and an exit code.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ericfisherdev/shipadmin/internal/application"
	"github.com/ericfisherdev/shipadmin/internal/domain/model"
)

// Exit codes.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitUsage        = 2
	ExitUnauthorized = 3
)

// App dispatches command lines to the session and ship services.
type App struct {
	sessions *application.SessionService
	ships    *application.ShipService
	in       *bufio.Reader
	out      io.Writer
	errOut   io.Writer
	logger   *slog.Logger
}

// NewApp creates an App. in supplies passwords that were not given as flags;
// out receives command output and errOut receives error messages.
func NewApp(sessions *application.SessionService, ships *application.ShipService, in io.Reader, out, errOut io.Writer, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		sessions: sessions,
		ships:    ships,
		in:       bufio.NewReader(in),
		out:      out,
		errOut:   errOut,
		logger:   logger,
	}
}

// errUsage marks command-line mistakes. Bare errUsage means the flag set has
// already reported the problem; wrapped forms carry a message for fail.
var errUsage = errors.New("usage")

// Run executes one command line (without the program name) and returns the
// process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.usage()
		return ExitUsage
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "login":
		err = a.login(ctx, rest)
	case "register":
		err = a.register(ctx, rest)
	case "logout":
		err = a.logout(ctx, rest)
	case "refresh":
		err = a.refresh(ctx, rest)
	case "status":
		err = a.status(ctx, rest)
	case "ships":
		err = a.shipsCommand(ctx, rest)
	case "import":
		err = a.importShips(ctx, rest)
	case "help", "-h", "--help":
		a.usage()
		return ExitOK
	default:
		fmt.Fprintf(a.errOut, "unknown command %q\n", cmd)
		a.usage()
		return ExitUsage
	}

	return a.fail(err)
}

// fail prints err as one line and returns its exit code.
func (a *App) fail(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	if errors.Is(err, errUsage) {
		if err != errUsage {
			fmt.Fprintln(a.errOut, strings.TrimPrefix(err.Error(), errUsage.Error()+": "))
		}
		return ExitUsage
	}

	a.logger.Debug("command failed", "error", err)
	fmt.Fprintln(a.errOut, "error: "+describe(err))
	if errors.Is(err, model.ErrUnauthorized) {
		return ExitUnauthorized
	}
	return ExitFailure
}

// describe renders err for an operator. Validation reasons are shown
// verbatim; the taxonomy sentinels get fixed wording.
func describe(err error) string {
	var verr *model.ValidationError
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		return "session expired or missing, run `shipadmin login`"
	case errors.Is(err, model.ErrInvalidCredentials):
		return "invalid username or password"
	case errors.As(err, &verr):
		return verr.Reason
	case errors.Is(err, model.ErrNotFound):
		return "ship not found"
	case errors.Is(err, model.ErrTransport):
		return "backend unavailable: " + err.Error()
	default:
		return err.Error()
	}
}

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}

func (a *App) usage() {
	fmt.Fprint(a.errOut, `usage: shipadmin [--config file] <command> [flags]

session:
  login     [-u name] [-p password]   sign in and store the credential pair
  register  -u name [-p password]     create an operator account
  logout                              revoke the session and forget it locally
  refresh                             exchange the refresh token for a new access token
  status                              show whether a session is stored

ships:
  ships list   [-json]
  ships get    <id> [-json]
  ships create --model M --class C [--affiliation A] [--manufacturer M]
               [--category C] [--crew N] [--length L] [--roles "a, b"]
  ships edit   <id> [same flags as create]
  ships delete <id>
  import <file.json|file.yaml>        create every ship listed in a seed file
`)
}

// newFlagSet returns a flag set that reports errors instead of exiting and
// writes its own usage to errOut.
func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// parseFlags wraps fs.Parse so parse failures map to ExitUsage. The flag set
// has already printed the problem.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	return nil
}
