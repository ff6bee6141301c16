package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.newFlagSet("login")
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password (read from stdin when omitted)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *username == "" {
		name, err := a.prompt("username: ")
		if err != nil {
			return err
		}
		*username = name
	}
	if *password == "" {
		pw, err := a.prompt("password: ")
		if err != nil {
			return err
		}
		*password = pw
	}

	if err := a.sessions.Login(ctx, *username, *password); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s.\n", *username)
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := a.newFlagSet("register")
	name := fs.String("u", "", "username")
	password := fs.String("p", "", "password (read from stdin when omitted)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *name == "" {
		return usageErrorf("register: -u is required")
	}
	if *password == "" {
		pw, err := a.prompt("password: ")
		if err != nil {
			return err
		}
		*password = pw
	}

	if err := a.sessions.Register(ctx, *name, *password); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered %s. Run `shipadmin login` to sign in.\n", *name)
	return nil
}

func (a *App) logout(ctx context.Context, args []string) error {
	if err := parseFlags(a.newFlagSet("logout"), args); err != nil {
		return err
	}
	a.sessions.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) refresh(ctx context.Context, args []string) error {
	if err := parseFlags(a.newFlagSet("refresh"), args); err != nil {
		return err
	}
	if err := a.sessions.Refresh(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Access token refreshed.")
	return nil
}

func (a *App) status(ctx context.Context, args []string) error {
	if err := parseFlags(a.newFlagSet("status"), args); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.sessions.State(ctx))
	return nil
}

// prompt writes label to errOut and reads one line from in. The line is not
// echoed back anywhere.
func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.errOut, label)
	line, err := a.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" && err != nil {
		return "", usageErrorf("no input for %s", strings.TrimSuffix(label, ": "))
	}
	return line, nil
}
