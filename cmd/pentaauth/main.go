// pentaauth is a command-line front end for the PentaLedger session holder.
//
// The session persists between invocations in the configured storage
// backend, so "pentaauth login" followed by "pentaauth whoami" reports the
// logged-in principal. Settings come from PENTAAUTH_* environment variables
// (and a .env file), overridable by the global flags.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/infinitysurge/pentaauth"
	"github.com/spf13/pflag"
)

const usage = `usage: pentaauth [global flags] <command> [args]

commands:
  login --email E --password P   authenticate and persist the session
  logout                         drop the session
  whoami                         print the current session state
  can RESOURCE ACTION            exit 0 when permitted, 1 otherwise
  access PATH                    exit 0 when the page is visible, 1 otherwise
  pages                          list visible pages
  serve [--addr A]               expose the session over HTTP

global flags:
`

// exitError carries a process exit code without an error message.
type exitError int

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }
func (e exitError) ExitCode() int { return int(e) }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	global := pflag.NewFlagSet("pentaauth", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.StringVar(&cfg.Storage, "storage", cfg.Storage, "session storage: file, redis, postgres, memory, none")
	global.StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "directory for file storage")
	global.StringVar(&cfg.PolicyFile, "policy", cfg.PolicyFile, "YAML policy and navigation file")
	global.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn, error")
	global.StringVar(&cfg.AuthURL, "auth-url", cfg.AuthURL, "remote authentication endpoint; empty uses the built-in accounts")
	global.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		global.PrintDefaults()
	}
	if err := global.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return exitError(2)
	}

	logger, err := cfg.newLogger()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	engine, release, err := cfg.buildEngine(ctx, logger)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	defer release()

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "login":
		return runLogin(ctx, engine, cmdArgs, out)
	case "logout":
		engine.Logout(ctx)
		fmt.Fprintln(out, "logged out")
		return nil
	case "whoami":
		return writeJSON(out, sessionView(engine))
	case "can":
		if len(cmdArgs) != 2 {
			return errors.New("can: expected RESOURCE ACTION")
		}
		return verdict(out, engine.Can(cmdArgs[0], cmdArgs[1]))
	case "access":
		if len(cmdArgs) != 1 {
			return errors.New("access: expected PATH")
		}
		return verdict(out, engine.CanAccessPage(cmdArgs[0]))
	case "pages":
		for _, p := range engine.AccessiblePages() {
			fmt.Fprintf(out, "%-20s %s\n", p.Path, p.Label)
		}
		return nil
	case "serve":
		return runServe(ctx, engine, cfg, logger, cmdArgs)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func runLogin(ctx context.Context, engine *pentaauth.Engine, args []string, out io.Writer) error {
	var email, password string
	fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
	fs.StringVarP(&email, "email", "e", "", "account email")
	fs.StringVarP(&password, "password", "p", os.Getenv("PENTAAUTH_PASSWORD"), "account password (or PENTAAUTH_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if email == "" {
		return errors.New("login: --email is required")
	}

	res := engine.Login(ctx, email, password)
	if !res.Success {
		fmt.Fprintln(out, res.Error)
		return exitError(1)
	}
	fmt.Fprintf(out, "logged in as %s (%s)\n", res.Principal.Email, res.Principal.Role)
	return nil
}

func verdict(out io.Writer, ok bool) error {
	if ok {
		fmt.Fprintln(out, "allowed")
		return nil
	}
	fmt.Fprintln(out, "denied")
	return exitError(1)
}

type sessionJSON struct {
	Status          string `json:"status"`
	IsAuthenticated bool   `json:"is_authenticated"`
	IsLoading       bool   `json:"is_loading"`
	Email           string `json:"email,omitempty"`
	Name            string `json:"name,omitempty"`
	Role            string `json:"role,omitempty"`
}

func sessionView(engine *pentaauth.Engine) sessionJSON {
	st := engine.State()
	v := sessionJSON{
		Status:          st.Status().String(),
		IsAuthenticated: st.IsAuthenticated,
		IsLoading:       st.IsLoading,
	}
	if p := st.Principal; p != nil {
		v.Email, v.Name, v.Role = p.Email, p.Name, p.Role.String()
	}
	return v
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
