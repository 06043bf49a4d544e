// Package console is the line-oriented terminal front end. It owns the one
// current session and passes its user into every core operation.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dtroode/internhub/internal/logger"
	"github.com/dtroode/internhub/internal/model"
	"github.com/dtroode/internhub/internal/service"
)

// Services groups the core the console drives.
type Services struct {
	Identity    *service.Identity
	Catalog     *service.Catalog
	Ledger      *service.Ledger
	Projections *service.Projections
	// Gatherer backs the metrics command; nil disables it.
	Gatherer prometheus.Gatherer
}

// Console reads commands from in and writes responses to out.
type Console struct {
	svc    Services
	in     *bufio.Reader
	out    io.Writer
	logger *logger.Logger

	// token is the current session token, empty when logged out.
	token string
	// echo prints each command after the prompt, for scripted input.
	echo bool

	readPassword func() (string, error)
	commands     map[string]handlerFunc
}

func New(svc Services, in io.Reader, out io.Writer, logger *logger.Logger) *Console {
	c := &Console{
		svc:    svc,
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
	}
	c.readPassword = c.readLine
	c.commands = c.routes()
	return c
}

// UseTerminalPassword reads omitted login passwords from the terminal fd
// without echo.
func (c *Console) UseTerminalPassword(fd int) {
	c.readPassword = func() (string, error) {
		pw, err := readPassword(fd)
		fmt.Fprintln(c.out)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}
}

// EchoCommands prints each command next to its prompt.
func (c *Console) EchoCommands(on bool) {
	c.echo = on
}

// Run processes commands until exit, end of input or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	c.println("InternHub console (type 'help' for commands)")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		c.printf("internhub%s> ", c.promptUser(ctx))
		line, err := c.readLine()
		if errors.Is(err, io.EOF) && line == "" {
			c.println()
			return nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read command: %w", err)
		}
		if c.echo {
			c.println(line)
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		if quit := c.dispatch(ctx, parts[0], parts[1:]); quit {
			c.println("Bye!")
			return nil
		}
	}
}

func (c *Console) routes() map[string]handlerFunc {
	routes := map[string]handlerFunc{
		"help":         c.help,
		"login":        c.login,
		"logout":       c.logout,
		"whoami":       c.authenticate(c.whoami),
		"internships":  c.authenticate(c.internships),
		"apply":        c.authenticate(c.apply),
		"applications": c.authenticate(c.applications),
		"approve":      c.authenticate(c.reviewAs(model.StatusApproved)),
		"reject":       c.authenticate(c.reviewAs(model.StatusRejected)),
		"post":         c.authenticate(c.post),
		"dashboard":    c.authenticate(c.dashboard),
		"stats":        c.authenticate(c.stats),
		"metrics":      c.metrics,
	}
	for name, h := range routes {
		routes[name] = c.logging(name, h)
	}
	return routes
}

func (c *Console) dispatch(ctx context.Context, cmd string, args []string) bool {
	cmd = strings.ToLower(cmd)
	if cmd == "exit" || cmd == "quit" {
		return true
	}

	handler, ok := c.commands[cmd]
	if !ok {
		c.println("Unknown command:", cmd)
		return false
	}

	if err := handler(ctx, args); err != nil {
		c.println(describe(err))
	}
	return false
}

// current resolves the held token. A revoked or expired session is dropped.
func (c *Console) current(ctx context.Context) (model.Session, error) {
	if c.token == "" {
		return model.Session{}, model.ErrUnauthenticated
	}

	session, err := c.svc.Identity.Resolve(ctx, c.token)
	if err != nil {
		if errors.Is(err, model.ErrSessionExpired) || errors.Is(err, model.ErrSessionRevoked) || errors.Is(err, model.ErrUnauthenticated) {
			c.token = ""
		}
		return model.Session{}, err
	}

	return session, nil
}

func (c *Console) promptUser(ctx context.Context) string {
	if c.token == "" {
		return ""
	}
	session, err := c.current(ctx)
	if err != nil {
		return ""
	}
	return fmt.Sprintf(" [%s]", session.User.Role)
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}
