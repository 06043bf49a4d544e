package console

import (
	"context"
	"time"

	"github.com/dtroode/internhub/internal/model"
)

// handlerFunc runs one console command.
type handlerFunc func(ctx context.Context, args []string) error

// sessionHandlerFunc runs a command on behalf of the current session.
type sessionHandlerFunc func(ctx context.Context, session model.Session, args []string) error

// authenticate resolves the current session and passes it to next.
func (c *Console) authenticate(next sessionHandlerFunc) handlerFunc {
	return func(ctx context.Context, args []string) error {
		session, err := c.current(ctx)
		if err != nil {
			return err
		}
		return next(ctx, session, args)
	}
}

// logging records the command name, duration and outcome.
func (c *Console) logging(name string, next handlerFunc) handlerFunc {
	return func(ctx context.Context, args []string) error {
		start := time.Now()
		c.logger.Debug("Console command started", "command", name, "args", len(args))

		err := next(ctx, args)

		if err != nil {
			c.logger.Info("Console command failed",
				"command", name,
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err.Error())
			return err
		}

		c.logger.Debug("Console command completed",
			"command", name,
			"duration_ms", time.Since(start).Milliseconds())
		return nil
	}
}
