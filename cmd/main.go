package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/dtroode/internhub/internal/config"
	"github.com/dtroode/internhub/internal/console"
	"github.com/dtroode/internhub/internal/logger"
)

const programName = "internhub"

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   programName,
		Short: "Internship placement console for students, mentors and the placement cell",
		RunE: func(cmd *cobra.Command, args []string) error {
			return consoleRun(cmd, nil)
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(consoleCommand())
	rootCmd.AddCommand(demoCommand())
	rootCmd.AddCommand(versionCommand())

	return rootCmd
}

func consoleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Start the interactive console",
		RunE: func(cmd *cobra.Command, args []string) error {
			return consoleRun(cmd, nil)
		},
	}
}

func demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted walkthrough of every role against the seed data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return consoleRun(cmd, &demoScript)
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			logAppVersion(cmd.OutOrStdout())
		},
	}
}

// consoleRun wires the application and drives the console from stdin, or
// from script when it is not nil.
func consoleRun(cmd *cobra.Command, script *string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Printf("failed to parse config: %v", err)
		return err
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, v ...any) {
		logger.Debug(fmt.Sprintf(format, v...), "component", programName)
	})); err != nil {
		logger.Warn("failed to set GOMAXPROCS", "error", err)
	}

	ctx := cmd.Context()
	svc, err := buildServices(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		return err
	}

	var c *console.Console
	if script != nil {
		c = console.New(svc, strings.NewReader(*script), cmd.OutOrStdout(), logger)
		c.EchoCommands(true)
	} else {
		c = console.New(svc, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
		if fd := int(os.Stdin.Fd()); console.IsTerminal(fd) {
			c.UseTerminalPassword(fd)
		}
	}

	logger.Info("console started", "auth_mode", cfg.Auth.Mode, "version", buildVersion)
	if err := c.Run(ctx); err != nil {
		logger.Error("console stopped", "error", err)
		return err
	}

	return nil
}
