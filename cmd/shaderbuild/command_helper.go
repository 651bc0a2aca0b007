package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/shaderbuild/internal/infrastructure/container"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// ContainerOption adjusts container options for one command.
type ContainerOption func(*cobra.Command, *container.Options)

// withContainer wraps a command handler with container initialization.
// Handles common setup: project config loading, flag and environment
// overrides, dependency injection.
//
// Usage:
//
//	cmd := &cobra.Command{
//	    Use: "modules",
//	    RunE: withContainer(g, func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
//	        _, err := ctx.Container.ModuleResolver().Describe(ctx.Context)
//	        return err
//	    }),
//	}
func withContainer(g *globalOptions, handler CommandHandler, configure ...ContainerOption) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()

		opts := container.Options{
			RootDir:         g.v.GetString("root"),
			CompilerPath:    g.v.GetString("compiler"),
			Platform:        g.v.GetString("platform"),
			CheckExitStatus: g.checkExitStatus(),
			Logger:          logger,
			Stdout:          cmd.OutOrStdout(),
			Stderr:          cmd.ErrOrStderr(),
		}
		for _, fn := range configure {
			fn(cmd, &opts)
		}

		c, err := container.New(opts)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		ctx := &CommandContext{
			Container: c,
			Logger:    logger,
			Context:   cmd.Context(),
		}

		return handler(ctx, cmd, args)
	}
}
