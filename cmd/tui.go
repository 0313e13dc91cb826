package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/setlistx/internal/shared"
	"github.com/desertthunder/setlistx/internal/tasks"
	"github.com/desertthunder/setlistx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI runs the --username export behind the interactive progress view.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	if username == "" {
		return fmt.Errorf("%w: --username", shared.ErrMissingArgument)
	}

	req, err := r.exportRequest(cmd, tasks.SubjectUser, username)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/setlistx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	svc, err := r.setlistService(cmd)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, tasks.NewExportEngine(svc, r.logger), req)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if err := model.Err(); err != nil {
		if errors.Is(err, context.Canceled) {
			r.logger.Warn("export interrupted")
			return nil
		}
		return err
	}
	return nil
}
