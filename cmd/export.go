package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/setlistx/internal/shared"
	"github.com/desertthunder/setlistx/internal/tasks"
	"github.com/urfave/cli/v3"
)

var okStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

// ExportUser exports every setlist the --username user attended.
func (r *Runner) ExportUser(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	if username == "" {
		return fmt.Errorf("%w: --username", shared.ErrMissingArgument)
	}
	return r.export(ctx, cmd, tasks.SubjectUser, username)
}

// ExportArtist exports every setlist of the --mbid artist.
func (r *Runner) ExportArtist(ctx context.Context, cmd *cli.Command) error {
	mbid := cmd.String("mbid")
	if mbid == "" {
		return fmt.Errorf("%w: --mbid", shared.ErrMissingArgument)
	}
	return r.export(ctx, cmd, tasks.SubjectArtist, mbid)
}

func (r *Runner) export(ctx context.Context, cmd *cli.Command, subject tasks.Subject, id string) error {
	req, err := r.exportRequest(cmd, subject, id)
	if err != nil {
		return err
	}

	svc, err := r.setlistService(cmd)
	if err != nil {
		return err
	}
	engine := tasks.NewExportEngine(svc, r.logger)

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			if update.Phase == tasks.FetchPage && update.Step > 0 {
				r.logger.Info(update.Message, "phase", update.Phase)
			} else {
				r.logger.Debug(update.Message, "phase", update.Phase)
			}
		}
	}()

	result, err := engine.Run(ctx, progress, req)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	r.writePlainHeader(fmt.Sprintf("Setlists for %s %s", subject, id))
	r.writePlain("%s %d setlists, %d songs\n", okStyle.Render("✓"), len(result.Setlists), result.SongCount)
	r.writePlain("File: %s\n", result.Path)
	return nil
}
