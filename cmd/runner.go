package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/setlistx/internal/services"
	"github.com/desertthunder/setlistx/internal/shared"
	"github.com/desertthunder/setlistx/internal/tasks"
	"github.com/urfave/cli/v3"
)

const apiKeyEnv = "SETLISTFM_API_KEY"

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	service    services.Service
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Service    services.Service // Replaces the setlist.fm client built from config
	HTTPClient *http.Client     // Defaults to a client with the configured timeout
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		service:    opts.Service,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the runner's logger, e.g. to keep log output away from the TUI.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		artistCommand, tuiCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// configure runs before every command: it loads the config file, sets the log level and tags the logger with a run ID.
//
// A missing config file is not an error; defaults apply.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if r.configPath != "" {
		config, err := shared.LoadConfig(r.configPath)
		switch {
		case err == nil:
			r.config = config
			r.logger.Debug("loaded config", "path", r.configPath)
		case errors.Is(err, fs.ErrNotExist):
			r.logger.Debug("config file not found, using defaults", "path", r.configPath)
		default:
			return ctx, err
		}
	}

	level := log.DebugLevel
	if !cmd.Bool("verbose") {
		parsed, err := shared.ParseLogLevel(r.config.Log.Level)
		if err != nil {
			return ctx, err
		}
		level = parsed
	}
	shared.SetLogLevel(r.logger, level)
	r.logger = shared.WithLogger(r.logger, "run", shared.GenerateID())

	return ctx, nil
}

// resolveAPIKey picks the API key from --api-key (or its environment variable), then the config file.
func (r *Runner) resolveAPIKey(cmd *cli.Command) (string, error) {
	if key := cmd.String("api-key"); key != "" {
		return key, nil
	}
	if key := r.config.SetlistFM.APIKey; key != "" {
		return key, nil
	}
	return "", fmt.Errorf("%w: --api-key (or %s, or setlistfm.api_key in config)", shared.ErrMissingArgument, apiKeyEnv)
}

// setlistService returns the injected service or builds a setlist.fm client from config.
func (r *Runner) setlistService(cmd *cli.Command) (services.Service, error) {
	if r.service != nil {
		return r.service, nil
	}

	apiKey, err := r.resolveAPIKey(cmd)
	if err != nil {
		return nil, err
	}

	cfg := r.config.SetlistFM
	client := r.httpClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}

	svc, err := services.NewSetlistFMService(apiKey, services.SetlistFMOpts{
		BaseURL:    cfg.BaseURL,
		HTTPClient: client,
		Gate:       services.NewRateGate(cfg.RequestsPerSecond),
		UserAgent:  cfg.UserAgent,
		Logger:     r.logger,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// exportRequest assembles an export request, filling format and output directory from config when the flags are unset.
func (r *Runner) exportRequest(cmd *cli.Command, subject tasks.Subject, id string) (tasks.ExportRequest, error) {
	format := cmd.String("format")
	if format == "" {
		format = r.config.Export.Format
	}
	if !shared.IsExportFormat(format) {
		return tasks.ExportRequest{}, fmt.Errorf("%w: %q (want one of %v)", shared.ErrUnsupportedFormat, format, shared.ExportFormats)
	}

	outputDir := cmd.String("output-dir")
	if outputDir == "" {
		outputDir = r.config.Export.OutputDir
	}

	return tasks.ExportRequest{Subject: subject, ID: id, Format: format, OutputDir: outputDir}, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
