package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"ambient/internal/config"
	"ambient/internal/export"
	"ambient/internal/kv"
	"ambient/internal/logs"
	"ambient/internal/notes/data"
	"ambient/internal/notes/service"
	"ambient/internal/tui"

	"github.com/spf13/cobra"
)

// app carries what the commands share once flags are parsed.
type app struct {
	flags   config.CLIFlags
	backend kv.Store
	svc     service.NoteService
}

// Run executes the CLI with the given arguments and returns the exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	defer a.close()

	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if hint := retryHint(err); hint != "" {
			fmt.Fprintln(stderr, hint)
		}
		return 1
	}
	return 0
}

// newRootCommand builds the command tree. Without a subcommand it starts the TUI.
func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ambient",
		Short: "ambient - record ambient music ideas and export them as flat text",
		Long: `ambient - record ambient music ideas and export them as flat text

Every save rewrites the export file (ambient_ideas.txt by default):

  x <date> <title> #hash:<id>
  <content>

Running ambient without a command launches the interactive form.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logs.Logger.Info("starting app in TUI mode")
			return tui.Run(a.svc)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.ConfigPath, "config", "", "Config file (default ~/.config/ambient/config.yaml)")
	pf.StringVarP(&a.flags.DataDir, "data-dir", "d", "", "Directory holding the note store and debug.log")
	pf.StringVarP(&a.flags.ExportDir, "export-dir", "e", "", "Directory the export file is written to")
	pf.StringVar(&a.flags.Storage, "storage", "", "Storage backend: file or sqlite")

	root.AddCommand(newNoteCommand(a), newExportCommand(a), newCheckCommand(a))
	return root
}

func (a *app) setup() error {
	if a.flags.ConfigPath == "" {
		if err := config.EnsureConfigFile(); err != nil {
			logs.Logger.Warnw("could not create config file", "error", err)
		}
	}

	cfg, err := config.Load(a.flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.EnsureDirs(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}
	if err := logs.Initialize(cfg.DataDir, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logger: %v\n", err)
	}

	backend, err := kv.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		return err
	}
	exporter := export.NewFileExporter(cfg.ExportDir, cfg.ExportFile)

	svc, err := service.NewNoteService(data.NewStore(backend, cfg.StorageKey), exporter)
	if err != nil {
		backend.Close()
		return fmt.Errorf("could not load notes: %w", err)
	}

	a.backend = backend
	a.svc = svc
	logs.Logger.Infow("notes loaded", "storage", cfg.Storage, "count", len(svc.List()), "export", cfg.ExportPath())
	return nil
}

func (a *app) close() {
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			logs.Logger.Warnw("closing storage", "error", err)
		}
		a.backend = nil
	}
	logs.Close()
}

func retryHint(err error) string {
	var exportErr *service.ExportError
	var persistErr *service.PersistenceError
	switch {
	case errors.As(err, &exportErr):
		return "Nothing was saved. Fix the export location and run the command again."
	case errors.As(err, &persistErr):
		return "The note was not saved and the export was restored. Run the command again to retry."
	}
	return ""
}
