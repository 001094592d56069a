// Package commands implements the docbrowser command line.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/justyntemme/docbrowser/internal/app"
	"github.com/justyntemme/docbrowser/internal/cli/ui"
	"github.com/justyntemme/docbrowser/internal/config"
	"github.com/justyntemme/docbrowser/internal/docs"
	"github.com/justyntemme/docbrowser/internal/fs"
	"github.com/justyntemme/docbrowser/internal/logging"
)

// env is the state shared by every command of one invocation.
type env struct {
	configPath string
	root       string
	dir        string
	logLevel   string

	cfg     *config.Manager
	browser *app.Browser
}

// newRootCommand builds the command tree around e.
func newRootCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docbrowser",
		Short: "Browse, organise and search documents",
		Long: `docbrowser lists the documents of a directory below one of the configured
roots, creates folders, imports and renames files without overwriting
anything, and searches every root by name.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: e.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&e.configPath, "config", "", "Config file (default ~/.config/docbrowser/config.json)")
	flags.StringVarP(&e.root, "root", "r", "", "Root name or path (default: first configured root)")
	flags.StringVarP(&e.dir, "dir", "C", "", "Directory below the root")
	flags.StringVar(&e.logLevel, "log-level", "", "Override the configured log level")

	cmd.AddCommand(
		newRootsCommand(e),
		newLsCommand(e),
		newMkdirCommand(e),
		newImportCommand(e),
		newRenameCommand(e),
		newRmCommand(e),
		newSearchCommand(e),
		newSortCommand(e),
		newSettingsCommand(e),
		newTrashCommand(e),
		newOpenCommand(e),
		newWatchCommand(e),
	)
	return cmd
}

// Run executes the command line in args with the given streams.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	e := &env{}
	cmd := newRootCommand(e)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if closeErr := e.close(); err == nil {
		err = closeErr
	}
	return err
}

// Execute runs the command line of the current process.
func Execute() error {
	err := Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		ui.Error(os.Stderr, "%v", err)
	}
	return err
}

func (e *env) setup(cmd *cobra.Command, _ []string) error {
	path := e.configPath
	if path == "" {
		path = config.ConfigPath()
	}
	e.cfg = config.NewManager(nil)
	if err := e.cfg.LoadFrom(path); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := e.cfg.Get()
	if e.logLevel != "" {
		cfg.Logging.Level = e.logLevel
	}
	if err := logging.Init(cfg.Logging); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	if perr := e.cfg.ParseError(); perr != nil {
		ui.Warning(cmd.ErrOrStderr(), "%s is invalid, using defaults: %v", path, perr)
	}

	// Only the long-running watch command needs change notifications.
	if cmd.Name() != "watch" {
		cfg.Watch.Enabled = false
	}

	b, err := app.Open(cfg)
	if err != nil {
		return err
	}
	e.browser = b
	return nil
}

func (e *env) close() error {
	// Syncing a terminal stderr fails with EINVAL; nothing to report.
	_ = logging.Sync()
	if e.browser == nil {
		return nil
	}
	return e.browser.Close()
}

// currentRoot resolves --root, falling back to the first root.
func (e *env) currentRoot() (fs.Root, error) {
	if e.root == "" {
		roots := e.browser.Roots()
		if len(roots) == 0 {
			return fs.Root{}, errors.New("no roots configured; add one with 'docbrowser roots add <path>'")
		}
		return roots[0], nil
	}
	if r, ok := e.browser.Root(e.root); ok {
		return r, nil
	}
	if info, err := os.Stat(e.root); err == nil && info.IsDir() {
		abs, err := filepath.Abs(e.root)
		if err != nil {
			return fs.Root{}, err
		}
		return fs.Root{Name: filepath.Base(abs), Path: abs}, nil
	}
	return fs.Root{}, fmt.Errorf("unknown root %q", e.root)
}

// store opens the document store selected by --root and --dir.
func (e *env) store() (*docs.Store, error) {
	root, err := e.currentRoot()
	if err != nil {
		return nil, err
	}
	return e.browser.OpenStore(root.Path, cleanRelative(e.dir)), nil
}

// cleanRelative normalises a --dir value so it cannot leave the root.
func cleanRelative(dir string) string {
	rel := filepath.Clean(string(filepath.Separator) + dir)
	return rel[1:]
}

// lookup finds the listed documents called names.
func lookup(s *docs.Store, names ...string) ([]docs.Document, error) {
	found := make([]docs.Document, 0, len(names))
	for _, name := range names {
		d, ok := s.DocumentNamed(name)
		if !ok {
			return nil, fmt.Errorf("%q in %s: %w", name, docs.HumanReadablePath(s.WorkingDirectory(), s.Root()), docs.ErrWasDeleted)
		}
		found = append(found, d)
	}
	return found, nil
}
