// Package cmd implements the golang-tara command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/smith-xyz/golang-tara/pkg/config"
	"github.com/smith-xyz/golang-tara/pkg/parser"
	"github.com/smith-xyz/golang-tara/pkg/tara"
	"github.com/smith-xyz/golang-tara/pkg/utils"
	"github.com/smith-xyz/golang-tara/pkg/version"
)

// options are the persistent flags shared by all commands.
type options struct {
	verbose bool
	dir     string
	config  string
	archive string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   version.ToolName,
		Short: "Threat Analysis and Risk Assessment from markdown tables",
		Long: `golang-tara reads a TARA project made of markdown tables (assumptions,
assets, damage scenarios, controls and one attack tree per threat), checks
it and generates the threat scenario document and the TARA report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Verbose output")
	flags.StringVarP(&o.dir, "dir", "d", ".", "TARA project directory")
	flags.StringVarP(&o.config, "config", "c", "", "Configuration file (default: <dir>/"+config.ProjectFile+" when present)")
	flags.StringVar(&o.archive, "archive", "", "Read and update the project from a txtar bundle instead of the directory")

	root.AddCommand(
		newInitCommand(o),
		newCheckCommand(o),
		newGenTreesCommand(o),
		newGenerateCommand(o),
		newResolveCommand(o),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command line and exits with status 1 on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		stop()
		os.Exit(1)
	}
}

// session carries what a command needs to read and write a project.
type session struct {
	opts      *options
	logger    *slog.Logger
	collector *utils.Collector
	config    *config.ContextAwareConfig
	reader    utils.FileReader
	writer    utils.FileWriter
	bundle    *utils.MemoryFileSystem
	instr     *utils.Instrumentation
}

// newSession loads the configuration and opens the project. With creating
// a missing project directory or archive is not an error.
func (o *options) newSession(cmd *cobra.Command, creating bool) (*session, error) {
	logger, collector := utils.NewLogger(cmd.ErrOrStderr(), o.verbose)

	cfg, err := config.NewContextAwareConfig(o.dir, o.config)
	if err != nil {
		return nil, err
	}
	if cfg.Source != "" {
		logger.Debug("Loaded configuration", "file", cfg.Source)
	}

	s := &session{
		opts:      o,
		logger:    logger,
		collector: collector,
		config:    cfg,
		reader:    utils.OSFileSystem{},
		writer:    utils.OSFileSystem{},
		instr:     utils.NewInstrumentation(logger),
	}
	if o.archive == "" {
		if !creating && !utils.DirectoryExists(o.dir) {
			return nil, fmt.Errorf("project directory %s does not exist", o.dir)
		}
		return s, nil
	}

	bundle, err := utils.LoadArchive(o.archive, o.dir)
	if err != nil {
		if !creating || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		bundle = utils.NewMemoryFileSystem()
	}
	logger.Debug("Loaded project bundle", "archive", o.archive, "files", len(bundle.Paths()))
	s.reader, s.writer, s.bundle = bundle, bundle, bundle
	return s, nil
}

func (s *session) parser() *parser.TaraParser {
	return parser.NewTaraParser(s.reader, s.logger, parser.Config{
		Workers:          s.config.Parser.Workers,
		EvaluatorOptions: s.config.EvaluatorOptions(),
	})
}

// parse reads the project. Without checkTrees only the input tables and
// their references are checked.
func (s *session) parse(ctx context.Context, checkTrees bool) (*tara.TARA, error) {
	p := s.parser()
	tracker := s.instr.NewPhaseTracker("parse")

	tracker.StartPhase("read inputs")
	t, err := p.ParseInputs(ctx, s.config.ProjectDir)
	if err != nil {
		return nil, err
	}

	tracker.StartPhase("check references")
	p.CheckReferences(t)
	if checkTrees {
		tracker.StartPhase("check attack trees")
		p.CheckAttackTrees(t)
	}
	tracker.Complete(len(t.AttackTrees))
	return t, nil
}

// save writes the bundle back to its archive. It does nothing when the
// project lives in a directory.
func (s *session) save() error {
	if s.bundle == nil {
		return nil
	}
	comment := version.ToolName + " project bundle\n"
	if err := s.bundle.SaveArchive(s.opts.archive, s.opts.dir, comment); err != nil {
		return err
	}
	s.logger.Debug("Saved project bundle", "archive", s.opts.archive)
	return nil
}

func timed[T any](s *session, name string, operation func() (T, error)) (T, error) {
	return utils.Timed(s.instr, name, operation)
}
