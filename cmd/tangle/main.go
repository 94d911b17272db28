package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/unbound-force/tangle/internal/config"
	"github.com/unbound-force/tangle/internal/history"
	"github.com/unbound-force/tangle/internal/instrument"
	"github.com/unbound-force/tangle/internal/intake"
	"github.com/unbound-force/tangle/internal/report"
	"github.com/unbound-force/tangle/internal/scaffold"
	"github.com/unbound-force/tangle/internal/score"
	"github.com/unbound-force/tangle/internal/session"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

func main() {
	var verbose bool

	root := &cobra.Command{
		Use:   "tangle",
		Short: "Tangle - visual-preference questionnaire scoring",
		Long: `Tangle scores responses to a 29-question visual-preference
questionnaire and turns the selected images into a short personality
result code with trait descriptions.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(charmlog.DebugLevel)
			}
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")

	root.AddCommand(newEvaluateCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newQuestionsCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newSchemaCmd())
	root.AddCommand(newInitCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration at path and applies flag
// overrides. Empty strings and -1 leave the configured value alone.
func loadConfig(path, backend string, retain, workers int) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if backend != "" {
		cfg.Store.Backend = backend
	}
	if retain != -1 {
		cfg.History.Retain = retain
	}
	if workers != -1 {
		cfg.Batch.Workers = workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("command-line flags: %w", err)
	}
	return cfg, nil
}

// openStore opens the session store described by cfg.
func openStore(cfg *config.Config) (session.Store, error) {
	path, err := cfg.StorePath()
	if err != nil {
		return nil, err
	}
	logger.Debug("opening session store", "backend", cfg.Store.Backend, "path", path)
	return session.Open(cfg.Store.Backend, path, cfg.History.Retain)
}

// resolveFormat checks an explicit format flag, falling back to the
// configured default.
func resolveFormat(flag string, cfg *config.Config) (string, error) {
	if flag == "" {
		return cfg.Output.Format, nil
	}
	if flag != "text" && flag != "json" {
		return "", fmt.Errorf("invalid format %q: must be 'text' or 'json'", flag)
	}
	return flag, nil
}

// evaluation is one scored response file.
type evaluation struct {
	response *intake.Response
	resolved *intake.Resolved
	result   score.Result
}

// evaluateFile reads, resolves and scores the response at path.
func evaluateFile(path string) (*evaluation, error) {
	resp, err := intake.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res, err := intake.Resolve(instrument.Default(), resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &evaluation{
		response: resp,
		resolved: res,
		result:   score.Evaluate(res.Selections, res.Favorites),
	}, nil
}

// evaluateParams holds the parsed flags for the evaluate command.
type evaluateParams struct {
	file        string
	format      string
	configPath  string
	backend     string
	save        bool
	compare     bool
	interactive bool
	// store replaces the configured store when set.
	store  session.Store
	now    func() time.Time
	stdout io.Writer
	stderr io.Writer
}

// runEvaluate is the extracted, testable body of the evaluate command.
func runEvaluate(ctx context.Context, p evaluateParams) error {
	cfg, err := loadConfig(p.configPath, p.backend, -1, -1)
	if err != nil {
		return err
	}
	format, err := resolveFormat(p.format, cfg)
	if err != nil {
		return err
	}
	if p.now == nil {
		p.now = time.Now
	}

	logger.Info("evaluating", "file", p.file)
	ev, err := evaluateFile(p.file)
	if err != nil {
		return err
	}
	logger.Debug("evaluation complete",
		"answered", ev.resolved.Answered, "code", ev.result.Code)

	out := report.Evaluation{
		Answered: ev.resolved.Answered,
		Result:   ev.result,
		Analysis: history.Analyze(ev.result.Counts),
	}

	if p.save || p.compare {
		store := p.store
		if store == nil {
			if store, err = openStore(cfg); err != nil {
				return err
			}
			defer store.Close()
		}

		if p.compare {
			prior, err := store.List(ctx)
			if err != nil {
				return err
			}
			c := history.Compare(ev.result.Counts, prior)
			out.Comparison = &c
		}
		if p.save {
			s := session.New(ev.response, ev.resolved, ev.result, p.now())
			if err := store.Put(ctx, s); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}
			out.SessionID = s.ID
			logger.Debug("session saved", "id", s.ID)
			if p.stderr != nil {
				fmt.Fprintf(p.stderr, "Saved session %s\n", s.ID)
			}
		}
	}

	if p.interactive {
		return runInteractiveResult(out)
	}

	switch format {
	case "json":
		return report.WriteJSON(p.stdout, out)
	default:
		return report.WriteText(p.stdout, out)
	}
}

func newEvaluateCmd() *cobra.Command {
	var (
		format      string
		configPath  string
		backend     string
		save        bool
		compare     bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate <response-file>",
		Short: "Score a response file",
		Long: `Score a JSON or YAML response file and report the result code,
the per-stage breakdown, trait descriptions and a profile analysis.

With --save the evaluation is stored as a session; with --compare it
is measured against the stored sessions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd.Context(), evaluateParams{
				file:        args[0],
				format:      format,
				configPath:  configPath,
				backend:     backend,
				save:        save,
				compare:     compare,
				interactive: interactive,
				stdout:      os.Stdout,
				stderr:      os.Stderr,
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "",
		"output format: text or json (default from config)")
	cmd.Flags().StringVar(&configPath, "config", "",
		"path to config file (default: ./"+config.FileName+")")
	cmd.Flags().StringVar(&backend, "store", "",
		"session store: file, sqlite, or memory (default from config)")
	cmd.Flags().BoolVar(&save, "save", false,
		"store the evaluation as a session")
	cmd.Flags().BoolVar(&compare, "compare", false,
		"compare against stored sessions")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"launch interactive TUI for browsing the result")

	return cmd
}

// historyParams holds the parsed flags for the history command.
type historyParams struct {
	id         string
	format     string
	configPath string
	backend    string
	store      session.Store
	now        func() time.Time
	stdout     io.Writer
}

// runHistory is the extracted, testable body of the history command.
func runHistory(ctx context.Context, p historyParams) error {
	cfg, err := loadConfig(p.configPath, p.backend, -1, -1)
	if err != nil {
		return err
	}
	format, err := resolveFormat(p.format, cfg)
	if err != nil {
		return err
	}
	if p.now == nil {
		p.now = time.Now
	}

	store := p.store
	if store == nil {
		if store, err = openStore(cfg); err != nil {
			return err
		}
		defer store.Close()
	}

	if p.id != "" {
		return showSession(ctx, store, p.id, format, p.stdout)
	}

	sessions, err := store.List(ctx)
	if err != nil {
		return err
	}
	stats := history.Statistics(sessions, p.now())
	logger.Debug("history loaded", "sessions", len(sessions))

	switch format {
	case "json":
		return report.WriteHistoryJSON(p.stdout, sessions, stats)
	default:
		return report.WriteHistoryText(p.stdout, sessions, stats)
	}
}

// showSession re-scores a stored session from its recorded answers
// and reports it like a fresh evaluation.
func showSession(ctx context.Context, store session.Store, id, format string, w io.Writer) error {
	s, err := findSession(ctx, store, id)
	if err != nil {
		return err
	}
	resp := &intake.Response{
		Answers:           s.Answers,
		Favorites:         s.Favorites,
		CompletionMinutes: s.CompletionMinutes,
	}
	res, err := intake.Resolve(instrument.Default(), resp)
	if err != nil {
		return fmt.Errorf("session %s: %w", s.ID, err)
	}
	result := score.Evaluate(res.Selections, res.Favorites)
	if result.Code != s.Result {
		logger.Warn("stored result differs from re-evaluation",
			"id", s.ID, "stored", s.Result, "now", result.Code)
	}

	out := report.Evaluation{
		SessionID: s.ID,
		Answered:  res.Answered,
		Result:    result,
		Analysis:  history.Analyze(result.Counts),
	}
	if format == "json" {
		return report.WriteJSON(w, out)
	}
	return report.WriteText(w, out)
}

// findSession looks id up exactly, then as a unique prefix.
func findSession(ctx context.Context, store session.Store, id string) (session.Session, error) {
	s, err := store.Get(ctx, id)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, session.ErrNotFound) {
		return session.Session{}, err
	}

	all, err := store.List(ctx)
	if err != nil {
		return session.Session{}, err
	}
	var matches []session.Session
	for _, s := range all {
		if strings.HasPrefix(s.ID, id) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return session.Session{}, fmt.Errorf("%w: %s", session.ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return session.Session{}, fmt.Errorf("session id prefix %q is ambiguous (%d matches)", id, len(matches))
	}
}

func newHistoryCmd() *cobra.Command {
	var (
		format     string
		configPath string
		backend    string
	)

	cmd := &cobra.Command{
		Use:   "history [session-id]",
		Short: "List stored sessions or show one",
		Long: `Without arguments, list the stored sessions with summary
statistics. With a session id (or a unique prefix of one), re-score
that session and report it in full.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := historyParams{
				format:     format,
				configPath: configPath,
				backend:    backend,
				stdout:     os.Stdout,
			}
			if len(args) == 1 {
				p.id = args[0]
			}
			return runHistory(cmd.Context(), p)
		},
	}

	cmd.Flags().StringVar(&format, "format", "",
		"output format: text or json (default from config)")
	cmd.Flags().StringVar(&configPath, "config", "",
		"path to config file (default: ./"+config.FileName+")")
	cmd.Flags().StringVar(&backend, "store", "",
		"session store: file, sqlite, or memory (default from config)")

	return cmd
}

func newQuestionsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Print the question bank",
		Long: `Print every question with its option ids and code strings,
followed by the sections favorites are chosen from.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "json":
				return report.WriteQuestionsJSON(cmd.OutOrStdout(), instrument.Default())
			case "text":
				return report.WriteQuestionsText(cmd.OutOrStdout(), instrument.Default())
			default:
				return fmt.Errorf("invalid format %q: must be 'text' or 'json'", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text",
		"output format: text or json")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	var input bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for evaluation output",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of tangle evaluate --format=json output. With --input,
print the schema response files are validated against instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema := report.Schema
			if input {
				schema = intake.Schema
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), schema)
			return err
		},
	}

	cmd.Flags().BoolVar(&input, "input", false,
		"print the response file schema")

	return cmd
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config and example response",
		Long: `Write ` + config.FileName + ` and responses/example.yaml into the
current directory. Existing files are kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := scaffold.Run(scaffold.Options{
				Force:   force,
				Version: version,
				Stdout:  cmd.OutOrStdout(),
			})
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false,
		"overwrite existing files")

	return cmd
}
