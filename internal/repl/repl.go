// Package repl implements the interactive session: it wires the line editor,
// the completion provider, persistent history, and the interpreter into a
// read-eval-print loop.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/strata-sh/strata/internal/config"
	"github.com/strata-sh/strata/internal/core"
	"github.com/strata-sh/strata/internal/history"
	"github.com/strata-sh/strata/internal/repl/completion"
	"github.com/strata-sh/strata/internal/repl/input"
	"github.com/strata-sh/strata/internal/repl/render"
	"github.com/strata-sh/strata/internal/script/interpreter"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Options configures a Session.
type Options struct {
	// Config holds the user settings. Zero value falls back to defaults.
	Config config.Config
	// Interpreter evaluates the input lines. Required.
	Interpreter *interpreter.Interpreter
	// History persists input lines across sessions. Optional.
	History *history.Manager
	// Logger is a zap logger. If nil, a no-op logger is used.
	Logger *zap.Logger
	// Stdout is where results and the banner are written. Defaults to os.Stdout.
	Stdout io.Writer
	// Version is shown in the welcome screen.
	Version string
}

// Session is one interactive shell session.
type Session struct {
	cfg      config.Config
	interp   *interpreter.Interpreter
	hist     *history.Manager
	logger   *zap.Logger
	stdout   io.Writer
	provider *completion.Provider
	version  string

	// lastResult is the rendering of the most recent non-null result; the
	// editor copies it to the clipboard on Ctrl+Y.
	lastResult string

	// activeDataset is the name of the most recently loaded dataset, recorded
	// alongside history entries.
	activeDataset string
}

// NewSession creates a session over the given interpreter.
func NewSession(opts Options) (*Session, error) {
	if opts.Interpreter == nil {
		return nil, errors.New("session requires an interpreter")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	cfg := opts.Config
	if cfg == (config.Config{}) {
		cfg = config.Default()
	}

	s := &Session{
		cfg:     cfg,
		interp:  opts.Interpreter,
		hist:    opts.History,
		logger:  logger,
		stdout:  stdout,
		version: opts.Version,
	}

	hooks := completion.NewHooks(logger)
	if err := completion.RegisterDefaults(hooks); err != nil {
		return nil, err
	}
	s.provider = completion.NewProvider(hooks, s.scopes, logger)

	return s, nil
}

// scopes returns the live scope chain, innermost first. The session layer is
// consulted before the prelude so user bindings shadow builtins.
func (s *Session) scopes() []completion.Scope {
	return []completion.Scope{
		{Name: "session", Env: s.interp.SessionEnv()},
		{Name: "globals", Env: s.interp.GlobalEnv()},
	}
}

// Run drives the session until the user exits. Ctrl+D on an empty line,
// "exit" and "quit" all end the session normally.
func (s *Session) Run() error {
	if s.cfg.Banner {
		render.RenderWelcome(s.stdout, render.WelcomeInfo{
			Version:  s.version,
			Graphics: s.interp.GraphicsActive(),
			Datasets: countDescriptors(core.DatasetDir()),
		}, s.termWidth())
	}

	for {
		line, err := input.ReadLine(input.Options{
			Prompt:        s.cfg.Prompt,
			Provider:      s.provider,
			History:       s.historyLines(),
			ClipboardText: s.lastResult,
		})
		if errors.Is(err, input.ErrEOF) {
			return nil
		}
		if errors.Is(err, input.ErrInterrupted) {
			continue
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		s.evalAndPrint(line)
	}
}

func (s *Session) evalAndPrint(line string) {
	var entry *history.Entry
	if s.hist != nil {
		var err error
		entry, err = s.hist.StartEntry(line, s.activeDataset)
		if err != nil {
			s.logger.Warn("failed to record history entry", zap.Error(err))
		}
	}

	result, err := s.interp.EvalLine(line)
	if err != nil {
		s.logger.Debug("evaluation failed",
			zap.String("input", line),
			zap.Error(err))
		fmt.Fprintln(s.stdout, render.RenderError(err))
		s.finishEntry(entry, true)
		return
	}
	s.finishEntry(entry, false)

	if ds, ok := result.(*interpreter.DatasetValue); ok {
		s.activeDataset = ds.Ds.Name
	}

	if result.Type() == interpreter.ValueTypeNull {
		return
	}
	s.lastResult = result.String()
	fmt.Fprintln(s.stdout, render.ResultStyle.Render(s.lastResult))
}

func (s *Session) finishEntry(entry *history.Entry, failed bool) {
	if s.hist == nil || entry == nil {
		return
	}
	if _, err := s.hist.FinishEntry(entry, failed); err != nil {
		s.logger.Warn("failed to finish history entry", zap.Error(err))
	}
}

// historyLines loads recent entries for the editor, oldest first.
func (s *Session) historyLines() []string {
	if s.hist == nil || s.cfg.HistoryLimit == 0 {
		return nil
	}

	entries, err := s.hist.RecentEntries("", s.cfg.HistoryLimit)
	if err != nil {
		s.logger.Warn("failed to load history", zap.Error(err))
		return nil
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, entry.Input)
	}
	return lines
}

// countDescriptors counts dataset descriptors under the user's dataset
// directory for the welcome screen.
func countDescriptors(dir string) int {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return 0
	}
	return len(matches)
}

func (s *Session) termWidth() int {
	if f, ok := s.stdout.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}
