package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/strata-sh/strata/internal/config"
	"github.com/strata-sh/strata/internal/core"
	"github.com/strata-sh/strata/internal/history"
	"github.com/strata-sh/strata/internal/repl"
	"github.com/strata-sh/strata/internal/script/interpreter"
	"github.com/strata-sh/strata/internal/script/lexer"
	"github.com/strata-sh/strata/internal/script/parser"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var BUILD_VERSION = "dev"

var command = flag.String("c", "", "evaluate an expression and print its result")

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

const helpText = `strata - interactive analysis shell for layered simulation datasets

USAGE:
  strata [options] [script.st] [args...]

MODES:
  strata                  Start an interactive session
  strata script.st        Execute a .st script file
  strata -c "expr"        Evaluate an expression and print its result

Set STRATA_DISPLAY (or DISPLAY) to enable the plot() builtin.
Configuration lives in ~/.strata/config.yaml.

OPTIONS:
`

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Print(helpText)
		flag.PrintDefaults()
		return
	}

	cfg, cfgErr := config.Load(core.ConfigFile())

	logger, err := initializeLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfgErr != nil {
		// Defaults are already in effect; the bad config is worth a warning
		// but not a refusal to start.
		logger.Warn("config file ignored", zap.Error(cfgErr))
		fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", cfgErr)
	}

	logger.Info("-------- new strata session --------", zap.Any("args", os.Args))

	if err := run(cfg, logger); err != nil {
		logger.Error("unhandled error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "strata: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	interp := interpreter.New(&interpreter.Options{
		Logger:   logger,
		Graphics: graphicsActive(),
	})

	// strata -c "expr"
	if *command != "" {
		result, err := interp.EvalLine(*command)
		if err != nil {
			return err
		}
		if result.Type() != interpreter.ValueTypeNull {
			fmt.Println(result.String())
		}
		return nil
	}

	// strata script.st
	if flag.NArg() > 0 {
		for _, filePath := range flag.Args() {
			if err := runScript(filePath, interp); err != nil {
				return err
			}
		}
		return nil
	}

	// strata (interactive or piped)
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return runPiped(interp)
	}

	return runInteractive(cfg, interp, logger)
}

func runInteractive(cfg config.Config, interp *interpreter.Interpreter, logger *zap.Logger) error {
	hist, err := history.NewManager(core.HistoryFile())
	if err != nil {
		// The session is still usable without persistent history.
		logger.Warn("history unavailable", zap.Error(err))
		hist = nil
	}

	session, err := repl.NewSession(repl.Options{
		Config:      cfg,
		Interpreter: interp,
		History:     hist,
		Logger:      logger,
		Version:     BUILD_VERSION,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize session: %w", err)
	}

	return session.Run()
}

// runPiped evaluates stdin as a script when strata is not attached to a
// terminal.
func runPiped(interp *interpreter.Interpreter) error {
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	return evalScript(string(content), "stdin", interp)
}

func runScript(filePath string, interp *interpreter.Interpreter) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read script file: %w", err)
	}

	// Skip shebang line if present
	script := string(content)
	if strings.HasPrefix(script, "#!") {
		if idx := strings.Index(script, "\n"); idx >= 0 {
			script = script[idx+1:]
		}
	}

	return evalScript(script, filePath, interp)
}

func evalScript(script, name string, interp *interpreter.Interpreter) error {
	l := lexer.New(script)
	p := parser.New(l)
	program := p.ParseProgram()

	if len(p.Errors()) > 0 {
		for _, err := range p.Errors() {
			fmt.Fprintf(os.Stderr, "Parse error: %s\n", err)
		}
		return fmt.Errorf("failed to parse %s", name)
	}

	if _, err := interp.Eval(program); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		return fmt.Errorf("runtime error in %s: %w", name, err)
	}
	return nil
}

// graphicsActive reports whether a display is available for the plot
// builtin. STRATA_DISPLAY wins; DISPLAY is the fallback.
func graphicsActive() bool {
	if display := os.Getenv("STRATA_DISPLAY"); display != "" {
		return true
	}
	return os.Getenv("DISPLAY") != ""
}

func initializeLogger(cfg config.Config) (*zap.Logger, error) {
	logLevel := parseLogLevel(cfg.LogLevel)
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	// Logs only go to file to avoid interfering with the Bubble Tea UI.
	// Use `tail -f ~/.strata/strata.log` to monitor logs in real-time.
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}

	return loggerConfig.Build()
}

func parseLogLevel(level string) zap.AtomicLevel {
	parsed, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return parsed
}
