package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"quill/internal/config"
	"quill/internal/literal"
	"quill/internal/option"
	"quill/internal/value"
)

var (
	// Version is the current version of the quill binary.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
	help      bool
	version   bool
	// logging
	logLevel string
	logFile  string
	// runtime config
	configPath string
	legacy     bool
	ignoreCase bool
	compareOp  string
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	// runtime config
	flag.StringVar(&configPath, "config", "", "Path to a TOML configuration file")
	flag.BoolVar(&legacy, "legacy", false, "Use the legacy evaluation rules")
	flag.BoolVar(&ignoreCase, "ignore-case", false, "Compare strings case-insensitively")
	flag.StringVar(&compareOp, "compare", "", "Compare two literals with the given operator (==, !=, <, <=, >, >=, =~, !~, is, isnot)")
	// log config
	flag.StringVar(&logLevel, "log-level", "error", "Log level: debug, info, warn, error")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
}

func main() {

	flag.Parse()

	loggerOptions := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevelFromString(logLevel),
	}
	logWriter := configureLogWriter()
	defaultLogger := slog.New(slog.NewJSONHandler(logWriter, loggerOptions))
	slog.SetDefault(defaultLogger)

	if version {
		printVersion()
		return
	}

	if help || flag.NArg() == 0 {
		printHelp()
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quill: %v\n", err)
		os.Exit(1)
	}
	cfg.Version = Version
	cfg.BuildDate = BuildDate
	cfg.Commit = Commit
	if legacy {
		cfg.Strict = false
	}
	if ignoreCase {
		cfg.IgnoreCase = true
	}

	parser := &literal.Parser{
		Encoding:  cfg.Encoding,
		OldScript: cfg.OldScript,
	}
	opts := registryFromConfig(cfg)

	if compareOp != "" {
		if err := runCompare(parser, opts, cfg, flag.Args()); err != nil {
			fmt.Fprintf(os.Stderr, "quill: %v\n", err)
			os.Exit(1)
		}
		return
	}

	for _, arg := range flag.Args() {
		v, err := parseLiteral(parser, opts, cfg, arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "quill: %s: %v\n", arg, err)
			os.Exit(1)
		}
		printValue(arg, v, cfg.Strict)
		v.Clear()
	}
}

// registryFromConfig exposes the active settings as readable options, so
// "&strict" and friends evaluate like any other option.
func registryFromConfig(cfg config.Configuration) *option.Registry {
	r := option.NewRegistry()
	r.RegisterBool("strict", cfg.Strict)
	r.RegisterBool("ignorecase", cfg.IgnoreCase)
	r.RegisterString("encoding", cfg.Encoding)
	r.RegisterNumber("comparelimit", int64(cfg.CompareLimit))
	r.RegisterNumber("copydepth", int64(cfg.CopyDepth))
	return r
}

// parseLiteral dispatches on the first character the way the expression
// parser would.
func parseLiteral(p *literal.Parser, opts *option.Registry, cfg config.Configuration, src string) (value.Value, error) {
	if src == "" {
		return value.Value{}, errors.New("empty literal")
	}
	var (
		v   value.Value
		end int
		err error
	)
	switch {
	case src[0] == '"':
		v, end, err = p.String(src, 0, true, false)
	case src[0] == '\'':
		v, end, err = p.LitString(src, 0, true, false)
	case src[0] == '$' && len(src) > 1 && (src[1] == '"' || src[1] == '\''):
		v, end, err = p.InterpString(src, 0, true, noExprs{})
	case src[0] == '$':
		v, end, err = p.EnvVar(src, 0, true)
	case src[0] == '&' || src[0] == '+':
		v, end, err = opts.Eval(src, 0, true, cfg.Strict)
	case src == "true":
		return value.TrueValue, nil
	case src == "false":
		return value.FalseValue, nil
	case src == "null":
		return value.NullValue, nil
	case src == "none":
		return value.NoneValue, nil
	default:
		v, end, err = p.Number(src, 0, true, false)
	}
	if err != nil {
		return value.Value{}, err
	}
	if end != len(src) {
		v.Clear()
		return value.Value{}, fmt.Errorf("trailing characters: %q", src[end:])
	}
	return v, nil
}

// noExprs rejects embedded expressions; the inspector only handles plain
// literals.
type noExprs struct{}

func (noExprs) EvalExpr(src string, pos int) (string, int, error) {
	return "", pos, errors.New("embedded expressions are not supported here")
}

func printValue(src string, v value.Value, strict bool) {
	fmt.Printf("%-12s %s\n", v.Kind, v.InspectQuoted())
	if n, err := v.AsNumber(strict); err == nil {
		fmt.Printf("%-12s %d\n", "as number", n)
	}
	if f, err := v.AsFloat(); err == nil {
		fmt.Printf("%-12s %g\n", "as float", f)
	}
	if s, err := v.AsString(strict); err == nil {
		fmt.Printf("%-12s %q\n", "as string", s)
	}
	slog.Debug("parsed literal", slog.String("src", src), slog.String("kind", v.Kind.String()))
}

func runCompare(p *literal.Parser, opts *option.Registry, cfg config.Configuration, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("compare needs exactly two literals, got %d", len(args))
	}
	op, err := opFromString(compareOp)
	if err != nil {
		return err
	}
	a, err := parseLiteral(p, opts, cfg, args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	defer a.Clear()
	b, err := parseLiteral(p, opts, cfg, args[1])
	if err != nil {
		return fmt.Errorf("%s: %w", args[1], err)
	}
	defer b.Clear()

	res, err := value.Compare(a, b, op, cfg.IgnoreCase, cfg.Strict)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s %s = %s\n", a.InspectQuoted(), op, b.InspectQuoted(), res.Inspect())
	return nil
}

func opFromString(s string) (value.Op, error) {
	switch strings.TrimSpace(s) {
	case "==":
		return value.OpEqual, nil
	case "!=":
		return value.OpNotEqual, nil
	case ">":
		return value.OpGreater, nil
	case ">=":
		return value.OpGreaterEqual, nil
	case "<":
		return value.OpSmaller, nil
	case "<=":
		return value.OpSmallerEqual, nil
	case "=~":
		return value.OpMatch, nil
	case "!~":
		return value.OpNoMatch, nil
	case "is":
		return value.OpIs, nil
	case "isnot":
		return value.OpIsNot, nil
	}
	return 0, fmt.Errorf("unknown operator: %q", s)
}

func configureLogWriter() *os.File {
	var logWriter *os.File
	var err error
	if logFile != "" {
		// Create parent directories if they don't exist
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", logFile, err)
			return os.Stderr
		}
		logWriter, err = os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", logFile, err)
			logWriter = os.Stderr
		}
	} else {
		logWriter = os.Stderr
	}
	return logWriter
}

func printVersion() {

	fmt.Printf("quill version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: quill [options] literal [literal...]

Options:
  -config <path>     Load runtime settings from a TOML file.
  -legacy            Use the legacy evaluation rules (loose coercions, number results).
  -ignore-case       Compare strings case-insensitively.
  -compare <op>      Compare two literals: ==, !=, <, <=, >, >=, =~, !~, is, isnot.
  -help              Display this help information and exit.
  -version           Display version information and exit.
  -log-level <level> Set the log level: debug, info, warn, error. Default is 'error'.
  -log-file <path>   Specify a log file to write logs. Default is stderr.

Details:
Quill parses literals the way the embedded scripting runtime does and prints
each value's kind, display form and coercions.

Examples:
  quill '0x1F' '1.5e3' '0zDEADBEEF'     Inspect three numeric literals
  quill '"tab:\t end"'                  Inspect a string with escapes
  quill -compare == '3' '3.0'           Number and float compare equal
  quill -legacy -compare == '4' '"4"'   Legacy string-to-number coercion

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, Version, BuildDate, Commit)
}

func logLevelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelError
	}
}
