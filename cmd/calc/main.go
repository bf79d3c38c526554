package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/zephyrtronium/calc"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is the whole program. It returns the exit status: 0 on success, 1 if
// any expression or the configuration failed, and 2 for bad usage.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		flags      = defaultConfig()
		confname   string
		inname     string
		echo, dump bool
	)
	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: calc [flags] [expression ...]")
		fs.PrintDefaults()
	}
	fs.StringVar(&confname, "config", "", "YAML configuration file")
	fs.StringVar(&inname, "in", "", "evaluate each line of a file (- for stdin) instead of prompting")
	fs.StringVar(&flags.Mode, "mode", flags.Mode, "evaluation mode, tree or postfix (default prompt)")
	fs.UintVar(&flags.Precision, "p", flags.Precision, "precision of calculations in bits")
	fs.Uint64Var(&flags.FactorialLimit, "factorial-limit", flags.FactorialLimit, "largest operand of !")
	fs.StringVar(&flags.Format, "fmt", flags.Format, "result formatting string")
	fs.StringVar(&flags.Prompt, "prompt", flags.Prompt, "interactive prompt")
	fs.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&echo, "echo", false, "print the parsed form of each expression")
	fs.BoolVar(&dump, "dump", false, "dump the internal structure of each expression")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := defaultConfig()
	if confname != "" {
		if err := loadConfig(confname, &cfg); err != nil {
			logger := newLogger(stderr, flags.LogLevel)
			logger.Error().Err(err).Msg("failed to load config")
			return 1
		}
	}
	// Flags given explicitly win over the file.
	fs.Visit(func(f *flag.Flag) { cfg.override(f.Name, &flags) })
	logger := newLogger(stderr, cfg.LogLevel)
	if err := cfg.validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return 2
	}

	s := &session{
		cfg:  cfg,
		out:  stdout,
		log:  logger,
		echo: echo,
		dump: dump,
	}
	mode, chosen := cfg.mode()
	if !chosen {
		mode = calc.ModeTree
	}
	switch {
	case fs.NArg() > 0:
		s.start(mode)
		failed := 0
		for _, arg := range fs.Args() {
			if !s.eval(arg) {
				failed++
			}
		}
		return status(failed)

	case inname != "":
		in := stdin
		if inname != "-" {
			f, err := os.Open(inname)
			if err != nil {
				logger.Error().Err(err).Msg("failed to open input")
				return 1
			}
			defer f.Close()
			in = f
		}
		s.start(mode)
		failed, err := s.batch(bufio.NewScanner(in))
		if err != nil {
			logger.Error().Err(err).Msg("failed to read input")
			return 1
		}
		return status(failed)

	default:
		sc := bufio.NewScanner(stdin)
		if !chosen {
			var ok bool
			mode, ok = chooseMode(sc, stdout)
			if !ok {
				return 0
			}
		}
		s.start(mode)
		if err := s.repl(sc); err != nil {
			logger.Error().Err(err).Msg("failed to read input")
			return 1
		}
		return 0
	}
}

func status(failed int) int {
	if failed > 0 {
		return 1
	}
	return 0
}

// newLogger creates the program's logger. An unknown level means info.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		With().Timestamp().Str("service", "calc").Logger().
		Level(lvl)
}
