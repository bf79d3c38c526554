package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
	"github.com/zephyrtronium/calc"
)

// session evaluates expressions for the user and reports the results.
type session struct {
	cfg  config
	out  io.Writer
	log  zerolog.Logger
	echo bool
	dump bool

	calc *calc.Calculator
	// p and c produce the forms shown by echo and dump.
	p *calc.Parser
	c *calc.Compiler
}

// start prepares the session to evaluate in the given mode.
func (s *session) start(mode calc.Mode) {
	s.calc = calc.NewCalculator(mode, s.cfg.options()...)
	s.p = calc.NewParser()
	s.c = calc.NewCompiler()
	s.log.Debug().
		Stringer("mode", mode).
		Uint("prec", s.cfg.Precision).
		Uint64("factorial_limit", s.cfg.FactorialLimit).
		Msg("calculator ready")
}

// eval evaluates one expression and prints its result or error. The result
// is false if evaluation failed.
func (s *session) eval(text string) bool {
	text = strings.TrimSuffix(text, "\r")
	if s.echo || s.dump {
		s.show(text)
	}
	r, err := s.calc.Eval(text)
	if err != nil {
		ev := s.log.Debug().Err(err).Str("input", text)
		var ie calc.InputError
		if errors.As(err, &ie) {
			ev = ev.Int("col", ie.Pos())
		}
		ev.Msg("evaluation failed")
		fmt.Fprintf(s.out, "error: %v\n", err)
		return false
	}
	fmt.Fprintf(s.out, s.cfg.Format+"\n", r)
	return true
}

// show prints the parsed form of an expression. Inputs that don't parse show
// nothing; eval reports their errors.
func (s *session) show(text string) {
	var (
		v   fmt.Stringer
		err error
	)
	if s.calc.Mode() == calc.ModePostfix {
		v, err = s.c.CompileString(text)
	} else {
		v, err = s.p.ParseString(text)
	}
	if err != nil {
		return
	}
	if s.dump {
		spew.Fdump(s.out, v)
	}
	if s.echo {
		fmt.Fprintf(s.out, "%v : ", v)
	}
}

// repl prompts for and evaluates lines until the input ends. Failed
// expressions don't end the loop.
func (s *session) repl(sc *bufio.Scanner) error {
	for {
		fmt.Fprint(s.out, s.cfg.Prompt)
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		s.eval(sc.Text())
	}
}

// batch evaluates every line of its input without prompting and returns the
// number that failed.
func (s *session) batch(sc *bufio.Scanner) (int, error) {
	failed := 0
	for sc.Scan() {
		if !s.eval(sc.Text()) {
			failed++
		}
	}
	return failed, sc.Err()
}

// chooseMode asks the user to pick an evaluation mode until they give a valid
// answer. The result is false if the input ends first.
func chooseMode(sc *bufio.Scanner, out io.Writer) (calc.Mode, bool) {
	for {
		fmt.Fprint(out, "Choose calculator: 1. Stack, 2. Parser: ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return 0, false
		}
		if m, ok := calc.ParseMode(sc.Text()); ok {
			return m, true
		}
		fmt.Fprintln(out, "Invalid choice")
	}
}
