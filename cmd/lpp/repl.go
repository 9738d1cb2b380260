package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/ReiseArnor/lpp/pkg/compiler/ast"
	"github.com/ReiseArnor/lpp/pkg/compiler/parser"
	"github.com/ReiseArnor/lpp/pkg/config"
	"github.com/ReiseArnor/lpp/pkg/core/value"
	"github.com/ReiseArnor/lpp/pkg/evaluator"
	"github.com/ReiseArnor/lpp/pkg/stdlib"
)

const banner = "Bienvenido al Lenguaje de Programación Platzi.\nEscribe un enunciado para comenzar; salir() para terminar."

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

// session holds the state shared by every line of one interactive run.
type session struct {
	cfg  *config.Config
	env  *value.Environment
	eval *evaluator.Evaluator
	out  io.Writer
	last *ast.Program
}

func newSession(cfg *config.Config, out io.Writer) *session {
	return &session{
		cfg:  cfg,
		env:  value.NewEnvironment(),
		eval: evaluator.New(cfg.EvaluatorOptions()...),
		out:  out,
	}
}

// handle processes one input line and reports whether the session goes on.
func (s *session) handle(line string) bool {
	code := strings.TrimSpace(line)
	switch {
	case code == "":
		return true
	case code == s.cfg.ExitCommand:
		return false
	case strings.HasPrefix(code, ":"):
		s.command(code)
		return true
	}

	program, errs := parser.ParseString(line)
	s.last = program
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(s.out, s.colorize(e, red))
		}
		return true
	}

	result := s.eval.Eval(program, s.env)
	if value.IsError(result) {
		fmt.Fprintln(s.out, s.colorize(result.Inspect(), red))
		return true
	}
	fmt.Fprintln(s.out, s.colorize(result.Inspect(), blue))
	return true
}

func (s *session) command(code string) {
	switch code {
	case ":vars":
		for _, name := range s.env.Names() {
			v, _ := s.env.Get(name)
			fmt.Fprintf(s.out, "%s = %s\n", name, v.Inspect())
		}
	case ":ast":
		if s.last != nil {
			fmt.Fprintln(s.out, s.last.String())
		}
	case ":builtins":
		fmt.Fprintln(s.out, strings.Join(stdlib.Names(), "\n"))
	default:
		fmt.Fprintf(s.out, "Comando desconocido: %s. Usa :vars, :ast, :builtins o %s.\n", code, s.cfg.ExitCommand)
	}
}

func (s *session) colorize(text string, paint func(string) string) string {
	if !s.cfg.Color {
		return text
	}
	return paint(text)
}

func startREPL(cfg *config.Config, out io.Writer) error {
	fmt.Fprintln(out, banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := cfg.HistoryPath(home)
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	saveHistory := func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	defer saveHistory()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})
	defer func() {
		signal.Stop(sigc)
		close(done)
	}()
	go watchSignals(sigc, done, func() {
		// os.Exit skips deferred calls.
		saveHistory()
		ln.Close()
		os.Exit(130)
	})

	s := newSession(cfg, out)
	for {
		line, err := ln.Prompt(cfg.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if !s.handle(line) {
			return nil
		}
	}
}

// watchSignals runs onSignal when sigc fires. It returns without running it
// once done is closed.
func watchSignals(sigc <-chan os.Signal, done <-chan struct{}, onSignal func()) {
	select {
	case <-sigc:
		onSignal()
	case <-done:
	}
}
