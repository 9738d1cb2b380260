package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ReiseArnor/lpp/pkg/compiler/lexer"
	"github.com/ReiseArnor/lpp/pkg/compiler/parser"
	"github.com/ReiseArnor/lpp/pkg/config"
	"github.com/ReiseArnor/lpp/pkg/core/value"
	"github.com/ReiseArnor/lpp/pkg/evaluator"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const usage = `Usage: lpp [--config file] <command> [arguments]

Commands:
  run <file> [-gas n] [-depth n]   evaluate a program and print its result
  repl                             start an interactive session (default)
  tokens <file>                    print the token stream
  ast <file>                       print the canonical rendering of the program
  version                          print the version
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "lpp: ", 0)

	global := flag.NewFlagSet("lpp", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := global.String("config", "", "path to a YAML configuration file")
	if err := global.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Printf("%v", err)
		return 1
	}

	rest := global.Args()
	cmd := "repl"
	if len(rest) > 0 {
		cmd, rest = rest[0], rest[1:]
	}

	switch cmd {
	case "run":
		return runFile(cfg, rest, stdout, stderr, logger)
	case "repl":
		if err := startREPL(cfg, stdout); err != nil {
			logger.Printf("%v", err)
			return 1
		}
		return 0
	case "tokens":
		return dumpTokens(rest, stdout, logger)
	case "ast":
		return dumpAST(rest, stdout, stderr, logger)
	case "version":
		fmt.Fprintln(stdout, "lpp", version)
		return 0
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n%s", cmd, usage)
		return 2
	}
}

func runFile(cfg *config.Config, args []string, stdout, stderr io.Writer, logger *log.Logger) int {
	runCmd := flag.NewFlagSet("run", flag.ContinueOnError)
	runCmd.SetOutput(stderr)
	gasLimit := runCmd.Int("gas", cfg.GasLimit, "maximum evaluation steps, 0 for no limit")
	maxDepth := runCmd.Int("depth", cfg.MaxDepth, "maximum nested calls, 0 for no limit")

	if len(args) < 1 {
		fmt.Fprint(stderr, "Usage: lpp run <file> [-gas n] [-depth n]\n")
		return 2
	}
	scriptPath := args[0]
	if err := runCmd.Parse(args[1:]); err != nil {
		return 2
	}

	src, ok := readSource(scriptPath, logger)
	if !ok {
		return 1
	}

	program, errs := parser.ParseString(src)
	if len(errs) > 0 {
		printErrors(stderr, errs)
		return 1
	}

	ev := evaluator.New(evaluator.WithGasLimit(*gasLimit), evaluator.WithMaxDepth(*maxDepth))
	result := ev.Eval(program, value.NewEnvironment())
	if value.IsError(result) {
		fmt.Fprintln(stderr, result.Inspect())
		return 1
	}
	if result != value.Value(value.Null) {
		fmt.Fprintln(stdout, result.Inspect())
	}
	return 0
}

func dumpTokens(args []string, stdout io.Writer, logger *log.Logger) int {
	if len(args) != 1 {
		logger.Printf("usage: lpp tokens <file>")
		return 2
	}
	src, ok := readSource(args[0], logger)
	if !ok {
		return 1
	}

	for _, tok := range lexer.Tokenize(src) {
		fmt.Fprintf(stdout, "%4d  %-14s %q\n", tok.Line, tok.Kind, tok.Literal)
	}
	return 0
}

func dumpAST(args []string, stdout, stderr io.Writer, logger *log.Logger) int {
	if len(args) != 1 {
		logger.Printf("usage: lpp ast <file>")
		return 2
	}
	src, ok := readSource(args[0], logger)
	if !ok {
		return 1
	}

	program, errs := parser.ParseString(src)
	for _, stmt := range program.Statements {
		fmt.Fprintln(stdout, stmt.String())
	}
	if len(errs) > 0 {
		printErrors(stderr, errs)
		return 1
	}
	return 0
}

func readSource(path string, logger *log.Logger) (string, bool) {
	src, err := os.ReadFile(path)
	if err != nil {
		logger.Printf("reading %s: %v", path, err)
		return "", false
	}
	return string(src), true
}

func printErrors(w io.Writer, errs []string) {
	fmt.Fprintln(w, strings.Join(errs, "\n"))
}
