package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/ReiseArnor/lpp/pkg/config"
)

func plainConfig() *config.Config {
	cfg := config.Default()
	cfg.Color = false
	return cfg
}

func TestSession(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			"arithmetic",
			[]string{"5 + 5 * 2"},
			[]string{"15"},
		},
		{
			"bindings persist between lines",
			[]string{"variable a = 5;", "variable suma = procedimiento(x, y) { x + y };", "suma(a, 10)"},
			[]string{"5", "procedimiento(x, y) {...}", "15"},
		},
		{
			"runtime error",
			[]string{"5 + verdadero"},
			[]string{"Discrepancia de tipos: INTEGER + BOOLEAN cerca de la línea 1"},
		},
		{
			"parse errors are not evaluated",
			[]string{"variable x 5;", "x"},
			[]string{
				"Se esperaba que el siguente token fuera ASSIGN pero se obtuvo INT cerca de la línea 1",
				`Identificador sin definir: "x" cerca de la línea 1`,
			},
		},
		{
			"blank lines are ignored",
			[]string{"", "   ", "verdadero"},
			[]string{"verdadero"},
		},
		{
			"null result",
			[]string{"si (falso) { 1 }"},
			[]string{"nulo"},
		},
		{
			"vars command",
			[]string{"variable b = 2;", "variable a = 'uno';", ":vars"},
			[]string{"2", "uno", "a = uno", "b = 2"},
		},
		{
			"ast command",
			[]string{"-a * b", ":ast"},
			[]string{`Identificador sin definir: "a" cerca de la línea 1`, "((-a) * b)"},
		},
		{
			"builtins command",
			[]string{":builtins"},
			[]string{"longitud"},
		},
		{
			"unknown command",
			[]string{":quit"},
			[]string{"Comando desconocido: :quit. Usa :vars, :ast, :builtins o salir()."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			s := newSession(plainConfig(), &out)
			for _, line := range tt.lines {
				if !s.handle(line) {
					t.Fatalf("session ended early on %q", line)
				}
			}
			got := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
			if strings.Join(got, "\n") != strings.Join(tt.want, "\n") {
				t.Errorf("output mismatch\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestSessionExit(t *testing.T) {
	var out bytes.Buffer
	s := newSession(plainConfig(), &out)
	if s.handle("salir()") {
		t.Error("expected salir() to end the session")
	}

	cfg := plainConfig()
	cfg.ExitCommand = "adios"
	s = newSession(cfg, &out)
	if !s.handle("salir()") {
		t.Error("salir() must not end a session with a custom exit command")
	}
	if s.handle("  adios  ") {
		t.Error("expected the custom exit command to end the session")
	}
}

func TestSessionColor(t *testing.T) {
	var out bytes.Buffer
	s := newSession(config.Default(), &out)
	s.handle("1")
	s.handle("x")

	got := out.String()
	if !strings.Contains(got, blue("1")) || !strings.Contains(got, red(`Identificador sin definir: "x" cerca de la línea 1`)) {
		t.Errorf("expected colored output, got %q", got)
	}
}

func TestSessionGasLimit(t *testing.T) {
	cfg := plainConfig()
	cfg.GasLimit = 20

	var out bytes.Buffer
	s := newSession(cfg, &out)
	s.handle("variable f = procedimiento(n) { si (n > 0) { regresa f(n - 1); } 0 };")
	s.handle("f(100)")
	s.handle("1 + 1")

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", lines)
	}
	if !strings.HasPrefix(lines[1], "Límite de ejecución agotado") {
		t.Errorf("expected gas exhaustion, got %q", lines[1])
	}
	if lines[2] != "2" {
		t.Errorf("expected a fresh budget per line, got %q", lines[2])
	}
}

func TestWatchSignals(t *testing.T) {
	t.Run("done", func(t *testing.T) {
		done := make(chan struct{})
		close(done)
		called := false
		watchSignals(make(chan os.Signal), done, func() { called = true })
		if called {
			t.Error("handler ran after the REPL returned")
		}
	})

	t.Run("signal", func(t *testing.T) {
		sigc := make(chan os.Signal, 1)
		sigc <- syscall.SIGTERM
		fired := make(chan struct{})
		go watchSignals(sigc, make(chan struct{}), func() { close(fired) })
		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatal("handler did not run on SIGTERM")
		}
	})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name       string
		src        string
		extra      []string
		code       int
		wantStdout string
		wantStderr string
	}{
		{"value", "variable suma = procedimiento(x, y) { regresa x + y; }; suma(5 + 5, suma(10, 10));", nil, 0, "30\n", ""},
		{"null prints nothing", "variable a = 1; si (a > 2) { a }", nil, 0, "", ""},
		{"runtime error", "foobar;", nil, 1, "", "Identificador sin definir: \"foobar\" cerca de la línea 1\n"},
		{"parse error", "variable = 1;", nil, 1, "", "Se esperaba que el siguente token fuera IDENT pero se obtuvo ASSIGN cerca de la línea 1\nNo se encontró ninguna función para parsear = cerca de la línea 1\n"},
		{"depth flag", "variable f = procedimiento() { f() }; f();", []string{"-depth", "5"}, 1, "", "Límite de recursión excedido cerca de la línea 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "programa.lpp", tt.src)
			var stdout, stderr bytes.Buffer

			args := append([]string{"run", path}, tt.extra...)
			code := run(args, &stdout, &stderr)
			if code != tt.code {
				t.Errorf("exit code %d, want %d (stderr %q)", code, tt.code, stderr.String())
			}
			if stdout.String() != tt.wantStdout {
				t.Errorf("stdout %q, want %q", stdout.String(), tt.wantStdout)
			}
			if stderr.String() != tt.wantStderr {
				t.Errorf("stderr %q, want %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	if code := run([]string{"run", filepath.Join(t.TempDir(), "nada.lpp")}, &stdout, &stderr); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.HasPrefix(stderr.String(), "lpp: reading ") {
		t.Errorf("expected a prefixed log line, got %q", stderr.String())
	}
}

func TestTokensAndASTCommands(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, "p.lpp", "variable x = -a * b;\nx;")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"tokens", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("tokens failed: %s", stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{`LET            "variable"`, `MULTIPLICATION "*"`, `EOF            ""`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in token dump:\n%s", want, out)
		}
	}

	stdout.Reset()
	if code := run([]string{"ast", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("ast failed: %s", stderr.String())
	}
	if got := stdout.String(); got != "variable x = ((-a) * b);\nx\n" {
		t.Errorf("unexpected ast dump %q", got)
	}
}

func TestConfigFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgPath := writeFile(t, "lpp.yaml", "max_depth: 3\n")
	src := writeFile(t, "p.lpp", "variable f = procedimiento(n) { si (n > 0) { regresa f(n - 1); } 0 }; f(10);")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--config", cfgPath, "run", src}, &stdout, &stderr); code != 1 {
		t.Errorf("expected the configured depth to stop recursion, got code %d", code)
	}

	stderr.Reset()
	bad := writeFile(t, "bad.yaml", "gas_limit: -5\n")
	if code := run([]string{"--config", bad, "version"}, &stdout, &stderr); code != 1 {
		t.Errorf("expected invalid config to fail, got %d", code)
	}
	if !strings.Contains(stderr.String(), "gas_limit") {
		t.Errorf("expected validation message, got %q", stderr.String())
	}
}

func TestVersionAndUnknownCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	if code := run([]string{"version"}, &stdout, &stderr); code != 0 || stdout.String() != "lpp dev\n" {
		t.Errorf("unexpected version output %q (code %d)", stdout.String(), code)
	}

	stdout.Reset()
	if code := run([]string{"compilar"}, &stdout, &stderr); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Unknown command: compilar") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}
