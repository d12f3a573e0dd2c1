// Command tpy runs MiniPy programs: `tpy file.py` executes a script,
// `tpy -ast file.py` dumps its parse tree, and `tpy` with no arguments starts
// an interactive REPL with line editing and history.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	tpy "github.com/literally-user/rimmy/tpy"
)

const historyFile = ".tpy_history"

var (
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// errWriter styles diagnostic lines before they reach the terminal.
type errWriter struct {
	w     *os.File
	style lipgloss.Style
}

func (e errWriter) Write(p []byte) (int, error) {
	s := string(p)
	nl := strings.HasSuffix(s, "\n")
	out := e.style.Render(strings.TrimRight(s, "\n"))
	if nl {
		out += "\n"
	}
	if _, err := e.w.WriteString(out); err != nil {
		return 0, err
	}
	return len(p), nil
}

func main() {
	args := os.Args[1:]

	if len(args) > 0 && args[0] == "-ast" {
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "usage: tpy -ast file")
			os.Exit(2)
		}
		os.Exit(dumpFile(args[1]))
	}
	if len(args) > 0 {
		os.Exit(runFile(args[0]))
	}
	os.Exit(repl())
}

func runFile(path string) int {
	code, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s\n", path)
		return 1
	}
	ip := tpy.NewInterpreter()
	return ip.RunSource(string(code))
}

func dumpFile(path string) int {
	code, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s\n", path)
		return 1
	}
	r := tpy.ParseModule(tpy.NewLexer(string(code)), os.Stderr)
	if !r.OK {
		fmt.Fprintln(os.Stderr, "parse failed")
		return 1
	}
	tpy.DumpAST(os.Stdout, &r.Mod)
	return 0
}

// linerPrompter adapts liner's line editor to the session loop and records
// non-blank lines into history.
type linerPrompter struct {
	ln *liner.State
}

func (p *linerPrompter) Prompt(prompt string) (string, error) {
	line, err := p.ln.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		p.ln.AppendHistory(line)
	}
	return line, nil
}

func repl() int {
	fmt.Println(bannerStyle.Render(tpy.Banner))

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := tpy.NewInterpreterIO(os.Stdin, os.Stdout, errWriter{w: os.Stderr, style: errStyle})
	ip.Interact(&linerPrompter{ln: ln})
	fmt.Println()
	return 0
}
