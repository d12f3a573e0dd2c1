// repl.go — line-accumulating interactive session. Lines collect into a
// buffer until a blank line runs the whole block against the interpreter's
// persistent state; ":q" or end of input ends the session.
package tpy

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Banner is the greeting an interactive frontend prints before prompting.
const Banner = "MiniPy REPL — blank line to run, :q to quit"

// Prompts shown at the start of a block and on continuation lines.
const (
	PromptMain = ">>> "
	PromptCont = "... "
)

// Prompter supplies one input line per prompt. Returning an error (io.EOF
// included) ends the session.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// Interact runs the accumulation loop until the prompter fails or the user
// types ":q". Each executed block shares the interpreter's global
// environment and function table with every block before it, so definitions
// persist across blocks. A failed block is discarded; the session continues.
func (ip *Interpreter) Interact(pr Prompter) {
	var buf strings.Builder
	for {
		prompt := PromptMain
		if buf.Len() > 0 {
			prompt = PromptCont
		}
		line, err := pr.Prompt(prompt)
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")

		if line == ":q" {
			return
		}
		if line == "" {
			if buf.Len() > 0 {
				ip.RunSource(buf.String())
				buf.Reset()
			}
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
}

// stdioPrompter prompts on a plain writer and reads lines from a buffered
// reader. It is what non-terminal frontends and tests use.
type stdioPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdioPrompter returns a Prompter over arbitrary streams.
func NewStdioPrompter(in io.Reader, out io.Writer) Prompter {
	return &stdioPrompter{in: bufio.NewReader(in), out: out}
}

func (p *stdioPrompter) Prompt(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}
