// Package interactive provides interactive prompts for user confirmation.
package interactive

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/adamancini/jsassist/internal/questions"
)

var titler = cases.Title(language.English, cases.NoLower)

// titleCase capitalizes the first letter of each word, leaving the rest as is.
func titleCase(s string) string {
	return titler.String(s)
}

// Response represents the user's response to a prompt.
type Response int

const (
	ResponseYes  Response = iota // Confirm this question
	ResponseNo                   // Decline this question
	ResponseAll                  // Confirm all remaining questions
	ResponseQuit                 // Abort the session
)

// Prompter asks the assistant's questions on a terminal.
// It implements questions.Asker.
type Prompter struct {
	in         io.Reader
	out        io.Writer
	scanner    *bufio.Scanner
	approveAll bool

	confirmed int
	declined  int
}

// NewPrompter creates a prompter with stdin/stdout.
func NewPrompter() *Prompter {
	return NewPrompterWithIO(os.Stdin, os.Stdout)
}

// NewPrompterWithIO creates a prompter with custom input/output (for testing).
func NewPrompterWithIO(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:      in,
		out:     out,
		scanner: bufio.NewScanner(in),
	}
}

// IsTerminal checks if stdin is a terminal (TTY).
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// prompt displays a question and reads the response.
func (p *Prompter) prompt(format string, args ...any) Response {
	if p.approveAll {
		return ResponseYes
	}

	_, _ = fmt.Fprintf(p.out, format, args...)
	_, _ = fmt.Fprint(p.out, " [y/n/a/q] ")

	if !p.scanner.Scan() {
		return ResponseQuit
	}

	input := strings.ToLower(strings.TrimSpace(p.scanner.Text()))
	switch input {
	case "y", "yes":
		return ResponseYes
	case "n", "no":
		return ResponseNo
	case "a", "all":
		p.approveAll = true
		return ResponseYes
	case "q", "quit":
		return ResponseQuit
	default:
		// Default to no for invalid input
		_, _ = fmt.Fprintln(p.out, "Invalid response, skipping.")
		return ResponseNo
	}
}

// Ask implements questions.Asker. Quitting, or running out of input,
// returns questions.ErrAborted.
func (p *Prompter) Ask(q questions.Question) (bool, error) {
	resp := p.prompt("%s %s", questionSymbol, q.Prompt)
	switch resp {
	case ResponseYes:
		p.confirmed++
		return true, nil
	case ResponseNo:
		p.declined++
		_, _ = fmt.Fprintf(p.out, "  %s Skipped\n", skipSymbol)
		return false, nil
	default:
		_, _ = fmt.Fprintln(p.out, "\nAborted.")
		return false, questions.ErrAborted
	}
}

// PrintSummary shows how many questions were confirmed and declined.
func (p *Prompter) PrintSummary() {
	if p.confirmed+p.declined == 0 {
		return
	}
	_, _ = fmt.Fprintln(p.out, "\nSummary:")
	_, _ = fmt.Fprintf(p.out, "  %s: %d\n", titleCase("confirmed"), p.confirmed)
	if p.declined > 0 {
		_, _ = fmt.Fprintf(p.out, "  %s: %d\n", titleCase("declined"), p.declined)
	}
}

// Symbols for output
const (
	questionSymbol = "?"
	skipSymbol     = "-"
)
