package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/semmy-space/coda/internal/output"
)

// errNoInput is returned by prompts when interactive input is disabled.
var errNoInput = errors.New("interactive input required but --no-input is set")

// Console is the interactive side of the CLI: prompts and menu text go to out,
// answers come from in. Structured results go through the Formatter instead.
type Console struct {
	in         *bufio.Reader
	out        io.Writer
	readSecret func() (string, error)
	noInput    bool
}

// NewConsole reads answers from in and writes prompts to out. Secrets are read
// like any other line.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// NewTerminalConsole prompts on stderr and reads stdin, hiding secret input
// when stdin is a terminal.
func NewTerminalConsole(noInput bool) *Console {
	c := NewConsole(os.Stdin, os.Stderr)
	c.noInput = noInput
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		c.readSecret = func() (string, error) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(c.out)
			return string(b), err
		}
	}
	return c
}

// Printf writes menu or status text.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Header prints a boxed section title.
func (c *Console) Header(title string) {
	rule := strings.Repeat("=", 50)
	c.Printf("\n%s\n| %s |\n%s\n", rule, output.PadString(title, 46), rule)
}

// Prompt prints label and reads one trimmed line. It returns io.EOF once input is exhausted.
func (c *Console) Prompt(label string) (string, error) {
	if c.noInput {
		return "", errNoInput
	}
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptSecret reads a line without echo when attached to a terminal.
// Surrounding whitespace is kept: it may be part of the secret.
func (c *Console) PromptSecret(label string) (string, error) {
	if c.noInput {
		return "", errNoInput
	}
	if c.readSecret == nil {
		fmt.Fprint(c.out, label)
		line, err := c.in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	fmt.Fprint(c.out, label)
	return c.readSecret()
}

// PromptValid re-prompts until validate accepts the answer, printing each rejection.
func (c *Console) PromptValid(label string, validate func(string) error) (string, error) {
	return c.promptUntil(label, c.Prompt, validate)
}

// PromptSecretValid is PromptValid for secrets.
func (c *Console) PromptSecretValid(label string, validate func(string) error) (string, error) {
	return c.promptUntil(label, c.PromptSecret, validate)
}

func (c *Console) promptUntil(label string, read func(string) (string, error), validate func(string) error) (string, error) {
	for {
		answer, err := read(label)
		if err != nil {
			return "", err
		}
		if err := validate(answer); err != nil {
			c.Printf("Error: %v.\n", err)
			continue
		}
		return answer, nil
	}
}

// PromptInt re-prompts until the answer is an integer accepted by validate.
func (c *Console) PromptInt(label string, validate func(int) error) (int, error) {
	var n int
	_, err := c.PromptValid(label, func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return errors.New("please enter a whole number")
		}
		if validate != nil {
			if err := validate(v); err != nil {
				return err
			}
		}
		n = v
		return nil
	})
	return n, err
}

// PromptFloat re-prompts until the answer is a number accepted by validate.
func (c *Console) PromptFloat(label string, validate func(float64) error) (float64, error) {
	var f float64
	_, err := c.PromptValid(label, func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.New("please enter a number")
		}
		if validate != nil {
			if err := validate(v); err != nil {
				return err
			}
		}
		f = v
		return nil
	})
	return f, err
}

// Confirm asks a y/n question; anything but y/yes is no.
func (c *Console) Confirm(label string) (bool, error) {
	answer, err := c.Prompt(label)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// inputError converts a prompt failure into a CLIError.
func inputError(err error) error {
	if errors.Is(err, errNoInput) {
		return output.Wrap(output.ExitUsage, errNoInput.Error(), err)
	}
	if errors.Is(err, io.EOF) {
		return output.Wrap(output.ExitUsage, "input ended before all answers were given", err)
	}
	return output.Wrap(output.ExitGeneral, fmt.Sprintf("failed to read input: %v", err), err)
}
