// Package interact asks the user for the few values the plotting run needs.
// Prompts go through the Input interface so callers can swap the terminal for
// canned answers.
package interact

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoInput is returned when the input ends while a prompt is pending.
var ErrNoInput = errors.New("no more input")

// Input answers prompts, one line per call.
type Input interface {
	Ask(prompt string) (string, error)
}

// Console reads answers from a line oriented stream and writes prompts to out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole returns a Console over in and out, typically os.Stdin and os.Stdout.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

func (c *Console) Ask(prompt string) (string, error) {
	fmt.Fprint(c.out, PromptStyle.Render(prompt)+" ")
	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if err == io.EOF {
			fmt.Fprintln(c.out)
			return "", ErrNoInput
		}
		return "", errors.Wrap(err, "reading answer")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Canned replays fixed answers in order and records the prompts it was asked.
type Canned struct {
	Answers []string
	Prompts []string
}

// NewCanned returns a Canned input holding answers.
func NewCanned(answers ...string) *Canned {
	return &Canned{Answers: answers}
}

func (c *Canned) Ask(prompt string) (string, error) {
	c.Prompts = append(c.Prompts, prompt)
	if len(c.Answers) == 0 {
		return "", ErrNoInput
	}
	answer := c.Answers[0]
	c.Answers = c.Answers[1:]
	return answer, nil
}
