package menu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Prompter reads whole lines from in and writes prompts and notices to out.
// Invalid answers print a notice and ask again; only a read failure or the end of
// input is returned as an error.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) line(msg string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", msg)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Text returns the trimmed answer, which may be empty.
func (p *Prompter) Text(msg string) (string, error) {
	return p.line(msg)
}

// Required is Text that asks again until the answer is not blank.
func (p *Prompter) Required(msg string) (string, error) {
	for {
		v, err := p.line(msg)
		if err != nil {
			return "", err
		}
		if v != "" {
			return v, nil
		}
		fmt.Fprintln(p.out, "A value is required.")
	}
}

// Int asks until the answer is an integer within [min, max].
func (p *Prompter) Int(msg string, min, max int) (int, error) {
	for {
		v, err := p.line(msg)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(v)
		if convErr == nil && n >= min && n <= max {
			return n, nil
		}
		fmt.Fprintf(p.out, "Enter a whole number between %d and %d.\n", min, max)
	}
}

// Decimal asks until the answer is a non-negative decimal number.
func (p *Prompter) Decimal(msg string) (decimal.Decimal, error) {
	for {
		v, err := p.line(msg)
		if err != nil {
			return decimal.Zero, err
		}
		d, convErr := decimal.NewFromString(v)
		if convErr == nil && !d.IsNegative() {
			return d, nil
		}
		fmt.Fprintln(p.out, "Enter a number of zero or more, like 10.50.")
	}
}
