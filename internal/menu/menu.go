package menu

import (
	"fmt"
	"io"
	"math"
)

type State int

const (
	Running State = iota
	Exited
)

func (s State) String() string {
	if s == Exited {
		return "exited"
	}
	return "running"
}

// Entry binds one option to the action it runs. Action may be nil for the terminal
// option.
type Entry struct {
	Option Option
	Action func()
}

type Dispatcher struct {
	title    string
	entries  []Entry
	prompter *Prompter
	out      io.Writer
	state    State
}

// New numbers the entries 1..n in the order given.
func New(title string, entries []Entry, prompter *Prompter, out io.Writer) *Dispatcher {
	return &Dispatcher{
		title:    title,
		entries:  append([]Entry(nil), entries...),
		prompter: prompter,
		out:      out,
	}
}

func (d *Dispatcher) State() State { return d.state }

// Run shows the menu and runs selected actions until the terminal option is chosen.
// It returns nil once Exited, or the input error that stopped it.
func (d *Dispatcher) Run() error {
	if len(d.entries) == 0 {
		d.state = Exited
		return nil
	}
	for d.state == Running {
		d.render()
		n, err := d.prompter.Int("Select an option", 1, len(d.entries))
		if err != nil {
			return err
		}
		entry := d.entries[n-1]
		if entry.Action != nil {
			entry.Action()
		}
		if entry.Option.Terminal() {
			d.state = Exited
		}
	}
	return nil
}

func (d *Dispatcher) render() {
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, d.title)
	width := int(math.Log10(float64(len(d.entries)))) + 1
	for i, e := range d.entries {
		fmt.Fprintf(d.out, "%*d. %s\n", width, i+1, e.Option)
	}
}
