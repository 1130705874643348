// Package console drives a ledger from lines of text.  It stands in for a
// tournament director's screen: one command per line, results and errors
// printed, and the session carries on after a failed command.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/ts4z/pkoledger/dep"
	"github.com/ts4z/pkoledger/ledger"
	"github.com/ts4z/pkoledger/varz"
)

var (
	commandsRun   = varz.NewMap("commandsRun")
	commandErrors = varz.NewMap("commandErrors")
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

type command struct {
	usage string
	help  string
	run   func(c *Console, args []string) error
}

type Console struct {
	lk  *ledger.Locked
	out io.Writer

	// Prompt is printed before each line is read.  Empty for scripts.
	Prompt string
}

func New(lk *ledger.Locked, out io.Writer) *Console {
	return &Console{
		lk:  dep.Required(lk),
		out: dep.Required(out),
	}
}

// Run executes every line of in until EOF, quit, or ctx is done.  Command
// failures are printed and do not stop the run.  Lines are read on their own
// goroutine so that cancelling ctx interrupts a prompt waiting on a terminal;
// that goroutine stays blocked in in until its next read returns.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.Prompt != "" {
			fmt.Fprint(c.out, c.Prompt)
		}
		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return <-readErr
			}
			line = l
		}
		err := c.Exec(line)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprint(c.out, pterm.Error.Sprintln(err))
		}
	}
}

// Exec runs one command line.  Blank lines and # comments do nothing.
func (c *Console) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	fields := strings.Fields(line)
	name := strings.ToLower(fields[0])
	cmd, ok := commands[name]
	if !ok {
		commandErrors.Add("unknown", 1)
		return fmt.Errorf("unknown command %q, try help", fields[0])
	}
	commandsRun.Add(name, 1)
	err := cmd.run(c, fields[1:])
	if err != nil && !errors.Is(err, ErrQuit) {
		commandErrors.Add(name, 1)
	}
	return err
}

func (c *Console) do(f func(*ledger.Ledger) error) error {
	return c.lk.Do(f)
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) success(format string, a ...any) {
	fmt.Fprint(c.out, pterm.Success.Sprintfln(format, a...))
}

func (c *Console) info(format string, a ...any) {
	fmt.Fprint(c.out, pterm.Info.Sprintfln(format, a...))
}

func (c *Console) table(data pterm.TableData) error {
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	c.println(s)
	return nil
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
