// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the dropcore simulator.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/dropcore/engine"
	"github.com/nathoo/dropcore/types"
)

// CLI handles line-oriented interaction with the simulator.
type CLI struct {
	*Commands
	In        io.Reader
	Out       io.Writer
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine. rulesDir is what /reload
// recompiles and saveDir is where sessions are written.
func New(eng *engine.Engine, rulesDir, saveDir string) *CLI {
	return &CLI{
		Commands: &Commands{Engine: eng, RulesDir: rulesDir, SaveDir: saveDir},
		In:       os.Stdin,
		Out:      os.Stdout,
	}
}

// Run describes the world, then loops: prompt, input, dispatch, output.
func (c *CLI) Run() {
	c.printResult(c.Engine.Step("look"))

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			output, quit := c.Meta(input)
			for _, line := range output {
				c.printSystem(line)
			}
			if quit {
				return
			}
			continue
		}

		// "again" / "g" repeats the last simulator command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			for _, line := range FormatTrace(result) {
				c.printLine(line)
			}
		}
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	if text == "" {
		fmt.Fprintln(c.Out)
		return
	}
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
