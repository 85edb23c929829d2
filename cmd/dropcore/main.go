// Dropcore is a deterministic simulator for drop rules: it loads a rules
// directory and lets you break, click, spawn and hit things to see what
// drops.
// Usage: dropcore [--version] [--plain] [--script <file>] [--trace] [--seed <n>] [--verbose] [rules_directory]
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nathoo/dropcore/cli"
	"github.com/nathoo/dropcore/config"
	"github.com/nathoo/dropcore/engine"
	"github.com/nathoo/dropcore/engine/action"
	"github.com/nathoo/dropcore/loader"
	"github.com/nathoo/dropcore/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: dropcore [--version] [--plain] [--script <file>] [--trace] [--seed <n>] [--verbose] [rules_directory]"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	trace := false
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("dropcore %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			cfg.Plain = true
		case "--trace":
			trace = true
		case "--verbose":
			cfg.Verbose = true
		case "--script", "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a value\n", args[i])
				os.Exit(1)
			}
			i++
			if args[i-1] == "--script" {
				scriptFile = args[i]
				continue
			}
			seed, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed: %q is not an integer\n", args[i])
				os.Exit(1)
			}
			cfg.Seed = seed
		default:
			cfg.RulesDir = args[i]
		}
	}

	if cfg.RulesDir == "" {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Verbose {
		logger = log.New(os.Stderr, "dropcore: ", log.Ltime)
	}

	// Compile the rules. Broken rules are skipped and reported.
	reg := action.NewRegistry()
	set, report, err := loader.Load(cfg.RulesDir, reg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rules: %v\n", err)
		os.Exit(1)
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %v\n", w)
	}

	eng := engine.New(set,
		engine.WithRegistry(reg),
		engine.WithSeed(cfg.Seed),
		engine.WithLogger(logger),
		engine.WithPlayer(cfg.Player, cfg.World),
	)
	eng.RulesName = filepath.Base(cfg.RulesDir)
	logger.Printf("loaded %s", report.Summary())

	banner := fmt.Sprintf("dropcore %s: %s, seed %d\n", version, report.Summary(), cfg.Seed)

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		fmt.Println(banner)
		c := cli.New(eng, cfg.RulesDir, cfg.SaveDir)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if cfg.Plain || !isTerminal() {
		fmt.Println(banner)
		c := cli.New(eng, cfg.RulesDir, cfg.SaveDir)
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(eng, cfg.RulesDir, cfg.SaveDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
