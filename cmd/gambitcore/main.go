// GambitCore is a rule-driven behavior-selection engine for multi-agent combat.
// Usage: gambitcore [--version] [--headless] [--ticks <n>] [--seed <n>] --scenario <file> <gambit_directory>
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/gambitcore/loader"
	"github.com/nathoo/gambitcore/sim"
	"github.com/nathoo/gambitcore/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: gambitcore [--version] [--headless] [--ticks <n>] [--seed <n>] --scenario <file> <gambit_directory>\n"

func main() {
	headless := false
	maxTicks := 600
	seed := int64(1)
	var scenarioFile string
	var gambitDir string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("gambitcore %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--headless":
			headless = true
		case "--ticks":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--ticks requires a number\n")
				os.Exit(1)
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil || n < 1 {
				fmt.Fprintf(os.Stderr, "--ticks: invalid count %q\n", args[i])
				os.Exit(1)
			}
			maxTicks = n
		case "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--seed requires a number\n")
				os.Exit(1)
			}
			i++
			n, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed: invalid seed %q\n", args[i])
				os.Exit(1)
			}
			seed = n
		case "--scenario":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--scenario requires a file path\n")
				os.Exit(1)
			}
			i++
			scenarioFile = args[i]
		default:
			if gambitDir == "" {
				gambitDir = args[i]
			}
		}
	}

	if gambitDir == "" || scenarioFile == "" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	lib, err := loader.Load(gambitDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading gambits: %v\n", err)
		os.Exit(1)
	}

	sc, err := loader.LoadScenario(scenarioFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
		os.Exit(1)
	}

	battle, err := sim.New(lib, sc, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error assembling battle: %v\n", err)
		os.Exit(1)
	}

	if headless {
		runHeadless(battle, maxTicks)
		return
	}

	p := tea.NewProgram(tui.New(battle, 100*time.Millisecond), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless ticks the battle to completion and prints the event stream.
func runHeadless(battle *sim.Sim, maxTicks int) {
	for i := 0; i < maxTicks && !battle.Over(); i++ {
		for _, e := range battle.Tick() {
			fmt.Printf("[%4d] %s %v\n", battle.Engine().Ticks(), e.Type, e.Data)
		}
	}

	fmt.Printf("battle finished after %d ticks (%.1fs)\n",
		battle.Engine().Ticks(), battle.Engine().Elapsed())
	for _, c := range battle.Roster() {
		hp, _ := c.Stat("health")
		fmt.Printf("  %s (%s): %.0f/%.0f health\n", c.Name, c.Faction, hp.Current, hp.Max)
	}
}
