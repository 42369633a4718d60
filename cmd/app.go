// Package cmd implements the CLI application to review a portfolio allocation.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/etnz/allocation"
	"github.com/google/subcommands"
)

const (
	EnvTargetsFile   = "ALLOC_TARGETS_FILE"
	EnvPositionsFile = "ALLOC_POSITIONS_FILE"
	EnvCurrency      = "ALLOC_CURRENCY"
)

// Commands lists the subcommands of the application.
var Commands = []subcommands.Command{
	&positionsCmd{},
	&targetsCmd{},
	&serveCmd{},
	&topicCmd{},
}

// Register the subcommands.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "allocation")
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var targetsFile = flag.String("targets", envOr(EnvTargetsFile, "targets.toml"), "Path to the targets file (TOML format).\n Defaults to the environment variable \""+EnvTargetsFile+"\" when set.")
var positionsFile = flag.String("positions", envOr(EnvPositionsFile, "positions.json"), "Path to the positions file (JSON format).\n Defaults to the environment variable \""+EnvPositionsFile+"\" when set.")
var selector = flag.String("selector", allocation.DefaultSelector, "JSONPath selecting the positions in the positions file")
var currency = flag.String("c", envOr(EnvCurrency, "USD"), "Reporting currency.\n Defaults to the environment variable \""+EnvCurrency+"\" when set.")

// Verbose enables the log output.
var Verbose = flag.Bool("v", false, "print warnings and debug information")

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// SetupLogging silences the log package unless verbose is on. It must be
// called once the flags are parsed.
func SetupLogging() {
	if !*Verbose {
		log.SetOutput(io.Discard)
	}
}

// DecodeTargets decodes the targets file. Targets are validated while
// decoding.
func DecodeTargets() ([]allocation.Target, error) {
	var targets []allocation.Target
	err := decodeFile(*targetsFile, func(r io.Reader) (err error) {
		targets, err = allocation.DecodeTargets(r)
		return err
	})
	return targets, err
}

// DecodePositions decodes the positions file.
func DecodePositions() ([]allocation.Position, error) {
	var positions []allocation.Position
	err := decodeFile(*positionsFile, func(r io.Reader) (err error) {
		positions, err = allocation.DecodePositions(r, *selector, *currency)
		return err
	})
	return positions, err
}

// decodeFile opens name and decodes it. A missing file decodes to nothing.
func decodeFile(name string, decode func(io.Reader) error) error {
	f, err := os.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, %q does not exist, using an empty set instead", name)
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	if err := decode(f); err != nil {
		return fmt.Errorf("could not decode %q: %w", name, err)
	}
	return nil
}

// LoadPositionTable builds the positions table from the targets and
// positions files.
func LoadPositionTable() (*positionTable, error) {
	targets, err := DecodeTargets()
	if err != nil {
		return nil, err
	}
	positions, err := DecodePositions()
	if err != nil {
		return nil, err
	}
	total := allocation.TotalValue(positions, *currency)
	states := allocation.Allocate(targets, positions, *currency)
	return newPositionTable(states, total), nil
}
