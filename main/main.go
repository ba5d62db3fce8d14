package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/appcell/turbvis/deposit"
	"github.com/appcell/turbvis/frame"
	"github.com/appcell/turbvis/io"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	// The main function manages input sanitization and calls the secondary
	// main functions for each mode. The code tries to fail gracefully if the
	// user provides incorrect input.

	var (
		depositStr, filterStr string
		gridStats             string
		exampleConfig         string
	)
	vars := map[string]*string{
		"Deposit":       &depositStr,
		"Filter":        &filterStr,
		"GridStats":     &gridStats,
		"ExampleConfig": &exampleConfig,
	}

	flag.IntVar(
		&deposit.NumCores, "Threads", runtime.NumCPU(),
		"Number of threads used. Default is the number of logical cores.",
	)
	flag.StringVar(
		&depositStr, "Deposit", "",
		"Configuration file for [Deposit] mode: interpolate a particle "+
			"snapshot onto a grid.",
	)
	flag.StringVar(
		&filterStr, "Filter", "",
		"Configuration file for [Filter] mode: post-process a rendered "+
			"frame sequence.",
	)
	flag.StringVar(
		&gridStats, "GridStats", "",
		"Grid container file. Scans the grid in chunks and reports its "+
			"minimum and maximum cell values.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. Accepted arguments are 'Deposit' "+
			"and 'Filter'.",
	)

	flag.Parse()

	// Figure out the mode and fail with a descriptive error if the user gave
	// incorrect flags.
	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Deposit":
		wrap := io.DefaultDepositWrapper()
		err := gcfg.ReadFileInto(wrap, depositStr)
		if err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Deposit

		if !con.ValidInput() {
			log.Fatal("Invalid/non-existent 'Input' value.")
		} else if !con.ValidOutput() {
			log.Fatal("Invalid/non-existent 'Output' value.")
		} else if !con.ValidCells() {
			log.Fatal("Invalid/non-existent 'Cells' value.")
		} else if !con.ValidDomain() {
			log.Fatal("'DomainMax' must be larger than 'DomainMin'.")
		} else if !con.ValidValueField() {
			log.Fatalf("Invalid 'ValueField' value, '%s'.", con.ValueField)
		} else if !con.ValidMethod() {
			log.Fatalf("Invalid 'Method' value, '%s'.", con.Method)
		}

		depositMain(con)

	case "Filter":
		wrap := io.DefaultFilterWrapper()
		err := gcfg.ReadFileInto(wrap, filterStr)
		if err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Filter

		if !con.ValidInput() {
			log.Fatal("Invalid/non-existent 'Input' value.")
		} else if !con.ValidOutput() {
			log.Fatal("Invalid/non-existent 'Output' value.")
		} else if !con.ValidIndexRange() {
			log.Fatal("Invalid 'StartIndex'/'EndIndex' range.")
		} else if !con.ValidTint() {
			log.Fatal("Tint channels must be in [0, 255].")
		}

		filterMain(con)

	case "GridStats":
		min, max, err := io.GridMinMax(gridStats)
		if err != nil {
			log.Fatal(err.Error())
		}
		fmt.Printf("%s: min = %g, max = %g\n", gridStats, min, max)

	case "ExampleConfig":
		switch exampleConfig {
		case "Deposit":
			fmt.Println(io.ExampleDepositFile)
		case "Filter":
			fmt.Println(io.ExampleFilterFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. Only recognized " +
					"arguments are 'Deposit' and 'Filter'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive
// error if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but turbvis only accepts "+
				"one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// setupIO redirects logging and starts a CPU profile when the config asks
// for them. The returned FileGroup must be closed at the end of the run.
func setupIO(con *io.SharedConfig) *FileGroup {
	var err error
	fg := new(FileGroup)

	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		err = pprof.StartCPUProfile(fg.prof)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	return fg
}

// depositMain interpolates the configured particle attribute onto a grid
// and writes the populated grid container.
func depositMain(con *io.DepositConfig) {
	fg := setupIO(&con.SharedConfig)
	defer fg.Close()

	snap, err := io.ReadSnapshot(con.Input)
	if err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Read %d particles from %s", snap.Count, con.Input)

	xs := snap.Positions()
	vals, err := snap.Values(con.ValueField)
	if err != nil {
		log.Fatal(err.Error())
	}

	dom := deposit.Domain{
		Min: con.DomainMin, Max: con.DomainMax, Cells: con.Cells,
	}

	var intr deposit.Depositor
	switch strings.ToLower(con.Method) {
	case "trilinear":
		intr = deposit.TriLinear()
	case "ngp":
		intr = deposit.NearestGridPoint()
	default:
		panic("Impossible")
	}

	log.Printf(
		"Depositing '%s' onto a %d^3 grid over [%g, %g] with %d threads",
		con.ValueField, con.Cells, con.DomainMin, con.DomainMax,
		deposit.NumCores,
	)

	g, stats, err := deposit.DepositParallel(
		dom, intr, xs, vals, deposit.NumCores,
	)
	if err != nil {
		log.Fatal(err.Error())
	}

	log.Printf(
		"Deposited %d particles, skipped %d (%d out of bounds, "+
			"%d non-finite)",
		stats.Deposited, stats.Skipped(), stats.OutOfBounds, stats.NonFinite,
	)

	log.Printf("Writing to %s", con.Output)
	if err := io.WriteGridFile(con.Output, g.Vals); err != nil {
		log.Fatal(err.Error())
	}
}

// filterMain post-processes the configured frame range.
func filterMain(con *io.FilterConfig) {
	fg := setupIO(&con.SharedConfig)
	defer fg.Close()

	seq := &frame.Sequence{
		InPrefix:  con.Input,
		OutPrefix: con.Output,
		Start:     con.StartIndex,
		End:       con.EndIndex,
		Opt: frame.Options{
			Brightness:     con.Brightness,
			Contrast:       con.Contrast,
			ContrastOffset: con.ContrastOffset,
			TintR:          uint8(con.TintR),
			TintG:          uint8(con.TintG),
			TintB:          uint8(con.TintB),
			TintWeight:     con.TintWeight,
			Saturation:     con.Saturation,
		},
	}

	if err := seq.Run(); err != nil {
		log.Fatal(err.Error())
	}
}
