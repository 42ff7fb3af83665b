package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime/pprof"
	"sort"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phil-mansfield/spherepack"
	"github.com/phil-mansfield/spherepack/io"
	"github.com/phil-mansfield/spherepack/render"
)

type FileGroup struct {
	log, prof *os.File
}

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
	var (
		pack, exampleConfig, info string
	)
	vars := map[string]*string{
		"Pack":          &pack,
		"ExampleConfig": &exampleConfig,
		"Info":          &info,
	}

	flag.StringVar(
		&pack, "Pack", "",
		"Configuration file for [Packing] mode. Files ending in .toml are "+
			"read as TOML.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. The only accepted argument is 'Packing'.",
	)
	flag.StringVar(
		&info, "Info", "",
		"Prints a summary of a snapshot file written by [Packing] mode.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Pack":
		con, err := io.ReadConfig(pack)
		if err != nil {
			log.Fatal(err.Error())
		}
		packMain(con)
	case "ExampleConfig":
		switch exampleConfig {
		case "Packing":
			fmt.Println(io.ExamplePackingFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only recognized " +
					"argument is 'Packing'.",
			)
		}
	case "Info":
		infoMain(info)
	default:
		panic("Impossible")
	}
}

func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}
	sort.Strings(setNames)

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but spherepack "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

func packMain(con *io.PackingConfig) {
	fg := packSetupIO(con)
	defer fg.Close()

	ps := initialState(con)
	simCon, err := con.SimConfig()
	if err != nil {
		log.Fatal(err.Error())
	}

	sim, err := spherepack.NewSimulation(ps, simCon)
	if err != nil {
		log.Fatal(err.Error())
	}
	sim.Log(true, con.LogEvery)

	log.Printf(
		"Packing %d particles in a %s box of width %g to a fraction of %g.",
		sim.Len(), simCon.Boundary, simCon.Width, simCon.TargetFraction,
	)

	var stats spherepack.TickStats
	if con.Display {
		stats, err = display(sim, con.BoxWidth)
	} else {
		stats, err = sim.Run(0)
	}
	if err != nil {
		log.Fatal(err.Error())
	}

	out := snapshotFile(con.Output, stats.State)
	if stats.State != spherepack.Terminated {
		log.Printf(
			"Viewer closed before reaching the target fraction. Writing "+
				"the unfinished state to %s.", out,
		)
	}
	log.Printf(
		"Finished after %d ticks: t = %.4g, phi = %.4f.",
		stats.Tick, stats.Time, stats.Fraction,
	)

	if err = io.WriteSnapshotFile(out, sim.Snapshot()); err != nil {
		log.Fatal(err.Error())
	}
	if con.ValidPlotFile() {
		io.PlotHistory(con.PlotFile, sim.History(), con.TargetFraction)
	}
}

// snapshotFile returns the file the final snapshot goes to. Only a
// terminated run is written to output.
func snapshotFile(output string, state spherepack.State) string {
	if state == spherepack.Terminated {
		return output
	}
	return output + ".partial"
}

func packSetupIO(con *io.PackingConfig) *FileGroup {
	fg := &FileGroup{}
	var err error

	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}

	log.Println("Running Packing main.")

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

func initialState(con *io.PackingConfig) []spherepack.Particle {
	params := con.InitParams()

	if con.ValidInput() {
		ps, err := io.ReadInitialState(
			con.Input, params.Radius, params.GrowthRate,
		)
		if err != nil {
			log.Fatal(err.Error())
		} else if len(ps) != con.Particles {
			log.Fatalf(
				"Input file %s has %d particles, but 'Particles' is %d.",
				con.Input, len(ps), con.Particles,
			)
		}
		return ps
	}

	seed := int64(con.Seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("Placing particles with seed %d.", seed)

	ps, err := spherepack.RandomParticles(
		con.Particles, params, rand.New(rand.NewSource(seed)),
	)
	if err != nil {
		log.Fatal(err.Error())
	}
	return ps
}

// display runs the simulation inside the terminal viewer. The log is
// silenced while the viewer owns the terminal unless it goes to a file.
func display(
	sim *spherepack.Simulation, boxWidth float64,
) (spherepack.TickStats, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return spherepack.TickStats{}, err
	}
	if err = screen.Init(); err != nil {
		return spherepack.TickStats{}, err
	}

	if log.Writer() == os.Stderr {
		sim.Log(false, 0)
	}

	stats, err := render.NewViewer(screen, boxWidth).Run(sim)
	screen.Fini()
	return stats, err
}

func infoMain(fname string) {
	recs, err := io.ReadSnapshotFile(fname)
	if err != nil {
		log.Fatal(err.Error())
	}

	min, max, ok := io.RadiusRange(recs)
	if !ok {
		fmt.Printf("%s: 0 records\n", fname)
		return
	}
	fmt.Printf(
		"%s: %d records, radius range [%g, %g]\n", fname, len(recs), min, max,
	)
}
