package render

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phil-mansfield/spherepack"
	"github.com/phil-mansfield/spherepack/geom"
)

// FrameTime is the time between frames. A single tick is run every frame.
var FrameTime = 16 * time.Millisecond

var (
	particleStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	imageStyle    = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	edgeStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	statusStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// Stepper is a simulation that can be viewed. *spherepack.Simulation
// implements it.
type Stepper interface {
	Step() (spherepack.TickStats, error)
	Snapshot() []spherepack.Particle
	State() spherepack.State
}

// Viewer draws a simulation to a terminal screen.
type Viewer struct {
	screen tcell.Screen
	cam    *Camera
}

type cell struct {
	col, row int
	r        rune
	style    tcell.Style
}

type disk struct {
	col, row int
	radius   float64
	depth    float64
	image    bool
}

// NewViewer creates a Viewer for a box of the given width. The screen must
// already be initialized and is not closed by the Viewer.
func NewViewer(screen tcell.Screen, boxWidth float64) *Viewer {
	return &Viewer{screen: screen, cam: NewCamera(boxWidth)}
}

// Run steps sim once per frame and draws every new state until the user
// quits with Esc, q, or Ctrl-C. Once the simulation has terminated, the
// final state stays on screen until the user quits. The statistics of the
// last tick are returned along with any error returned by Step.
func (v *Viewer) Run(sim Stepper) (spherepack.TickStats, error) {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(FrameTime)
	defer ticker.Stop()

	var stats spherepack.TickStats
	for {
		select {
		case ev := <-events:
			if isQuit(ev) {
				return stats, nil
			} else if _, ok := ev.(*tcell.EventResize); ok {
				v.screen.Sync()
				v.Draw(sim.Snapshot(), stats)
			}

		case <-ticker.C:
			if sim.State() != spherepack.Running {
				continue
			}

			var err error
			if stats, err = sim.Step(); err != nil {
				return stats, err
			}
			v.Draw(sim.Snapshot(), stats)
		}
	}
}

func isQuit(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	return ok && quitKey(key.Key(), key.Rune())
}

func quitKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return r == 'q' || r == 'Q'
	}
	return false
}

// Draw replaces the contents of the screen with the given particles, the
// edges of the box, and a status line.
func (v *Viewer) Draw(ps []spherepack.Particle, stats spherepack.TickStats) {
	cols, rows := v.screen.Size()

	v.screen.Clear()
	for _, c := range v.cells(ps, cols, rows) {
		v.screen.SetContent(c.col, c.row, c.r, nil, c.style)
	}
	v.drawStatus(stats, cols)
	v.screen.Show()
}

func (v *Viewer) drawStatus(stats spherepack.TickStats, cols int) {
	line := fmt.Sprintf(
		"tick %d  t = %.3f  phi = %.4f  %s  [q to quit]",
		stats.Tick, stats.Time, stats.Fraction, stats.State,
	)
	for i, r := range []rune(line) {
		if i >= cols {
			break
		}
		v.screen.SetContent(i, 0, r, nil, statusStyle)
	}
}

// cells returns every cell that needs to be drawn, in drawing order.
func (v *Viewer) cells(ps []spherepack.Particle, cols, rows int) []cell {
	disks := v.disks(ps, cols, rows)
	// Far spheres are drawn first.
	sort.SliceStable(disks, func(i, j int) bool {
		return disks[i].depth > disks[j].depth
	})

	out := []cell{}
	for _, d := range disks {
		out = appendDisk(out, d, cols, rows)
	}
	return v.appendEdges(out, cols, rows)
}

func (v *Viewer) disks(ps []spherepack.Particle, cols, rows int) []disk {
	disks := []disk{}
	add := func(pos geom.Vec, radius float64, image bool) {
		col, row, cr, ok := v.cam.Disk(pos, radius, cols, rows)
		if !ok {
			return
		}
		ndc, _ := v.cam.Project(pos, cols, rows)
		disks = append(disks, disk{col, row, cr, ndc.Z(), image})
	}

	for i := range ps {
		add(ps[i].Pos, ps[i].Radius, false)
		for _, img := range ps[i].Images() {
			add(img, ps[i].Radius, true)
		}
	}
	return disks
}

func appendDisk(out []cell, d disk, cols, rows int) []cell {
	r, style := 'O', particleStyle
	if d.image {
		r, style = '+', imageStyle
	}

	dc := int(math.Ceil(d.radius))
	dr := int(math.Ceil(d.radius / cellAspect))
	for row := d.row - dr; row <= d.row+dr; row++ {
		for col := d.col - dc; col <= d.col+dc; col++ {
			if col < 0 || col >= cols || row < 0 || row >= rows {
				continue
			}
			x, y := float64(col-d.col), float64(row-d.row)*cellAspect
			if (col == d.col && row == d.row) || x*x+y*y <= d.radius*d.radius {
				out = append(out, cell{col, row, r, style})
			}
		}
	}
	return out
}

func (v *Viewer) appendEdges(out []cell, cols, rows int) []cell {
	steps := 2 * (cols + rows)
	for _, e := range v.cam.Edges() {
		a, b := e[0], e[1]
		for s := 0; s <= steps; s++ {
			p := a.Add(b.Sub(a).Scale(float64(s) / float64(steps)))
			if col, row, ok := v.cam.Cell(p, cols, rows); ok {
				out = append(out, cell{col, row, '.', edgeStyle})
			}
		}
	}
	return out
}
