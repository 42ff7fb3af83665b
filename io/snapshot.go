package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/phil-mansfield/spherepack"
	"github.com/phil-mansfield/spherepack/geom"
)

// SnapshotRecord is a single line of a snapshot file. Images of a particle
// are stored as records of their own, right after their owner.
type SnapshotRecord struct {
	Radius, X, Y, Z float64
}

const snapshotSep = " , "

// WriteSnapshot writes one "radius , x , y , z" line for every particle in
// ps, followed by one line for each of its active images.
func WriteSnapshot(w io.Writer, ps []spherepack.Particle) error {
	bw := bufio.NewWriter(w)
	for i := range ps {
		p := &ps[i]
		if err := writeRecord(bw, p.Radius, p.Pos); err != nil {
			return err
		}
		for _, img := range p.Images() {
			if err := writeRecord(bw, p.Radius, img); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func writeRecord(w *bufio.Writer, r float64, pos geom.Vec) error {
	_, err := fmt.Fprint(w,
		formatFloat(r), snapshotSep,
		formatFloat(pos[0]), snapshotSep,
		formatFloat(pos[1]), snapshotSep,
		formatFloat(pos[2]), "\n",
	)
	return err
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// WriteSnapshotFile writes a snapshot of ps to the given file, overwriting
// it if it already exists.
func WriteSnapshotFile(fname string, ps []spherepack.Particle) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}

	if err = WriteSnapshot(f, ps); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadSnapshot parses the records written by WriteSnapshot. Blank lines are
// ignored.
func ReadSnapshot(r io.Reader) ([]SnapshotRecord, error) {
	recs := []SnapshotRecord{}
	scanner := bufio.NewScanner(r)

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		toks := strings.Split(text, ",")
		if len(toks) != 4 {
			return nil, fmt.Errorf(
				"Line %d of snapshot has %d fields instead of 4.",
				line, len(toks),
			)
		}

		var vals [4]float64
		for i, tok := range toks {
			x, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
			if err != nil {
				return nil, fmt.Errorf(
					"Could not parse field %d of line %d of snapshot: %s",
					i+1, line, err.Error(),
				)
			}
			vals[i] = x
		}
		recs = append(recs, SnapshotRecord{vals[0], vals[1], vals[2], vals[3]})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// ReadSnapshotFile parses the snapshot stored in the given file.
func ReadSnapshotFile(fname string) ([]SnapshotRecord, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSnapshot(f)
}

// RadiusRange returns the smallest and largest radii in recs. ok is false
// if recs is empty.
func RadiusRange(recs []SnapshotRecord) (min, max float64, ok bool) {
	if len(recs) == 0 {
		return 0, 0, false
	}
	min, max = recs[0].Radius, recs[0].Radius
	for _, rec := range recs[1:] {
		if rec.Radius < min {
			min = rec.Radius
		}
		if rec.Radius > max {
			max = rec.Radius
		}
	}
	return min, max, true
}
