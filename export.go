package ott

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ExportCSV streams the solved trajectory as CSV for the plotting and
// reporting collaborators. One row per time index with the state and the
// thrust applied over the interval starting there; the final row carries
// zero thrust.
func (s *Solution) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "x", "y", "vx", "vy", "ux", "uy"}); err != nil {
		return err
	}
	for k, st := range s.States {
		u := []float64{0, 0}
		if k < len(s.Thrusts) {
			u = s.Thrusts[k]
		}
		rec := []string{
			fmt.Sprintf("%d", k),
			fmt.Sprintf("%f", st[0]), fmt.Sprintf("%f", st[1]),
			fmt.Sprintf("%f", st[2]), fmt.Sprintf("%f", st[3]),
			fmt.Sprintf("%f", u[0]), fmt.Sprintf("%f", u[1]),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSVFile saves the solved trajectory to the given path.
func (s *Solution) ExportCSVFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.ExportCSV(f)
}
