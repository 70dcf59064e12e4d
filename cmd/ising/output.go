package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/rabbott99/statmech-ising/scan"
)

// writeTable prints one space-separated line per row: the temperature, the
// four estimates, then their four errors.
func writeTable(w io.Writer, rows []scan.Row) error {
	bw := bufio.NewWriter(w)
	for _, r := range rows {
		v, e := r.Estimate.Value, r.Estimate.Error
		fmt.Fprintf(bw, "%g %g %g %g %g %g %g %g %g\n",
			r.Temperature,
			v.Energy, v.HeatCapacity, v.Magnetization, v.Susceptibility,
			e.Energy, e.HeatCapacity, e.Magnetization, e.Susceptibility)
	}
	return bw.Flush()
}
