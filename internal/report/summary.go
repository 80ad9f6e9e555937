package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/user/eigenplot_go/internal/analysis"
	"github.com/user/eigenplot_go/internal/parser"
)

// PrintStates prints one row per state: energy, both expectation values and
// the colour class its wavefunction is drawn in.
func PrintStates(w io.Writer, d *parser.SimulationData) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"State", "Energy", "<x>", "Spread", "Parity"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	pos, spread := d.ExpPosition(), d.ExpSpread()
	for i, e := range d.Energies {
		table.Append([]string{
			strconv.Itoa(i),
			fmt.Sprintf("%.6g", e),
			fmt.Sprintf("%.6g", pos[i]),
			fmt.Sprintf("%.6g", spread[i]),
			analysis.StateParity(i).String(),
		})
	}
	table.Render()
}

// PrintLimits prints the limit vectors of every chart, labelled by title.
func PrintLimits(w io.Writer, charts ...*Chart) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Chart", "Panel", "x min", "x max", "y min", "y max"})
	table.SetAutoMergeCellsByColumnIndex([]int{0})
	table.SetAutoWrapText(false)

	for _, c := range charts {
		table.Append(append([]string{c.Title}, limitsRow("Potential", c.Panel1)...))
		table.Append(append([]string{c.Title}, limitsRow("Spread", c.Panel2)...))
	}
	table.Render()
}
