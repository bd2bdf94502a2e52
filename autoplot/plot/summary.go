package plot

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Summary writes one row per drawn layer of the figure.
func (f *Figure) Summary(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Panel", "Role", "Title", "Layer", "Kind", "Items"})
	table.SetFooterAlignment(tablewriter.ALIGN_RIGHT)

	layers, items := 0, 0
	for i, panel := range f.Panels {
		if len(panel.Layers) == 0 {
			table.Append([]string{strconv.Itoa(i), string(panel.Role), panel.Title, "-", "-", "0"})
			continue
		}
		for _, layer := range panel.Layers {
			table.Append([]string{
				strconv.Itoa(i),
				string(panel.Role),
				panel.Title,
				layer.Label,
				string(layer.Kind),
				strconv.Itoa(layer.Len()),
			})
			layers++
			items += layer.Len()
		}
	}

	table.SetFooter([]string{
		"TOTAL",
		strconv.Itoa(len(f.Panels)) + " panels",
		"",
		strconv.Itoa(layers) + " layers",
		"",
		strconv.Itoa(items),
	})
	table.Render()
}
