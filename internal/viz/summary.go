package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)

// TracePlot renders a titled terminal plot of one observable series.
func TracePlot(title string, data []float64) string {
	if len(data) < 2 {
		return headerStyle.Render(title)
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(72))
	return headerStyle.Render(title) + "\n" + graphStyle.Render(graph)
}
