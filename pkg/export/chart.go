package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/taxisim/core/model"
)

// WriteTrajectoryChart renders one line per car through the grid points it
// visited and writes the HTML page to w.
func WriteTrajectoryChart(w io.Writer, title string, traj map[int][]model.Location) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "car positions per tick"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y", Type: "value"}),
	)

	ids := make([]int, 0, len(traj))
	for id := range traj {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		points := make([]opts.LineData, 0, len(traj[id]))
		for _, p := range traj[id] {
			points = append(points, opts.LineData{Value: []int{p.X, p.Y}})
		}
		line.AddSeries(fmt.Sprintf("car %d", id), points)
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
