package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/taxisim/pkg/export"
	"github.com/kilianp07/taxisim/qa/scenarios"
)

var (
	replayCSV   string
	replayJSON  string
	replayChart string
)

var replayCmd = &cobra.Command{
	Use:   "replay <scenario.yaml>",
	Short: "Replay a booking scenario against a fresh simulation",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&replayCSV, "csv", "", "write trip records as CSV to this file")
	replayCmd.Flags().StringVar(&replayJSON, "json", "", "write trip records as JSON to this file")
	replayCmd.Flags().StringVar(&replayChart, "chart", "", "write an HTML trajectory chart to this file")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	sc, err := scenarios.Load(args[0])
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}
	res, err := scenarios.Run(sc)
	if err != nil {
		return fmt.Errorf("replay %s: %w", sc.Name, err)
	}

	out := cmd.OutOrStdout()
	s := res.Summary
	fmt.Fprintf(out, "scenario %s: t=%d booked=%d rejected=%d completed=%d\n",
		sc.Name, res.FinalTime, s.Bookings, s.Rejections, s.Completed)
	if s.Completed > 0 {
		fmt.Fprintf(out, "duration mean=%.2f stddev=%.2f p95=%.2f ticks, quoted mean=%.2f\n",
			s.MeanDuration, s.StdDevDuration, s.P95Duration, s.MeanTotalTime)
	}

	if err := writeFile(replayCSV, func(w io.Writer) error { return export.WriteCSV(w, res.Trips) }); err != nil {
		return err
	}
	if err := writeFile(replayJSON, func(w io.Writer) error { return export.WriteJSON(w, res.Trips) }); err != nil {
		return err
	}
	if err := writeFile(replayChart, func(w io.Writer) error {
		return export.WriteTrajectoryChart(w, sc.Name, res.Trajectories)
	}); err != nil {
		return err
	}
	return sc.Check(res)
}

func writeFile(path string, write func(io.Writer) error) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
