package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kilianp07/taxisim/core/dispatch/logging"
)

var csvHeader = []string{
	"status", "sim_time", "booking_id", "car_id",
	"source_x", "source_y", "destination_x", "destination_y",
	"total_time", "booked_at", "duration",
}

// WriteJSON writes the trip records to w as a JSON array.
func WriteJSON(w io.Writer, trips []logging.TripRecord) error {
	if trips == nil {
		trips = []logging.TripRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(trips)
}

// WriteCSV writes one row per trip record with a header line.
func WriteCSV(w io.Writer, trips []logging.TripRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range trips {
		rec := []string{
			string(t.Status),
			strconv.Itoa(t.SimTime),
			t.BookingID,
			strconv.Itoa(t.CarID),
			strconv.Itoa(t.Source.X),
			strconv.Itoa(t.Source.Y),
			strconv.Itoa(t.Destination.X),
			strconv.Itoa(t.Destination.Y),
			strconv.Itoa(t.TotalTime),
			strconv.Itoa(t.BookedAt),
			strconv.Itoa(t.Duration),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
