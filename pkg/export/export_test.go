package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/taxisim/core/dispatch/logging"
	"github.com/kilianp07/taxisim/core/model"
)

func sampleTrips() []logging.TripRecord {
	return []logging.TripRecord{
		{Status: logging.StatusBooked, SimTime: 0, BookingID: "b1", CarID: 1,
			Source: model.Location{X: 0, Y: 0}, Destination: model.Location{X: 2, Y: 0}, TotalTime: 2},
		{Status: logging.StatusCompleted, SimTime: 2, BookingID: "b1", CarID: 1,
			Source: model.Location{X: 0, Y: 0}, Destination: model.Location{X: 2, Y: 0}, TotalTime: 2, Duration: 2},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTrips()))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"completed", "2", "b1", "1", "0", "0", "2", "0", "2", "0", "2"}, rows[2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleTrips()))
	var out []logging.TripRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Len(t, out, 2)

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestWriteTrajectoryChart(t *testing.T) {
	traj := map[int][]model.Location{
		2: {{X: 0, Y: 0}, {X: 0, Y: 1}},
		1: {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteTrajectoryChart(&buf, "reference", traj))
	html := buf.String()
	assert.Contains(t, html, "reference")
	assert.Contains(t, html, "car 1")
	assert.Contains(t, html, "car 2")
	assert.Less(t, strings.Index(html, "car 1"), strings.Index(html, "car 2"))
}
