package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kilianp07/taxisim/core/dispatch/logging"
	"github.com/kilianp07/taxisim/core/logger"
	"github.com/kilianp07/taxisim/core/stats"
)

// Values of the run query parameter. The trip log spans resets; "current"
// keeps only the records after the last one.
const (
	runCurrent = "current"
	runAll     = "all"
)

type tripHandler struct {
	store logging.LogStore
	log   logger.Logger
}

// GET /api/trips?run=&car_id=&status=&start=&end=
func (t *tripHandler) list(c *gin.Context) {
	run, ok := runParam(c)
	if !ok {
		return
	}
	var q logging.LogQuery
	for name, dst := range map[string]*int{"car_id": &q.CarID, "start": &q.Start, "end": &q.End} {
		s := c.Query(name)
		if s == "" {
			continue
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer"})
			return
		}
		*dst = v
	}
	q.Status = logging.TripStatus(c.Query("status"))

	recs, err := t.query(c.Request.Context(), run, q)
	if err != nil {
		t.log.Errorf("query trips: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "trip log error"})
		return
	}
	if recs == nil {
		recs = []logging.TripRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"trips": recs})
}

// GET /api/stats?run=
func (t *tripHandler) stats(c *gin.Context) {
	run, ok := runParam(c)
	if !ok {
		return
	}
	recs, err := t.query(c.Request.Context(), run, logging.LogQuery{})
	if err != nil {
		t.log.Errorf("query trips: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "trip log error"})
		return
	}
	c.JSON(http.StatusOK, stats.Summarize(recs))
}

// query runs q against the store. For the current run the whole log is
// read so the last reset marker is found whatever the filters.
func (t *tripHandler) query(ctx context.Context, run string, q logging.LogQuery) ([]logging.TripRecord, error) {
	if run == runAll {
		return t.store.Query(ctx, q)
	}
	all, err := t.store.Query(ctx, logging.LogQuery{})
	if err != nil {
		return nil, err
	}
	var out []logging.TripRecord
	for _, r := range logging.CurrentRun(all) {
		if q.Match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func runParam(c *gin.Context) (string, bool) {
	switch run := c.DefaultQuery("run", runCurrent); run {
	case runCurrent, runAll:
		return run, true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "run must be current or all"})
		return "", false
	}
}
