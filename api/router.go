// Package api exposes the simulation over HTTP with gin.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/taxisim/core/dispatch/logging"
	"github.com/kilianp07/taxisim/core/logger"
	"github.com/kilianp07/taxisim/core/model"
	"github.com/kilianp07/taxisim/core/monitoring"
)

// Simulator is the engine surface used by the handlers. *dispatch.Engine
// implements it.
type Simulator interface {
	ListCars(booked bool) []model.Car
	GetCar(id int) (model.Car, error)
	BookCar(pickup, destination model.Location) (model.Booking, error)
	IncrementTime() int
	Reset() int
	Bookings() []model.Booking
	CurrentTime() int
}

// Options configures the optional parts of the router.
type Options struct {
	// Trips enables /api/trips and /api/stats.
	Trips logging.LogStore
	// APIToken protects /api/trips when non-empty.
	APIToken string
	// ExposeMetrics serves the default Prometheus registry on /metrics.
	ExposeMetrics bool
	Log           logger.Logger
}

// NewRouter returns a gin engine with every route registered.
func NewRouter(sim Simulator, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(recovery(logger.OrNop(opts.Log)))
	RegisterRoutes(r, sim, opts)
	return r
}

// RegisterRoutes wires the simulation endpoints on r.
func RegisterRoutes(r *gin.Engine, sim Simulator, opts Options) {
	h := &handler{sim: sim, log: logger.OrNop(opts.Log)}
	g := r.Group("/api")
	g.GET("/cars", h.listCars)
	g.GET("/cars/:car_id", h.getCar)
	g.POST("/book", h.book)
	g.POST("/tick", h.tick)
	g.PUT("/reset", h.reset)
	g.GET("/bookings", h.bookings)

	if opts.Trips != nil {
		t := &tripHandler{store: opts.Trips, log: h.log}
		g.GET("/trips", bearer(opts.APIToken), t.list)
		g.GET("/stats", t.stats)
	}
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	if opts.ExposeMetrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

func recovery(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if v := recover(); v != nil {
				monitoring.CapturePanic(v, map[string]string{"route": c.FullPath()})
				log.Errorf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, v)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
		}()
		c.Next()
	}
}

func bearer(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token != "" && c.GetHeader("Authorization") != "Bearer "+token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
