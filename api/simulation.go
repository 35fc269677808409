package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kilianp07/taxisim/core/dispatch"
	"github.com/kilianp07/taxisim/core/logger"
	"github.com/kilianp07/taxisim/core/model"
)

type handler struct {
	sim Simulator
	log logger.Logger
}

type bookRequest struct {
	Source      *model.Location `json:"source" binding:"required"`
	Destination *model.Location `json:"destination" binding:"required"`
}

type bookResponse struct {
	CarID     int `json:"car_id"`
	TotalTime int `json:"total_time"`
}

type bookingView struct {
	model.Booking
	// Progress is the index of the car's location in Path.
	Progress int `json:"progress"`
}

// GET /api/cars?is_booked=bool
func (h *handler) listCars(c *gin.Context) {
	booked := false
	if s, ok := c.GetQuery("is_booked"); ok {
		v, err := strconv.ParseBool(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "is_booked must be a boolean"})
			return
		}
		booked = v
	}
	c.JSON(http.StatusOK, gin.H{"cars": h.sim.ListCars(booked)})
}

// GET /api/cars/:car_id
func (h *handler) getCar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("car_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "car_id must be an integer"})
		return
	}
	car, err := h.sim.GetCar(id)
	if errors.Is(err, dispatch.ErrCarNotFound) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		h.log.Errorf("get car %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, car)
}

// POST /api/book
func (h *handler) book(c *gin.Context) {
	var in bookRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		h.log.Warnf("bad booking request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.sim.BookCar(*in.Source, *in.Destination)
	if errors.Is(err, dispatch.ErrNoAvailableCar) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		h.log.Errorf("book: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, bookResponse{CarID: b.CarID, TotalTime: b.TotalTime})
}

// POST /api/tick
func (h *handler) tick(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"current_time": h.sim.IncrementTime()})
}

// PUT /api/reset
func (h *handler) reset(c *gin.Context) {
	now := h.sim.Reset()
	c.JSON(http.StatusOK, gin.H{
		"current_time": now,
		"bookings":     []model.Booking{},
	})
}

// GET /api/bookings
func (h *handler) bookings(c *gin.Context) {
	progress := map[int]int{}
	for _, car := range h.sim.ListCars(true) {
		progress[car.ID] = car.PathIndex
	}
	list := h.sim.Bookings()
	out := make([]bookingView, 0, len(list))
	for _, b := range list {
		out = append(out, bookingView{Booking: b, Progress: progress[b.CarID]})
	}
	c.JSON(http.StatusOK, gin.H{
		"current_time": h.sim.CurrentTime(),
		"bookings":     out,
	})
}
