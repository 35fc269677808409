package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kilianp07/taxisim/core/events"
	"github.com/kilianp07/taxisim/core/model"
	coremon "github.com/kilianp07/taxisim/core/monitoring"
	"github.com/kilianp07/taxisim/infra/logger"
)

// LocationMessage is published on <prefix>/cars/<id>/location.
type LocationMessage struct {
	CarID    int            `json:"car_id"`
	Name     string         `json:"name"`
	Location model.Location `json:"location"`
	Booked   bool           `json:"booked"`
	SimTime  int            `json:"sim_time"`
}

// BookingMessage is published on <prefix>/bookings.
type BookingMessage struct {
	Status      string           `json:"status"`
	BookingID   string           `json:"booking_id,omitempty"`
	CarID       int              `json:"car_id,omitempty"`
	Source      model.Location   `json:"source"`
	Destination model.Location   `json:"destination"`
	TotalTime   int              `json:"total_time,omitempty"`
	Path        []model.Location `json:"path,omitempty"`
	SimTime     int              `json:"sim_time"`
}

// TelemetryPublisher mirrors simulation events to an MQTT broker.
type TelemetryPublisher struct {
	cli        pahoClient
	prefix     string
	qos        byte
	retain     bool
	maxRetries int
	backoff    time.Duration
	logger     logger.Logger
}

// NewTelemetryPublisher connects to the broker and announces the simulator
// on the status topic.
func NewTelemetryPublisher(cfg Config) (*TelemetryPublisher, error) {
	cfg.SetDefaults()
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New("mqtt_telemetry")
	p := &TelemetryPublisher{
		prefix:     cfg.TopicPrefix,
		qos:        cfg.QoS,
		retain:     cfg.Retain,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
		logger:     log,
	}
	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected")
		c.Publish(cfg.StatusTopic(), cfg.QoS, true, "online")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	p.cli = c
	return p, nil
}

// LocationTopic returns the topic carrying a car position.
func (p *TelemetryPublisher) LocationTopic(carID int) string {
	return fmt.Sprintf("%s/cars/%d/location", p.prefix, carID)
}

// BookingsTopic returns the topic carrying booking lifecycle messages.
func (p *TelemetryPublisher) BookingsTopic() string {
	return p.prefix + "/bookings"
}

// PublishLocation sends the position of one car.
func (p *TelemetryPublisher) PublishLocation(car model.Car, simTime int) error {
	msg := LocationMessage{CarID: car.ID, Name: car.Name, Location: car.Location, Booked: car.Booked, SimTime: simTime}
	return p.publish(p.LocationTopic(car.ID), msg)
}

// PublishBooking sends a booking lifecycle message.
func (p *TelemetryPublisher) PublishBooking(msg BookingMessage) error {
	return p.publish(p.BookingsTopic(), msg)
}

func (p *TelemetryPublisher) publish(topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var publishErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		token := p.cli.Publish(topic, p.qos, p.retain, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			p.logger.Debugf("published to %s", topic)
			return nil
		}
		p.logger.Errorf("publish attempt %d failed: %v", attempt+1, publishErr)
		if attempt < p.maxRetries {
			time.Sleep(p.backoff * time.Duration(1<<attempt))
		}
	}
	coremon.CaptureException(publishErr, map[string]string{"module": "mqtt", "topic": topic})
	return fmt.Errorf("publish %s: %w", topic, publishErr)
}

// HandleEvent publishes the MQTT messages derived from one simulation event.
func (p *TelemetryPublisher) HandleEvent(ev events.Event) error {
	switch e := ev.(type) {
	case events.TimeAdvanced:
		return p.publishCars(e.Cars, e.Time)
	case events.SimulationReset:
		return p.publishCars(e.Cars, 0)
	case events.BookingCreated:
		return p.PublishBooking(BookingMessage{
			Status:      "booked",
			BookingID:   e.Booking.ID,
			CarID:       e.Booking.CarID,
			Source:      e.Booking.Source,
			Destination: e.Booking.Destination,
			TotalTime:   e.Booking.TotalTime,
			Path:        e.Booking.Path,
			SimTime:     e.Time,
		})
	case events.BookingRejected:
		return p.PublishBooking(BookingMessage{
			Status:      "rejected",
			Source:      e.Source,
			Destination: e.Destination,
			SimTime:     e.Time,
		})
	case events.TripCompleted:
		return p.PublishBooking(BookingMessage{
			Status:      "completed",
			BookingID:   e.Booking.ID,
			CarID:       e.Booking.CarID,
			Source:      e.Booking.Source,
			Destination: e.Booking.Destination,
			TotalTime:   e.Booking.TotalTime,
			SimTime:     e.Time,
		})
	}
	return nil
}

func (p *TelemetryPublisher) publishCars(cars []model.Car, simTime int) error {
	for _, c := range cars {
		if err := p.PublishLocation(c, simTime); err != nil {
			return err
		}
	}
	return nil
}

// Start forwards bus events to the broker until ctx is canceled or the bus
// is closed.
func (p *TelemetryPublisher) Start(ctx context.Context, bus events.Subscriber) {
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := p.HandleEvent(ev); err != nil {
					p.logger.Warnf("telemetry: %v", err)
				}
			}
		}
	}()
}

// Disconnect closes the connection to the broker.
func (p *TelemetryPublisher) Disconnect() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
