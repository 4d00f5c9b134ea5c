// This file defines the public browsing API: stations, classes, trains
// and schedules are readable without authentication so passengers can
// plan a trip before registering.  Responses expose only safe fields
// through dedicated DTOs.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/railway-reservation/internal/model"
	"github.com/iliyamo/railway-reservation/internal/repository"
	"github.com/iliyamo/railway-reservation/internal/service"
)

// PublicHandler aggregates the repositories and services needed for
// unauthenticated browsing.
type PublicHandler struct {
	Stations  *repository.StationRepo
	Classes   *repository.ClassRepo
	Trains    *repository.TrainRepo
	Schedules *repository.ScheduleRepo
	Ledger    *service.SeatLedger
	Bookings  *service.BookingService
}

func NewPublicHandler(stations *repository.StationRepo, classes *repository.ClassRepo, trains *repository.TrainRepo, schedules *repository.ScheduleRepo, ledger *service.SeatLedger, bookings *service.BookingService) *PublicHandler {
	if stations == nil || classes == nil || trains == nil || schedules == nil || ledger == nil || bookings == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{Stations: stations, Classes: classes, Trains: trains, Schedules: schedules, Ledger: ledger, Bookings: bookings}
}

// PublicStation is a station as exposed via the public API.
type PublicStation struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state,omitempty"`
}

// PublicClass is a travel class with its fare multiplier.
type PublicClass struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	FareMultiplier float64 `json:"fare_multiplier"`
}

// PublicTrain is a train in list responses.
type PublicTrain struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	FarePerKm float64 `json:"fare_per_km"`
}

// PublicSchedule is a schedule joined with its train and station names.
type PublicSchedule struct {
	ID              uint64  `json:"id"`
	TrainID         uint64  `json:"train_id"`
	TrainName       string  `json:"train_name"`
	FromStationID   uint64  `json:"from_station_id"`
	FromStationName string  `json:"from_station_name"`
	ToStationID     uint64  `json:"to_station_id"`
	ToStationName   string  `json:"to_station_name"`
	DepartureTime   string  `json:"departure_time"`
	ArrivalTime     string  `json:"arrival_time"`
	DistanceKm      uint32  `json:"distance_km"`
	DaysOfOperation string  `json:"days_of_operation"`
	FarePerKm       float64 `json:"fare_per_km"`
}

func publicSchedule(d model.ScheduleDetail) PublicSchedule {
	return PublicSchedule{
		ID:              d.ID,
		TrainID:         d.TrainID,
		TrainName:       d.TrainName,
		FromStationID:   d.FromStationID,
		FromStationName: d.FromStationName,
		ToStationID:     d.ToStationID,
		ToStationName:   d.ToStationName,
		DepartureTime:   d.DepartureTime,
		ArrivalTime:     d.ArrivalTime,
		DistanceKm:      d.DistanceKm,
		DaysOfOperation: d.DaysOfOperation,
		FarePerKm:       d.FarePerKm,
	}
}

// seatMapCompartment groups the seats of one compartment in the seat
// map response.
type seatMapCompartment struct {
	CompartmentID     uint64        `json:"compartment_id"`
	CompartmentNumber uint32        `json:"compartment_number"`
	ClassID           uint64        `json:"class_id"`
	ClassName         string        `json:"class_name"`
	Seats             []seatMapSeat `json:"seats"`
}

type seatMapSeat struct {
	SeatNumber uint32 `json:"seat_number"`
	IsBooked   bool   `json:"is_booked"`
}

// ListStations handles GET /v1/stations.
func (h *PublicHandler) ListStations(c echo.Context) error {
	stations, err := h.Stations.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicStation, 0, len(stations))
	for _, s := range stations {
		out = append(out, PublicStation{ID: s.ID, Name: s.Name, City: s.City, State: s.State})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListClasses handles GET /v1/classes.
func (h *PublicHandler) ListClasses(c echo.Context) error {
	classes, err := h.Classes.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicClass, 0, len(classes))
	for _, cl := range classes {
		out = append(out, PublicClass{ID: cl.ID, Name: cl.Name, FareMultiplier: cl.FareMultiplier})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListTrains handles GET /v1/trains.  Inactive trains are filtered
// out; they still exist for old bookings but are not bookable.
func (h *PublicHandler) ListTrains(c echo.Context) error {
	trains, err := h.Trains.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicTrain, 0, len(trains))
	for _, t := range trains {
		if !t.IsActive {
			continue
		}
		out = append(out, PublicTrain{ID: t.ID, Name: t.Name, FarePerKm: t.FarePerKm})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// SearchSchedules handles GET /v1/schedules?from=&to=.  Both filters
// are optional; only direct routes are matched.
func (h *PublicHandler) SearchSchedules(c echo.Context) error {
	var from, to uint64
	if v := c.QueryParam("from"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil || n == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from station"})
		}
		from = n
	}
	if v := c.QueryParam("to"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil || n == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to station"})
		}
		to = n
	}
	details, err := h.Schedules.Search(c.Request().Context(), from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicSchedule, 0, len(details))
	for _, d := range details {
		out = append(out, publicSchedule(d))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetSchedule handles GET /v1/schedules/:id.
func (h *PublicHandler) GetSchedule(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	d, err := h.Schedules.GetDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": publicSchedule(*d)})
}

// GetScheduleSeats handles GET /v1/schedules/:id/seats.  The first
// query materializes the slot rows; the response groups seats per
// compartment in layout order.
func (h *PublicHandler) GetScheduleSeats(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	entries, err := h.Ledger.SeatMap(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrScheduleNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		case errors.Is(err, repository.ErrNoCompartments):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "train has no compartments"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	comps := make([]seatMapCompartment, 0)
	for _, e := range entries {
		if len(comps) == 0 || comps[len(comps)-1].CompartmentID != e.CompartmentID {
			comps = append(comps, seatMapCompartment{
				CompartmentID:     e.CompartmentID,
				CompartmentNumber: e.CompartmentNumber,
				ClassID:           e.ClassID,
				ClassName:         e.ClassName,
				Seats:             make([]seatMapSeat, 0, 8),
			})
		}
		last := &comps[len(comps)-1]
		last.Seats = append(last.Seats, seatMapSeat{SeatNumber: e.SeatNumber, IsBooked: e.IsBooked})
	}
	return c.JSON(http.StatusOK, echo.Map{"schedule_id": id, "compartments": comps})
}

// GetFare handles GET /v1/schedules/:id/fare?compartment_id=.  It
// quotes the price a booking in that compartment would snapshot.
func (h *PublicHandler) GetFare(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	compID, err := strconv.ParseUint(c.QueryParam("compartment_id"), 10, 64)
	if err != nil || compID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "compartment_id required"})
	}
	quote, err := h.Bookings.Fare(c.Request().Context(), id, compID)
	if err != nil {
		return fareError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": quote})
}
