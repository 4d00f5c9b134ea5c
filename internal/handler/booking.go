package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/railway-reservation/internal/fare"
	"github.com/iliyamo/railway-reservation/internal/model"
	"github.com/iliyamo/railway-reservation/internal/repository"
	"github.com/iliyamo/railway-reservation/internal/service"
)

// BookingHandler serves the passenger booking endpoints.  All methods
// run behind JWTAuth; ownership of a booking is enforced here and in
// the service.
type BookingHandler struct {
	Bookings *service.BookingService
	Repo     *repository.BookingRepo
}

func NewBookingHandler(bookings *service.BookingService, repo *repository.BookingRepo) *BookingHandler {
	if bookings == nil || repo == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Repo: repo}
}

type createBookingReq struct {
	ScheduleID      uint64 `json:"schedule_id"`
	CompartmentID   uint64 `json:"compartment_id"`
	SeatNumber      uint32 `json:"seat_number"`
	PassengerName   string `json:"passenger_name"`
	PassengerAge    uint32 `json:"passenger_age"`
	PassengerGender string `json:"passenger_gender"`
}

type bookingResp struct {
	ID              uint64 `json:"id"`
	Ref             string `json:"booking_ref"`
	ScheduleID      uint64 `json:"schedule_id"`
	CompartmentID   uint64 `json:"compartment_id"`
	SeatNumber      uint32 `json:"seat_number"`
	PassengerName   string `json:"passenger_name"`
	PassengerAge    uint32 `json:"passenger_age"`
	PassengerGender string `json:"passenger_gender"`
	FareAmount      int64  `json:"fare_amount"`
	Status          string `json:"status"`
	BookingDate     string `json:"booking_date"`
}

func toBookingResp(b *model.Booking) bookingResp {
	return bookingResp{
		ID:              b.ID,
		Ref:             b.Ref,
		ScheduleID:      b.ScheduleID,
		CompartmentID:   b.CompartmentID,
		SeatNumber:      b.SeatNumber,
		PassengerName:   b.PassengerName,
		PassengerAge:    b.PassengerAge,
		PassengerGender: b.PassengerGender,
		FareAmount:      b.FareAmount,
		Status:          b.Status,
		BookingDate:     b.BookingDate.Format("2006-01-02"),
	}
}

// bookingError maps booking lifecycle sentinels to HTTP responses.
// Catalog data problems that make pricing impossible surface as 422,
// user mistakes as 400, losing a seat race as 409.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrScheduleNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
	case errors.Is(err, repository.ErrCompartmentNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "compartment not found"})
	case errors.Is(err, repository.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, repository.ErrSeatConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat already booked"})
	case errors.Is(err, repository.ErrAlreadyCancelled):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking already cancelled"})
	case errors.Is(err, repository.ErrInvalidTransition):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status transition"})
	case errors.Is(err, service.ErrScheduleInactive):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "schedule is not open for booking"})
	case errors.Is(err, service.ErrSeatOutOfRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat number outside compartment range"})
	case errors.Is(err, service.ErrBadPassenger):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid passenger details"})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrNoCompartments):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "train has no compartments"})
	case errors.Is(err, fare.ErrBadInput):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "fare inputs are invalid"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// fareError is bookingError for the quote path; same mapping.
func fareError(c echo.Context, err error) error {
	return bookingError(c, err)
}

// Create handles POST /v1/bookings.  Exactly one of two concurrent
// requests for the same seat succeeds with 201; the other gets 409.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ScheduleID == 0 || req.CompartmentID == 0 || req.SeatNumber == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "schedule_id, compartment_id and seat_number are required"})
	}

	b, err := h.Bookings.CreateBooking(c.Request().Context(), service.CreateBookingInput{
		UserID:          userID,
		ScheduleID:      req.ScheduleID,
		CompartmentID:   req.CompartmentID,
		SeatNumber:      req.SeatNumber,
		PassengerName:   req.PassengerName,
		PassengerAge:    req.PassengerAge,
		PassengerGender: req.PassengerGender,
	})
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toBookingResp(b)})
}

// Get handles GET /v1/bookings/:id.  A passenger sees only their own
// bookings; others read as not found rather than leaking existence.
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	d, err := h.Repo.GetDetail(c.Request().Context(), id)
	if err != nil {
		return bookingError(c, err)
	}
	if d.UserID != userID {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": d})
}

// MyBookings handles GET /v1/my-bookings.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.Repo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// Cancel handles POST /v1/bookings/:id/cancel (and the DELETE alias
// on the booking resource).  Cancelling releases the
// seat in the same transaction that flips the booking status.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Bookings.CancelBooking(c.Request().Context(), id, userID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toBookingResp(b)})
}
