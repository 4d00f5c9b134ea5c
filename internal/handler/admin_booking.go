package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/railway-reservation/internal/model"
	"github.com/iliyamo/railway-reservation/internal/repository"
	"github.com/iliyamo/railway-reservation/internal/service"
)

// AdminBookingHandler serves the admin booking surface: full listing
// with filters, detail lookup and status overrides.  Overriding to
// CANCELLED releases the seat just like a passenger cancellation.
type AdminBookingHandler struct {
	Bookings *service.BookingService
	Repo     *repository.BookingRepo
}

func NewAdminBookingHandler(bookings *service.BookingService, repo *repository.BookingRepo) *AdminBookingHandler {
	if bookings == nil || repo == nil {
		panic("nil dependency passed to NewAdminBookingHandler")
	}
	return &AdminBookingHandler{Bookings: bookings, Repo: repo}
}

// List handles GET /v1/admin/bookings?status=&schedule_id=.
func (h *AdminBookingHandler) List(c echo.Context) error {
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && !model.IsActive(status) && status != model.BookingCancelled && status != model.BookingCompleted {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
	}
	var scheduleID uint64
	if v := c.QueryParam("schedule_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil || n == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule_id filter"})
		}
		scheduleID = n
	}
	details, err := h.Repo.ListAll(c.Request().Context(), status, scheduleID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// Get handles GET /v1/admin/bookings/:id.
func (h *AdminBookingHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	d, err := h.Repo.GetDetail(c.Request().Context(), id)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": d})
}

// UpdateStatus handles PUT /v1/admin/bookings/:id/status.  Allowed
// transitions are PENDING to CONFIRMED or CANCELLED and CONFIRMED to
// CANCELLED or COMPLETED; everything else is rejected.
func (h *AdminBookingHandler) UpdateStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	target := strings.ToUpper(strings.TrimSpace(req.Status))
	if target == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
	}
	b, err := h.Bookings.UpdateStatus(c.Request().Context(), id, target)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toBookingResp(b)})
}
