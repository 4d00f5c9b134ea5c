package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/railway-reservation/internal/fare"
	"github.com/iliyamo/railway-reservation/internal/repository"
	"github.com/iliyamo/railway-reservation/internal/service"
)

func TestBookingErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{repository.ErrScheduleNotFound, http.StatusNotFound},
		{repository.ErrCompartmentNotFound, http.StatusNotFound},
		{repository.ErrBookingNotFound, http.StatusNotFound},
		{repository.ErrSeatConflict, http.StatusConflict},
		{repository.ErrAlreadyCancelled, http.StatusBadRequest},
		{repository.ErrInvalidTransition, http.StatusBadRequest},
		{service.ErrScheduleInactive, http.StatusBadRequest},
		{service.ErrSeatOutOfRange, http.StatusBadRequest},
		{service.ErrBadPassenger, http.StatusBadRequest},
		{service.ErrForbidden, http.StatusForbidden},
		{repository.ErrNoCompartments, http.StatusUnprocessableEntity},
		{fare.ErrBadInput, http.StatusUnprocessableEntity},
		{errors.New("database gone away"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		require.NoError(t, bookingError(c, tc.err))
		assert.Equal(t, tc.code, rec.Code, "error %v", tc.err)
	}
}

func TestGetUserIDAcceptsCommonClaimTypes(t *testing.T) {
	e := echo.New()
	for _, v := range []any{uint64(7), int(7), int64(7), float64(7), "7"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.Set("user_id", v)
		id, err := getUserID(c)
		require.NoError(t, err)
		assert.Equal(t, uint64(7), id)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	_, err := getUserID(c)
	assert.Error(t, err)
}
