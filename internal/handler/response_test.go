package handler

import (
	"errors"
	"net/http"
	"testing"

	"fleet/internal/repository"
	"fleet/internal/service"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{repository.ErrNotFound, http.StatusNotFound},
		{service.ErrInvalidVehicle, http.StatusBadRequest},
		{service.ErrInvalidDriver, http.StatusBadRequest},
		{service.ErrInvalidTrip, http.StatusBadRequest},
		{repository.ErrDuplicate, http.StatusConflict},
		{service.ErrInvalidTransition, http.StatusConflict},
		{service.ErrInvalidTripState, http.StatusConflict},
		{service.ErrAlreadyAssigned, http.StatusConflict},
		{service.ErrResourceBusy, http.StatusTooManyRequests},
		{service.ErrNoVehicleAvailable, http.StatusServiceUnavailable},
		{service.ErrNoDriverAvailable, http.StatusServiceUnavailable},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := mapErrorToHTTPStatus(tc.err); got != tc.code {
			t.Errorf("mapErrorToHTTPStatus(%v) = %d, want %d", tc.err, got, tc.code)
		}
	}
}
