package controllers

import (
	"errors"
	"net/http"

	"github.com/yeremiapane/restaurant-pos/services"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var checkoutErr *services.CheckoutError
	var backendErr *services.BackendError
	switch {
	case errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrCheckoutInProgress):
		return http.StatusConflict
	case errors.Is(err, services.ErrNoActiveBill),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrBillNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrPortionNotFound),
		errors.Is(err, services.ErrPortionRequired),
		errors.Is(err, services.ErrPortionNotAllowed),
		errors.Is(err, services.ErrUnknownCommand),
		errors.Is(err, services.ErrInvalidTable):
		return http.StatusBadRequest
	case errors.As(err, &checkoutErr), errors.As(err, &backendErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
