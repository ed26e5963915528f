package services

import "errors"

var (
	ErrConflict           = errors.New("table already has an active bill")
	ErrNoActiveBill       = errors.New("no active bill for table")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrCheckoutInProgress = errors.New("checkout already in progress for table")
	ErrItemNotFound       = errors.New("menu item not found")
	ErrPortionNotFound    = errors.New("portion not found")
	ErrPortionRequired    = errors.New("item is sold by portion, select a pour size")
	ErrPortionNotAllowed  = errors.New("item is sold as a whole unit")
	ErrBillNotFound       = errors.New("bill not found")
	ErrUnknownCommand     = errors.New("unknown edit command")
	ErrInvalidTable       = errors.New("table id is required")
)
