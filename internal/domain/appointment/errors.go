package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDuplicateBooking    = errors.New("patient already has an appointment with this doctor on this date")

	// Failed foreign-key pre-checks, reported as invalid input.
	ErrUnknownPatient = errors.New("referenced patient does not exist")
	ErrUnknownDoctor  = errors.New("referenced doctor does not exist")
)
