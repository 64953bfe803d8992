package doctor

import "errors"

var (
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrCRMTaken       = errors.New("doctor with this CRM already exists")

	// ErrUnknownDepartment is a failed foreign-key pre-check on create or
	// update, reported as invalid input rather than not-found.
	ErrUnknownDepartment = errors.New("referenced department does not exist")
)
