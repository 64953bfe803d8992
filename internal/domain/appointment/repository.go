package appointment

import "context"

type Repository interface {
	List(ctx context.Context) ([]*Appointment, error)

	// GetByID returns the appointment or ErrAppointmentNotFound.
	GetByID(ctx context.Context, id int64) (*Appointment, error)

	ExistsByID(ctx context.Context, id int64) (bool, error)

	// ExistsByBooking checks the (patient, doctor, date) uniqueness triple,
	// optionally excluding the record being updated.
	ExistsByBooking(ctx context.Context, patientID, doctorID int64, date string, excludeID *int64) (bool, error)

	// Create persists a. Returns ErrDuplicateBooking when the composite
	// unique constraint fires after the pre-check.
	Create(ctx context.Context, a *Appointment) error

	Update(ctx context.Context, id int64, cmd *UpdateAppointmentCommand) (*Appointment, error)

	Delete(ctx context.Context, id int64) (*Appointment, error)
}
