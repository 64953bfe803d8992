package doctor

import "context"

type Repository interface {
	List(ctx context.Context) ([]*Doctor, error)

	// GetByID returns the doctor or ErrDoctorNotFound.
	GetByID(ctx context.Context, id int64) (*Doctor, error)

	ExistsByID(ctx context.Context, id int64) (bool, error)

	// ExistsByCRM checks license-number uniqueness, optionally excluding the
	// record being updated so a doctor can keep their own CRM.
	ExistsByCRM(ctx context.Context, crm string, excludeID *int64) (bool, error)

	// Create persists d. Returns ErrCRMTaken when the unique constraint
	// fires after the pre-check (concurrent insert).
	Create(ctx context.Context, d *Doctor) error

	Update(ctx context.Context, id int64, cmd *UpdateDoctorCommand) (*Doctor, error)

	Delete(ctx context.Context, id int64) (*Doctor, error)
}
