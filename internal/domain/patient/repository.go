package patient

import "context"

type Repository interface {
	List(ctx context.Context) ([]*Patient, error)

	// GetByID returns the patient or ErrPatientNotFound.
	GetByID(ctx context.Context, id int64) (*Patient, error)

	ExistsByID(ctx context.Context, id int64) (bool, error)

	// ExistsByCPF checks uniqueness of the normalized CPF, optionally
	// excluding the record being updated.
	ExistsByCPF(ctx context.Context, cpf string, excludeID *int64) (bool, error)

	// Create persists p. Returns ErrCPFTaken when the unique constraint
	// fires after the pre-check.
	Create(ctx context.Context, p *Patient) error

	Update(ctx context.Context, id int64, cmd *UpdatePatientCommand) (*Patient, error)

	// Delete removes the patient; the store cascades removal of the
	// patient's appointments.
	Delete(ctx context.Context, id int64) (*Patient, error)
}
