package department

import "context"

type Repository interface {
	// List returns every department ordered by identifier. An empty slice is
	// a valid result, not an error.
	List(ctx context.Context) ([]*Department, error)

	// GetByID returns the department or ErrDepartmentNotFound.
	GetByID(ctx context.Context, id int64) (*Department, error)

	// ExistsByID is the cheap existence probe used by foreign-key checks.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// ExistsByName checks name uniqueness, optionally excluding the record
	// being updated.
	ExistsByName(ctx context.Context, name string, excludeID *int64) (bool, error)

	// Create persists d and fills in the generated identifier. Returns
	// ErrDepartmentNameTaken when the unique constraint fires.
	Create(ctx context.Context, d *Department) error

	// Update replaces every mutable field and returns the stored row, or
	// ErrDepartmentNotFound when the identifier does not exist.
	Update(ctx context.Context, id int64, cmd *UpdateDepartmentCommand) (*Department, error)

	// Delete removes the row and returns it, or ErrDepartmentNotFound.
	Delete(ctx context.Context, id int64) (*Department, error)
}
