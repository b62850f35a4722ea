package account

import "context"

// Repository is one polymorphic store over the four account kinds, keyed by (role, id).
// Lookups return (nil, nil) when nothing matches.
type Repository interface {
	// Create fails with DuplicateEmailError if the email exists under any kind.
	Create(ctx context.Context, account *Account) error

	// FindByEmail probes SUPER_ADMIN, ADMIN, TRAINER, CUSTOMER in that order
	// and returns the first hit.
	FindByEmail(ctx context.Context, email string) (*Account, error)

	FindByID(ctx context.Context, role Role, id string) (*Account, error)

	// Update applies patch. Status may only be set for ADMIN and TRAINER.
	// Fails with NotFoundError or DuplicateEmailError.
	Update(ctx context.Context, role Role, id string, patch Patch) (*Account, error)

	UpdatePassword(ctx context.Context, role Role, id string, passwordHash string) error

	// CountChildren counts accounts of ChildRole(role) whose parent is id.
	CountChildren(ctx context.Context, role Role, id string) (int64, error)

	// CountCustomers counts customers managed by a trainer, or transitively by an admin.
	CountCustomers(ctx context.Context, role Role, id string) (int64, error)

	// Delete removes the row; NotFoundError when it no longer exists.
	Delete(ctx context.Context, role Role, id string) error

	List(ctx context.Context, filter ListFilter) ([]*Account, int64, error)

	// CountByRole counts accounts of one kind, optionally scoped to an ancestor.
	CountByRole(ctx context.Context, role Role, scope Scope) (int64, error)
}

// ListFilter represents filtering and pagination options for account lists
type ListFilter struct {
	Role     Role
	ParentID string
	Status   Status
	Page     int
	PageSize int
}

// Scope restricts counting to the subtree below an account; zero value means everything.
type Scope struct {
	Role Role
	ID   string
}

func (s Scope) IsGlobal() bool {
	return s.ID == ""
}
