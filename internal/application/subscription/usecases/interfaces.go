package usecases

import (
	"context"

	"github.com/dietdesk/dietdesk/internal/domain/account"
)

// CustomerCounter is the slice of the account repository capacity checks need.
type CustomerCounter interface {
	CountCustomers(ctx context.Context, role account.Role, id string) (int64, error)
}

type MarkdownRenderer interface {
	Render(source string) (string, error)
}
