package dto

import (
	"time"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/shared/mapper"
)

type AccountDTO struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	ParentID  string    `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToAccountDTO never exposes the password hash and reports the effective status.
func ToAccountDTO(a *account.Account) *AccountDTO {
	if a == nil {
		return nil
	}
	return &AccountDTO{
		ID:        a.ID,
		Role:      string(a.Role),
		Email:     a.Email,
		Name:      a.Name,
		Status:    string(a.EffectiveStatus()),
		ParentID:  a.ParentID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func ToAccountDTOList(accounts []*account.Account) []*AccountDTO {
	return mapper.MapSlicePtr(accounts, ToAccountDTO)
}

// BulkItemResultDTO mirrors one outcome of a bulk lifecycle request.
type BulkItemResultDTO struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Action    string `json:"action"`
	Success   bool   `json:"success"`
	ErrorType string `json:"error_type,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Message   string `json:"message,omitempty"`
}

type BulkResultDTO struct {
	Total     int                  `json:"total"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
	Results   []*BulkItemResultDTO `json:"results"`
}
