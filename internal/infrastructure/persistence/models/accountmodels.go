package models

import (
	"time"

	"github.com/dietdesk/dietdesk/internal/shared/constants"
)

// AccountColumns are shared by all four account tables.
type AccountColumns struct {
	ID           string `gorm:"primaryKey;size:32;comment:prefixed short id"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	Name         string `gorm:"not null;size:100"`
	PasswordHash string `gorm:"not null;size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SuperAdminModel has no parent and no settable status.
type SuperAdminModel struct {
	AccountColumns
}

func (SuperAdminModel) TableName() string {
	return constants.TableSuperAdmins
}

// AdminModel.ParentID is null for self-registered admins.
type AdminModel struct {
	AccountColumns
	Status   string  `gorm:"not null;size:20;index"`
	ParentID *string `gorm:"size:32;index"`
}

func (AdminModel) TableName() string {
	return constants.TableAdmins
}

type TrainerModel struct {
	AccountColumns
	Status   string  `gorm:"not null;size:20;index"`
	ParentID *string `gorm:"size:32;index"`
}

func (TrainerModel) TableName() string {
	return constants.TableTrainers
}

type CustomerModel struct {
	AccountColumns
	ParentID *string `gorm:"size:32;index"`
}

func (CustomerModel) TableName() string {
	return constants.TableCustomers
}
