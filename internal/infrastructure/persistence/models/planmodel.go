package models

import (
	"time"

	"github.com/dietdesk/dietdesk/internal/shared/constants"
)

// PlanModel represents the database persistence model for the plan catalog
type PlanModel struct {
	ID              string `gorm:"primaryKey;size:32"`
	Name            string `gorm:"not null;size:100"`
	Slug            string `gorm:"uniqueIndex;not null;size:50"`
	Tier            string `gorm:"not null;size:20"`
	MonthlyPrice    int64  `gorm:"not null;comment:minor currency units"`
	Currency        string `gorm:"not null;size:3"`
	MaxCustomers    *int64 `gorm:"comment:null means unlimited"`
	Active          bool   `gorm:"not null;index"`
	ExternalPriceID string `gorm:"size:100"`
	Description     string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (PlanModel) TableName() string {
	return constants.TablePlans
}
