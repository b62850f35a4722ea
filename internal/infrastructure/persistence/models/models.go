// Package models holds the gorm persistence models. Domain entities never
// leave the repository layer in this shape.
package models

// All returns every model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&SuperAdminModel{},
		&AdminModel{},
		&TrainerModel{},
		&CustomerModel{},
		&PlanModel{},
		&SubscriptionModel{},
		&PaymentModel{},
	}
}
