package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderAuthorization   = "Authorization"
	HeaderXRequestID      = "X-Request-ID"
	HeaderStripeSignature = "Stripe-Signature"

	// Context keys
	ContextKeyAccountID      = "account_id"
	ContextKeyAccountKind    = "account_kind"
	ContextKeyAccountStatus  = "account_status"
	ContextKeyImpersonatorID = "impersonator_id"
	ContextKeySessionID      = "session_id"

	// Database table names
	TableSuperAdmins   = "super_admins"
	TableAdmins        = "admins"
	TableTrainers      = "trainers"
	TableCustomers     = "customers"
	TablePlans         = "plans"
	TableSubscriptions = "subscriptions"
	TablePayments      = "payments"

	// Metadata keys attached to billing objects at the payment provider
	MetadataAccountID   = "account_id"
	MetadataAccountKind = "account_kind"
	MetadataPlanID      = "plan_id"

	// Subscription override keys
	OverrideMaxCustomers = "max_customers"

	// Default values
	DefaultFreePeriodDays = 30
	DefaultCurrency       = "eur"

	// Webhook payloads above this size are rejected
	MaxWebhookBodyBytes = int64(65536)
)
