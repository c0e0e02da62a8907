// internal/i18n/keys.go
package i18n

// Supported languages
const (
	LangEnglish    = "en"
	LangPortuguese = "pt_BR"
)

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationTooShort = "validation.too_short"
	KeyValidationTooLong  = "validation.too_long"
	KeyValidationEmail    = "validation.invalid_email"
	KeyValidationCategory = "validation.invalid_category"

	// Calculator
	KeyCalculationDone         = "calculator.done"
	KeyCalculationInsufficient = "calculator.insufficient_data"
	KeyRecommendPlatform       = "calculator.recommend_platform"
	KeyRecommendMerchant       = "calculator.recommend_merchant"
	KeyRecommendTie            = "calculator.recommend_tie"
	KeyInvalidWeight           = "calculator.invalid_weight"

	// Products
	KeyProductRegistered   = "product.registered"
	KeyProductSimulated    = "product.simulated"
	KeyProductSaved        = "product.saved"
	KeyProductNotFound     = "product.not_found"
	KeyProductNotSimulated = "product.not_simulated"
	KeyProductStatus       = "product.status_updated"
	KeyProductInvalidSim   = "product.invalid_simulation"
	KeyProductUnknownField = "product.unknown_field"
	KeyProductInvalidState = "product.invalid_status"

	// Suppliers and prep centers
	KeySupplierRegistered   = "supplier.registered"
	KeySupplierNotFound     = "supplier.not_found"
	KeyPrepCenterRegistered = "prep_center.registered"
	KeyPrepCenterNotFound   = "prep_center.not_found"
	KeyPartnerDuplicate     = "partner.duplicate"
	KeyNegotiationAdded     = "negotiation.added"
	KeyServiceCostAdded     = "service_cost.added"

	// Rate limiting
	KeyRateLimited = "rate_limit.exceeded"
)
