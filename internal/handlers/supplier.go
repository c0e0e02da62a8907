// internal/handlers/supplier.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/sellerops/margin-backend/internal/i18n"
	"github.com/sellerops/margin-backend/internal/models"
	"github.com/sellerops/margin-backend/internal/services"
	"github.com/sellerops/margin-backend/internal/utils"
)

// SupplierHandler serves both partner registries. Each route is bound to a
// partner type when the router is built.
type SupplierHandler struct {
	supplierService *services.SupplierService
}

func NewSupplierHandler(supplierService *services.SupplierService) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplierService,
	}
}

// POST /suppliers, POST /prep-centers
func (h *SupplierHandler) RegisterPartner(partnerType models.PartnerType) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		var req services.RegisterPartnerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
			return
		}

		if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}

		partner, err := h.supplierService.RegisterPartner(partnerType, &req)
		if err != nil {
			h.respondError(c, partnerType, err)
			return
		}

		key := i18n.KeySupplierRegistered
		if partnerType == models.PartnerTypePrepCenter {
			key = i18n.KeyPrepCenterRegistered
		}
		utils.CreatedResponse(c, gin.H{
			"message": i18n.T(lang, key),
			"partner": partner,
		})
	}
}

// GET /suppliers, GET /prep-centers
func (h *SupplierHandler) GetPartners(partnerType models.PartnerType) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := utils.GetPaginationParams(c)

		partners, total := h.supplierService.ListPartners(partnerType, params)
		result := utils.CreatePaginationResult(partners, total, params)
		utils.PaginatedResponse(c, result)
	}
}

// GET /suppliers/:id, GET /prep-centers/:id
func (h *SupplierHandler) GetPartner(partnerType models.PartnerType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "Invalid partner ID")
		if !ok {
			return
		}

		partner, err := h.supplierService.GetPartner(partnerType, id)
		if err != nil {
			h.respondError(c, partnerType, err)
			return
		}

		utils.SuccessResponse(c, gin.H{
			"partner": partner,
		})
	}
}

// POST /suppliers/:id/service-costs, POST /prep-centers/:id/service-costs
func (h *SupplierHandler) AddServiceCost(partnerType models.PartnerType) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)
		id, ok := parseID(c, "Invalid partner ID")
		if !ok {
			return
		}

		var req services.AddServiceCostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
			return
		}

		cost, err := h.supplierService.AddServiceCost(partnerType, id, &req)
		if err != nil {
			h.respondError(c, partnerType, err)
			return
		}

		utils.CreatedResponse(c, gin.H{
			"message":      i18n.T(lang, i18n.KeyServiceCostAdded),
			"service_cost": cost,
		})
	}
}

// GET /suppliers/:id/service-costs, GET /prep-centers/:id/service-costs
func (h *SupplierHandler) GetServiceCosts(partnerType models.PartnerType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "Invalid partner ID")
		if !ok {
			return
		}

		costs, err := h.supplierService.ListServiceCosts(partnerType, id)
		if err != nil {
			h.respondError(c, partnerType, err)
			return
		}

		utils.SuccessResponse(c, gin.H{
			"service_costs": costs,
		})
	}
}

// POST /suppliers/:id/negotiations, POST /prep-centers/:id/negotiations
func (h *SupplierHandler) AddNegotiation(partnerType models.PartnerType) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)
		id, ok := parseID(c, "Invalid partner ID")
		if !ok {
			return
		}

		var req services.AddNegotiationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
			return
		}

		negotiation, err := h.supplierService.AddNegotiation(partnerType, id, &req)
		if err != nil {
			h.respondError(c, partnerType, err)
			return
		}

		utils.CreatedResponse(c, gin.H{
			"message":     i18n.T(lang, i18n.KeyNegotiationAdded),
			"negotiation": negotiation,
		})
	}
}

// GET /suppliers/:id/negotiations, GET /prep-centers/:id/negotiations
func (h *SupplierHandler) GetNegotiations(partnerType models.PartnerType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "Invalid partner ID")
		if !ok {
			return
		}

		negotiations, err := h.supplierService.ListNegotiations(partnerType, id)
		if err != nil {
			h.respondError(c, partnerType, err)
			return
		}

		utils.SuccessResponse(c, gin.H{
			"negotiations": negotiations,
		})
	}
}

func (h *SupplierHandler) respondError(c *gin.Context, partnerType models.PartnerType, err error) {
	lang := utils.GetLangFromContext(c)

	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(validationErrs))
	case errors.Is(err, services.ErrNotFound):
		key := i18n.KeySupplierNotFound
		if partnerType == models.PartnerTypePrepCenter {
			key = i18n.KeyPrepCenterNotFound
		}
		utils.NotFoundResponse(c, key)
	case errors.Is(err, services.ErrDuplicate):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyPartnerDuplicate))
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
