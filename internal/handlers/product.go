// internal/handlers/product.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/sellerops/margin-backend/internal/i18n"
	"github.com/sellerops/margin-backend/internal/models"
	"github.com/sellerops/margin-backend/internal/services"
	"github.com/sellerops/margin-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	currency       string
}

func NewProductHandler(productService *services.ProductService, currency string) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		currency:       currency,
	}
}

type UpdateStatusRequest struct {
	Status models.ProductStatus `json:"status" validate:"required,oneof=simulated quoting purchased in_stock"`
}

// SimulationSummary is the selected strategy of a simulation as displayed.
type SimulationSummary struct {
	Strategy       models.Strategy `json:"strategy"`
	TotalUnitCost  utils.Amount    `json:"total_unit_cost"`
	NetProfit      utils.Amount    `json:"net_profit"`
	MarginPercent  utils.Amount    `json:"margin_percent"`
	RoiPercent     utils.Amount    `json:"roi_percent"`
	Recommendation models.Strategy `json:"recommendation"`
	ProfitDelta    utils.Amount    `json:"profit_delta"`
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	params := utils.GetPaginationParams(c)

	searchParams := services.ProductSearchParams{
		PaginationParams: params,
	}

	if status := c.Query("status"); status != "" {
		productStatus := models.ProductStatus(status)
		if !productStatus.Valid() {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductInvalidState), nil)
			return
		}
		searchParams.Status = &productStatus
	}

	products, total := h.productService.SearchProducts(searchParams)
	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "Invalid product ID")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, h.productPayload(c, product, ""))
}

// POST /products
func (h *ProductHandler) RegisterProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RegisterProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.RegisterProduct(&req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.CreatedResponse(c, h.productPayload(c, product, i18n.KeyProductRegistered))
}

// POST /products/:id/simulate
func (h *ProductHandler) SimulateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseID(c, "Invalid product ID")
	if !ok {
		return
	}

	var req services.SimulateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.SimulateProduct(id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, h.productPayload(c, product, i18n.KeyProductSimulated))
}

// PATCH /products/:id/simulation
func (h *ProductHandler) PatchSimulation(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseID(c, "Invalid product ID")
	if !ok {
		return
	}

	var req map[string]models.NumericInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	fields := make(map[string]string, len(req))
	for name, value := range req {
		fields[name] = value.Raw
	}

	product, err := h.productService.PatchSimulation(id, fields)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, h.productPayload(c, product, i18n.KeyProductSimulated))
}

// POST /products/:id/save
func (h *ProductHandler) SaveProduct(c *gin.Context) {
	id, ok := parseID(c, "Invalid product ID")
	if !ok {
		return
	}

	product, err := h.productService.SaveProduct(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, h.productPayload(c, product, i18n.KeyProductSaved))
}

// PUT /products/:id/status
func (h *ProductHandler) UpdateStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseID(c, "Invalid product ID")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.UpdateStatus(id, req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, h.productPayload(c, product, i18n.KeyProductStatus))
}

func (h *ProductHandler) productPayload(c *gin.Context, product *models.Product, messageKey string) gin.H {
	lang := utils.GetLangFromContext(c)
	payload := gin.H{
		"product": product,
	}
	if messageKey != "" {
		payload["message"] = i18n.T(lang, messageKey)
	}
	if product.Result != nil {
		payload["summary"] = h.summarize(product.Result, lang)
	}
	return payload
}

func (h *ProductHandler) summarize(r *models.SimulationResult, lang string) SimulationSummary {
	return SimulationSummary{
		Strategy:       r.Selected.Strategy,
		TotalUnitCost:  utils.FormatMoney(r.Selected.TotalUnitCost, h.currency, lang),
		NetProfit:      utils.FormatMoney(r.Selected.NetProfit, h.currency, lang),
		MarginPercent:  utils.FormatPercent(r.Selected.MarginPercent, lang),
		RoiPercent:     utils.FormatPercent(r.Selected.RoiPercent, lang),
		Recommendation: r.Recommendation.Strategy,
		ProfitDelta:    utils.FormatMoney(r.Recommendation.ProfitDelta, h.currency, lang),
	}
}

func (h *ProductHandler) respondError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(validationErrs))
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
	case errors.Is(err, services.ErrNotSimulated):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyProductNotSimulated))
	case errors.Is(err, services.ErrInvalidSimulation):
		utils.UnprocessableResponse(c, "INVALID_SIMULATION", i18n.T(lang, i18n.KeyProductInvalidSim), nil)
	case errors.Is(err, services.ErrUnknownField):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductUnknownField, unwrapDetail(err)), nil)
	case errors.Is(err, services.ErrInvalidStatus):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductInvalidState), nil)
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}

// unwrapDetail returns the text a sentinel error was annotated with.
func unwrapDetail(err error) string {
	if inner := errors.Unwrap(err); inner != nil {
		return strings.TrimPrefix(err.Error(), inner.Error()+": ")
	}
	return err.Error()
}

func parseID(c *gin.Context, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, message, nil)
		return uuid.Nil, false
	}
	return id, true
}
