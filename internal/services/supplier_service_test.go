// internal/services/supplier_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerops/margin-backend/internal/models"
	"github.com/sellerops/margin-backend/internal/utils"
)

func newSupplierService(t *testing.T) *SupplierService {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return NewSupplierService(logger)
}

func firstPage() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: 20}
}

func TestSupplierService_Register(t *testing.T) {
	svc := newSupplierService(t)

	supplier, err := svc.RegisterPartner(models.PartnerTypeSupplier, &RegisterPartnerRequest{
		Name:     "Shenzhen Electronics",
		Email:    "contact@shenzhenelec.com",
		LeadTime: "30 dias",
		Location: "ignored for suppliers",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PartnerTypeSupplier, supplier.Type)
	assert.Empty(t, supplier.Location)
	assert.NotNil(t, supplier.ServiceCosts)

	_, err = svc.RegisterPartner(models.PartnerTypeSupplier, &RegisterPartnerRequest{
		Name: "shenzhen electronics", LeadTime: "10 dias",
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	center, err := svc.RegisterPartner(models.PartnerTypePrepCenter, &RegisterPartnerRequest{
		Name: "Shenzhen Electronics", LeadTime: "3 dias", Location: "São Paulo, SP",
	})
	require.NoError(t, err, "names are unique per partner type")
	assert.Equal(t, "São Paulo, SP", center.Location)
}

func TestSupplierService_RegisterValidation(t *testing.T) {
	svc := newSupplierService(t)

	tests := []struct {
		name string
		req  RegisterPartnerRequest
	}{
		{"short name", RegisterPartnerRequest{Name: "A", LeadTime: "1 dia"}},
		{"missing lead time", RegisterPartnerRequest{Name: "Acme"}},
		{"bad email", RegisterPartnerRequest{Name: "Acme", LeadTime: "1 dia", Email: "not-an-email"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterPartner(models.PartnerTypeSupplier, &tt.req)
			assert.Error(t, err)
		})
	}
}

func TestSupplierService_GetWrongType(t *testing.T) {
	svc := newSupplierService(t)
	supplier, err := svc.RegisterPartner(models.PartnerTypeSupplier, &RegisterPartnerRequest{Name: "Acme", LeadTime: "1 dia"})
	require.NoError(t, err)

	_, err = svc.GetPartner(models.PartnerTypePrepCenter, supplier.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetPartner(models.PartnerTypeSupplier, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSupplierService_NegotiationsNewestFirst(t *testing.T) {
	svc := newSupplierService(t)
	supplier, err := svc.RegisterPartner(models.PartnerTypeSupplier, &RegisterPartnerRequest{Name: "Acme", LeadTime: "1 dia"})
	require.NoError(t, err)

	march := time.Date(2025, 3, 25, 0, 0, 0, 0, time.UTC)
	_, err = svc.AddNegotiation(models.PartnerTypeSupplier, supplier.ID, &AddNegotiationRequest{
		Date: &march, Details: "Prazos de entrega",
	})
	require.NoError(t, err)
	latest, err := svc.AddNegotiation(models.PartnerTypeSupplier, supplier.ID, &AddNegotiationRequest{
		Details: "Desconto acima de 1000 unidades", Outcomes: "5% de desconto",
	})
	require.NoError(t, err)

	_, err = svc.AddNegotiation(models.PartnerTypeSupplier, supplier.ID, &AddNegotiationRequest{})
	assert.Error(t, err, "details are required")

	history, err := svc.ListNegotiations(models.PartnerTypeSupplier, supplier.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, latest.ID, history[0].ID)
	assert.Equal(t, march, history[1].Date)
}

func TestSupplierService_ServiceCosts(t *testing.T) {
	svc := newSupplierService(t)
	center, err := svc.RegisterPartner(models.PartnerTypePrepCenter, &RegisterPartnerRequest{Name: "FastPrep", LeadTime: "3 dias"})
	require.NoError(t, err)

	_, err = svc.AddServiceCost(models.PartnerTypePrepCenter, center.ID, &AddServiceCostRequest{ServiceName: "Etiquetagem", Cost: 1.5, Unit: "unidade"})
	require.NoError(t, err)
	_, err = svc.AddServiceCost(models.PartnerTypePrepCenter, center.ID, &AddServiceCostRequest{Cost: 2})
	assert.Error(t, err)
	_, err = svc.AddServiceCost(models.PartnerTypeSupplier, center.ID, &AddServiceCostRequest{ServiceName: "Etiquetagem"})
	assert.ErrorIs(t, err, ErrNotFound)

	costs, err := svc.ListServiceCosts(models.PartnerTypePrepCenter, center.ID)
	require.NoError(t, err)
	require.Len(t, costs, 1)
	assert.Equal(t, "Etiquetagem", costs[0].ServiceName)
	assert.Equal(t, 1.5, costs[0].Cost)

	costs[0].Cost = 99
	again, err := svc.ListServiceCosts(models.PartnerTypePrepCenter, center.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.5, again[0].Cost)
}

func TestSupplierService_SeedAndList(t *testing.T) {
	svc := newSupplierService(t)
	require.NoError(t, svc.SeedSamples())

	suppliers, total := svc.ListPartners(models.PartnerTypeSupplier, firstPage())
	assert.Equal(t, int64(3), total)
	require.Len(t, suppliers, 3)
	assert.Equal(t, "Global Import Co.", suppliers[0].Name)
	assert.Len(t, suppliers[0].ServiceCosts, 1)

	params := firstPage()
	params.Search = "rio de janeiro"
	centers, total := svc.ListPartners(models.PartnerTypePrepCenter, params)
	assert.Equal(t, int64(1), total)
	require.Len(t, centers, 1)
	assert.Equal(t, "Flex Logistics", centers[0].Name)

	assert.ErrorIs(t, svc.SeedSamples(), ErrDuplicate)
}
