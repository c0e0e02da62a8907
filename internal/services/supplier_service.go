// internal/services/supplier_service.go
package services

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sellerops/margin-backend/internal/models"
	"github.com/sellerops/margin-backend/internal/utils"
)

// SupplierService is the registry of suppliers and prep centers. Both kinds
// share one map and are told apart by Partner.Type.
type SupplierService struct {
	mu       sync.RWMutex
	partners map[uuid.UUID]*models.Partner
	logger   *logrus.Logger
	now      func() time.Time
}

type RegisterPartnerRequest struct {
	Name        string     `json:"name" validate:"required,min=2,max=255"`
	ContactName string     `json:"contact_name,omitempty" validate:"omitempty,max=255"`
	Email       string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string     `json:"phone,omitempty" validate:"omitempty,max=32"`
	LeadTime    string     `json:"lead_time" validate:"required,max=64"`
	Address     string     `json:"address,omitempty" validate:"omitempty,max=500"`
	Location    string     `json:"location,omitempty" validate:"omitempty,max=255"`
	Notes       string     `json:"notes,omitempty"`
	LastOrder   *time.Time `json:"last_order,omitempty"`
}

type AddServiceCostRequest struct {
	ProductName string  `json:"product_name,omitempty" validate:"omitempty,max=255"`
	ServiceName string  `json:"service" validate:"required,max=255"`
	Cost        float64 `json:"cost" validate:"min=0"`
	Unit        string  `json:"unit,omitempty" validate:"omitempty,max=32"`
	Notes       string  `json:"notes,omitempty"`
}

type AddNegotiationRequest struct {
	Date     *time.Time `json:"date,omitempty"`
	Details  string     `json:"details" validate:"required"`
	Outcomes string     `json:"outcomes,omitempty"`
}

func NewSupplierService(logger *logrus.Logger) *SupplierService {
	return &SupplierService{
		partners: make(map[uuid.UUID]*models.Partner),
		logger:   logger,
		now:      time.Now,
	}
}

// RegisterPartner adds a supplier or prep center. Names are unique per type,
// ignoring case.
func (s *SupplierService) RegisterPartner(partnerType models.PartnerType, req *RegisterPartnerRequest) (*models.Partner, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	name := strings.TrimSpace(req.Name)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.partners {
		if p.Type == partnerType && strings.EqualFold(p.Name, name) {
			return nil, fmt.Errorf("%s %q: %w", partnerType, name, ErrDuplicate)
		}
	}

	now := s.now()
	partner := &models.Partner{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Type:         partnerType,
		Name:         name,
		ContactName:  strings.TrimSpace(req.ContactName),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		LeadTime:     strings.TrimSpace(req.LeadTime),
		Address:      req.Address,
		Notes:        req.Notes,
		LastOrder:    req.LastOrder,
		ServiceCosts: []models.ServiceCost{},
		Negotiations: []models.Negotiation{},
	}
	if partnerType == models.PartnerTypePrepCenter {
		partner.Location = strings.TrimSpace(req.Location)
	}
	s.partners[partner.ID] = partner

	s.logger.WithFields(logrus.Fields{
		"partner_id": partner.ID,
		"type":       partnerType,
		"name":       partner.Name,
	}).Info("partner registered")

	return partner.Clone(), nil
}

func (s *SupplierService) GetPartner(partnerType models.PartnerType, id uuid.UUID) (*models.Partner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	partner, err := s.lookupLocked(partnerType, id)
	if err != nil {
		return nil, err
	}
	return partner.Clone(), nil
}

// ListPartners returns partners of one type ordered by name. Search matches
// name, contact and location.
func (s *SupplierService) ListPartners(partnerType models.PartnerType, params utils.PaginationParams) ([]models.Partner, int64) {
	search := strings.ToLower(strings.TrimSpace(params.Search))

	s.mu.RLock()
	matched := make([]models.Partner, 0, len(s.partners))
	for _, p := range s.partners {
		if p.Type != partnerType {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.ContactName), search) &&
			!strings.Contains(strings.ToLower(p.Location), search) {
			continue
		}
		matched = append(matched, *p.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return strings.ToLower(matched[i].Name) < strings.ToLower(matched[j].Name)
	})

	return utils.Paginate(matched, params), int64(len(matched))
}

func (s *SupplierService) AddServiceCost(partnerType models.PartnerType, id uuid.UUID, req *AddServiceCostRequest) (*models.ServiceCost, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	partner, err := s.lookupLocked(partnerType, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	cost := models.ServiceCost{
		ID:          uuid.New(),
		ProductName: strings.TrimSpace(req.ProductName),
		ServiceName: strings.TrimSpace(req.ServiceName),
		Cost:        req.Cost,
		Unit:        strings.TrimSpace(req.Unit),
		Notes:       req.Notes,
		CreatedAt:   now,
	}
	partner.ServiceCosts = append(partner.ServiceCosts, cost)
	partner.UpdatedAt = now

	return &cost, nil
}

func (s *SupplierService) ListServiceCosts(partnerType models.PartnerType, id uuid.UUID) ([]models.ServiceCost, error) {
	partner, err := s.GetPartner(partnerType, id)
	if err != nil {
		return nil, err
	}
	return partner.ServiceCosts, nil
}

// AddNegotiation records a negotiation at the head of the history. A missing
// date means today.
func (s *SupplierService) AddNegotiation(partnerType models.PartnerType, id uuid.UUID, req *AddNegotiationRequest) (*models.Negotiation, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	partner, err := s.lookupLocked(partnerType, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	negotiation := models.Negotiation{
		ID:        uuid.New(),
		Date:      now,
		Details:   strings.TrimSpace(req.Details),
		Outcomes:  strings.TrimSpace(req.Outcomes),
		CreatedAt: now,
	}
	if req.Date != nil {
		negotiation.Date = *req.Date
	}
	partner.Negotiations = append([]models.Negotiation{negotiation}, partner.Negotiations...)
	partner.UpdatedAt = now

	s.logger.WithFields(logrus.Fields{
		"partner_id":     partner.ID,
		"negotiation_id": negotiation.ID,
	}).Info("negotiation recorded")

	return &negotiation, nil
}

// ListNegotiations returns the history newest first.
func (s *SupplierService) ListNegotiations(partnerType models.PartnerType, id uuid.UUID) ([]models.Negotiation, error) {
	partner, err := s.GetPartner(partnerType, id)
	if err != nil {
		return nil, err
	}
	return partner.Negotiations, nil
}

func (s *SupplierService) lookupLocked(partnerType models.PartnerType, id uuid.UUID) (*models.Partner, error) {
	partner, ok := s.partners[id]
	if !ok || partner.Type != partnerType {
		return nil, fmt.Errorf("%s %s: %w", partnerType, id, ErrNotFound)
	}
	return partner, nil
}

// SeedSamples registers the demo suppliers and prep centers.
func (s *SupplierService) SeedSamples() error {
	date := func(day, month int) *time.Time {
		t := time.Date(2025, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return &t
	}

	suppliers := []RegisterPartnerRequest{
		{Name: "Shenzhen Electronics", ContactName: "Li Wei", Phone: "+86 123456789", Email: "contact@shenzhenelec.com", LeadTime: "30 dias", LastOrder: date(15, 4)},
		{Name: "Global Import Co.", ContactName: "John Smith", Phone: "+1 987654321", Email: "sales@globalimport.com", LeadTime: "45 dias", LastOrder: date(3, 3)},
		{Name: "Tech Innovations Ltd", ContactName: "Maria Rodriguez", Phone: "+52 5512345678", Email: "maria@techinnovations.com", LeadTime: "20 dias", LastOrder: date(28, 4)},
	}
	prepCenters := []RegisterPartnerRequest{
		{Name: "FastPrep Services", ContactName: "Carlos Silva", Phone: "+55 11 98765-4321", Email: "contato@fastprep.com.br", LeadTime: "3 dias", Location: "São Paulo, SP"},
		{Name: "Amazon Prep Solutions", ContactName: "Amanda Johnson", Phone: "+1 305-555-1234", Email: "info@amazonprepsolutions.com", LeadTime: "5 dias", Location: "Miami, FL"},
		{Name: "Flex Logistics", ContactName: "Pedro Gomes", Phone: "+55 21 3456-7890", Email: "atendimento@flexlogistics.com.br", LeadTime: "2 dias", Location: "Rio de Janeiro, RJ"},
	}

	for i := range suppliers {
		partner, err := s.RegisterPartner(models.PartnerTypeSupplier, &suppliers[i])
		if err != nil {
			return fmt.Errorf("seed supplier %q: %w", suppliers[i].Name, err)
		}
		if _, err := s.AddServiceCost(partner.Type, partner.ID, &AddServiceCostRequest{
			ProductName: "Produto de exemplo", ServiceName: "Fabricação", Cost: 10, Unit: "unidade",
		}); err != nil {
			return err
		}
	}
	for i := range prepCenters {
		partner, err := s.RegisterPartner(models.PartnerTypePrepCenter, &prepCenters[i])
		if err != nil {
			return fmt.Errorf("seed prep center %q: %w", prepCenters[i].Name, err)
		}
		if _, err := s.AddServiceCost(partner.Type, partner.ID, &AddServiceCostRequest{
			ProductName: "Produto de exemplo", ServiceName: "Recebimento", Cost: 10, Unit: "unidade",
		}); err != nil {
			return err
		}
	}

	s.logger.WithField("count", len(suppliers)+len(prepCenters)).Info("sample partners seeded")
	return nil
}
