// internal/models/partner.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Partner is a supplier or a prep center.
type Partner struct {
	BaseModel
	Type         PartnerType   `json:"type"`
	Name         string        `json:"name"`
	ContactName  string        `json:"contact_name,omitempty"`
	Email        string        `json:"email,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	LeadTime     string        `json:"lead_time"`
	Address      string        `json:"address,omitempty"`
	Location     string        `json:"location,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	LastOrder    *time.Time    `json:"last_order,omitempty"`
	ServiceCosts []ServiceCost `json:"service_costs"`
	Negotiations []Negotiation `json:"negotiations"`
}

// ServiceCost is a per unit price quoted by a partner.
type ServiceCost struct {
	ID          uuid.UUID `json:"id"`
	ProductName string    `json:"product_name,omitempty"`
	ServiceName string    `json:"service_name"`
	Cost        float64   `json:"cost"`
	Unit        string    `json:"unit,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Negotiation struct {
	ID        uuid.UUID `json:"id"`
	Date      time.Time `json:"date"`
	Details   string    `json:"details"`
	Outcomes  string    `json:"outcomes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Clone copies the partner including its slices.
func (p *Partner) Clone() *Partner {
	out := *p
	out.ServiceCosts = append([]ServiceCost{}, p.ServiceCosts...)
	out.Negotiations = append([]Negotiation{}, p.Negotiations...)
	if p.LastOrder != nil {
		t := *p.LastOrder
		out.LastOrder = &t
	}
	return &out
}
