// internal/calculator/schedule.go
package calculator

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Category is a catalog entry with its referral fee as a 0-1 fraction.
type Category struct {
	ID              string  `json:"id" yaml:"id"`
	Name            string  `json:"name" yaml:"name"`
	ReferralFeeRate float64 `json:"referral_fee_rate" yaml:"referral_fee_rate"`
}

// WeightBucket charges Fee for any weight up to and including MaxKg.
type WeightBucket struct {
	MaxKg float64 `json:"max_kg" yaml:"max_kg"`
	Fee   float64 `json:"fee" yaml:"fee"`
}

// Schedule is the static fee reference data the engine is parameterized by.
type Schedule struct {
	Version                  string         `json:"version" yaml:"version"`
	Currency                 string         `json:"currency" yaml:"currency"`
	Categories               []Category     `json:"categories" yaml:"categories"`
	LogisticsBuckets         []WeightBucket `json:"logistics_buckets" yaml:"logistics_buckets"`
	OverflowStepKg           float64        `json:"overflow_step_kg" yaml:"overflow_step_kg"`
	OverflowIncrement        float64        `json:"overflow_increment" yaml:"overflow_increment"`
	StorageRatePerCubicMeter float64        `json:"storage_rate_per_cubic_meter" yaml:"storage_rate_per_cubic_meter"`
}

var ErrInvalidSchedule = errors.New("invalid fee schedule")

// DefaultSchedule returns the 2025 Brazilian marketplace schedule.
func DefaultSchedule() Schedule {
	return Schedule{
		Version:  "br-2025.1",
		Currency: "BRL",
		Categories: []Category{
			{ID: "amazon_devices", Name: "Acessórios para Dispositivos Amazon", ReferralFeeRate: 0.45},
			{ID: "compact_appliances", Name: "Eletrodomésticos - Compactos", ReferralFeeRate: 0.15},
			{ID: "large_appliances", Name: "Eletrodomésticos - Grandes", ReferralFeeRate: 0.08},
			{ID: "automotive", Name: "Automotivo e Esportes Motorizados", ReferralFeeRate: 0.12},
			{ID: "power_tools", Name: "Ferramentas Elétricas de Base", ReferralFeeRate: 0.12},
			{ID: "baby", Name: "Produtos para Bebês", ReferralFeeRate: 0.15},
			{ID: "bags", Name: "Mochilas, Bolsas e Bagagens", ReferralFeeRate: 0.15},
			{ID: "health_beauty", Name: "Beleza, Saúde e Cuidados Pessoais", ReferralFeeRate: 0.15},
			{ID: "industrial", Name: "Suprimentos Comerciais, Industriais e Científicos", ReferralFeeRate: 0.12},
			{ID: "computers", Name: "Computadores", ReferralFeeRate: 0.08},
			{ID: "consumer_electronics", Name: "Eletrônicos de Consumo", ReferralFeeRate: 0.08},
			{ID: "electronic_accessories", Name: "Acessórios de Eletrônicos", ReferralFeeRate: 0.15},
			{ID: "eyewear", Name: "Óculos", ReferralFeeRate: 0.15},
			{ID: "fine_art", Name: "Arte Fina", ReferralFeeRate: 0.20},
			{ID: "shoes", Name: "Calçados", ReferralFeeRate: 0.15},
			{ID: "furniture", Name: "Móveis", ReferralFeeRate: 0.15},
			{ID: "gift_cards", Name: "Cartões Presente", ReferralFeeRate: 0.20},
			{ID: "gourmet_food", Name: "Alimentos e Bebidas Gourmet", ReferralFeeRate: 0.15},
			{ID: "home", Name: "Casa e Cozinha", ReferralFeeRate: 0.15},
			{ID: "jewelry", Name: "Joias", ReferralFeeRate: 0.20},
			{ID: "garden", Name: "Jardim e Exteriores", ReferralFeeRate: 0.15},
			{ID: "lawn_tools", Name: "Cortadores de Grama e Sopradores de Neve", ReferralFeeRate: 0.15},
			{ID: "mattresses", Name: "Colchões", ReferralFeeRate: 0.15},
			{ID: "media", Name: "Mídia - Livros, DVDs, Música, Software", ReferralFeeRate: 0.15},
			{ID: "musical_instruments", Name: "Instrumentos Musicais e Produção AV", ReferralFeeRate: 0.15},
			{ID: "office_products", Name: "Produtos de Escritório", ReferralFeeRate: 0.15},
			{ID: "pet_products", Name: "Produtos para Animais de Estimação", ReferralFeeRate: 0.15},
			{ID: "tires", Name: "Pneus", ReferralFeeRate: 0.10},
			{ID: "tools", Name: "Ferramentas e Melhoria do Lar", ReferralFeeRate: 0.15},
			{ID: "toys", Name: "Brinquedos e Jogos", ReferralFeeRate: 0.15},
			{ID: "video_games", Name: "Videogames e Acessórios", ReferralFeeRate: 0.15},
			{ID: "video_consoles", Name: "Consoles de Videogame", ReferralFeeRate: 0.08},
			{ID: "watches", Name: "Relógios", ReferralFeeRate: 0.16},
			{ID: "other", Name: "Outros", ReferralFeeRate: 0.15},
		},
		LogisticsBuckets: []WeightBucket{
			{MaxKg: 0.1, Fee: 4.14},
			{MaxKg: 0.25, Fee: 4.79},
			{MaxKg: 0.5, Fee: 7.43},
			{MaxKg: 0.75, Fee: 8.22},
			{MaxKg: 1, Fee: 11.19},
			{MaxKg: 1.5, Fee: 12.74},
			{MaxKg: 2, Fee: 13.99},
			{MaxKg: 3, Fee: 15.66},
			{MaxKg: 4, Fee: 17.45},
			{MaxKg: 5, Fee: 19.99},
			{MaxKg: 7, Fee: 27.29},
			{MaxKg: 10, Fee: 31.99},
			{MaxKg: 15, Fee: 38.99},
			{MaxKg: 20, Fee: 44.99},
			{MaxKg: 25, Fee: 59.99},
			{MaxKg: 30, Fee: 73.99},
		},
		OverflowStepKg:           10,
		OverflowIncrement:        25.00,
		StorageRatePerCubicMeter: 28.63,
	}
}

// LoadSchedule reads a YAML fee schedule and validates it.
func LoadSchedule(path string) (Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schedule{}, fmt.Errorf("failed to read fee schedule %s: %w", path, err)
	}
	return ParseSchedule(data)
}

// ParseSchedule decodes a YAML fee schedule and validates it.
func ParseSchedule(data []byte) (Schedule, error) {
	var s Schedule
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Schedule{}, fmt.Errorf("failed to decode fee schedule: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

func (s Schedule) Validate() error {
	if len(s.LogisticsBuckets) == 0 {
		return fmt.Errorf("%w: no logistics buckets", ErrInvalidSchedule)
	}
	for i, b := range s.LogisticsBuckets {
		if b.Fee < 0 || !finite(b.Fee) || !finite(b.MaxKg) {
			return fmt.Errorf("%w: bucket %d has an invalid fee", ErrInvalidSchedule, i)
		}
		if i == 0 {
			continue
		}
		prev := s.LogisticsBuckets[i-1]
		if b.MaxKg <= prev.MaxKg {
			return fmt.Errorf("%w: bucket %d threshold %.3f kg does not increase", ErrInvalidSchedule, i, b.MaxKg)
		}
		if b.Fee < prev.Fee {
			return fmt.Errorf("%w: bucket %d fee decreases", ErrInvalidSchedule, i)
		}
	}
	if !finite(s.OverflowStepKg) || s.OverflowStepKg <= 0 {
		return fmt.Errorf("%w: overflow step must be positive", ErrInvalidSchedule)
	}
	if !finite(s.OverflowIncrement) || !finite(s.StorageRatePerCubicMeter) ||
		s.OverflowIncrement < 0 || s.StorageRatePerCubicMeter < 0 {
		return fmt.Errorf("%w: negative rate", ErrInvalidSchedule)
	}

	seen := make(map[string]struct{}, len(s.Categories))
	for _, c := range s.Categories {
		if c.ID == "" {
			return fmt.Errorf("%w: category without id", ErrInvalidSchedule)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidSchedule, c.ID)
		}
		seen[c.ID] = struct{}{}
		if !finite(c.ReferralFeeRate) || c.ReferralFeeRate < 0 || c.ReferralFeeRate > 1 {
			return fmt.Errorf("%w: category %q referral rate out of range", ErrInvalidSchedule, c.ID)
		}
	}
	return nil
}

// Category looks up a catalog entry by id.
func (s Schedule) Category(id string) (Category, bool) {
	if id == "" {
		return Category{}, false
	}
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// LogisticsFee is the platform fulfillment fee for a weight in kilograms.
// Thresholds are inclusive. Past the last bucket every started overflow
// step adds one increment.
func (s Schedule) LogisticsFee(weightKg float64) float64 {
	if len(s.LogisticsBuckets) == 0 {
		return 0
	}
	for _, b := range s.LogisticsBuckets {
		if weightKg <= b.MaxKg {
			return b.Fee
		}
	}
	last := s.LogisticsBuckets[len(s.LogisticsBuckets)-1]
	steps := math.Ceil(roundQuotient((weightKg - last.MaxKg) / s.OverflowStepKg))
	return last.Fee + steps*s.OverflowIncrement
}

// Clone returns a deep copy so callers cannot mutate shared reference data.
func (s Schedule) Clone() Schedule {
	out := s
	out.Categories = append([]Category(nil), s.Categories...)
	out.LogisticsBuckets = append([]WeightBucket(nil), s.LogisticsBuckets...)
	return out
}

// roundQuotient drops float noise such as (0.4-0.3)/0.1 = 1.0000000000000002
// so an exact step is not charged twice.
func roundQuotient(q float64) float64 {
	if q > 1e9 {
		return q
	}
	return math.Round(q*1e9) / 1e9
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
