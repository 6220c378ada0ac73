package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Vertical tipo de negocio configurado; habilita reglas como promociones y puntos.
type Vertical string

const (
	VerticalGeneral     Vertical = "general"
	VerticalSupermarket Vertical = "supermarket"
	VerticalHospital    Vertical = "hospital"
	VerticalLPGStation  Vertical = "lpg_station"
	VerticalEducation   Vertical = "education"
	VerticalRealEstate  Vertical = "real_estate"
)

// ParseVertical acepta el nombre en snake_case o CamelCase ("LPGStation", "RealEstate").
func ParseVertical(s string) (Vertical, error) {
	norm := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.TrimSpace(s)))
	switch norm {
	case "general":
		return VerticalGeneral, nil
	case "supermarket":
		return VerticalSupermarket, nil
	case "hospital":
		return VerticalHospital, nil
	case "lpgstation":
		return VerticalLPGStation, nil
	case "education":
		return VerticalEducation, nil
	case "realestate":
		return VerticalRealEstate, nil
	}
	return "", fmt.Errorf("vertical desconocida: %q", s)
}

// StockPolicy decide qué pasa si una venta deja el stock negativo.
type StockPolicy string

const (
	StockPolicyAllowNegative StockPolicy = "allow_negative"
	StockPolicyReject        StockPolicy = "reject"
)

// BusinessProfile perfil del negocio activo.
type BusinessProfile struct {
	Name           string
	Vertical       Vertical
	TaxRate        decimal.Decimal // porcentaje plano
	CurrencySymbol string
	StockPolicy    StockPolicy
}

// IsSupermarket promociones y puntos de fidelización solo aplican a supermercados.
func (p BusinessProfile) IsSupermarket() bool {
	return p.Vertical == VerticalSupermarket
}

// NewBusinessProfile arma el perfil desde valores de configuración.
// Una política vacía equivale a allow_negative.
func NewBusinessProfile(name, vertical string, taxRate float64, currencySymbol, stockPolicy string) (BusinessProfile, error) {
	v, err := ParseVertical(vertical)
	if err != nil {
		return BusinessProfile{}, err
	}
	policy := StockPolicy(strings.ToLower(strings.TrimSpace(stockPolicy)))
	switch policy {
	case "":
		policy = StockPolicyAllowNegative
	case StockPolicyAllowNegative, StockPolicyReject:
	default:
		return BusinessProfile{}, fmt.Errorf("política de stock desconocida: %q", stockPolicy)
	}
	if taxRate < 0 || taxRate > 100 {
		return BusinessProfile{}, fmt.Errorf("tasa de impuesto fuera de rango: %v", taxRate)
	}
	return BusinessProfile{
		Name:           name,
		Vertical:       v,
		TaxRate:        decimal.NewFromFloat(taxRate),
		CurrencySymbol: currencySymbol,
		StockPolicy:    policy,
	}, nil
}
