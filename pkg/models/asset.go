package models

// SecurityProperty is a protection goal of an asset.
type SecurityProperty int

const (
	Availability SecurityProperty = iota
	Integrity
	Confidentiality
)

// SecurityProperties lists the properties in asset table column order.
var SecurityProperties = []SecurityProperty{Availability, Integrity, Confidentiality}

func (p SecurityProperty) String() string {
	switch p {
	case Availability:
		return "Availability"
	case Integrity:
		return "Integrity"
	case Confidentiality:
		return "Confidentiality"
	default:
		return "Unknown"
	}
}

// AttackCode is the short code used in attack tree IDs.
func (p SecurityProperty) AttackCode() string {
	switch p {
	case Confidentiality:
		return "EXT"
	case Integrity:
		return "MAN"
	case Availability:
		return "BLOCK"
	default:
		return "UNKNOWN"
	}
}

// AttackDescription names the attack that violates the property.
func (p SecurityProperty) AttackDescription() string {
	switch p {
	case Confidentiality:
		return "Extraction"
	case Integrity:
		return "Manipulation"
	case Availability:
		return "Blocking"
	default:
		return "Unknown Security Property"
	}
}

// Asset is an item worth protecting.
type Asset struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Reasoning   string `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	// DamageScenarios maps a property to damage scenario IDs. A property
	// without scenarios is not relevant for the asset.
	DamageScenarios map[SecurityProperty][]string `json:"damage_scenarios" yaml:"damage_scenarios"`
}

// NewAsset creates an asset without damage scenarios.
func NewAsset(id, name string) *Asset {
	return &Asset{
		ID:              id,
		Name:            name,
		DamageScenarios: make(map[SecurityProperty][]string),
	}
}

func (a *Asset) ObjectID() string { return a.ID }

// SecurityProperties returns the properties that have damage scenarios,
// in the order of SecurityProperties.
func (a *Asset) SecurityProperties() []SecurityProperty {
	var result []SecurityProperty
	for _, p := range SecurityProperties {
		if len(a.DamageScenarios[p]) > 0 {
			result = append(result, p)
		}
	}
	return result
}
