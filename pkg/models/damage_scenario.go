package models

// DamageScenario describes the consequence of a violated security property.
type DamageScenario struct {
	ID        string                    `json:"id" yaml:"id"`
	Name      string                    `json:"name" yaml:"name"`
	Reasoning string                    `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	Comment   string                    `json:"comment,omitempty" yaml:"comment,omitempty"`
	Impacts   map[ImpactCategory]Impact `json:"impacts" yaml:"impacts"`
}

// NewDamageScenario creates a scenario rated Negligible in every category.
func NewDamageScenario(id, name string) *DamageScenario {
	impacts := make(map[ImpactCategory]Impact, len(ImpactCategories))
	for _, c := range ImpactCategories {
		impacts[c] = ImpactNegligible
	}
	return &DamageScenario{ID: id, Name: name, Impacts: impacts}
}

func (d *DamageScenario) ObjectID() string { return d.ID }

// Impact returns the highest impact over all categories.
func (d *DamageScenario) Impact() Impact {
	highest := ImpactNegligible
	for _, impact := range d.Impacts {
		highest = max(highest, impact)
	}
	return highest
}
