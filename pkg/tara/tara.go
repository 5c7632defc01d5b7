// Package tara holds the parsed content of a threat analysis and risk
// assessment project.
package tara

import (
	"log/slog"

	"github.com/smith-xyz/golang-tara/pkg/attacktree"
	"github.com/smith-xyz/golang-tara/pkg/models"
	"github.com/smith-xyz/golang-tara/pkg/registry"
)

// TARA is a parsed project. All identifiable objects are also in Registry.
type TARA struct {
	Directory       string
	Assumptions     []*models.Assumption
	Assets          []*models.Asset
	DamageScenarios []*models.DamageScenario
	Controls        []*models.SecurityControl
	AttackTrees     []*attacktree.Tree
	Registry        *registry.Registry
}

// New creates an empty project with its own registry.
func New(directory string, logger *slog.Logger) *TARA {
	return &TARA{Directory: directory, Registry: registry.New(logger)}
}

// DamageScenario looks up a damage scenario by ID.
func (t *TARA) DamageScenario(id string) (*models.DamageScenario, bool) {
	return registry.Lookup[*models.DamageScenario](t.Registry, id)
}

// AttackTree looks up an attack tree by ID.
func (t *TARA) AttackTree(id string) (*attacktree.Tree, bool) {
	return registry.Lookup[*attacktree.Tree](t.Registry, id)
}

// Control looks up a security control by ID.
func (t *TARA) Control(id string) (*models.SecurityControl, bool) {
	return registry.Lookup[*models.SecurityControl](t.Registry, id)
}

// Threat is an attacked security property of an asset together with the
// damage scenarios it leads to.
type Threat struct {
	Asset           *models.Asset
	Property        models.SecurityProperty
	DamageScenarios []string
}

// TreeID returns the ID of the attack tree describing the threat.
func (th Threat) TreeID() string {
	return attacktree.TreeID(th.Asset.ID, th.Property)
}

// Threats lists all threats in asset order, then property order.
func (t *TARA) Threats() []Threat {
	var threats []Threat
	for _, asset := range t.Assets {
		for _, p := range asset.SecurityProperties() {
			threats = append(threats, Threat{Asset: asset, Property: p, DamageScenarios: asset.DamageScenarios[p]})
		}
	}
	return threats
}

// NewEvaluator creates an evaluator over the project registry.
func (t *TARA) NewEvaluator(logger *slog.Logger, opts ...attacktree.Option) *attacktree.Evaluator {
	return attacktree.NewEvaluator(t.Registry, logger, opts...)
}
