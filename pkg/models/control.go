package models

// SecurityControl is a mitigation. Its effect is modeled by a circumvention
// attack tree that only participates while the control is active.
type SecurityControl struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	SecurityGoal string `json:"security_goal,omitempty" yaml:"security_goal,omitempty"`
	IsActive     bool   `json:"is_active" yaml:"is_active"`
}

func (c *SecurityControl) ObjectID() string { return c.ID }

// Assumption is a security claim about the environment.
type Assumption struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	SecurityClaim string `json:"security_claim,omitempty" yaml:"security_claim,omitempty"`
	Comment       string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

func (a *Assumption) ObjectID() string { return a.ID }
