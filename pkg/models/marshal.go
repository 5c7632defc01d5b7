package models

// Ratings are exported by name rather than by weight.

func (e ElapsedTime) MarshalText() ([]byte, error)         { return []byte(e.String()), nil }
func (e Expertise) MarshalText() ([]byte, error)           { return []byte(e.String()), nil }
func (k Knowledge) MarshalText() ([]byte, error)           { return []byte(k.String()), nil }
func (w WindowOfOpportunity) MarshalText() ([]byte, error) { return []byte(w.String()), nil }
func (e Equipment) MarshalText() ([]byte, error)           { return []byte(e.String()), nil }
func (l FeasibilityLevel) MarshalText() ([]byte, error)    { return []byte(l.String()), nil }
func (c ImpactCategory) MarshalText() ([]byte, error)      { return []byte(c.String()), nil }
func (i Impact) MarshalText() ([]byte, error)              { return []byte(i.String()), nil }
func (r RiskLevel) MarshalText() ([]byte, error)           { return []byte(r.String()), nil }
func (p SecurityProperty) MarshalText() ([]byte, error)    { return []byte(p.String()), nil }
