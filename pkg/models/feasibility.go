package models

// ElapsedTime is the time an attacker needs to identify and exploit a weakness.
// The constant values are the rating weights.
type ElapsedTime int

const (
	OneWeek            ElapsedTime = 0
	OneMonth           ElapsedTime = 1
	SixMonths          ElapsedTime = 4
	ThreeYears         ElapsedTime = 10
	MoreThanThreeYears ElapsedTime = 19
)

// ElapsedTimes lists all elapsed time ratings from easiest to hardest.
var ElapsedTimes = []ElapsedTime{OneWeek, OneMonth, SixMonths, ThreeYears, MoreThanThreeYears}

func (e ElapsedTime) String() string {
	switch e {
	case OneWeek:
		return "OneWeek"
	case OneMonth:
		return "OneMonth"
	case SixMonths:
		return "SixMonths"
	case ThreeYears:
		return "ThreeYears"
	case MoreThanThreeYears:
		return "MoreThanThreeYears"
	default:
		return "Unknown"
	}
}

// Expertise is the attacker skill required.
type Expertise int

const (
	Layman          Expertise = 0
	Proficient      Expertise = 3
	Expert          Expertise = 6
	MultipleExperts Expertise = 8
)

// Expertises lists all expertise ratings from easiest to hardest.
var Expertises = []Expertise{Layman, Proficient, Expert, MultipleExperts}

func (e Expertise) String() string {
	switch e {
	case Layman:
		return "Layman"
	case Proficient:
		return "Proficient"
	case Expert:
		return "Expert"
	case MultipleExperts:
		return "MultipleExperts"
	default:
		return "Unknown"
	}
}

// Knowledge is the knowledge about the item the attacker needs.
type Knowledge int

const (
	Public               Knowledge = 0
	Restricted           Knowledge = 3
	Confidential         Knowledge = 7
	StrictlyConfidential Knowledge = 11
)

// Knowledges lists all knowledge ratings from easiest to hardest.
var Knowledges = []Knowledge{Public, Restricted, Confidential, StrictlyConfidential}

func (k Knowledge) String() string {
	switch k {
	case Public:
		return "Public"
	case Restricted:
		return "Restricted"
	case Confidential:
		return "Confidential"
	case StrictlyConfidential:
		return "StrictlyConfidential"
	default:
		return "Unknown"
	}
}

// WindowOfOpportunity describes access conditions to the target.
type WindowOfOpportunity int

const (
	Unlimited WindowOfOpportunity = 0
	Easy      WindowOfOpportunity = 1
	Moderate  WindowOfOpportunity = 4
	Difficult WindowOfOpportunity = 10
)

// WindowsOfOpportunity lists all window of opportunity ratings from easiest to hardest.
var WindowsOfOpportunity = []WindowOfOpportunity{Unlimited, Easy, Moderate, Difficult}

func (w WindowOfOpportunity) String() string {
	switch w {
	case Unlimited:
		return "Unlimited"
	case Easy:
		return "Easy"
	case Moderate:
		return "Moderate"
	case Difficult:
		return "Difficult"
	default:
		return "Unknown"
	}
}

// Equipment is the equipment the attacker needs.
type Equipment int

const (
	Standard        Equipment = 0
	Specialized     Equipment = 4
	Bespoke         Equipment = 7
	MultipleBespoke Equipment = 9
)

// Equipments lists all equipment ratings from easiest to hardest.
var Equipments = []Equipment{Standard, Specialized, Bespoke, MultipleBespoke}

func (e Equipment) String() string {
	switch e {
	case Standard:
		return "Standard"
	case Specialized:
		return "Specialized"
	case Bespoke:
		return "Bespoke"
	case MultipleBespoke:
		return "MultipleBespoke"
	default:
		return "Unknown"
	}
}

// FeasibilityLevel classifies a feasibility score.
// A higher level means an easier attack.
type FeasibilityLevel int

const (
	FeasibilityVeryLow FeasibilityLevel = iota
	FeasibilityLow
	FeasibilityMedium
	FeasibilityHigh
)

func (l FeasibilityLevel) String() string {
	switch l {
	case FeasibilityVeryLow:
		return "VeryLow"
	case FeasibilityLow:
		return "Low"
	case FeasibilityMedium:
		return "Medium"
	case FeasibilityHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Upper score bounds of the feasibility levels.
const (
	HighFeasibilityMaxScore   = 13
	MediumFeasibilityMaxScore = 19
	LowFeasibilityMaxScore    = 24
)

// Feasibility is the attack potential rating of an attack step.
// The zero value is the easiest possible attack.
type Feasibility struct {
	ElapsedTime         ElapsedTime         `json:"elapsed_time" yaml:"elapsed_time"`
	Expertise           Expertise           `json:"expertise" yaml:"expertise"`
	Knowledge           Knowledge           `json:"knowledge" yaml:"knowledge"`
	WindowOfOpportunity WindowOfOpportunity `json:"window_of_opportunity" yaml:"window_of_opportunity"`
	Equipment           Equipment           `json:"equipment" yaml:"equipment"`
}

// NewFeasibility creates a rating from its five factors.
func NewFeasibility(et ElapsedTime, ex Expertise, kn Knowledge, woo WindowOfOpportunity, eq Equipment) Feasibility {
	return Feasibility{
		ElapsedTime:         et,
		Expertise:           ex,
		Knowledge:           kn,
		WindowOfOpportunity: woo,
		Equipment:           eq,
	}
}

// Score returns the sum of the factor weights.
func (f Feasibility) Score() int {
	return int(f.ElapsedTime) + int(f.Expertise) + int(f.Knowledge) +
		int(f.WindowOfOpportunity) + int(f.Equipment)
}

// Level classifies the score. Lower scores are easier attacks.
func (f Feasibility) Level() FeasibilityLevel {
	score := f.Score()
	switch {
	case score <= HighFeasibilityMaxScore:
		return FeasibilityHigh
	case score <= MediumFeasibilityMaxScore:
		return FeasibilityMedium
	case score <= LowFeasibilityMaxScore:
		return FeasibilityLow
	default:
		return FeasibilityVeryLow
	}
}

// And combines two ratings of steps that must both succeed.
// Every factor takes the harder of the two values.
func (f Feasibility) And(other Feasibility) Feasibility {
	return Feasibility{
		ElapsedTime:         max(f.ElapsedTime, other.ElapsedTime),
		Expertise:           max(f.Expertise, other.Expertise),
		Knowledge:           max(f.Knowledge, other.Knowledge),
		WindowOfOpportunity: max(f.WindowOfOpportunity, other.WindowOfOpportunity),
		Equipment:           max(f.Equipment, other.Equipment),
	}
}

// Or combines two alternative attack paths. The rating with the lower score
// is returned unchanged; on a tie the receiver wins.
func (f Feasibility) Or(other Feasibility) Feasibility {
	if f.Score() <= other.Score() {
		return f
	}
	return other
}

// Codes returns the short table codes of the five factors in column order.
func (f Feasibility) Codes() [5]string {
	return [5]string{
		f.ElapsedTime.Code(),
		f.Expertise.Code(),
		f.Knowledge.Code(),
		f.WindowOfOpportunity.Code(),
		f.Equipment.Code(),
	}
}

func (f Feasibility) String() string {
	return f.ElapsedTime.String() + "/" + f.Expertise.String() + "/" + f.Knowledge.String() + "/" +
		f.WindowOfOpportunity.String() + "/" + f.Equipment.String()
}
