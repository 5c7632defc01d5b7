package tara

// FileType identifies one of the input tables of a TARA project.
type FileType int

const (
	Assumptions FileType = iota
	Assets
	DamageScenarios
	Controls
	AttackTree
)

// AttackTreeDir holds one file per attack tree, named <tree id>.md.
const AttackTreeDir = "AttackTrees"

// Output files of the generate command.
const (
	ThreatScenariosFile = "06_ThreatScenarios.md"
	ReportFile          = "tara_report.md"
)

func (f FileType) String() string {
	switch f {
	case Assumptions:
		return "Assumptions"
	case Assets:
		return "Assets"
	case DamageScenarios:
		return "Damage Scenarios"
	case Controls:
		return "Controls"
	case AttackTree:
		return "Attack Tree"
	default:
		return "Unknown"
	}
}

// Path returns the file name relative to the project directory. Attack
// trees have no fixed name.
func (f FileType) Path() string {
	switch f {
	case Assumptions:
		return "01_Assumptions.md"
	case Assets:
		return "02_Assets.md"
	case DamageScenarios:
		return "03_DamageScenarios.md"
	case Controls:
		return "04_Controls.md"
	default:
		return ""
	}
}

// Header returns the column names of the table expected in the file.
func (f FileType) Header() []string {
	switch f {
	case Assumptions:
		return []string{"ID", "Name", "Security Claim", "Comment"}
	case Assets:
		return []string{"ID", "Name", "Availability", "Integrity", "Confidentiality", "Reasoning", "Description"}
	case DamageScenarios:
		return []string{"ID", "Name", "Safety", "Operational", "Financial", "Privacy", "Reasoning", "Comment"}
	case Controls:
		return []string{"ID", "Name", "Security Goal", "Active"}
	case AttackTree:
		return []string{"Attack Tree", "Node", "ET", "Ex", "Kn", "WoO", "Eq", "Reasoning", "Control", "Comment"}
	default:
		return nil
	}
}
