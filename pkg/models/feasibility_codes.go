package models

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCode is returned when a factor cell is empty.
	ErrEmptyCode = errors.New("empty feasibility code")
	// ErrInvalidCode is returned when a factor cell holds an unknown code.
	ErrInvalidCode = errors.New("invalid feasibility code")
)

func invalidCode(factor, code string) error {
	return fmt.Errorf("%w for %s: %q", ErrInvalidCode, factor, code)
}

// ParseElapsedTime converts a table code (1w, 1m, 6m, 3y, >3y).
func ParseElapsedTime(code string) (ElapsedTime, error) {
	switch code {
	case "1w":
		return OneWeek, nil
	case "1m":
		return OneMonth, nil
	case "6m":
		return SixMonths, nil
	case "3y":
		return ThreeYears, nil
	case ">3y":
		return MoreThanThreeYears, nil
	case "":
		return OneWeek, ErrEmptyCode
	default:
		return OneWeek, invalidCode("elapsed time", code)
	}
}

// Code returns the table code.
func (e ElapsedTime) Code() string {
	switch e {
	case OneWeek:
		return "1w"
	case OneMonth:
		return "1m"
	case SixMonths:
		return "6m"
	case ThreeYears:
		return "3y"
	case MoreThanThreeYears:
		return ">3y"
	default:
		return "?"
	}
}

// ParseExpertise converts a table code (L, P, E, ME).
func ParseExpertise(code string) (Expertise, error) {
	switch code {
	case "L":
		return Layman, nil
	case "P":
		return Proficient, nil
	case "E":
		return Expert, nil
	case "ME":
		return MultipleExperts, nil
	case "":
		return Layman, ErrEmptyCode
	default:
		return Layman, invalidCode("expertise", code)
	}
}

// Code returns the table code.
func (e Expertise) Code() string {
	switch e {
	case Layman:
		return "L"
	case Proficient:
		return "P"
	case Expert:
		return "E"
	case MultipleExperts:
		return "ME"
	default:
		return "?"
	}
}

// ParseKnowledge converts a table code (P, R, C, SC).
func ParseKnowledge(code string) (Knowledge, error) {
	switch code {
	case "P":
		return Public, nil
	case "R":
		return Restricted, nil
	case "C":
		return Confidential, nil
	case "SC":
		return StrictlyConfidential, nil
	case "":
		return Public, ErrEmptyCode
	default:
		return Public, invalidCode("knowledge", code)
	}
}

// Code returns the table code.
func (k Knowledge) Code() string {
	switch k {
	case Public:
		return "P"
	case Restricted:
		return "R"
	case Confidential:
		return "C"
	case StrictlyConfidential:
		return "SC"
	default:
		return "?"
	}
}

// ParseWindowOfOpportunity converts a table code (U, E, M, D).
func ParseWindowOfOpportunity(code string) (WindowOfOpportunity, error) {
	switch code {
	case "U":
		return Unlimited, nil
	case "E":
		return Easy, nil
	case "M":
		return Moderate, nil
	case "D":
		return Difficult, nil
	case "":
		return Unlimited, ErrEmptyCode
	default:
		return Unlimited, invalidCode("window of opportunity", code)
	}
}

// Code returns the table code.
func (w WindowOfOpportunity) Code() string {
	switch w {
	case Unlimited:
		return "U"
	case Easy:
		return "E"
	case Moderate:
		return "M"
	case Difficult:
		return "D"
	default:
		return "?"
	}
}

// ParseEquipment converts a table code (ST, SP, B, MB).
func ParseEquipment(code string) (Equipment, error) {
	switch code {
	case "ST":
		return Standard, nil
	case "SP":
		return Specialized, nil
	case "B":
		return Bespoke, nil
	case "MB":
		return MultipleBespoke, nil
	case "":
		return Standard, ErrEmptyCode
	default:
		return Standard, invalidCode("equipment", code)
	}
}

// Code returns the table code.
func (e Equipment) Code() string {
	switch e {
	case Standard:
		return "ST"
	case Specialized:
		return "SP"
	case Bespoke:
		return "B"
	case MultipleBespoke:
		return "MB"
	default:
		return "?"
	}
}
