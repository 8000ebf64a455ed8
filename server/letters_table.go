package kinetic

import (
	Kt "github.com/maroda/kinetic/types"
)

// The kinetic alphabet grouped by structure
var (
	dualShiftLetters  = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O", "P", "Q", "R", "S", "T", "U", "V"}
	shiftLetters      = []string{"W", "X", "Y", "Z", "Σ", "Δ", "θ", "Ω"}
	crossShiftLetters = []string{"W-", "X-", "Y-", "Z-", "Σ-", "Δ-", "θ-", "Ω-"}
	dashLetters       = []string{"Φ", "Ψ", "Λ"}
	dualDashLetters   = []string{"Φ-", "Ψ-", "Λ-"}
	staticLetters     = []string{"α", "β", "Γ"}
)

// DefaultLetterTable returns a fresh copy of the built-in table
func DefaultLetterTable() map[string]Kt.LetterType {
	groups := []struct {
		lt      Kt.LetterType
		letters []string
	}{
		{Kt.Type1, dualShiftLetters},
		{Kt.Type2, shiftLetters},
		{Kt.Type3, crossShiftLetters},
		{Kt.Type4, dashLetters},
		{Kt.Type5, dualDashLetters},
		{Kt.Type6, staticLetters},
	}

	table := make(map[string]Kt.LetterType)
	for _, g := range groups {
		for _, l := range g.letters {
			table[l] = g.lt
		}
	}
	return table
}

// DefaultSpecialLetters are Φ-, Ψ- and Λ
func DefaultSpecialLetters() SpecialLetters {
	return SpecialLetters{
		PhiDash: "Φ-",
		PsiDash: "Ψ-",
		Lambda:  "Λ",
	}
}

// ParseLetterType reads the names used in letter table files
func ParseLetterType(s string) Kt.LetterType {
	switch s {
	case "Type1", "type1", "1":
		return Kt.Type1
	case "Type2", "type2", "2":
		return Kt.Type2
	case "Type3", "type3", "3":
		return Kt.Type3
	case "Type4", "type4", "4":
		return Kt.Type4
	case "Type5", "type5", "5":
		return Kt.Type5
	case "Type6", "type6", "6":
		return Kt.Type6
	default:
		return Kt.UnknownType
	}
}
