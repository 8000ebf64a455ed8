package kinetic

import (
	"log/slog"

	Kt "github.com/maroda/kinetic/types"
)

// SpecialLetters names the letters that take the alternate dash rule
type SpecialLetters struct {
	PhiDash string `json:"phi_dash"`
	PsiDash string `json:"psi_dash"`
	Lambda  string `json:"lambda"`
}

// LetterClassifier answers structural questions about letters.
// The table is injected and read-only after construction.
type LetterClassifier struct {
	table   map[string]Kt.LetterType
	special SpecialLetters
}

// NewLetterClassifier copies the table so later edits
// by the caller cannot leak into classification
func NewLetterClassifier(table map[string]Kt.LetterType, special SpecialLetters) *LetterClassifier {
	t := make(map[string]Kt.LetterType, len(table))
	for k, v := range table {
		t[k] = v
	}
	return &LetterClassifier{
		table:   t,
		special: special,
	}
}

// NewDefaultLetterClassifier uses the built-in kinetic alphabet
func NewDefaultLetterClassifier() *LetterClassifier {
	return NewLetterClassifier(DefaultLetterTable(), DefaultSpecialLetters())
}

// CategoryOf returns the letter's type and flags.
// Unknown letters get UnknownType, which is not an error.
func (lc *LetterClassifier) CategoryOf(letter string) Kt.LetterCategory {
	lt, ok := lc.table[letter]
	if !ok {
		slog.Debug("Letter not in classification table", slog.String("letter", letter))
		lt = Kt.UnknownType
	}
	return Kt.LetterCategory{
		Type:         lt,
		SpecialFlags: lc.SpecialFlags(letter),
	}
}

// SpecialFlags checks the letter against the named exceptions
func (lc *LetterClassifier) SpecialFlags(letter string) Kt.SpecialFlags {
	if letter == "" {
		return Kt.SpecialFlags{}
	}
	return Kt.SpecialFlags{
		IsPhiDash: letter == lc.special.PhiDash,
		IsPsiDash: letter == lc.special.PsiDash,
		IsLambda:  letter == lc.special.Lambda,
	}
}

// Len is the number of classified letters
func (lc *LetterClassifier) Len() int { return len(lc.table) }
