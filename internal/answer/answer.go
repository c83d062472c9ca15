package answer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/abhisek/lingoz/internal/content"
)

// Punctuation is stripped from translation answers before comparison.
const Punctuation = `.,;:!?¡¿"'«»“”‘’()…-`

// Input is a learner's response: typed text for translations, an option
// index for multiple choice.
type Input struct {
	Text      string
	Choice    int
	HasChoice bool
}

// Text builds a typed-text Input.
func Text(s string) Input { return Input{Text: s} }

// Choice builds a multiple-choice Input from a 0-based option index.
func Choice(i int) Input { return Input{Choice: i, HasChoice: true} }

// Check reports whether in answers ex correctly.
//
// Translations compare normalized text against the correct answer and every
// alternative. Multiple choice compares the selected index. Unknown kinds are
// always incorrect so a session can still run to completion.
func Check(ex content.Exercise, in Input) bool {
	switch ex.Kind {
	case content.KindTranslateToTarget, content.KindTranslateToSource:
		return checkTranslation(ex, in.Text)
	case content.KindMultipleChoice:
		return in.HasChoice && in.Choice == ex.CorrectOptionIndex
	default:
		return false
	}
}

// Expected returns the answer to show after a miss.
func Expected(ex content.Exercise) string {
	if ex.Kind == content.KindMultipleChoice &&
		ex.CorrectOptionIndex >= 0 && ex.CorrectOptionIndex < len(ex.Options) {
		return ex.Options[ex.CorrectOptionIndex]
	}
	return ex.CorrectAnswer
}

func checkTranslation(ex content.Exercise, text string) bool {
	got := Normalize(text)
	if got == "" {
		return false
	}
	if got == Normalize(ex.CorrectAnswer) {
		return true
	}
	for _, alt := range ex.AlternativeAnswers {
		if got == Normalize(alt) {
			return true
		}
	}
	return false
}

// Normalize case-folds s, strips diacritics and Punctuation, trims it, and
// collapses inner whitespace to single spaces.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	stripped = strings.Map(func(r rune) rune {
		if strings.ContainsRune(Punctuation, r) {
			return -1
		}
		return r
	}, stripped)
	folded := cases.Fold().String(stripped)
	return strings.Join(strings.Fields(folded), " ")
}
