package content

// Kind is the closed set of exercise kinds. Answer checking switches over it
// exhaustively; a new kind must be handled there before it can be graded.
type Kind string

const (
	KindTranslateToTarget Kind = "translate_to_target"
	KindTranslateToSource Kind = "translate_to_source"
	KindMultipleChoice    Kind = "multiple_choice"
)

// Kinds lists every known Kind.
var Kinds = []Kind{KindTranslateToTarget, KindTranslateToSource, KindMultipleChoice}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindTranslateToTarget, KindTranslateToSource, KindMultipleChoice:
		return true
	}
	return false
}

// Gender selects between gendered content variants.
type Gender string

const (
	GenderUnset   Gender = ""
	GenderA       Gender = "variant_a"
	GenderB       Gender = "variant_b"
	GenderNeutral Gender = "neutral"
)

// ParseGender maps a config string to a Gender.
func ParseGender(s string) (Gender, bool) {
	switch g := Gender(s); g {
	case GenderUnset, GenderA, GenderB, GenderNeutral:
		return g, true
	case "unset":
		return GenderUnset, true
	}
	return GenderUnset, false
}

// AcceptsAll reports whether the learner's gender lets every variant through.
func (g Gender) AcceptsAll() bool {
	return g == GenderUnset || g == GenderNeutral
}

// Exercise is a single immutable question. Everything else refers to it by ID.
type Exercise struct {
	ID                 string   `json:"id"`
	Kind               Kind     `json:"kind"`
	Prompt             string   `json:"prompt"`
	CorrectAnswer      string   `json:"correct_answer"`
	AlternativeAnswers []string `json:"alternative_answers,omitempty"`
	Options            []string `json:"options,omitempty"`
	CorrectOptionIndex int      `json:"correct_option_index,omitempty"`
	GenderVariant      Gender   `json:"gender_variant,omitempty"`
	Audio              string   `json:"audio,omitempty"`
}

// AudioID returns the audio clip to play for the exercise.
func (e Exercise) AudioID() string {
	if e.Audio != "" {
		return e.Audio
	}
	return e.ID
}

// Level is an ordered list of exercises played as one lesson.
type Level struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Exercises []Exercise `json:"exercises"`
}

// Unit groups levels and ends with an exam.
type Unit struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Levels []Level `json:"levels"`
}

// Exercises returns every exercise in the unit, level by level.
func (u Unit) Exercises() []Exercise {
	var out []Exercise
	for _, l := range u.Levels {
		out = append(out, l.Exercises...)
	}
	return out
}

// Level returns the level with the given ID.
func (u Unit) Level(id string) (Level, bool) {
	for _, l := range u.Levels {
		if l.ID == id {
			return l, true
		}
	}
	return Level{}, false
}

// Course is the root of a content bundle.
type Course struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Version string `json:"version"`
	Units   []Unit `json:"units"`
}

// Unit returns the unit with the given ID.
func (c *Course) Unit(id string) (Unit, bool) {
	for _, u := range c.Units {
		if u.ID == id {
			return u, true
		}
	}
	return Unit{}, false
}

// Level finds a level anywhere in the course and returns it with its unit.
func (c *Course) Level(id string) (Level, Unit, bool) {
	for _, u := range c.Units {
		if l, ok := u.Level(id); ok {
			return l, u, true
		}
	}
	return Level{}, Unit{}, false
}

// Levels returns the levels with the given IDs, in argument order.
// Unknown IDs are skipped.
func (c *Course) Levels(ids ...string) []Level {
	var out []Level
	for _, id := range ids {
		if l, _, ok := c.Level(id); ok {
			out = append(out, l)
		}
	}
	return out
}

// Exercise looks an exercise up by ID.
func (c *Course) Exercise(id string) (Exercise, bool) {
	for _, u := range c.Units {
		for _, l := range u.Levels {
			for _, e := range l.Exercises {
				if e.ID == id {
					return e, true
				}
			}
		}
	}
	return Exercise{}, false
}
