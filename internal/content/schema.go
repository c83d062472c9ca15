package content

// CourseSchema is the JSON schema every course bundle must satisfy.
// Kinds are deliberately not enumerated: an unknown kind loads and then
// grades as incorrect, so a newer bundle never blocks an older binary.
var CourseSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":      map[string]any{"type": "string", "minLength": 1},
		"title":   map[string]any{"type": "string"},
		"version": map[string]any{"type": "string", "minLength": 1},
		"units": map[string]any{
			"type":  "array",
			"items": unitSchema,
		},
	},
	"required": []any{"id", "version", "units"},
}

var unitSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":    map[string]any{"type": "string", "minLength": 1},
		"title": map[string]any{"type": "string"},
		"levels": map[string]any{
			"type":  "array",
			"items": levelSchema,
		},
	},
	"required": []any{"id", "levels"},
}

var levelSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":    map[string]any{"type": "string", "minLength": 1},
		"title": map[string]any{"type": "string"},
		"exercises": map[string]any{
			"type":  "array",
			"items": exerciseSchema,
		},
	},
	"required": []any{"id", "exercises"},
}

var exerciseSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":             map[string]any{"type": "string", "minLength": 1},
		"kind":           map[string]any{"type": "string", "minLength": 1},
		"prompt":         map[string]any{"type": "string"},
		"correct_answer": map[string]any{"type": "string"},
		"alternative_answers": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"options": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"correct_option_index": map[string]any{"type": "integer", "minimum": 0},
		"gender_variant": map[string]any{
			"type": "string",
			"enum": []any{"", "variant_a", "variant_b", "neutral"},
		},
		"audio": map[string]any{"type": "string"},
	},
	"required": []any{"id", "kind", "prompt"},
}
