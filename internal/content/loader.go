package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// SupportedMajor is the course bundle format major version this build reads.
const SupportedMajor = "v1"

// ErrUnsupportedVersion is returned for bundles outside SupportedMajor.
var ErrUnsupportedVersion = errors.New("unsupported course version")

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// LoadFile reads and validates a course bundle from disk.
func LoadFile(path string) (*Course, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open course: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads and validates a course bundle.
func Load(r io.Reader) (*Course, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read course: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := courseSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var c Course
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode course: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the constraints the schema cannot express: a supported
// version, unique IDs, and kind-specific answer fields.
func (c *Course) Validate() error {
	if err := checkVersion(c.Version); err != nil {
		return err
	}

	var problems []string
	seen := make(map[string]bool)
	for _, u := range c.Units {
		for _, l := range u.Levels {
			for _, e := range l.Exercises {
				if seen[e.ID] {
					problems = append(problems, fmt.Sprintf("duplicate exercise id %q", e.ID))
				}
				seen[e.ID] = true
				if p := checkExercise(e); p != "" {
					problems = append(problems, fmt.Sprintf("exercise %q: %s", e.ID, p))
				}
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid course %q: %s", c.ID, strings.Join(problems, "; "))
	}
	return nil
}

func checkExercise(e Exercise) string {
	switch e.Kind {
	case KindMultipleChoice:
		if len(e.Options) < 2 {
			return "multiple choice needs at least 2 options"
		}
		if e.CorrectOptionIndex < 0 || e.CorrectOptionIndex >= len(e.Options) {
			return fmt.Sprintf("correct_option_index %d out of range", e.CorrectOptionIndex)
		}
	case KindTranslateToTarget, KindTranslateToSource:
		if strings.TrimSpace(e.CorrectAnswer) == "" {
			return "translation needs a correct_answer"
		}
	}
	return ""
}

func checkVersion(v string) error {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
	}
	if semver.Major(v) != SupportedMajor {
		return fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedVersion, v, SupportedMajor)
	}
	return nil
}

func courseSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a plain decoded JSON value.
		defBytes, err := json.Marshal(CourseSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://course.json"
		if err := c.AddResource(url, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(url)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// Save writes a course bundle as indented JSON.
func Save(w io.Writer, c *Course) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode course: %w", err)
	}
	return nil
}
