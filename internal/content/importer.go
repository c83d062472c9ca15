package content

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportConfig describes a spreadsheet course. Each sheet becomes one unit
// named after the sheet; rows are grouped into levels by the level column,
// in first-appearance order. The first row is a header naming the columns.
type ImportConfig struct {
	FilePath string
	CourseID string
	Title    string
	Version  string
}

// ImportResult reports what an import produced.
type ImportResult struct {
	Course  *Course
	Rows    int
	Skipped int
	Errors  []string
}

// Header names recognised in the first row (case-insensitive).
const (
	colLevel        = "level"
	colID           = "id"
	colKind         = "kind"
	colPrompt       = "prompt"
	colAnswer       = "answer"
	colAlternatives = "alternatives"
	colOptions      = "options"
	colCorrect      = "correct_option"
	colGender       = "gender"
	colAudio        = "audio"
)

// listSeparator splits multi-valued cells.
const listSeparator = "|"

// ImportXLSX converts a spreadsheet into a course bundle. Rows that cannot
// be converted are skipped and reported; the returned course is validated.
func ImportXLSX(cfg ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	version := cfg.Version
	if version == "" {
		version = "v1.0.0"
	}
	result := &ImportResult{
		Course: &Course{ID: cfg.CourseID, Title: cfg.Title, Version: version},
	}

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		unit := importSheet(sheet, rows, result)
		if len(unit.Levels) > 0 {
			result.Course.Units = append(result.Course.Units, unit)
		}
	}

	if err := result.Course.Validate(); err != nil {
		return result, err
	}
	return result, nil
}

func importSheet(sheet string, rows [][]string, result *ImportResult) Unit {
	unit := Unit{ID: sheet, Title: sheet}
	if len(rows) == 0 {
		return unit
	}

	cols := make(map[string]int)
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	levelIndex := make(map[string]int)
	for n, row := range rows[1:] {
		rowNum := n + 2
		result.Rows++

		ex, err := rowToExercise(row, cell)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: %v", sheet, rowNum, err))
			continue
		}

		levelID := cell(row, colLevel)
		if levelID == "" {
			levelID = sheet + "-1"
		}
		idx, ok := levelIndex[levelID]
		if !ok {
			idx = len(unit.Levels)
			levelIndex[levelID] = idx
			unit.Levels = append(unit.Levels, Level{ID: levelID, Title: levelID})
		}
		unit.Levels[idx].Exercises = append(unit.Levels[idx].Exercises, ex)
	}
	return unit
}

func rowToExercise(row []string, cell func([]string, string) string) (Exercise, error) {
	ex := Exercise{
		ID:                 cell(row, colID),
		Kind:               Kind(cell(row, colKind)),
		Prompt:             cell(row, colPrompt),
		CorrectAnswer:      cell(row, colAnswer),
		AlternativeAnswers: splitList(cell(row, colAlternatives)),
		Options:            splitList(cell(row, colOptions)),
		Audio:              cell(row, colAudio),
	}
	if ex.ID == "" {
		return Exercise{}, fmt.Errorf("missing id")
	}
	if ex.Kind == "" {
		ex.Kind = KindTranslateToTarget
	}

	g, ok := ParseGender(cell(row, colGender))
	if !ok {
		return Exercise{}, fmt.Errorf("unknown gender %q", cell(row, colGender))
	}
	ex.GenderVariant = g

	if raw := cell(row, colCorrect); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Exercise{}, fmt.Errorf("correct_option %q: %w", raw, err)
		}
		ex.CorrectOptionIndex = n
	}
	if p := checkExercise(ex); p != "" {
		return Exercise{}, fmt.Errorf("%s", p)
	}
	return ex, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, listSeparator) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
