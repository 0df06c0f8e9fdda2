package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateSeed checks a seed catalog for data-integrity defects that chart
// building assumes are absent: non-positive durations, negative offsets,
// missing names and references to unknown records. Cross-type dependency
// edges and dependency cycles are accepted here; chart building ignores or
// breaks them.
func ValidateSeed(seed Seed) error {
	typeIDs := make(map[int64]bool, len(seed.MineralTypes))
	typeCodes := make(map[string]bool, len(seed.MineralTypes))
	for _, mt := range seed.MineralTypes {
		if mt.ID <= 0 {
			return fmt.Errorf("%w: mineral type id must be positive", ErrInvalidInput)
		}
		if typeIDs[mt.ID] {
			return fmt.Errorf("%w: duplicate mineral type id %d", ErrInvalidInput, mt.ID)
		}
		if strings.TrimSpace(mt.Name) == "" || strings.TrimSpace(mt.Code) == "" {
			return fmt.Errorf("%w: mineral type %d requires name and code", ErrInvalidInput, mt.ID)
		}
		if typeCodes[mt.Code] {
			return fmt.Errorf("%w: duplicate mineral type code %q", ErrInvalidInput, mt.Code)
		}
		typeIDs[mt.ID] = true
		typeCodes[mt.Code] = true
	}

	stageIDs := make(map[int64]bool, len(seed.Stages))
	stageCodes := make(map[string]bool, len(seed.Stages))
	for _, st := range seed.Stages {
		if err := ValidateStage(st); err != nil {
			return err
		}
		if stageIDs[st.ID] {
			return fmt.Errorf("%w: duplicate stage id %d", ErrInvalidInput, st.ID)
		}
		if !typeIDs[st.MineralTypeID] {
			return fmt.Errorf("%w: stage %d references unknown mineral type %d", ErrInvalidInput, st.ID, st.MineralTypeID)
		}
		if st.Code != "" {
			key := fmt.Sprintf("%d/%s", st.MineralTypeID, st.Code)
			if stageCodes[key] {
				return fmt.Errorf("%w: duplicate stage code %q for mineral type %d", ErrInvalidInput, st.Code, st.MineralTypeID)
			}
			stageCodes[key] = true
		}
		stageIDs[st.ID] = true
	}
	for _, st := range seed.Stages {
		for _, dep := range st.DependsOn {
			if !stageIDs[dep] {
				return fmt.Errorf("%w: stage %d depends on unknown stage %d", ErrInvalidInput, st.ID, dep)
			}
		}
	}

	workIDs := make(map[int64]bool, len(seed.Works))
	workNumbers := make(map[string]bool, len(seed.Works))
	for _, w := range seed.Works {
		if err := ValidateWork(w); err != nil {
			return err
		}
		if workIDs[w.ID] {
			return fmt.Errorf("%w: duplicate work id %d", ErrInvalidInput, w.ID)
		}
		if !stageIDs[w.StageID] {
			return fmt.Errorf("%w: work %d references unknown stage %d", ErrInvalidInput, w.ID, w.StageID)
		}
		key := fmt.Sprintf("%d/%s", w.StageID, w.Number)
		if workNumbers[key] {
			return fmt.Errorf("%w: duplicate work number %q in stage %d", ErrInvalidInput, w.Number, w.StageID)
		}
		workIDs[w.ID] = true
		workNumbers[key] = true
	}

	questionIDs := make(map[int64]bool, len(seed.Questions))
	questionCodes := make(map[string]bool, len(seed.Questions))
	for _, q := range seed.Questions {
		if q.ID <= 0 {
			return fmt.Errorf("%w: question id must be positive", ErrInvalidInput)
		}
		if questionIDs[q.ID] {
			return fmt.Errorf("%w: duplicate question id %d", ErrInvalidInput, q.ID)
		}
		if strings.TrimSpace(q.Text) == "" || strings.TrimSpace(q.Code) == "" {
			return fmt.Errorf("%w: question %d requires text and code", ErrInvalidInput, q.ID)
		}
		if questionCodes[q.Code] {
			return fmt.Errorf("%w: duplicate question code %q", ErrInvalidInput, q.Code)
		}
		for _, id := range q.MineralTypeIDs {
			if !typeIDs[id] {
				return fmt.Errorf("%w: question %d references unknown mineral type %d", ErrInvalidInput, q.ID, id)
			}
		}
		for _, id := range q.TargetStageIDs {
			if !stageIDs[id] {
				return fmt.Errorf("%w: question %d targets unknown stage %d", ErrInvalidInput, q.ID, id)
			}
		}
		questionIDs[q.ID] = true
		questionCodes[q.Code] = true
	}

	return nil
}

// ValidateStage validates the fields of a single stage.
func ValidateStage(st Stage) error {
	if st.ID <= 0 {
		return fmt.Errorf("%w: stage id must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(st.Name) == "" {
		return fmt.Errorf("%w: stage %d requires a name", ErrInvalidInput, st.ID)
	}
	if st.DurationMonths <= 0 {
		return fmt.Errorf("%w: stage %d duration must be positive", ErrInvalidInput, st.ID)
	}
	if st.StartMonth < 0 {
		return fmt.Errorf("%w: stage %d start month must not be negative", ErrInvalidInput, st.ID)
	}
	if st.Color != "" && !colorPattern.MatchString(st.Color) {
		return fmt.Errorf("%w: stage %d color %q is not #RRGGBB", ErrInvalidInput, st.ID, st.Color)
	}
	return nil
}

// ValidateWork validates the fields of a single work.
func ValidateWork(w Work) error {
	if w.ID <= 0 {
		return fmt.Errorf("%w: work id must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(w.Number) == "" || strings.TrimSpace(w.Title) == "" {
		return fmt.Errorf("%w: work %d requires number and title", ErrInvalidInput, w.ID)
	}
	if w.DurationMonths <= 0 {
		return fmt.Errorf("%w: work %d duration must be positive", ErrInvalidInput, w.ID)
	}
	if w.StartMonth < 0 {
		return fmt.Errorf("%w: work %d start month must not be negative", ErrInvalidInput, w.ID)
	}
	return nil
}
