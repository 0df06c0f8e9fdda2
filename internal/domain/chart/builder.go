package chart

import (
	"fmt"

	"github.com/ganot/roadmap/internal/domain/catalog"
)

// Request selects what to chart.
type Request struct {
	MineralTypeID int64  `json:"mineral_type_id"`
	StartStageID  int64  `json:"start_stage_id"`
	QuestionID    *int64 `json:"question_id,omitempty"`
}

// Build computes the roadmap for req over an immutable catalog snapshot.
//
// It fails only when the mineral type, the start stage or the question
// cannot be resolved; a start stage of another mineral type counts as not
// found. Malformed reference data (cross-type edges, cycles, unreachable
// targets) yields a best-effort document instead of an error.
//
// Build does no I/O and keeps all working state private, so it may run
// concurrently over a shared snapshot.
func Build(snap *catalog.Snapshot, req Request) (Document, error) {
	mt, ok := snap.MineralType(req.MineralTypeID)
	if !ok {
		return Document{}, fmt.Errorf("%w: %d", catalog.ErrMineralTypeNotFound, req.MineralTypeID)
	}

	start, ok := snap.Stage(req.StartStageID)
	if !ok || start.MineralTypeID != mt.ID {
		return Document{}, fmt.Errorf("%w: %d", catalog.ErrStageNotFound, req.StartStageID)
	}

	var question *catalog.Question
	if req.QuestionID != nil {
		q, ok := snap.Question(*req.QuestionID)
		if !ok {
			return Document{}, fmt.Errorf("%w: %d", catalog.ErrQuestionNotFound, *req.QuestionID)
		}
		question = &q
	}

	stages := snap.StagesOf(mt.ID)
	inType := make(stageSet, len(stages))
	for _, st := range stages {
		inType[st.ID] = struct{}{}
	}

	targets := resolveTargets(stages, start, question)
	ordered := orderStages(stages, start, targets)
	entries, total := propagate(ordered, inType)

	return assemble(mt, start, question, entries, total), nil
}

func assemble(mt catalog.MineralType, start catalog.Stage, question *catalog.Question, entries []StageEntry, total int) Document {
	doc := Document{
		MineralType: MineralTypeSummary{
			ID:   mt.ID,
			Name: mt.Name,
			Code: mt.Code,
		},
		StartStage: StageSummary{
			ID:   start.ID,
			Name: start.Name,
		},
		Stages:        entries,
		TotalDuration: total,
	}
	if question != nil {
		doc.Question = &QuestionSummary{
			ID:   question.ID,
			Text: question.Text,
			Code: question.Code,
		}
	}
	return doc
}
