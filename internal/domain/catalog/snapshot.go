package catalog

import (
	"slices"
	"sort"
)

// Snapshot is an immutable, point-in-time view of the whole catalog indexed
// for chart building. It is safe for concurrent readers. All accessors return
// copies, so callers can never mutate the snapshot.
type Snapshot struct {
	mineralTypes map[int64]MineralType
	stages       map[int64]Stage
	questions    map[int64]Question
	stagesByType map[int64][]int64
}

// NewSnapshot indexes the given records. Works are attached to their stage
// (works of unknown stages are dropped) and sorted by order then id; stages
// of each mineral type are sorted by order then id. Dependency ids keep their
// definition order.
func NewSnapshot(types []MineralType, stages []Stage, works []Work, questions []Question) *Snapshot {
	snap := &Snapshot{
		mineralTypes: make(map[int64]MineralType, len(types)),
		stages:       make(map[int64]Stage, len(stages)),
		questions:    make(map[int64]Question, len(questions)),
		stagesByType: make(map[int64][]int64),
	}

	for _, mt := range types {
		snap.mineralTypes[mt.ID] = mt
	}

	for _, st := range stages {
		st.DependsOn = slices.Clone(st.DependsOn)
		st.Works = slices.Clone(st.Works)
		snap.stages[st.ID] = st
	}

	for _, w := range works {
		st, ok := snap.stages[w.StageID]
		if !ok {
			continue
		}
		st.Works = append(st.Works, w)
		snap.stages[w.StageID] = st
	}

	for id, st := range snap.stages {
		sort.SliceStable(st.Works, func(i, j int) bool {
			if st.Works[i].Order != st.Works[j].Order {
				return st.Works[i].Order < st.Works[j].Order
			}
			return st.Works[i].ID < st.Works[j].ID
		})
		snap.stages[id] = st
		snap.stagesByType[st.MineralTypeID] = append(snap.stagesByType[st.MineralTypeID], id)
	}

	for typeID, ids := range snap.stagesByType {
		sort.Slice(ids, func(i, j int) bool {
			a, b := snap.stages[ids[i]], snap.stages[ids[j]]
			if a.Order != b.Order {
				return a.Order < b.Order
			}
			return a.ID < b.ID
		})
		snap.stagesByType[typeID] = ids
	}

	for _, q := range questions {
		q.MineralTypeIDs = slices.Clone(q.MineralTypeIDs)
		q.TargetStageIDs = slices.Clone(q.TargetStageIDs)
		snap.questions[q.ID] = q
	}

	return snap
}

// MineralType returns the mineral type with the given id.
func (s *Snapshot) MineralType(id int64) (MineralType, bool) {
	mt, ok := s.mineralTypes[id]
	return mt, ok
}

// MineralTypes returns all mineral types sorted by id.
func (s *Snapshot) MineralTypes() []MineralType {
	out := make([]MineralType, 0, len(s.mineralTypes))
	for _, mt := range s.mineralTypes {
		out = append(out, mt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Stage returns a copy of the stage with the given id.
func (s *Snapshot) Stage(id int64) (Stage, bool) {
	st, ok := s.stages[id]
	if !ok {
		return Stage{}, false
	}
	return cloneStage(st), true
}

// StagesOf returns the stages of a mineral type in ascending order.
func (s *Snapshot) StagesOf(mineralTypeID int64) []Stage {
	ids := s.stagesByType[mineralTypeID]
	out := make([]Stage, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneStage(s.stages[id]))
	}
	return out
}

// Question returns a copy of the question with the given id.
func (s *Snapshot) Question(id int64) (Question, bool) {
	q, ok := s.questions[id]
	if !ok {
		return Question{}, false
	}
	q.MineralTypeIDs = slices.Clone(q.MineralTypeIDs)
	q.TargetStageIDs = slices.Clone(q.TargetStageIDs)
	return q, true
}

// QuestionsFor returns the questions offered for a mineral type sorted by id.
func (s *Snapshot) QuestionsFor(mineralTypeID int64) []Question {
	var out []Question
	for id := range s.questions {
		q, _ := s.Question(id)
		if q.AppliesTo(mineralTypeID) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func cloneStage(st Stage) Stage {
	st.DependsOn = slices.Clone(st.DependsOn)
	st.Works = slices.Clone(st.Works)
	return st
}
