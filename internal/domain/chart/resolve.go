package chart

import "github.com/ganot/roadmap/internal/domain/catalog"

type stageSet map[int64]struct{}

func (s stageSet) has(id int64) bool {
	_, ok := s[id]
	return ok
}

// resolveTargets returns the stages a roadmap must reach. With a question
// these are its target stages that belong to the mineral type, possibly
// none. Without one, every stage of the type from the start stage onwards.
func resolveTargets(stages []catalog.Stage, start catalog.Stage, question *catalog.Question) stageSet {
	targets := make(stageSet)
	if question != nil {
		inType := make(stageSet, len(stages))
		for _, st := range stages {
			inType[st.ID] = struct{}{}
		}
		for _, id := range question.TargetStageIDs {
			if inType.has(id) {
				targets[id] = struct{}{}
			}
		}
		return targets
	}

	for _, st := range stages {
		if st.Order >= start.Order {
			targets[st.ID] = struct{}{}
		}
	}
	return targets
}
