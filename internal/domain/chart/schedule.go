package chart

import "github.com/ganot/roadmap/internal/domain/catalog"

// schedule is the accumulator of the offset fold: the running clock, the
// entries placed so far and their positions by stage id.
type schedule struct {
	clock   int
	entries []StageEntry
	index   map[int64]int
}

// propagate places each stage in sequence. inType holds the ids of every
// stage of the mineral type and filters the dependency list of each entry.
func propagate(stages []catalog.Stage, inType stageSet) ([]StageEntry, int) {
	acc := schedule{
		entries: make([]StageEntry, 0, len(stages)),
		index:   make(map[int64]int, len(stages)),
	}
	for _, st := range stages {
		acc = acc.place(st, inType)
	}
	return acc.entries, acc.clock
}

// place schedules one stage after the clock and after the end of every
// dependency already placed. Dependencies that come later in the sequence
// cannot push the stage.
func (s schedule) place(st catalog.Stage, inType stageSet) schedule {
	start := s.clock
	for _, dep := range st.DependsOn {
		i, ok := s.index[dep]
		if !ok {
			continue
		}
		if end := s.entries[i].End(); end > start {
			start = end
		}
	}

	duration := effectiveDuration(st)

	works := make([]WorkEntry, 0, len(st.Works))
	for _, w := range st.Works {
		works = append(works, WorkEntry{
			ID:             w.ID,
			Number:         w.Number,
			Title:          w.Title,
			Description:    w.Description,
			Executor:       w.Executor,
			DurationMonths: w.DurationMonths,
			StartMonth:     w.StartMonth,
			Order:          w.Order,
			StartGlobal:    start + w.StartMonth,
			StartInStage:   w.StartMonth,
		})
	}

	deps := make([]int64, 0, len(st.DependsOn))
	for _, dep := range st.DependsOn {
		if inType.has(dep) {
			deps = append(deps, dep)
		}
	}

	s.index[st.ID] = len(s.entries)
	s.entries = append(s.entries, StageEntry{
		ID:            st.ID,
		Name:          st.Name,
		Order:         st.Order,
		Description:   st.Description,
		Color:         st.Color,
		Start:         start,
		Duration:      duration,
		TotalDuration: duration,
		Works:         works,
		Dependencies:  deps,
	})
	s.clock = start + duration
	return s
}

// effectiveDuration stretches the declared duration to cover every work.
func effectiveDuration(st catalog.Stage) int {
	duration := st.DurationMonths
	for _, w := range st.Works {
		if end := w.StartMonth + w.DurationMonths; end > duration {
			duration = end
		}
	}
	return duration
}
