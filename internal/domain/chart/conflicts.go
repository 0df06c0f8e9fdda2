package chart

// Conflict is a dependency edge that the final order-based sequence places
// backwards: the dependency is emitted after the stage that needs it, so it
// could not push that stage's start.
type Conflict struct {
	StageID      int64 `json:"stage_id"`
	DependencyID int64 `json:"dependency_id"`
}

// OrderConflicts lists the edges of doc whose dependency comes later in the
// stage list than its dependent. Such charts are emitted as is; callers
// decide whether to surface them.
func OrderConflicts(doc Document) []Conflict {
	var conflicts []Conflict
	for i, st := range doc.Stages {
		for _, dep := range st.Dependencies {
			if j := doc.StageIndex(dep); j > i {
				conflicts = append(conflicts, Conflict{StageID: st.ID, DependencyID: dep})
			}
		}
	}
	return conflicts
}
