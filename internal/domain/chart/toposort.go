package chart

import (
	"sort"

	"github.com/ganot/roadmap/internal/domain/catalog"
)

// traversal owns the state of one dependency walk over the stages of a
// single mineral type.
type traversal struct {
	graph   map[int64]catalog.Stage
	targets stageSet
	visited stageSet
	ordered []int64
}

type frame struct {
	id   int64
	next int
}

func newTraversal(stages []catalog.Stage, targets stageSet) *traversal {
	graph := make(map[int64]catalog.Stage, len(stages))
	for _, st := range stages {
		graph[st.ID] = st
	}
	return &traversal{
		graph:   graph,
		targets: targets,
		visited: make(stageSet, len(stages)),
	}
}

// visit walks the dependencies of root depth first and appends, in post
// order, every reached stage that is a target. Dependencies outside the
// mineral type are skipped and already visited stages are treated as
// satisfied, which also terminates cycles.
func (t *traversal) visit(root int64) {
	if t.visited.has(root) {
		return
	}
	t.visited[root] = struct{}{}
	stack := []frame{{id: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		st, known := t.graph[top.id]
		if known && top.next < len(st.DependsOn) {
			dep := st.DependsOn[top.next]
			top.next++
			if _, sameType := t.graph[dep]; !sameType || t.visited.has(dep) {
				continue
			}
			t.visited[dep] = struct{}{}
			stack = append(stack, frame{id: dep})
			continue
		}

		id := top.id
		stack = stack[:len(stack)-1]
		if known && t.targets.has(id) {
			t.ordered = append(t.ordered, id)
		}
	}
}

// orderStages selects the stages to chart and sequences them. stages must be
// the mineral type's stages in ascending (order, id). The dependency walk
// decides inclusion only: untargeted dependencies are not emitted, the start
// stage is always present, stages before the start stage are dropped, and
// the final sequence is a stable sort by order.
func orderStages(stages []catalog.Stage, start catalog.Stage, targets stageSet) []catalog.Stage {
	t := newTraversal(stages, targets)
	for _, st := range stages {
		if targets.has(st.ID) {
			t.visit(st.ID)
		}
	}

	ids := t.ordered
	if !containsID(ids, start.ID) {
		ids = append([]int64{start.ID}, ids...)
	}

	included := make([]catalog.Stage, 0, len(ids))
	for _, id := range ids {
		st, ok := t.graph[id]
		if !ok {
			continue
		}
		if st.Order >= start.Order {
			included = append(included, st)
		}
	}

	sort.SliceStable(included, func(i, j int) bool {
		return included[i].Order < included[j].Order
	})
	return included
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
