package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `roadmap builds Gantt-style roadmaps for mineral resource projects.

Core concepts:
- Mineral type: the kind of resource (coal, gold, ...). Every stage belongs to exactly one.
- Stage: a project phase with an order, a declared duration in months and dependencies on other stages.
- Work: a task inside a stage with its own offset and duration; works can stretch their stage.
- Question: a target that selects which stages the roadmap must reach.
- Chart: the built roadmap; stages in order with start month, duration and nested works.

Default workflow:
1) list_mineral_types, then list_stages for the chosen type.
2) Optionally list_questions to narrow the roadmap to a goal.
3) preview_chart to inspect the result; create_chart to keep it under a title.
4) get_chart / list_charts to come back later; rebuild_chart after the catalog changes.

All durations and offsets are whole months counted from the project start (month 0).

Docs:
- roadmap://docs/index
- roadmap://docs/concepts
- roadmap://docs/chart-building
- roadmap://docs/workflows/saved-charts
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "roadmap://docs/index",
		Name:        "docs_index",
		Title:       "roadmap docs index",
		Description: "Entry point for agent-facing docs and what to read when.",
		Content: `# roadmap: Agent Docs Index

## Quick start

1. ` + "`list_mineral_types`" + ` to pick a mineral type.
2. ` + "`list_stages`" + ` to pick the start stage.
3. ` + "`preview_chart`" + ` with ` + "`mineral_type_id`" + ` and ` + "`start_stage_id`" + `.
4. ` + "`create_chart`" + ` to save it.

## Docs

- ` + "`roadmap://docs/concepts`" + ` glossary of catalog records.
- ` + "`roadmap://docs/chart-building`" + ` how stages are selected, ordered and scheduled.
- ` + "`roadmap://docs/workflows/saved-charts`" + ` saving, rebuilding and auditing charts.

## Limitations

- Charts are computed in whole months; there are no calendar dates.
- Saved charts are snapshots. Catalog edits never change a saved chart; use ` + "`rebuild_chart`" + `.
`,
	},
	{
		URI:         "roadmap://docs/concepts",
		Name:        "docs_concepts",
		Title:       "roadmap concepts",
		Description: "Glossary of mineral types, stages, works and questions.",
		Content: `# Concepts

- **Mineral type**: resource category. Stages, questions and charts are always scoped to one.
- **Stage**: ordered project phase. ` + "`order`" + ` is the pipeline position; ties are broken by id.
  ` + "`duration_months`" + ` is the declared length. ` + "`depends_on`" + ` lists prerequisite stages.
- **Work**: task inside a stage. ` + "`start_month`" + ` is relative to the stage start.
- **Question**: a goal such as "can we get a mining license?". Its target stages decide what the chart must reach.
- **Chart**: the computed roadmap document.

Dependencies on stages of another mineral type are ignored. Dependency cycles are broken, never reported as errors.
`,
	},
	{
		URI:         "roadmap://docs/chart-building",
		Name:        "docs_chart_building",
		Title:       "How a chart is built",
		Description: "Target selection, dependency ordering and month scheduling.",
		Content: `# Chart building

1. **Targets.** With a question, the targets are the question's stages of the chosen mineral type.
   Without one, every stage whose order is at or after the start stage.
2. **Ordering.** Targets are walked in (order, id) sequence; prerequisites are walked first.
   Only targeted stages appear. The start stage is always included. Stages before the start are dropped.
   The final list is sorted by ` + "`order`" + `.
3. **Scheduling.** Stages run one after another from month 0. A stage starts after the previous stage
   and after every prerequisite already placed. Its duration is the larger of its declared duration and
   the end of its latest work.
4. **Result.** ` + "`total_duration`" + ` is the end of the last stage.
   Each work reports ` + "`start_global`" + ` (stage start + work offset).

A dependency whose order is larger than its dependent's is listed in ` + "`conflicts`" + `;
the chart keeps the order sequence and does not wait for it.
`,
	},
	{
		URI:         "roadmap://docs/workflows/saved-charts",
		Name:        "docs_saved_charts",
		Title:       "Saved charts",
		Description: "Create, list, rebuild and delete saved charts; audit with activity.",
		Content: `# Saved charts

- ` + "`create_chart`" + ` requires a title (at most 200 characters) and the same parameters as ` + "`preview_chart`" + `.
- ` + "`get_chart`" + ` returns the document exactly as it was built.
- ` + "`list_charts`" + ` is newest first; filter with ` + "`mineral_type_id`" + `, page with ` + "`limit`" + `/` + "`offset`" + `.
- ` + "`rebuild_chart`" + ` creates a NEW chart from the original's parameters against today's catalog.
  Compare the two to see what a catalog change did.
- ` + "`delete_chart`" + ` is permanent.
- ` + "`get_recent_activity`" + ` lists chart_created, chart_rebuilt, chart_deleted and catalog_imported events.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
