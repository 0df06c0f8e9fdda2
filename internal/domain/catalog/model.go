package catalog

// MineralType is the kind of resource a roadmap is built for. It scopes
// stages and the dependency edges between them.
type MineralType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// Stage is a top-level phase of a roadmap for one mineral type.
type Stage struct {
	ID             int64   `json:"id"`
	MineralTypeID  int64   `json:"mineral_type_id"`
	Name           string  `json:"name"`
	Code           string  `json:"code"`
	Order          int     `json:"order"`
	Description    string  `json:"description,omitempty"`
	DurationMonths int     `json:"duration_months"`
	StartMonth     int     `json:"start_month"`
	Color          string  `json:"color"`
	DependsOn      []int64 `json:"depends_on"`
	Works          []Work  `json:"works,omitempty"`
}

// Work is a sub-task nested inside exactly one stage. StartMonth is relative
// to the start of its stage.
type Work struct {
	ID             int64  `json:"id"`
	StageID        int64  `json:"stage_id"`
	Number         string `json:"number"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Executor       string `json:"executor"`
	DurationMonths int    `json:"duration_months"`
	StartMonth     int    `json:"start_month"`
	Order          int    `json:"order"`
}

// Question is a project goal that limits a roadmap to the stages that
// satisfy it.
type Question struct {
	ID             int64   `json:"id"`
	Text           string  `json:"text"`
	Code           string  `json:"code"`
	Description    string  `json:"description,omitempty"`
	MineralTypeIDs []int64 `json:"mineral_type_ids"`
	TargetStageIDs []int64 `json:"target_stage_ids"`
}

// AppliesTo reports whether the question is offered for the mineral type.
func (q Question) AppliesTo(mineralTypeID int64) bool {
	for _, id := range q.MineralTypeIDs {
		if id == mineralTypeID {
			return true
		}
	}
	return false
}

// DefaultColor is used for stages stored without a color.
const DefaultColor = "#0070C0"

// Seed is a complete catalog in import form.
type Seed struct {
	MineralTypes []MineralType `json:"mineral_types" yaml:"mineral_types"`
	Stages       []Stage       `json:"stages" yaml:"stages"`
	Works        []Work        `json:"works" yaml:"works"`
	Questions    []Question    `json:"questions" yaml:"questions"`
}
