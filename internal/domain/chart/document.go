package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is a computed roadmap. It is a plain value: it holds no
// references into the catalog and is never updated after Build returns.
type Document struct {
	MineralType   MineralTypeSummary `json:"mineral_type"`
	StartStage    StageSummary       `json:"start_stage"`
	Question      *QuestionSummary   `json:"question"`
	Stages        []StageEntry       `json:"stages"`
	TotalDuration int                `json:"total_duration"`
}

type MineralTypeSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type StageSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type QuestionSummary struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Code string `json:"code"`
}

// StageEntry is a scheduled stage. Start is the absolute offset in months
// from the project start; Duration is the effective length, never shorter
// than the declared duration or the span of the stage's works.
type StageEntry struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	Order         int         `json:"order"`
	Description   string      `json:"description"`
	Color         string      `json:"color"`
	Start         int         `json:"start"`
	Duration      int         `json:"duration"`
	TotalDuration int         `json:"total_duration"`
	Works         []WorkEntry `json:"works"`
	Dependencies  []int64     `json:"dependencies"`
}

// End returns the month at which the stage finishes.
func (e StageEntry) End() int {
	return e.Start + e.Duration
}

// WorkEntry is a scheduled work. StartMonth and StartInStage are both the
// offset within the stage; StartGlobal is absolute.
type WorkEntry struct {
	ID             int64  `json:"id"`
	Number         string `json:"number"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Executor       string `json:"executor"`
	DurationMonths int    `json:"duration_months"`
	StartMonth     int    `json:"start_month"`
	Order          int    `json:"order"`
	StartGlobal    int    `json:"start_global"`
	StartInStage   int    `json:"start_in_stage"`
}

// Encode returns the canonical JSON form of the document.
func (d Document) Encode() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode chart document: %w", err)
	}
	return data, nil
}

// Decode parses a document previously produced by Encode.
func Decode(data []byte) (Document, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode chart document: %w", err)
	}
	return doc, nil
}

// StageIndex returns the position of a stage in the document, or -1.
func (d Document) StageIndex(stageID int64) int {
	for i, st := range d.Stages {
		if st.ID == stageID {
			return i
		}
	}
	return -1
}
