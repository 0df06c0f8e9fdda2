// Package seed reads catalog files in YAML form.
//
// A catalog file holds flat lists of mineral types, stages, works and
// questions. Records reference each other by id:
//
//	mineral_types:
//	  - {id: 1, name: Coal, code: coal}
//	stages:
//	  - id: 10
//	    mineral_type: 1
//	    name: Geological study
//	    order: 1
//	    duration_months: 12
//	    depends_on: []
//	works:
//	  - {id: 100, stage: 10, number: "1.1", title: Field survey, duration_months: 6}
//	questions:
//	  - {id: 1, code: license, text: Obtain a license?, mineral_types: [1], target_stages: [10]}
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ganot/roadmap/internal/domain/catalog"
	"gopkg.in/yaml.v3"
)

type file struct {
	MineralTypes []mineralTypeRecord `yaml:"mineral_types"`
	Stages       []stageRecord       `yaml:"stages"`
	Works        []workRecord        `yaml:"works"`
	Questions    []questionRecord    `yaml:"questions"`
}

type mineralTypeRecord struct {
	ID          int64  `yaml:"id"`
	Name        string `yaml:"name"`
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
}

type stageRecord struct {
	ID             int64   `yaml:"id"`
	MineralType    int64   `yaml:"mineral_type"`
	Name           string  `yaml:"name"`
	Code           string  `yaml:"code"`
	Order          int     `yaml:"order"`
	Description    string  `yaml:"description"`
	DurationMonths int     `yaml:"duration_months"`
	StartMonth     int     `yaml:"start_month"`
	Color          string  `yaml:"color"`
	DependsOn      []int64 `yaml:"depends_on"`
}

type workRecord struct {
	ID             int64  `yaml:"id"`
	Stage          int64  `yaml:"stage"`
	Number         string `yaml:"number"`
	Title          string `yaml:"title"`
	Description    string `yaml:"description"`
	Executor       string `yaml:"executor"`
	DurationMonths int    `yaml:"duration_months"`
	StartMonth     int    `yaml:"start_month"`
	Order          int    `yaml:"order"`
}

type questionRecord struct {
	ID           int64   `yaml:"id"`
	Text         string  `yaml:"text"`
	Code         string  `yaml:"code"`
	Description  string  `yaml:"description"`
	MineralTypes []int64 `yaml:"mineral_types"`
	TargetStages []int64 `yaml:"target_stages"`
}

// Load reads the catalog file at path.
func Load(path string) (catalog.Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.Seed{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes a catalog file. Unknown keys are rejected so that a
// misspelled field does not silently load as zero. Integrity checks are left
// to catalog.ValidateSeed.
func Parse(r io.Reader) (catalog.Seed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return catalog.Seed{}, nil
		}
		return catalog.Seed{}, fmt.Errorf("parse seed file: %w", err)
	}

	seed := catalog.Seed{
		MineralTypes: make([]catalog.MineralType, 0, len(f.MineralTypes)),
		Stages:       make([]catalog.Stage, 0, len(f.Stages)),
		Works:        make([]catalog.Work, 0, len(f.Works)),
		Questions:    make([]catalog.Question, 0, len(f.Questions)),
	}
	for _, mt := range f.MineralTypes {
		seed.MineralTypes = append(seed.MineralTypes, catalog.MineralType{
			ID:          mt.ID,
			Name:        mt.Name,
			Code:        mt.Code,
			Description: mt.Description,
		})
	}
	for _, st := range f.Stages {
		seed.Stages = append(seed.Stages, catalog.Stage{
			ID:             st.ID,
			MineralTypeID:  st.MineralType,
			Name:           st.Name,
			Code:           st.Code,
			Order:          st.Order,
			Description:    st.Description,
			DurationMonths: st.DurationMonths,
			StartMonth:     st.StartMonth,
			Color:          st.Color,
			DependsOn:      nonNil(st.DependsOn),
		})
	}
	for _, w := range f.Works {
		seed.Works = append(seed.Works, catalog.Work{
			ID:             w.ID,
			StageID:        w.Stage,
			Number:         w.Number,
			Title:          w.Title,
			Description:    w.Description,
			Executor:       w.Executor,
			DurationMonths: w.DurationMonths,
			StartMonth:     w.StartMonth,
			Order:          w.Order,
		})
	}
	for _, q := range f.Questions {
		seed.Questions = append(seed.Questions, catalog.Question{
			ID:             q.ID,
			Text:           q.Text,
			Code:           q.Code,
			Description:    q.Description,
			MineralTypeIDs: nonNil(q.MineralTypes),
			TargetStageIDs: nonNil(q.TargetStages),
		})
	}

	return seed, nil
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
