package chart_test

import (
	"strings"
	"testing"

	"github.com/ganot/roadmap/internal/domain/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocument_AcceptsBuiltDocument(t *testing.T) {
	doc, err := chart.Build(coalSnapshot(), chart.Request{MineralTypeID: coal, StartStageID: geology})
	require.NoError(t, err)
	require.NoError(t, chart.ValidateDocument(doc))
}

func TestValidateEncoded_RejectsMalformed(t *testing.T) {
	doc, err := chart.Build(coalSnapshot(), chart.Request{MineralTypeID: coal, StartStageID: geology})
	require.NoError(t, err)
	data, err := doc.Encode()
	require.NoError(t, err)
	valid := string(data)

	cases := map[string]string{
		"not json":        "{",
		"missing stages":  strings.Replace(valid, `"stages":`, `"phases":`, 1),
		"negative start":  strings.Replace(valid, `"start":0`, `"start":-3`, 1),
		"string duration": strings.Replace(valid, `"total_duration":36}`, `"total_duration":"36"}`, 1),
		"empty stages":    `{"mineral_type":{"id":1,"name":"Coal","code":"COAL"},"start_stage":{"id":10,"name":"Geology"},"question":null,"stages":[],"total_duration":0}`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			require.NotEqual(t, valid, input)
			err := chart.ValidateEncoded([]byte(input))
			assert.ErrorIs(t, err, chart.ErrInvalidDocument)
		})
	}
}
