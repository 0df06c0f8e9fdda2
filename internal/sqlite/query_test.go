package sqlite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQuery_Build(t *testing.T) {
	tests := []struct {
		name          string
		limit, offset int
		wantSuffix    string
		wantArgs      []any
	}{
		{"unbounded", 0, 0, " ORDER BY created_at DESC, id DESC", []any{"t1", int64(3)}},
		{"limit", 10, 0, " LIMIT ?", []any{"t1", int64(3), 10}},
		{"offset only", 0, 5, " LIMIT -1 OFFSET ?", []any{"t1", int64(3), 5}},
		{"limit and offset", 10, 5, " LIMIT ? OFFSET ?", []any{"t1", int64(3), 10, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := newListQuery("SELECT id FROM saved_charts", "t1")
			q.where("mineral_type_id = ?", int64(3))

			query, args := q.build(tt.limit, tt.offset)
			assert.Contains(t, query, "WHERE tenant_id = ? AND mineral_type_id = ?")
			assert.True(t, strings.HasSuffix(query, tt.wantSuffix), query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
