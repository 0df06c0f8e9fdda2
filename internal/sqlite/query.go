package sqlite

import "strings"

// listQuery builds the tenant-scoped, newest-first SELECTs behind List.
type listQuery struct {
	base  string
	conds []string
	args  []any
}

func newListQuery(base, tenantID string) *listQuery {
	return &listQuery{base: base, conds: []string{"tenant_id = ?"}, args: []any{tenantID}}
}

func (q *listQuery) where(cond string, arg any) {
	q.conds = append(q.conds, cond)
	q.args = append(q.args, arg)
}

// build returns the statement with its arguments. SQLite only accepts
// OFFSET after a LIMIT, so an unbounded page uses LIMIT -1.
func (q *listQuery) build(limit, offset int) (string, []any) {
	var sb strings.Builder
	sb.WriteString(q.base)
	sb.WriteString(" WHERE ")
	sb.WriteString(strings.Join(q.conds, " AND "))
	sb.WriteString(" ORDER BY created_at DESC, id DESC")

	args := append([]any(nil), q.args...)
	switch {
	case limit > 0:
		sb.WriteString(" LIMIT ?")
		args = append(args, limit)
	case offset > 0:
		sb.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		sb.WriteString(" OFFSET ?")
		args = append(args, offset)
	}
	return sb.String(), args
}
