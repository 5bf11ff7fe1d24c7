package scope

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const softDeleteColumn = "is_deleted"

// RegisterSoftDeleteCallback installs a query callback that hides
// soft-deleted rows from SELECTs. Tables without an is_deleted column are
// untouched. Unscoped queries and queries that already constrain is_deleted
// bypass the filter; the physical rows are never removed.
func RegisterSoftDeleteCallback(db *gorm.DB) {
	_ = db.Callback().Query().Before("gorm:query").Register("scope:soft_delete_query", addSoftDeleteFilter)
	_ = db.Callback().Row().Before("gorm:row").Register("scope:soft_delete_row", addSoftDeleteFilter)
}

// RemoveSoftDeleteCallback removes the soft-delete callbacks, mainly for tests
func RemoveSoftDeleteCallback(db *gorm.DB) {
	_ = db.Callback().Query().Remove("scope:soft_delete_query")
	_ = db.Callback().Row().Remove("scope:soft_delete_row")
}

func addSoftDeleteFilter(db *gorm.DB) {
	if db.Statement.Unscoped {
		return
	}
	if db.Statement.Schema == nil || db.Statement.Schema.LookUpField(softDeleteColumn) == nil {
		return
	}
	if hasSoftDeleteCondition(db) {
		return
	}

	db.Statement.AddClause(clause.Where{
		Exprs: []clause.Expression{
			clause.Eq{
				Column: clause.Column{Table: clause.CurrentTable, Name: softDeleteColumn},
				Value:  false,
			},
		},
	})
}

func hasSoftDeleteCondition(db *gorm.DB) bool {
	if whereClause, ok := db.Statement.Clauses["WHERE"]; ok {
		if where, ok := whereClause.Expression.(clause.Where); ok {
			for _, expr := range where.Exprs {
				if exprContainsColumn(expr, softDeleteColumn) {
					return true
				}
			}
		}
	}

	sql := db.Statement.SQL.String()
	return sql != "" && strings.Contains(sql, softDeleteColumn)
}

func exprContainsColumn(expr clause.Expression, column string) bool {
	switch e := expr.(type) {
	case clause.Eq:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == column
		}
		if col, ok := e.Column.(string); ok {
			return strings.Contains(col, column)
		}
	case clause.IN:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == column
		}
	case clause.Expr:
		return strings.Contains(e.SQL, column)
	case clause.AndConditions:
		for _, cond := range e.Exprs {
			if exprContainsColumn(cond, column) {
				return true
			}
		}
	case clause.OrConditions:
		for _, cond := range e.Exprs {
			if exprContainsColumn(cond, column) {
				return true
			}
		}
	}
	return false
}
