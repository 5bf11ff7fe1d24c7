package persistence

import (
	"gorm.io/gorm"

	"github.com/lms/backend/internal/domain/shared"
)

// applyPagination applies page/page-size and whitelisted ordering to a query
func applyPagination(query *gorm.DB, filter shared.Filter, allowedSortFields map[string]bool) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, allowedSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}
