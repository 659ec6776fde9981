package persistence

import (
	"context"
	"strings"

	"github.com/erp/erpapp/internal/domain/shared"
	"gorm.io/gorm"
)

// scope narrows a query. List queries apply the same scope to the count and
// to the page so that total always reflects the filter.
type scope = func(*gorm.DB) *gorm.DB

func noScope(db *gorm.DB) *gorm.DB { return db }

// findPage loads one window of M rows plus the total matching count.
// pageScopes apply to the page query only, e.g. preloads.
func findPage[M any](ctx context.Context, db *gorm.DB, filter shared.Filter, where scope, order string, pageScopes ...scope) ([]M, int64, error) {
	if where == nil {
		where = noScope
	}

	var total int64
	if err := db.WithContext(ctx).Model(new(M)).Scopes(where).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = shared.DefaultLimit
	}

	var rows []M
	if err := db.WithContext(ctx).
		Scopes(where).
		Scopes(pageScopes...).
		Order(order).
		Offset(filter.Skip).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// findOne loads the first M matching the condition or shared.ErrNotFound
func findOne[M any](ctx context.Context, db *gorm.DB, query string, args ...interface{}) (*M, error) {
	var m M
	if err := db.WithContext(ctx).Where(query, args...).First(&m).Error; err != nil {
		return nil, translateReadError(err)
	}
	return &m, nil
}

// exists reports whether any M matches the condition
func exists[M any](ctx context.Context, db *gorm.DB, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(new(M)).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// toPage converts model rows with conv and wraps them in a page
func toPage[M any, D any](rows []M, total int64, filter shared.Filter, conv func(*M) *D) shared.Page[D] {
	items := make([]D, 0, len(rows))
	for i := range rows {
		items = append(items, *conv(&rows[i]))
	}
	return shared.NewPage(items, total, filter)
}

// containsFold adds a case-insensitive substring match over cols, OR-ed
// together. LOWER/LIKE behaves the same on PostgreSQL and SQLite.
func containsFold(db *gorm.DB, term string, cols ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return db
	}
	pattern := "%" + escapeLike(term) + "%"
	clauses := make([]string, len(cols))
	args := make([]interface{}, len(cols))
	for i, col := range cols {
		clauses[i] = "LOWER(" + col + ") LIKE LOWER(?) ESCAPE '\\'"
		args[i] = pattern
	}
	return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// whereIfSet adds "col = value" when key is present in the filter
func whereIfSet(db *gorm.DB, filter shared.Filter, key, col string) *gorm.DB {
	if v, ok := filter.Get(key); ok {
		return db.Where(col+" = ?", v)
	}
	return db
}
