package dao

import (
	"fmt"

	"gorm.io/gorm"
)

type condition struct {
	column string
	op     string
	value  interface{}
}

// Filter is the small predicate vocabulary the site needs: eq, gte, order and limit.
type Filter struct {
	conds []condition
	order string
	limit int
}

func (f Filter) Eq(column string, value interface{}) Filter {
	f.conds = append(append([]condition{}, f.conds...), condition{column, "=", value})
	return f
}

func (f Filter) Gte(column string, value interface{}) Filter {
	f.conds = append(append([]condition{}, f.conds...), condition{column, ">=", value})
	return f
}

func (f Filter) Order(order string) Filter {
	f.order = order
	return f
}

func (f Filter) Limit(limit int) Filter {
	f.limit = limit
	return f
}

func (f Filter) apply(db *gorm.DB, defaultOrder string) *gorm.DB {
	for _, c := range f.conds {
		db = db.Where(fmt.Sprintf("%s %s ?", c.column, c.op), c.value)
	}

	order := f.order
	if order == "" {
		order = defaultOrder
	}
	if order != "" {
		db = db.Order(order)
	}

	if f.limit > 0 {
		db = db.Limit(f.limit)
	}

	return db
}
