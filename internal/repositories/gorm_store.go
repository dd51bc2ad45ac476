package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"etalase/internal/dto"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no record matches the given id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique column already holds the value.
	ErrDuplicate = errors.New("duplicate record")
)

// Column describes a field that list queries may sort, filter or project on.
type Column struct {
	Name    string
	Numeric bool
}

// Columns maps API field names to table columns.
type Columns map[string]Column

// gormStore implements the CRUD operations shared by every catalog entity.
type gormStore[T any] struct {
	db      *gorm.DB
	entity  string
	columns Columns
	search  []string // columns matched by the keyword parameter
}

func newGormStore[T any](db *gorm.DB, entity string, columns Columns, search ...string) *gormStore[T] {
	return &gormStore[T]{db: db, entity: entity, columns: columns, search: search}
}

// GetByID retrieves a single record by its ID.
func (s *gormStore[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var record T
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s with ID %s: %w", s.entity, id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s by ID %s: %w", s.entity, id, err)
	}
	return &record, nil
}

// Exists reports whether a record with the given ID is stored.
func (s *gormStore[T]) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to look up %s %s: %w", s.entity, id, err)
	}
	return n > 0, nil
}

// Create inserts a new record. IDs are assigned by the models' BeforeCreate hooks.
func (s *gormStore[T]) Create(ctx context.Context, record *T) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return s.writeError("create", err)
	}
	return nil
}

// Update writes every column of record. Save would insert a missing row, so
// the update is issued explicitly and a zero row count means it was deleted.
func (s *gormStore[T]) Update(ctx context.Context, record *T) error {
	res := s.db.WithContext(ctx).Model(record).Select("*").Updates(record)
	if res.Error != nil {
		return s.writeError("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s not found for update: %w", s.entity, ErrNotFound)
	}
	return nil
}

// Delete removes a record by its ID.
func (s *gormStore[T]) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", s.entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s with ID %s not found for deletion: %w", s.entity, id, ErrNotFound)
	}
	return nil
}

// List returns one page of records matching q and the total number of matches.
func (s *gormStore[T]) List(ctx context.Context, q dto.ListQuery, scopes ...func(*gorm.DB) *gorm.DB) ([]T, int64, error) {
	base := s.db.WithContext(ctx).Model(new(T)).Scopes(scopes...).Scopes(s.filter(q))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count %s records: %w", s.entity, err)
	}

	records := make([]T, 0, q.Limit)
	err := base.Session(&gorm.Session{}).
		Scopes(s.project(q), s.order(q)).
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s records: %w", s.entity, err)
	}
	return records, total, nil
}

func (s *gormStore[T]) filter(q dto.ListQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, f := range q.Filters {
			col, ok := s.columns[f.Field]
			if !ok {
				continue
			}
			var value any = f.Value
			if col.Numeric {
				n, err := strconv.ParseFloat(f.Value, 64)
				if err != nil {
					continue
				}
				value = n
			}
			db = db.Where(col.Name+" "+f.Op+" ?", value)
		}
		if q.Keyword != "" && len(s.search) > 0 {
			like := "%" + strings.ToLower(q.Keyword) + "%"
			conds := make([]string, len(s.search))
			args := make([]any, len(s.search))
			for i, col := range s.search {
				conds[i] = "LOWER(" + col + ") LIKE ?"
				args[i] = like
			}
			db = db.Where(strings.Join(conds, " OR "), args...)
		}
		return db
	}
}

func (s *gormStore[T]) project(q dto.ListQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(q.Fields) == 0 {
			return db
		}
		cols := []string{"id"}
		for _, f := range q.Fields {
			if col, ok := s.columns[f]; ok && col.Name != "id" {
				cols = append(cols, col.Name)
			}
		}
		return db.Select(cols)
	}
}

func (s *gormStore[T]) order(q dto.ListQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, f := range q.Sort {
			col, ok := s.columns[f.Field]
			if !ok {
				continue
			}
			if f.Desc {
				db = db.Order(col.Name + " DESC")
			} else {
				db = db.Order(col.Name)
			}
		}
		return db
	}
}

func (s *gormStore[T]) writeError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("failed to %s %s: %w", op, s.entity, ErrDuplicate)
	}
	return fmt.Errorf("failed to %s %s: %w", op, s.entity, err)
}

// baseColumns are shared by every catalog entity.
func baseColumns(extra Columns) Columns {
	cols := Columns{
		"_id":       {Name: "id"},
		"name":      {Name: "name"},
		"slug":      {Name: "slug"},
		"createdAt": {Name: "created_at"},
		"updatedAt": {Name: "updated_at"},
	}
	for k, v := range extra {
		cols[k] = v
	}
	return cols
}
