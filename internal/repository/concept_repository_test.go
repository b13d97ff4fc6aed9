package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"biblioteca/internal/model"
)

type capturedQuery struct {
	sql  string
	vars []interface{}
}

// dryRunDB opens a postgres-dialect session that builds SQL without touching
// a database. The capture callback records each built statement and clears
// it, so consecutive finishers on one chain rebuild from their own clauses.
func dryRunDB(t *testing.T, queries *[]capturedQuery) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=biblioteca dbname=biblioteca port=5432 sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	assert.NoError(t, err)

	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		*queries = append(*queries, capturedQuery{
			sql:  tx.Statement.SQL.String(),
			vars: append([]interface{}{}, tx.Statement.Vars...),
		})
		tx.Statement.SQL.Reset()
		tx.Statement.Vars = nil
	})
	assert.NoError(t, err)

	return db
}

func TestConceptRepositoryListSQL(t *testing.T) {
	var queries []capturedQuery
	repo := NewConceptRepository(dryRunDB(t, &queries))

	tests := []struct {
		name        string
		filter      ConceptFilter
		page        PageRequest
		contains    []string
		notContains []string
		vars        []interface{}
	}{
		{
			name:        "no filter",
			page:        PageRequest{Page: 1, Limit: 10},
			notContains: []string{"JOIN categories", "ILIKE"},
			vars:        []interface{}{true, 10},
		},
		{
			name:   "category filter joins active categories",
			filter: ConceptFilter{Category: "Redes"},
			page:   PageRequest{Page: 1, Limit: 10},
			contains: []string{
				"JOIN categories ON categories.id = concepts.category_id",
				"categories.name = $",
				"categories.active = $",
			},
			vars: []interface{}{"Redes", true},
		},
		{
			name:     "level filter is an exact match",
			filter:   ConceptFilter{Level: model.LevelIntermediate},
			page:     PageRequest{Page: 1, Limit: 10},
			contains: []string{"concepts.level = $"},
			vars:     []interface{}{model.LevelIntermediate},
		},
		{
			name:   "search matches title, description and content case-insensitively",
			filter: ConceptFilter{Search: "grafos"},
			page:   PageRequest{Page: 1, Limit: 10},
			contains: []string{
				"concepts.title ILIKE $",
				"concepts.description ILIKE $",
				"concepts.content ILIKE $",
			},
			notContains: []string{"tags::text"},
			vars:        []interface{}{"%grafos%"},
		},
		{
			name:     "search variant also matches the serialized tags",
			filter:   ConceptFilter{Search: "grafos", MatchTags: true},
			page:     PageRequest{Page: 1, Limit: 10},
			contains: []string{"concepts.tags::text ILIKE $"},
			vars:     []interface{}{"%grafos%"},
		},
		{
			name:   "filters combine with AND and paginate",
			filter: ConceptFilter{Category: "Redes", Level: model.LevelBasic, Search: "árbol"},
			page:   PageRequest{Page: 2, Limit: 20},
			contains: []string{
				"JOIN categories ON categories.id = concepts.category_id",
				"concepts.level = $",
				"concepts.title ILIKE $",
				"OFFSET",
			},
			vars: []interface{}{"Redes", model.LevelBasic, "%árbol%", 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queries = queries[:0]

			_, _, err := repo.List(context.Background(), tt.filter, tt.page)
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, len(queries), 2) // count, then page

			// The count query carries the same predicates, soft-delete
			// exclusion included.
			countSQL := queries[0].sql
			assert.Contains(t, countSQL, "count(*)")
			assert.Contains(t, countSQL, "concepts.active = $1")

			pageSQL := queries[1].sql
			assert.Contains(t, pageSQL, "concepts.active = $1")
			assert.Contains(t, pageSQL, "ORDER BY concepts.created_at DESC")
			for _, fragment := range tt.contains {
				assert.Contains(t, pageSQL, fragment)
			}
			for _, fragment := range tt.notContains {
				assert.NotContains(t, pageSQL, fragment)
			}
			for _, v := range tt.vars {
				assert.Contains(t, queries[1].vars, v)
			}
		})
	}
}

func TestConceptRepositoryListClampsPagination(t *testing.T) {
	var queries []capturedQuery
	repo := NewConceptRepository(dryRunDB(t, &queries))

	_, _, err := repo.List(context.Background(), ConceptFilter{}, PageRequest{Page: -1, Limit: 0})
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, len(queries), 2)

	pageQuery := queries[1]
	assert.Contains(t, pageQuery.vars, DefaultPageSize)
	// Page 1 means no offset clause at all.
	assert.NotContains(t, pageQuery.sql, "OFFSET")
}
