package querybuilder

import (
	"fmt"
	"strings"
)

type QueryBuilder interface {
	Select(cols ...string) QueryBuilder
	From(table string) QueryBuilder
	Into(table string) QueryBuilder
	Where(clause string, args ...interface{}) QueryBuilder
	And(clause string, args ...interface{}) QueryBuilder

	OrderBy(col string, asc bool) QueryBuilder

	Insert(cols ...string) QueryBuilder
	// Values sets the single row to insert, replacing any earlier call
	Values(values ...interface{}) QueryBuilder

	// Build renders the statement with '?' placeholders; callers rebind for
	// their driver.
	Build() (string, []interface{})
}

type queryBuilder struct {
	table      string
	cols       []string
	conditions []Condition
	values     []interface{}
	orderBy    []string
	schema     string
}

func NewQueryBuilder(schema string) QueryBuilder {
	return &queryBuilder{
		schema: schema,
	}
}

func (q *queryBuilder) Select(cols ...string) QueryBuilder {
	q.cols = append(q.cols, cols...)
	return q
}

func (q *queryBuilder) Insert(cols ...string) QueryBuilder {
	q.cols = cols
	return q
}

func (q *queryBuilder) Values(values ...interface{}) QueryBuilder {
	q.values = values
	return q
}

func (q *queryBuilder) From(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Into(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Where(clause string, args ...interface{}) QueryBuilder {
	return q.And(clause, args...)
}

func (q *queryBuilder) And(clause string, args ...interface{}) QueryBuilder {
	q.conditions = append(q.conditions, Condition{
		condType: CondTypeAnd,
		clause:   clause,
		args:     args,
	})
	return q
}

func (q *queryBuilder) OrderBy(col string, asc bool) QueryBuilder {
	orderVector := "ASC"
	if !asc {
		orderVector = "DESC"
	}
	q.orderBy = append(q.orderBy, fmt.Sprintf("%s %s", col, orderVector))
	return q
}

func (q *queryBuilder) Build() (string, []interface{}) {
	if len(q.values) > 0 {
		return q.buildInsert()
	}
	return q.buildSelect()
}

func (q *queryBuilder) qualifiedTable() string {
	if q.schema == "" {
		return q.table
	}
	return q.schema + "." + q.table
}

func buildCondition(conditions []Condition) (string, []interface{}) {
	parts := make([]string, 0, len(conditions)*2)
	args := make([]interface{}, 0)

	for i, cond := range conditions {
		if i > 0 {
			parts = append(parts, cond.condType.ToString())
		}
		parts = append(parts, cond.clause)
		args = append(args, cond.args...)
	}

	return strings.Join(parts, " "), args
}

func (q *queryBuilder) buildSelect() (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(q.cols, ", "), q.qualifiedTable())

	var args []interface{}
	if len(q.conditions) > 0 {
		condition, condArgs := buildCondition(q.conditions)
		query += fmt.Sprintf(" WHERE %s", condition)
		args = append(args, condArgs...)
	}

	if len(q.orderBy) > 0 {
		query += fmt.Sprintf(" ORDER BY %s", strings.Join(q.orderBy, ", "))
	}

	return query, args
}

// buildInsert returns an empty query when the row's width differs from the
// column list.
func (q *queryBuilder) buildInsert() (string, []interface{}) {
	numOfParam := len(q.cols)
	if numOfParam == 0 || len(q.values) != numOfParam {
		return "", nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", numOfParam), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		q.qualifiedTable(), strings.Join(q.cols, ", "), placeholders)
	return query, append([]interface{}(nil), q.values...)
}
