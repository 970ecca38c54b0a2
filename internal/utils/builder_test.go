package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildInsert(t *testing.T) {
	query, args := NewQueryBuilder("public").
		Insert("store_id", "sheet_name", "cells").
		Into("sheet_rows").
		Values("abc", "Sheet1", `["a"]`).
		Build()

	assert.Equal(t, "INSERT INTO public.sheet_rows (store_id, sheet_name, cells) VALUES (?, ?, ?)", query)
	assert.Equal(t, []interface{}{"abc", "Sheet1", `["a"]`}, args)
}

func TestBuildInsertValuesReplaced(t *testing.T) {
	query, args := NewQueryBuilder("").
		Insert("a", "b").
		Into("t").
		Values(1, 2).
		Values(3, 4).
		Build()

	assert.Equal(t, "INSERT INTO t (a, b) VALUES (?, ?)", query)
	assert.Equal(t, []interface{}{3, 4}, args)
}

func TestBuildInsertWidthMismatch(t *testing.T) {
	query, args := NewQueryBuilder("").
		Insert("a", "b").
		Into("t").
		Values(1).
		Build()

	assert.Empty(t, query)
	assert.Nil(t, args)
}

func TestBuildSelect(t *testing.T) {
	query, args := NewQueryBuilder("main").
		Select("id", "cells").
		From("sheet_rows").
		Where("store_id = ?", "abc").
		And("sheet_name = ?", "Sheet1").
		OrderBy("id", false).
		Build()

	assert.Equal(t, "SELECT id, cells FROM main.sheet_rows WHERE store_id = ? AND sheet_name = ? ORDER BY id DESC", query)
	assert.Equal(t, []interface{}{"abc", "Sheet1"}, args)
}

func TestCondTypeToString(t *testing.T) {
	assert.Equal(t, "AND", CondTypeAnd.ToString())
	assert.Equal(t, "", CondType(0).ToString())
}
