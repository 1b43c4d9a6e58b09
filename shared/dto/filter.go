package dto

import (
	"fmt"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterIsNotNull         = "is_not_null"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// likeEscaper makes wildcards in a LIKE value match literally. Postgres uses backslash as the
// default LIKE escape.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreaterEq: ">=",
}

// Filter is one condition on a column. Both repositories understand it: the SQL one renders it
// as a named-parameter clause, the key-value one evaluates it in memory.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less_eq greater_eq is_null is_not_null"`
	Table    string
}

func (f *Filter) column() string {
	if f.Table != "" {
		return f.Table + "." + f.Field
	}

	return f.Field
}

// GetWhereClause renders the condition. Parameters are named after ArgName, or Field when it is empty.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	argName := f.ArgName
	if argName == "" {
		argName = f.Field
	}

	return f.render(argName)
}

func (f *Filter) render(argName string) (string, map[string]any) {
	args := map[string]any{}
	column := f.column()

	if sign, ok := comparisons[f.Operator]; ok {
		args[argName] = f.Value

		return fmt.Sprintf("%s %s :%s", column, sign, argName), args
	}

	switch f.Operator {
	case FilterOperatorLike:
		args[argName] = "%" + likeEscaper.Replace(fmt.Sprint(f.Value)) + "%"

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, argName), args
	case FilterOperatorIn:
		val := reflect.ValueOf(f.Value)
		if val.Kind() != reflect.Array && val.Kind() != reflect.Slice {
			args[argName] = f.Value

			return fmt.Sprintf("%s = :%s", column, argName), args
		}

		// IN () is a syntax error, an empty list matches nothing.
		if val.Len() == 0 {
			return "FALSE", args
		}

		named := make([]string, val.Len())

		for idx := range val.Len() {
			name := fmt.Sprintf("%s_%d", argName, idx)
			args[name] = val.Index(idx).Interface()
			named[idx] = ":" + name
		}

		return fmt.Sprintf("%s IN (%s)", column, strings.Join(named, ", ")), args
	case FilterIsNotNull:
		return column + " IS NOT NULL", args
	case FilterIsNull:
		return column + " IS NULL", args
	default:
		return "", args
	}
}

// FilterGroup joins filters and nested groups with Operator, AND when it is empty.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) operator() string {
	if strings.EqualFold(f.Operator, FilterGroupOperatorOr) {
		return FilterGroupOperatorOr
	}

	return FilterGroupOperatorAnd
}

// GetWhereClause renders the group. Every parameter gets a positional suffix so two
// conditions on the same column, or an UPDATE of a filtered column, never share a name.
func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	counter := 0

	return f.render(&counter)
}

func (f *FilterGroup) render(counter *int) (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, item := range f.Filters {
		var (
			clause string
			params map[string]any
		)

		switch filter := item.(type) {
		case Filter:
			base := filter.ArgName
			if base == "" {
				base = filter.Field
			}

			clause, params = filter.render(fmt.Sprintf("w%d_%s", *counter, base))
			*counter++
		case FilterGroup:
			clause, params = filter.render(counter)
		default:
			continue
		}

		if clause == "" {
			continue
		}

		clauses = append(clauses, clause)

		for key, value := range params {
			args[key] = value
		}
	}

	if len(clauses) == 0 {
		return "", args
	}

	return "(" + strings.Join(clauses, " "+f.operator()+" ") + ")", args
}

func (f *FilterGroup) Add(filters ...Filter) {
	for _, filter := range filters {
		f.Filters = append(f.Filters, filter)
	}
}

func (f *FilterGroup) IsEmpty() bool {
	return len(f.Filters) == 0
}
