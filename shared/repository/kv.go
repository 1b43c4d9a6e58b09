package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"hotel/infras/otel"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/logger"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

var errUnknownColumn = errors.New("unknown column")

// KVRepository keeps every record of a table as one JSON field of a Redis hash keyed by the
// primary column. Filters, ordering and paging are evaluated in memory with the same
// semantics the SQL repository gives them.
type KVRepository[T any] struct {
	client        *redis.Client
	otel          otel.Otel
	key           string
	entity        string
	primaryColumn string
	fields        map[string][]int
}

func NewKVRepository[T any](entityName, tableName, primaryColumn, prefix string, client *redis.Client, otl otel.Otel) KVRepository[T] {
	var zero T

	fields := map[string][]int{}
	indexFields(reflect.TypeOf(zero), nil, fields)

	return KVRepository[T]{
		client:        client,
		otel:          otl,
		key:           prefix + ":" + tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		fields:        fields,
	}
}

func (repo *KVRepository[T]) scopeName(method string) string {
	return fmt.Sprintf("%s.kv.%s.%s", constant.OtelRepositoryScopeName, repo.entity, method)
}

func (repo *KVRepository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("Insert"))
	defer scope.End()

	id, payload, err := repo.encode(model)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	created, err := repo.client.HSetNX(ctx, repo.key, id, payload).Result()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", repo.entity, err)
	}

	if !created {
		return failure.Conflict(fmt.Sprintf("%s %s already exists", repo.entity, id)) //nolint:wrapcheck
	}

	return nil
}

// Get returns the first record matching filter, or the zero value when nothing matches.
func (repo *KVRepository[T]) Get(ctx context.Context, filter dto.FilterGroup, _ ...string) (T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("Get"))
	defer scope.End()

	var model T

	if id, ok := repo.primaryKeyLookup(filter); ok {
		raw, err := repo.client.HGet(ctx, repo.key, id).Result()
		if errors.Is(err, redis.Nil) {
			return model, nil
		}

		if err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return model, fmt.Errorf("failed to get data (%s): %w", repo.entity, err)
		}

		if err = json.Unmarshal([]byte(raw), &model); err != nil {
			scope.TraceError(err)

			return model, fmt.Errorf("failed to decode data (%s): %w", repo.entity, err)
		}

		return model, nil
	}

	models, err := repo.load(ctx, filter)
	if err != nil {
		scope.TraceError(err)

		return model, err
	}

	if len(models) == 0 {
		return model, nil
	}

	return models[0], nil
}

func (repo *KVRepository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, _ ...string) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("GetAll"))
	defer scope.End()

	models, err := repo.load(ctx, filter)
	if err != nil {
		scope.TraceError(err)

		return nil, err
	}

	repo.sort(models, params.SortBy, params.SortDir)

	return paginate(models, params), nil
}

func (repo *KVRepository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("Exist"))
	defer scope.End()

	if len(filter.Filters) == 0 {
		return false, errRequiredFilter
	}

	count, err := repo.Count(ctx, filter)
	if err != nil {
		scope.TraceError(err)

		return false, err
	}

	return count > 0, nil
}

func (repo *KVRepository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("Count"))
	defer scope.End()

	models, err := repo.load(ctx, filter)
	if err != nil {
		scope.TraceError(err)

		return 0, err
	}

	return len(models), nil
}

func (repo *KVRepository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("Update"))
	defer scope.End()

	models, err := repo.load(ctx, filter)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	values := make([]any, 0, len(models)*2)

	for idx := range models {
		target := reflect.ValueOf(&models[idx]).Elem()

		for column, value := range mod {
			if err = repo.assign(target, column, value); err != nil {
				scope.TraceError(err)

				return fmt.Errorf("failed to update data (%s): %w", repo.entity, err)
			}
		}

		id, payload, err := repo.encode(models[idx])
		if err != nil {
			scope.TraceError(err)

			return err
		}

		values = append(values, id, payload)
	}

	if len(values) == 0 {
		return nil
	}

	if err = repo.client.HSet(ctx, repo.key, values...).Err(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", repo.entity, err)
	}

	return nil
}

func (repo *KVRepository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("Delete"))
	defer scope.End()

	if len(filter.Filters) == 0 {
		return errRequiredFilter
	}

	models, err := repo.load(ctx, filter)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	ids := make([]string, 0, len(models))
	for _, model := range models {
		ids = append(ids, repo.idOf(reflect.ValueOf(model)))
	}

	if len(ids) == 0 {
		return nil
	}

	if err = repo.client.HDel(ctx, repo.key, ids...).Err(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to delete data (%s): %w", repo.entity, err)
	}

	return nil
}

// InsertBulk writes all models in one round trip, overwriting records with the same id.
func (repo *KVRepository[T]) InsertBulk(ctx context.Context, models []T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("InsertBulk"))
	defer scope.End()

	if len(models) == 0 {
		return nil
	}

	values := make([]any, 0, len(models)*2)

	for _, model := range models {
		id, payload, err := repo.encode(model)
		if err != nil {
			scope.TraceError(err)

			return err
		}

		values = append(values, id, payload)
	}

	if err := repo.client.HSet(ctx, repo.key, values...).Err(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to bulk insert data (%s): %w", repo.entity, err)
	}

	return nil
}

func (repo *KVRepository[T]) load(ctx context.Context, filter dto.FilterGroup) ([]T, error) {
	raws, err := repo.client.HVals(ctx, repo.key).Result()
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get all data (%s): %w", repo.entity, err)
	}

	models := make([]T, 0, len(raws))

	for _, raw := range raws {
		var model T
		if err = json.Unmarshal([]byte(raw), &model); err != nil {
			return nil, fmt.Errorf("failed to decode data (%s): %w", repo.entity, err)
		}

		if repo.matchGroup(reflect.ValueOf(model), filter) {
			models = append(models, model)
		}
	}

	// Hash order is arbitrary; fall back to the primary key so reads are repeatable.
	repo.sort(models, repo.primaryColumn, dto.SortDirAsc)

	return models, nil
}

func (repo *KVRepository[T]) encode(model T) (string, string, error) {
	id := repo.idOf(reflect.ValueOf(model))
	if id == constant.Empty {
		return constant.Empty, constant.Empty, fmt.Errorf("missing primary key (%s)", repo.entity)
	}

	payload, err := json.Marshal(model)
	if err != nil {
		return constant.Empty, constant.Empty, fmt.Errorf("failed to encode data (%s): %w", repo.entity, err)
	}

	return id, string(payload), nil
}

func (repo *KVRepository[T]) idOf(model reflect.Value) string {
	value, ok := repo.column(model, repo.primaryColumn)
	if !ok {
		return constant.Empty
	}

	return fmt.Sprint(value)
}

func (repo *KVRepository[T]) primaryKeyLookup(filter dto.FilterGroup) (string, bool) {
	if len(filter.Filters) != 1 {
		return constant.Empty, false
	}

	f, ok := filter.Filters[0].(dto.Filter)
	if !ok || f.Operator != dto.FilterOperatorEq || columnName(f.Field) != repo.primaryColumn {
		return constant.Empty, false
	}

	return fmt.Sprint(f.Value), true
}

func (repo *KVRepository[T]) column(model reflect.Value, name string) (any, bool) {
	index, ok := repo.fields[columnName(name)]
	if !ok {
		return nil, false
	}

	return model.FieldByIndex(index).Interface(), true
}

func (repo *KVRepository[T]) assign(target reflect.Value, column string, value any) error {
	index, ok := repo.fields[columnName(column)]
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownColumn, column)
	}

	field := target.FieldByIndex(index)
	val := reflect.ValueOf(value)

	for val.IsValid() && val.Kind() == reflect.Pointer {
		if val.IsNil() {
			field.Set(reflect.Zero(field.Type()))

			return nil
		}

		val = val.Elem()
	}

	switch {
	case !val.IsValid():
		field.Set(reflect.Zero(field.Type()))
	case val.Type().AssignableTo(field.Type()):
		field.Set(val)
	case val.Kind() == field.Kind() && val.Type().ConvertibleTo(field.Type()):
		field.Set(val.Convert(field.Type()))
	default:
		return fmt.Errorf("cannot assign %s to column %s", val.Type(), column)
	}

	return nil
}

func (repo *KVRepository[T]) matchGroup(model reflect.Value, group dto.FilterGroup) bool {
	if len(group.Filters) == 0 {
		return true
	}

	anyMatch := strings.EqualFold(group.Operator, dto.FilterGroupOperatorOr)

	for _, filter := range group.Filters {
		var matched bool

		switch f := filter.(type) {
		case dto.Filter:
			matched = repo.matchFilter(model, f)
		case dto.FilterGroup:
			matched = repo.matchGroup(model, f)
		default:
			continue
		}

		if anyMatch && matched {
			return true
		}

		if !anyMatch && !matched {
			return false
		}
	}

	return !anyMatch
}

func (repo *KVRepository[T]) matchFilter(model reflect.Value, f dto.Filter) bool {
	value, ok := repo.column(model, f.Field)
	if !ok {
		return false
	}

	switch f.Operator {
	case dto.FilterOperatorEq:
		cmp, ok := compareValues(value, f.Value)

		return ok && cmp == 0
	case dto.FilterOperatorNotEq:
		cmp, ok := compareValues(value, f.Value)

		return ok && cmp != 0
	case dto.FilterOperatorLike:
		return strings.Contains(strings.ToLower(fmt.Sprint(deref(value))), strings.ToLower(fmt.Sprint(deref(f.Value))))
	case dto.FilterOperatorIn:
		return slices.ContainsFunc(toSlice(f.Value), func(candidate any) bool {
			cmp, ok := compareValues(value, candidate)

			return ok && cmp == 0
		})
	case dto.FilterOperatorLessEq:
		cmp, ok := compareValues(value, f.Value)

		return ok && cmp <= 0
	case dto.FilterOperatorGreaterEq:
		cmp, ok := compareValues(value, f.Value)

		return ok && cmp >= 0
	case dto.FilterIsNull:
		return isZero(value)
	case dto.FilterIsNotNull:
		return !isZero(value)
	default:
		return false
	}
}

func (repo *KVRepository[T]) sort(models []T, sortBy, sortDir string) {
	if sortBy == constant.Empty {
		return
	}

	desc := strings.EqualFold(sortDir, dto.SortDirDesc)

	slices.SortStableFunc(models, func(a, b T) int {
		left, okLeft := repo.column(reflect.ValueOf(a), sortBy)
		right, okRight := repo.column(reflect.ValueOf(b), sortBy)

		if !okLeft || !okRight {
			return 0
		}

		cmp, _ := compareValues(left, right)
		if desc {
			return -cmp
		}

		return cmp
	})
}

func paginate[T any](models []T, params dto.QueryParams) []T {
	if !params.Paged() {
		return models
	}

	offset := params.Offset()
	if offset >= len(models) {
		return []T{}
	}

	return models[offset:min(offset+params.Limit, len(models))]
}

func indexFields(reflectType reflect.Type, parent []int, fields map[string][]int) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)
		index := append(slices.Clone(parent), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			indexFields(field.Type, index, fields)

			continue
		}

		if tag := field.Tag.Get("db"); tag != constant.Empty && tag != "-" {
			fields[tag] = index
		}
	}
}

// columnName drops a "table." qualifier.
func columnName(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}

	return name
}

func deref(value any) any {
	val := reflect.ValueOf(value)
	for val.IsValid() && val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil
		}

		val = val.Elem()
	}

	if !val.IsValid() {
		return nil
	}

	return val.Interface()
}

func isZero(value any) bool {
	val := reflect.ValueOf(deref(value))

	return !val.IsValid() || val.IsZero()
}

func toSlice(value any) []any {
	val := reflect.ValueOf(deref(value))
	if !val.IsValid() || (val.Kind() != reflect.Slice && val.Kind() != reflect.Array) {
		return []any{value}
	}

	items := make([]any, val.Len())
	for idx := range val.Len() {
		items[idx] = val.Index(idx).Interface()
	}

	return items
}

// compareValues orders two column values. Times, decimals and numbers compare by value;
// anything else compares by its string form.
func compareValues(left, right any) (int, bool) {
	left, right = deref(left), deref(right)

	switch l := left.(type) {
	case time.Time:
		r, ok := toTime(right)
		if !ok {
			return 0, false
		}

		return l.Compare(r), true
	case decimal.Decimal:
		r, err := decimal.NewFromString(fmt.Sprint(right))
		if err != nil {
			return 0, false
		}

		return l.Cmp(r), true
	}

	if l, ok := toFloat(left, false); ok {
		if r, ok := toFloat(right, true); ok {
			switch {
			case l < r:
				return -1, true
			case l > r:
				return 1, true
			default:
				return 0, true
			}
		}
	}

	return strings.Compare(fmt.Sprint(left), fmt.Sprint(right)), true
}

func toTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		for _, layout := range []string{time.RFC3339Nano, constant.DateOnlyFormat} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}

	return time.Time{}, false
}

func toFloat(value any, parseString bool) (float64, bool) {
	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return 0, false
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(val.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(val.Uint()), true
	case reflect.Float32, reflect.Float64:
		return val.Float(), true
	case reflect.String:
		if !parseString {
			return 0, false
		}

		f, err := strconv.ParseFloat(val.String(), 64)

		return f, err == nil
	default:
		return 0, false
	}
}
