package scanner

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgproto3/v2"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

type Queryer interface {
	Query(context.Context, string, ...any) (pgx.Rows, error)
}

// type-safe scanner for pgx.Rows
//
// # example
//
//	type state struct {
//		Id   string
//		Name string
//	}
//
//	func AllStates(ctx context.Context, conn pool.Queryer) ([]state, error) {
//		return scanner.New[state]().QueryAll(ctx, conn, `select "id", "name" from "states"`)
//	}
//
// # mapping rule
//
// columns are mapped into
//
//  1. field with tag `sql:"column_name"`
//  2. or, field named as same as the column name
//  3. or, field which has a name in CamelCase version of column name ("state_id" -> "StateId").
//
// Scanning NULL into a non-pointer field fails; coalesce nullable columns in the query.
type Scanner[T any] interface {
	// scan all rows in pgx.Rows and convert to []T
	ScanAll(pgx.Rows) ([]T, error)

	// scan all rows in response of query.
	QueryAll(context.Context, Queryer, string, ...any) ([]T, error)
}

func New[T any]() Scanner[T] {
	t := reflect.TypeOf(*new(T))

	if t.AssignableTo(reflect.TypeOf(time.Time{})) || t.AssignableTo(reflect.TypeOf([]byte{})) {
		return &columnScanner[T]{}
	}

	switch t.Kind() {
	case
		reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return &columnScanner[T]{}
	}

	s := &structScanner[T]{
		byTag:  map[string]string{},
		byName: map[string]string{},
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		s.byName[f.Name] = f.Name
		if tag, ok := f.Tag.Lookup("sql"); ok {
			s.byTag[tag] = f.Name
		}
	}
	return s
}

func camel(column string) string {
	b := &strings.Builder{}
	for _, word := range strings.Split(column, "_") {
		if word == "" {
			b.WriteString("_")
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(word[1:])
	}
	return b.String()
}

type structScanner[T any] struct {
	byTag  map[string]string
	byName map[string]string
	mux    sync.Mutex
}

func (s *structScanner[T]) field(column string) (string, bool) {
	if f, ok := s.byTag[column]; ok {
		return f, true
	}
	if f, ok := s.byName[column]; ok {
		return f, true
	}
	f, ok := s.byName[camel(column)]
	return f, ok
}

func (s *structScanner[T]) ScanAll(rows pgx.Rows) ([]T, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	columns := rows.FieldDescriptions()
	fields := make([]string, 0, len(columns))
	for _, fd := range columns {
		f, ok := s.field(string(fd.Name))
		if !ok {
			return nil, fmt.Errorf(
				`field for column %s is not found in type "%T"`, describe(fd), *new(T),
			)
		}
		fields = append(fields, f)
	}

	ret := []T{}
	for rows.Next() {
		elem := new(T)
		v := reflect.ValueOf(elem).Elem()

		dest := make([]any, len(fields))
		for nth, f := range fields {
			dest[nth] = v.FieldByName(f).Addr().Interface()
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		ret = append(ret, *elem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *structScanner[T]) QueryAll(ctx context.Context, conn Queryer, q string, params ...any) ([]T, error) {
	rows, err := conn.Query(ctx, q, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.ScanAll(rows)
}

type columnScanner[T any] struct{}

func (s *columnScanner[T]) ScanAll(rows pgx.Rows) ([]T, error) {
	columns := rows.FieldDescriptions()
	if len(columns) != 1 {
		return nil, fmt.Errorf(`too much columns for %T`, *new(T))
	}

	ret := []T{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		elem := new(T)
		field := reflect.ValueOf(elem).Elem()
		sqlv := reflect.ValueOf(values[0])
		if !sqlv.IsValid() || !sqlv.CanConvert(field.Type()) {
			return nil, fmt.Errorf(
				`column %s (%T in golang) can not be convert to "%T"`,
				describe(columns[0]), values[0], *elem,
			)
		}
		field.Set(sqlv.Convert(field.Type()))
		ret = append(ret, *elem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *columnScanner[T]) QueryAll(ctx context.Context, conn Queryer, q string, params ...any) ([]T, error) {
	rows, err := conn.Query(ctx, q, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.ScanAll(rows)
}

var typeNames = map[uint32]string{
	pgtype.BoolOID:        "bool",
	pgtype.ByteaOID:       "bytea",
	pgtype.Int2OID:        "int2",
	pgtype.Int4OID:        "int4",
	pgtype.Int8OID:        "int8",
	pgtype.Float4OID:      "float4",
	pgtype.Float8OID:      "float8",
	pgtype.NumericOID:     "numeric",
	pgtype.TextOID:        "text",
	pgtype.VarcharOID:     "varchar",
	pgtype.BPCharOID:      "bpchar",
	pgtype.DateOID:        "date",
	pgtype.TimestampOID:   "timestamp",
	pgtype.TimestamptzOID: "timestamptz",
	pgtype.UUIDOID:        "uuid",
	pgtype.JSONOID:        "json",
	pgtype.JSONBOID:       "jsonb",
	pgtype.TextArrayOID:   "text[]",
}

// describe formats a column as `"name" (type)`.
func describe(fd pgproto3.FieldDescription) string {
	t, ok := typeNames[fd.DataTypeOID]
	if !ok {
		t = fmt.Sprintf("oid: %d", fd.DataTypeOID)
	}
	return fmt.Sprintf(`"%s" (%s)`, fd.Name, t)
}
