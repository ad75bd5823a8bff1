package scanner

import (
	"testing"
	"time"

	"github.com/jackc/pgproto3/v2"
	"github.com/jackc/pgtype"
)

func TestCamel(t *testing.T) {
	for when, then := range map[string]string{
		"id":               "Id",
		"state_id":         "StateId",
		"number_bathrooms": "NumberBathrooms",
		"_hidden":          "_Hidden",
		"Name":             "Name",
	} {
		if got := camel(when); got != then {
			t.Errorf("camel(%s) = %s, want %s", when, got, then)
		}
	}
}

func TestDescribe(t *testing.T) {
	for name, testcase := range map[string]struct {
		when pgproto3.FieldDescription
		then string
	}{
		"known type": {
			when: pgproto3.FieldDescription{Name: []byte("name"), DataTypeOID: pgtype.VarcharOID},
			then: `"name" (varchar)`,
		},
		"array type": {
			when: pgproto3.FieldDescription{Name: []byte("amenity_ids"), DataTypeOID: pgtype.TextArrayOID},
			then: `"amenity_ids" (text[])`,
		},
		"unknown type": {
			when: pgproto3.FieldDescription{Name: []byte("point"), DataTypeOID: 600},
			then: `"point" (oid: 600)`,
		},
	} {
		t.Run(name, func(t *testing.T) {
			if got := describe(testcase.when); got != testcase.then {
				t.Errorf("describe = %s, want %s", got, testcase.then)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("scalar types are scanned as a column", func(t *testing.T) {
		if _, ok := New[string]().(*columnScanner[string]); !ok {
			t.Error("string")
		}
		if _, ok := New[int]().(*columnScanner[int]); !ok {
			t.Error("int")
		}
		if _, ok := New[time.Time]().(*columnScanner[time.Time]); !ok {
			t.Error("time.Time")
		}
	})

	t.Run("struct fields are found by tag, name and camel case", func(t *testing.T) {
		type record struct {
			Id      string
			StateId string
			Label   string `sql:"name"`
		}
		s, ok := New[record]().(*structScanner[record])
		if !ok {
			t.Fatal("struct should be scanned by structScanner")
		}
		for when, then := range map[string]string{
			"Id":       "Id",
			"id":       "Id",
			"state_id": "StateId",
			"name":     "Label",
		} {
			if got, ok := s.field(when); !ok || got != then {
				t.Errorf("field(%s) = %s, %v; want %s", when, got, ok, then)
			}
		}
		if _, ok := s.field("city_id"); ok {
			t.Error("city_id should not be found")
		}
	})
}
