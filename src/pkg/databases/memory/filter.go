package memory

import (
	"reflect"
	"strings"
	"time"

	"finance-service/src/pkg/databases/docstore"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type kind int

const (
	kindNull kind = iota
	kindNumber
	kindString
	kindBool
	kindTime
	kindOther
)

type scalar struct {
	kind kind
	num  float64
	str  string
	b    bool
}

func normalize(v any) scalar {
	switch val := v.(type) {
	case nil:
		return scalar{kind: kindNull}
	case string:
		return scalar{kind: kindString, str: val}
	case bool:
		return scalar{kind: kindBool, b: val}
	case int:
		return scalar{kind: kindNumber, num: float64(val)}
	case int32:
		return scalar{kind: kindNumber, num: float64(val)}
	case int64:
		return scalar{kind: kindNumber, num: float64(val)}
	case float32:
		return scalar{kind: kindNumber, num: float64(val)}
	case float64:
		return scalar{kind: kindNumber, num: val}
	case time.Time:
		return scalar{kind: kindTime, num: float64(val.UnixMilli())}
	case primitive.DateTime:
		return scalar{kind: kindTime, num: float64(val)}
	}
	// string-based enums such as entity.LedgerType
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return scalar{kind: kindString, str: rv.String()}
	}
	return scalar{kind: kindOther}
}

// compare orders two values of the same kind; ok is false when they are
// not comparable.
func compare(a, b any) (int, bool) {
	x, y := normalize(a), normalize(b)
	if x.kind != y.kind {
		return 0, false
	}
	switch x.kind {
	case kindNull:
		return 0, true
	case kindNumber, kindTime:
		switch {
		case x.num < y.num:
			return -1, true
		case x.num > y.num:
			return 1, true
		}
		return 0, true
	case kindString:
		return strings.Compare(x.str, y.str), true
	case kindBool:
		if x.b == y.b {
			return 0, true
		}
		if !x.b {
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

func lookup(doc bson.M, path string) any {
	var cur any = doc
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(bson.M)
		if !ok {
			return nil
		}
		cur = m[part]
	}
	return cur
}

func matchesAll(doc bson.M, filters []docstore.Filter) bool {
	for _, f := range filters {
		if !matches(lookup(doc, f.Field), f) {
			return false
		}
	}
	return true
}

func matches(value any, f docstore.Filter) bool {
	switch f.Op {
	case docstore.OpIn:
		rv := reflect.ValueOf(f.Value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return false
		}
		for i := 0; i < rv.Len(); i++ {
			if cmp, ok := compare(value, rv.Index(i).Interface()); ok && cmp == 0 {
				return true
			}
		}
		return false
	case docstore.OpNe:
		cmp, ok := compare(value, f.Value)
		return !ok || cmp != 0
	}

	cmp, ok := compare(value, f.Value)
	if !ok {
		return false
	}
	switch f.Op {
	case docstore.OpEq:
		return cmp == 0
	case docstore.OpGt:
		return cmp > 0
	case docstore.OpGte:
		return cmp >= 0
	case docstore.OpLt:
		return cmp < 0
	case docstore.OpLte:
		return cmp <= 0
	}
	return false
}
