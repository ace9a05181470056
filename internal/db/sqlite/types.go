package sqlite

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/relishdb/relish/internal/db"
)

// columnType follows SQLite's affinity model rather than a fixed vocabulary:
// declared type names are matched loosely the way the engine itself does.
type columnType int

const (
	typeInteger columnType = iota
	typeReal
	typeText
	typeBlob
	typeNumeric
	typeBoolean
	typeDateTime
	typeUnknown
)

// typeFor maps a declared column type to its affinity category. Expression
// columns report an empty name and fall through to Unknown.
func typeFor(name string) columnType {
	n := strings.ToUpper(name)
	switch {
	case n == "":
		return typeUnknown
	case n == "BOOLEAN" || n == "BOOL":
		return typeBoolean
	case n == "DATE" || n == "DATETIME" || n == "TIMESTAMP":
		return typeDateTime
	case strings.Contains(n, "INT"):
		return typeInteger
	case strings.Contains(n, "CHAR") || strings.Contains(n, "CLOB") || strings.Contains(n, "TEXT"):
		return typeText
	case strings.Contains(n, "BLOB"):
		return typeBlob
	case strings.Contains(n, "REAL") || strings.Contains(n, "FLOA") || strings.Contains(n, "DOUB"):
		return typeReal
	case strings.Contains(n, "DEC") || strings.Contains(n, "NUM"):
		return typeNumeric
	default:
		return typeUnknown
	}
}

// decode converts one scanned value into its canonical representation.
// SQLite stores whatever it was given, so Unknown falls back to a
// text → integer → float chain before giving up with Null.
func decode(t columnType, raw any) db.Value {
	if raw == nil {
		return db.Null()
	}

	switch t {
	case typeInteger:
		if i, ok := asInt64(raw); ok {
			return db.Int(i)
		}
		return db.Null()
	case typeReal:
		if f, ok := asFloat64(raw); ok {
			return db.Float(f)
		}
		return db.Null()
	case typeNumeric:
		// Arbitrary precision: keep the stored text.
		return db.BestEffortText(raw)
	case typeBoolean:
		if i, ok := asInt64(raw); ok {
			return db.Bool(i != 0)
		}
		return db.Null()
	case typeDateTime:
		if ts, ok := raw.(time.Time); ok {
			return db.Text(ts.Format("2006-01-02 15:04:05"))
		}
		return db.BestEffortText(raw)
	case typeBlob:
		if b, ok := raw.([]byte); ok {
			return db.Text(base64.StdEncoding.EncodeToString(b))
		}
		return db.Null()
	case typeText:
		switch v := raw.(type) {
		case string:
			return db.Text(v)
		case []byte:
			return db.Text(string(v))
		}
		return db.BestEffortText(raw)
	default:
		return decodeDynamic(raw)
	}
}

// decodeDynamic handles columns with no usable declared type.
func decodeDynamic(raw any) db.Value {
	switch v := raw.(type) {
	case string:
		return db.Text(v)
	case []byte:
		return db.Text(string(v))
	case int64:
		return db.Int(v)
	case float64:
		return db.Float(v)
	case bool:
		return db.Bool(v)
	case time.Time:
		return db.Text(v.Format("2006-01-02 15:04:05"))
	default:
		return db.BestEffortText(raw)
	}
}

func asInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case []byte:
		i, err := strconv.ParseInt(string(v), 10, 64)
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

func asFloat64(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
