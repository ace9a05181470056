package mysql

import (
	"encoding/base64"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/relishdb/relish/internal/db"
)

// columnType is the closed set of native type categories this backend
// decodes. MySQL's vocabulary differs from the Postgres one (TINYINT,
// MEDIUMINT, the blob/text size ladder, ENUM/SET), so the table is its own.
type columnType int

const (
	typeTinyInt columnType = iota
	typeSmallInt
	typeMediumInt
	typeInt
	typeBigInt
	typeDecimal
	typeFloat
	typeDouble
	typeChar
	typeVarchar
	typeTinyText
	typeText
	typeMediumText
	typeLongText
	typeDate
	typeTime
	typeYear
	typeDateTime
	typeTimestamp
	typeBinary
	typeVarbinary
	typeTinyBlob
	typeBlob
	typeMediumBlob
	typeLongBlob
	typeJSON
	typeBoolean
	typeEnum
	typeSet
	typeUnknown
)

// typeFor maps a native type name (as reported by the driver's column type
// metadata) to its category. Unmatched names are Unknown.
func typeFor(name string) columnType {
	switch strings.ToUpper(name) {
	case "TINYINT":
		return typeTinyInt
	case "SMALLINT":
		return typeSmallInt
	case "MEDIUMINT":
		return typeMediumInt
	case "INT", "INTEGER":
		return typeInt
	case "BIGINT":
		return typeBigInt
	case "DECIMAL", "DEC", "NUMERIC":
		return typeDecimal
	case "FLOAT":
		return typeFloat
	case "DOUBLE", "DOUBLE PRECISION", "REAL":
		return typeDouble
	case "CHAR":
		return typeChar
	case "VARCHAR":
		return typeVarchar
	case "TINYTEXT":
		return typeTinyText
	case "TEXT":
		return typeText
	case "MEDIUMTEXT":
		return typeMediumText
	case "LONGTEXT":
		return typeLongText
	case "DATE":
		return typeDate
	case "TIME":
		return typeTime
	case "YEAR":
		return typeYear
	case "DATETIME":
		return typeDateTime
	case "TIMESTAMP":
		return typeTimestamp
	case "BINARY":
		return typeBinary
	case "VARBINARY":
		return typeVarbinary
	case "TINYBLOB":
		return typeTinyBlob
	case "BLOB":
		return typeBlob
	case "MEDIUMBLOB":
		return typeMediumBlob
	case "LONGBLOB":
		return typeLongBlob
	case "JSON":
		return typeJSON
	case "BOOLEAN", "BOOL":
		return typeBoolean
	case "ENUM":
		return typeEnum
	case "SET":
		return typeSet
	default:
		return typeUnknown
	}
}

const (
	minMediumInt = -8388608
	maxMediumInt = 8388607
)

// decode converts one scanned value into its canonical representation. The
// driver hands back []byte for most text-protocol values, time.Time for
// temporal columns when parse-time is on, and int64/float64 for some numeric
// paths. Out-of-range and malformed values become Null.
func decode(t columnType, raw any) db.Value {
	if raw == nil {
		return db.Null()
	}

	switch t {
	case typeTinyInt:
		return decodeInt(raw, math.MinInt8, math.MaxInt8)
	case typeSmallInt:
		return decodeInt(raw, math.MinInt16, math.MaxInt16)
	case typeMediumInt:
		return decodeInt(raw, minMediumInt, maxMediumInt)
	case typeInt:
		return decodeInt(raw, math.MinInt32, math.MaxInt32)
	case typeBigInt, typeYear:
		return decodeInt(raw, math.MinInt64, math.MaxInt64)
	case typeDecimal:
		// Kept as text to avoid binary floating-point precision loss.
		return db.BestEffortText(raw)
	case typeFloat, typeDouble:
		f, ok := asFloat64(raw)
		if !ok {
			return db.Null()
		}
		return db.Float(f)
	case typeBoolean:
		i, ok := asInt64(raw)
		if !ok {
			return db.Null()
		}
		return db.Bool(i != 0)
	case typeDate:
		if ts, ok := raw.(time.Time); ok {
			return db.Text(ts.Format("2006-01-02"))
		}
		return db.BestEffortText(raw)
	case typeTime:
		// TIME values arrive as text; they are durations, not clock times.
		return db.BestEffortText(raw)
	case typeDateTime, typeTimestamp:
		if ts, ok := raw.(time.Time); ok {
			return db.Text(ts.Format("2006-01-02 15:04:05"))
		}
		return db.BestEffortText(raw)
	case typeBinary, typeVarbinary, typeTinyBlob, typeBlob, typeMediumBlob, typeLongBlob:
		if b, ok := raw.([]byte); ok {
			return db.Text(base64.StdEncoding.EncodeToString(b))
		}
		return db.Null()
	case typeJSON:
		switch v := raw.(type) {
		case []byte:
			return db.FromJSON(v)
		case string:
			return db.FromJSON([]byte(v))
		}
		return db.Null()
	case typeChar, typeVarchar, typeTinyText, typeText, typeMediumText, typeLongText,
		typeEnum, typeSet:
		switch v := raw.(type) {
		case string:
			return db.Text(v)
		case []byte:
			return db.Text(string(v))
		}
		return db.Null()
	default:
		return db.BestEffortText(raw)
	}
}

func decodeInt(raw any, lo, hi int64) db.Value {
	i, ok := asInt64(raw)
	if !ok || i < lo || i > hi {
		return db.Null()
	}
	return db.Int(i)
}

func asInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int64:
		return v, true
	case int32:
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
	case float32:
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
