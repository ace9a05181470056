package postgres

import (
	"encoding/base64"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/relishdb/relish/internal/db"
)

// columnType is the closed set of native type categories this backend
// decodes. Anything the table below does not name is Unknown.
type columnType int

const (
	typeSmallInt columnType = iota
	typeInteger
	typeBigInt
	typeDecimal
	typeReal
	typeDouble
	typeChar
	typeVarchar
	typeText
	typeBytea
	typeDate
	typeTime
	typeTimestamp
	typeTimestampTZ
	typeInterval
	typeBoolean
	typeUUID
	typeJSON
	typeJSONB
	typeArray
	typeInet
	typeCIDR
	typeMacAddr
	typeGeometric
	typeMoney
	typeUnknown
)

// typeFor maps a native type name (as reported by the pgx type map) to its
// category. Matching is case-insensitive; unmatched names are Unknown.
func typeFor(name string) columnType {
	switch strings.ToUpper(name) {
	case "INT2", "SMALLINT":
		return typeSmallInt
	case "INT4", "INTEGER", "SERIAL", "SERIAL4":
		return typeInteger
	case "INT8", "BIGINT", "BIGSERIAL", "SERIAL8":
		return typeBigInt
	case "NUMERIC", "DECIMAL":
		return typeDecimal
	case "REAL", "FLOAT4":
		return typeReal
	case "DOUBLE PRECISION", "FLOAT8":
		return typeDouble
	case "CHAR", "CHARACTER", "BPCHAR":
		return typeChar
	case "VARCHAR", "CHARACTER VARYING":
		return typeVarchar
	case "TEXT", "NAME":
		return typeText
	case "BYTEA":
		return typeBytea
	case "DATE":
		return typeDate
	case "TIME", "TIME WITHOUT TIME ZONE", "TIMETZ":
		return typeTime
	case "TIMESTAMP", "TIMESTAMP WITHOUT TIME ZONE":
		return typeTimestamp
	case "TIMESTAMPTZ", "TIMESTAMP WITH TIME ZONE":
		return typeTimestampTZ
	case "INTERVAL":
		return typeInterval
	case "BOOL", "BOOLEAN":
		return typeBoolean
	case "UUID":
		return typeUUID
	case "JSON":
		return typeJSON
	case "JSONB":
		return typeJSONB
	case "INET":
		return typeInet
	case "CIDR":
		return typeCIDR
	case "MACADDR":
		return typeMacAddr
	case "POINT", "LINE", "CIRCLE", "BOX":
		return typeGeometric
	case "MONEY":
		return typeMoney
	default:
		if strings.HasPrefix(name, "_") {
			// pgx reports array types with a leading underscore.
			return typeArray
		}
		return typeUnknown
	}
}

// decode converts one driver value into its canonical representation.
// Decoding never fails loudly: values outside the category's range, and
// values of an unexpected Go type, become Null.
func decode(t columnType, raw any) db.Value {
	if raw == nil {
		return db.Null()
	}

	switch t {
	case typeSmallInt:
		return decodeInt(raw, math.MinInt16, math.MaxInt16)
	case typeInteger:
		return decodeInt(raw, math.MinInt32, math.MaxInt32)
	case typeBigInt:
		return decodeInt(raw, math.MinInt64, math.MaxInt64)
	case typeDecimal:
		// Arbitrary-precision values are kept as text so no binary float
		// precision is lost.
		return decodeNumericText(raw)
	case typeReal, typeDouble:
		f, ok := asFloat64(raw)
		if !ok {
			return db.Null()
		}
		return db.Float(f)
	case typeBoolean:
		if b, ok := raw.(bool); ok {
			return db.Bool(b)
		}
		return db.Null()
	case typeDate:
		if ts, ok := raw.(time.Time); ok {
			return db.Text(ts.Format("2006-01-02"))
		}
		return db.Null()
	case typeTime:
		switch v := raw.(type) {
		case time.Time:
			return db.Text(v.Format("15:04:05"))
		case pgtype.Time:
			if !v.Valid {
				return db.Null()
			}
			us := v.Microseconds
			return db.Text(time.UnixMicro(us).UTC().Format("15:04:05"))
		}
		return db.Null()
	case typeTimestamp, typeTimestampTZ:
		if ts, ok := raw.(time.Time); ok {
			return db.Text(ts.Format("2006-01-02 15:04:05"))
		}
		return db.Null()
	case typeUUID:
		switch v := raw.(type) {
		case [16]byte:
			return db.Text(uuid.UUID(v).String())
		case string:
			if id, err := uuid.Parse(v); err == nil {
				return db.Text(id.String())
			}
		}
		return db.Null()
	case typeJSON, typeJSONB:
		return decodeJSONValue(raw)
	case typeBytea:
		if b, ok := raw.([]byte); ok {
			return db.Text(base64.StdEncoding.EncodeToString(b))
		}
		return db.Null()
	case typeChar, typeVarchar, typeText:
		switch v := raw.(type) {
		case string:
			return db.Text(v)
		case []byte:
			return db.Text(string(v))
		}
		return db.Null()
	default:
		// Interval, network, geometric, money, arrays and unknown types get
		// their natural text conversion.
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
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case uint32:
		return int64(v), true
	default:
		return 0, false
	}
}

func asFloat64(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func decodeNumericText(raw any) db.Value {
	switch v := raw.(type) {
	case pgtype.Numeric:
		if !v.Valid {
			return db.Null()
		}
		dv, err := v.Value()
		if err != nil {
			return db.Null()
		}
		if s, ok := dv.(string); ok {
			return db.Text(s)
		}
		return db.BestEffortText(dv)
	case string:
		return db.Text(v)
	default:
		return db.BestEffortText(raw)
	}
}

func decodeJSONValue(raw any) db.Value {
	switch v := raw.(type) {
	case []byte:
		return db.FromJSON(v)
	case string:
		return db.FromJSON([]byte(v))
	default:
		// pgx may hand back an already-decoded document; re-encode to keep
		// one code path.
		return db.BestEffortText(raw)
	}
}
