package utils

import (
	"fmt"
	"math"
	"strconv"

	"github.com/BartekS5/uilm/pkg/flatten"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConvertToMongoType maps a scalar JSON value onto a native BSON value.
// Integers that fit become int64 and numbers a double prints back verbatim
// become float64. Any other number is stored as Decimal128 so its literal
// survives a round trip.
func ConvertToMongoType(v flatten.Value) (interface{}, error) {
	switch v.Kind() {
	case flatten.KindNull:
		return nil, nil
	case flatten.KindBool:
		return v.Bool(), nil
	case flatten.KindString:
		return v.Text(), nil
	case flatten.KindNumber:
		if n, ok := v.Int64(); ok {
			return n, nil
		}
		f, err := v.Float64()
		if err == nil && strconv.FormatFloat(f, 'g', -1, 64) == v.Literal() {
			return f, nil
		}
		d, err := primitive.ParseDecimal128(v.Literal())
		if err != nil {
			return nil, fmt.Errorf("number %s cannot be stored exactly: %w", v.Literal(), err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("cannot convert %s value to a MongoDB scalar", v.Kind())
	}
}

// ConvertFromMongoType maps a decoded BSON scalar back onto a JSON value.
func ConvertFromMongoType(val interface{}) (flatten.Value, error) {
	switch v := val.(type) {
	case nil:
		return flatten.NullValue(), nil
	case bool:
		return flatten.BoolValue(v), nil
	case string:
		return flatten.StringValue(v), nil
	case int32:
		return flatten.NumberValue(strconv.FormatInt(int64(v), 10)), nil
	case int64:
		return flatten.NumberValue(strconv.FormatInt(v, 10)), nil
	case int:
		return flatten.NumberValue(strconv.Itoa(v)), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return flatten.Value{}, fmt.Errorf("cannot represent %v as JSON", v)
		}
		return flatten.NumberValue(strconv.FormatFloat(v, 'g', -1, 64)), nil
	case primitive.Decimal128:
		return flatten.NumberValue(v.String()), nil
	default:
		return flatten.Value{}, fmt.Errorf("cannot convert %T to a JSON scalar", val)
	}
}

// GetIntOffset safely converts an interface to int, defaulting to 0.
// Useful for pagination offsets.
func GetIntOffset(v interface{}) int {
	if v == nil {
		return 0
	}
	// Try using the existing ConvertToInt logic, ignoring errors
	val, err := ConvertToInt(v)
	if err != nil {
		return 0
	}
	return val
}

func ConvertToInt(val interface{}) (int, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		return strconv.Atoi(v)
	case []byte:
		return strconv.Atoi(string(v))
	default:
		return 0, fmt.Errorf("cannot convert %T to int", val)
	}
}
