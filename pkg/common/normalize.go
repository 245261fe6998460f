package common

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

// Normalize converts store-native values into plain JSON scalars before
// serialization. DynamoDB numbers arrive as attributevalue.Number and request
// numbers as json.Number; both become int64 when integral and float64
// otherwise. Numbers a float64 cannot carry exactly stay as json.Number
// literals so no digits are lost on the way out. Maps with string keys and slices are copied recursively, all
// other values pass through untouched.
func Normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case attributevalue.Number:
		return normalizeNumber(string(val))
	case json.Number:
		return normalizeNumber(string(val))
	case string, bool, float64, float32, int, int32, int64, []byte:
		return val
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = Normalize(iter.Value().Interface())
		}
		return out
	case reflect.Slice:
		if rv.IsNil() || rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	}
	return v
}

// Decimals with at most this many significant digits survive a float64 round
// trip.
const maxFloatDigits = 15

func normalizeNumber(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	if significantDigits(s) > maxFloatDigits {
		return json.Number(s)
	}
	return f
}

// significantDigits counts the digits of a number's mantissa, ignoring sign,
// decimal point, leading zeros and trailing zeros.
func significantDigits(s string) int {
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimLeft(s, "+-")
	s = strings.Replace(s, ".", "", 1)
	s = strings.Trim(s, "0")
	return len(s)
}
