/* normalize.go
 * Contains helpers that convert backend specific values (bson documents and arrays, int32, firestore values)
 * into plain go values so that the api package only has to deal with one shape
 * Authors: scouting-admin contributors
 */

package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// normalizeValue converts a decoded value into map[string]interface{}, []interface{}, string, bool, int64,
// float64, time.Time or nil
func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		return normalizeMap(val)
	case bson.M:
		return normalizeMap(map[string]interface{}(val))
	case bson.D:
		m := make(map[string]interface{}, len(val))
		for _, e := range val {
			m[e.Key] = normalizeValue(e.Value)
		}
		return m
	case bson.A:
		return normalizeSlice([]interface{}(val))
	case []interface{}:
		return normalizeSlice(val)
	case []string:
		out := make([]interface{}, len(val))
		for i := range val {
			out[i] = val[i]
		}
		return out
	case int:
		return int64(val)
	case int32:
		return int64(val)
	case int64:
		return val
	case float32:
		return float64(val)
	case primitive.DateTime:
		return val.Time().UTC()
	case time.Time:
		return val
	default:
		return val
	}
}

func normalizeMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeSlice(s []interface{}) []interface{} {
	out := make([]interface{}, len(s))
	for i := range s {
		out[i] = normalizeValue(s[i])
	}
	return out
}
