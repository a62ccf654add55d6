package script

import (
	"strings"

	"github.com/d5/tengo/v2"
)

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	switch v := obj.(type) {
	case nil:
		return nil
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		return mapToAny(v.Value)
	case *tengo.ImmutableMap:
		return mapToAny(v.Value)
	default:
		if v == tengo.UndefinedValue {
			return nil
		}
		return v.String()
	}
}

func mapToAny(m map[string]tengo.Object) map[string]any {
	out := make(map[string]any, len(m))
	for k, item := range m {
		out[k] = objectToAny(item)
	}
	return out
}
