package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
)

// maxUnwrap bounds how many layers of nested serialization are peeled off.
const maxUnwrap = 8

var stripReplacer = strings.NewReplacer("[", "", "]", "", `"`, "", "'", "")

// Subgroup reduces any stored or submitted subgroup value to a plain label.
//
// Accepted shapes: a plain string, a []string or []any (first element wins),
// a serialized array such as `["Gym"]`, a serialized object with a "name"
// field, a quoted string, or any nesting of those. When a serialized value
// cannot be parsed the bracket and quote characters are stripped instead.
func Subgroup(v any) string {
	return subgroup(v, 0)
}

func subgroup(v any, depth int) string {
	if depth > maxUnwrap {
		return strings.TrimSpace(stripReplacer.Replace(fmt.Sprint(v)))
	}

	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return subgroupString(val, depth)
	case *string:
		if val == nil {
			return ""
		}
		return subgroupString(*val, depth)
	case []byte:
		return subgroupString(string(val), depth)
	case json.RawMessage:
		return subgroupString(string(val), depth)
	case []string:
		if len(val) == 0 {
			return ""
		}
		return subgroup(val[0], depth+1)
	case []any:
		if len(val) == 0 {
			return ""
		}
		return subgroup(val[0], depth+1)
	case map[string]any:
		name, ok := val["name"]
		if !ok {
			return ""
		}
		return subgroup(name, depth+1)
	case fmt.Stringer:
		return subgroupString(val.String(), depth)
	default:
		return subgroupString(fmt.Sprint(val), depth)
	}
}

func subgroupString(s string, depth int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	switch s[0] {
	case '[', '{', '"':
		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return strings.TrimSpace(stripReplacer.Replace(s))
		}
		return subgroup(decoded, depth+1)
	case '\'', ']':
		return strings.TrimSpace(stripReplacer.Replace(s))
	}
	return s
}

// Subgroups normalizes every element of a subgroup list, dropping empty
// labels and case-insensitive duplicates while keeping the first spelling.
func Subgroups(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		label := Subgroup(v)
		if label == "" {
			continue
		}
		key := strings.ToLower(label)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, label)
	}
	return out
}
