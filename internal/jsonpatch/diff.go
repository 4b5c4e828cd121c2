package jsonpatch

import (
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"tax-engine/internal/model"
)

// Between computes the RFC 6902 patch turning the JSON form of a into the JSON
// form of b. Operations are ordered by path so equal inputs always yield the
// same patch.
func Between(a, b interface{}) ([]model.PatchOperation, error) {
	av, err := generic(a)
	if err != nil {
		return nil, err
	}
	bv, err := generic(b)
	if err != nil {
		return nil, err
	}
	ops := Diff(av, bv, "")
	if ops == nil {
		ops = []model.PatchOperation{}
	}
	return ops, nil
}

func generic(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Diff compares two values decoded into interface{}. Path is "" for the root.
func Diff(a, b interface{}, path string) []model.PatchOperation {
	if a == nil && b == nil {
		return nil
	}
	if a == nil || b == nil {
		return []model.PatchOperation{replaceOp(path, a, b)}
	}

	aMap, aIsMap := a.(map[string]interface{})
	bMap, bIsMap := b.(map[string]interface{})
	if aIsMap && bIsMap {
		return diffObjects(aMap, bMap, path)
	}

	aArr, aIsArr := a.([]interface{})
	bArr, bIsArr := b.([]interface{})
	if aIsArr && bIsArr {
		return diffArrays(aArr, bArr, path)
	}

	if aIsMap || bIsMap || aIsArr || bIsArr || a != b {
		return []model.PatchOperation{replaceOp(path, a, b)}
	}
	return nil
}

func diffObjects(a, b map[string]interface{}, path string) []model.PatchOperation {
	var ops []model.PatchOperation

	for _, k := range sortedKeys(a) {
		if _, ok := b[k]; !ok {
			ops = append(ops, removeOp(path+"/"+escapeKey(k), a[k]))
		}
	}

	for _, k := range sortedKeys(b) {
		childPath := path + "/" + escapeKey(k)
		av, inA := a[k]
		if !inA {
			ops = append(ops, addOp(childPath, b[k]))
			continue
		}
		ops = append(ops, Diff(av, b[k], childPath)...)
	}

	return ops
}

func diffArrays(a, b []interface{}, path string) []model.PatchOperation {
	var ops []model.PatchOperation

	common := len(a)
	if len(b) < common {
		common = len(b)
	}
	for i := 0; i < common; i++ {
		ops = append(ops, Diff(a[i], b[i], path+"/"+strconv.Itoa(i))...)
	}

	// Descending so earlier removals do not shift later indices.
	for i := len(a) - 1; i >= common; i-- {
		ops = append(ops, removeOp(path+"/"+strconv.Itoa(i), a[i]))
	}
	for i := common; i < len(b); i++ {
		ops = append(ops, addOp(path+"/"+strconv.Itoa(i), b[i]))
	}

	return ops
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func replaceOp(path string, previous, value interface{}) model.PatchOperation {
	return model.PatchOperation{Op: "replace", Path: path, Value: value, Previous: previous}
}

func addOp(path string, value interface{}) model.PatchOperation {
	return model.PatchOperation{Op: "add", Path: path, Value: value}
}

func removeOp(path string, previous interface{}) model.PatchOperation {
	return model.PatchOperation{Op: "remove", Path: path, Previous: previous}
}

// escapeKey escapes a JSON Pointer token per RFC 6901.
func escapeKey(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
