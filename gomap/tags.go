package gomap

import (
	"reflect"
	"strings"
	"sync"
)

type fieldInfo struct {
	name      string
	index     int
	omitEmpty bool
}

var fieldCache sync.Map // reflect.Type -> []fieldInfo

// structFields returns the mapped fields of struct type ty in declaration
// order.
func structFields(ty reflect.Type) []fieldInfo {
	if v, ok := fieldCache.Load(ty); ok {
		return v.([]fieldInfo)
	}
	var res []fieldInfo
	for i := range ty.NumField() {
		f := ty.Field(i)
		if !f.IsExported() {
			continue
		}
		info, ok := parseTag(f.Tag.Get("kvs"))
		if !ok {
			continue
		}
		if info.name == "" {
			info.name = f.Name
		}
		info.index = i
		res = append(res, info)
	}
	fieldCache.Store(ty, res)
	return res
}

func parseTag(tag string) (fieldInfo, bool) {
	if tag == "-" {
		return fieldInfo{}, false
	}
	name, opts, _ := strings.Cut(tag, ",")
	info := fieldInfo{name: name}
	for opt := range strings.SplitSeq(opts, ",") {
		if opt == "omitempty" {
			info.omitEmpty = true
		}
	}
	return info, true
}
