package db

import (
	"reflect"
	"strings"
)

// GetCols returns the `db` tagged columns of a row struct, in field order.
// Fields tagged `db:"-"` (and untagged fields) are skipped.
func GetCols(s any) []string {
	t := reflect.TypeOf(s)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var cols []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Anonymous {
			cols = append(cols, GetCols(reflect.New(field.Type).Elem().Interface())...)
			continue
		}

		tag, ok := field.Tag.Lookup("db")

		if !ok || tag == "-" || tag == "" {
			continue
		}

		// Strip tag options such as `db:"id,omitempty"`
		if idx := strings.Index(tag, ","); idx != -1 {
			tag = tag[:idx]
		}

		cols = append(cols, tag)
	}

	return cols
}
