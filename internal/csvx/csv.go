// Package csvx builds the CSV text used by the admin data export.
//
// The format is deliberately simple: the header row is the keys of the first
// record, every field is wrapped in double quotes and rows are joined with
// "\n" (no trailing newline). encoding/csv only quotes fields when needed, so
// it cannot produce this shape.
package csvx

import "strings"

// Field is one key/value pair of a record.
type Field struct {
	Key   string
	Value string
}

// Record is an ordered list of fields.
type Record []Field

// Get returns the value stored under key, or "" when the record lacks it.
func (r Record) Get(key string) string {
	for _, f := range r {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// Keys returns the field names in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Encode renders records as CSV. Later records are projected onto the first
// record's keys. No records yields "".
func Encode(records []Record) string {
	if len(records) == 0 {
		return ""
	}

	headers := records[0].Keys()
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(headers, ","))

	for _, rec := range records {
		fields := make([]string, len(headers))
		for i, h := range headers {
			fields[i] = quote(rec.Get(h))
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
