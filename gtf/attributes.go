package gtf

import (
	"strings"

	"github.com/pkg/errors"
)

// attribute returns the value of key in a GTF attributes column (the last,
// semicolon-separated field of a GTF row), stripped of surrounding
// whitespace and double quotes. This replaces the original prototype's
// dynamic "does this field contain the key" string search
// (`src/annotations.py`) with an explicit small parser, per the "Dynamic
// attribute parsing... should be replaced by an explicit small parser"
// design note.
func attribute(attributes, key string) (string, error) {
	for _, field := range strings.Split(attributes, ";") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		name, value, ok := splitAttribute(field)
		if !ok {
			continue
		}
		if name == key {
			return strings.Trim(strings.TrimSpace(value), `"`), nil
		}
	}
	return "", errors.Errorf("gtf: attribute %q not found in %q", key, attributes)
}

// splitAttribute splits one GTF attribute field ("key \"value\"") on the
// first run of whitespace.
func splitAttribute(field string) (name, value string, ok bool) {
	idx := strings.IndexAny(field, " \t")
	if idx < 0 {
		return "", "", false
	}
	return field[:idx], strings.TrimSpace(field[idx+1:]), true
}
