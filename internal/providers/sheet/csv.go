package sheet

import (
	"strings"

	"course-catalog/internal/domain"
)

// ParseCSV parses a published-sheet CSV body. The first line is the header
// row; header cells are trimmed and lower-cased to become record keys.
//
// Lines are split on every comma: quoted fields with embedded commas are not
// supported. Short rows get "" for the missing trailing keys, extra cells are
// ignored, and no row is ever dropped.
func ParseCSV(text string) []domain.RawRecord {
	text = strings.TrimSpace(text)
	if text == "" {
		return []domain.RawRecord{}
	}

	lines := strings.Split(text, "\n")
	headers := strings.Split(lines[0], ",")
	for i, h := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	out := make([]domain.RawRecord, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := strings.Split(line, ",")
		rec := make(domain.RawRecord, len(headers))
		for i, h := range headers {
			v := ""
			if i < len(values) {
				v = strings.TrimSpace(values[i])
			}
			rec[h] = v
		}
		out = append(out, rec)
	}
	return out
}
