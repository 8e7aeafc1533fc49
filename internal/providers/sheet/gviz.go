package sheet

import (
	"encoding/json"
	"fmt"
	"strconv"

	"course-catalog/internal/domain"
)

// Table-query (gviz) responses wrap the JSON document in a JSONP call.
const (
	gvizPrefix = "/*O_o*/\ngoogle.visualization.Query.setResponse("
	gvizSuffix = ");"
)

// ParseError reports a table-query payload that could not be decoded.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sheet: parse table-query response: %s: %v", e.Reason, e.Err)
	}
	return "sheet: parse table-query response: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

type gvizResponse struct {
	Table struct {
		Cols []struct {
			Label string `json:"label"`
		} `json:"cols"`
		Rows []struct {
			C []*struct {
				V any `json:"v"`
			} `json:"c"`
		} `json:"rows"`
	} `json:"table"`
}

// ParseGViz decodes a table-query envelope. The prefix and suffix are removed
// by length, not by content. Column labels keep their original casing.
func ParseGViz(text string) ([]domain.RawRecord, error) {
	if len(text) < len(gvizPrefix)+len(gvizSuffix) {
		return nil, &ParseError{Reason: fmt.Sprintf("payload too short (%d bytes)", len(text))}
	}
	body := text[len(gvizPrefix) : len(text)-len(gvizSuffix)]

	var resp gvizResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, &ParseError{Reason: "invalid json", Err: err}
	}

	headers := make([]string, len(resp.Table.Cols))
	for i, c := range resp.Table.Cols {
		headers[i] = c.Label
	}

	out := make([]domain.RawRecord, 0, len(resp.Table.Rows))
	for _, row := range resp.Table.Rows {
		rec := make(domain.RawRecord, len(headers))
		for i, h := range headers {
			v := ""
			if i < len(row.C) && row.C[i] != nil {
				v = cellString(row.C[i].V)
			}
			rec[h] = v
		}
		out = append(out, rec)
	}
	return out, nil
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
