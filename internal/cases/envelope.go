// Package cases implements the outstanding work-order listing pipeline:
// upstream response envelope extraction, row normalization, filtering,
// sorting, and pagination. The pipeline is pure data shaping; the upstream
// HTTP call lives in the warehouse package and handlers glue the two.
package cases

import "encoding/json"

// Envelope names where in the upstream response the row array was found.
// The probe order is fixed and part of the listing contract.
type Envelope string

const (
	EnvelopeArray  Envelope = "array"  // top-level JSON array
	EnvelopeData   Envelope = "data"   // {"data": [...]}
	EnvelopeItems  Envelope = "items"  // {"items": [...]}
	EnvelopeRows   Envelope = "rows"   // {"rows": [...]}
	EnvelopeResult Envelope = "result" // {"result": [...]}
	EnvelopeNone   Envelope = "none"   // nothing recognizable; zero rows
)

// envelopeOrder is the fallback order probed by ExtractRows.
var envelopeOrder = []Envelope{EnvelopeData, EnvelopeItems, EnvelopeRows, EnvelopeResult}

// ExtractRows locates the row array inside an upstream response body. The
// upstream wraps its payload inconsistently across endpoints, so the probe
// tries a top-level array first and then each known wrapper key in order.
// Invalid JSON or an unrecognized shape yields no rows and EnvelopeNone,
// never an error: the listing treats it as an empty result set.
func ExtractRows(body []byte) ([]map[string]any, Envelope) {
	var top []map[string]any
	if err := json.Unmarshal(body, &top); err == nil && top != nil {
		return top, EnvelopeArray
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, EnvelopeNone
	}
	for _, key := range envelopeOrder {
		raw, ok := obj[string(key)]
		if !ok {
			continue
		}
		var rows []map[string]any
		if err := json.Unmarshal(raw, &rows); err == nil {
			return rows, key
		}
	}
	return nil, EnvelopeNone
}
