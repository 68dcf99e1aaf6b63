package cases

import (
	"strconv"
	"strings"

	"github.com/prasetyow/wo-ops-backend/internal/domain"
)

// Normalize maps heterogeneous upstream rows onto the canonical
// WorkOrderRow shape. The upstream mixes SCREAMING keys, camelCase keys, and
// keys with embedded spaces depending on which backend produced the row, so
// every field is resolved through a case-insensitive fallback chain.
// Normalization is total: missing keys yield empty strings or nil, never an
// error.
func Normalize(rows []map[string]any) []domain.WorkOrderRow {
	out := make([]domain.WorkOrderRow, 0, len(rows))
	for idx, raw := range rows {
		r := lowerKeyed(raw)

		caseID := r.str("caseid")
		deviceNumber := r.str("device number", "devicenumber")

		id := caseID
		if id == "" {
			id = deviceNumber
		}
		if id == "" {
			// Last resort: a stable 1-based row index.
			id = strconv.Itoa(idx + 1)
		}

		out = append(out, domain.WorkOrderRow{
			ID:            id,
			CaseID:        caseID,
			Description:   r.str("description"),
			DeliveryName:  r.str("deliveryname"),
			DeviceNumber:  deviceNumber,
			SerialNumber:  r.str("serial number", "serialnumber"),
			Brand:         r.str("brand"),
			CreatedAt:     r.strPtr("createddatetime", "createdat", "created_at"),
			Ageing:        r.num("aging", "ageing"),
			AgeingType:    r.str("ageingtype", "agingtype"),
			WarehouseName: r.str("warehousename"),
			SiteName:      r.str("sitename"),
			StatusWo:      r.str("status wo", "statuswo", "status"),
			Site:          r.str("site"),
			Warehouse:     r.str("warehouse"),
		})
	}
	return out
}

// lowRow is a row re-keyed by lowercased field names. The first occurrence
// wins when two upstream keys collapse to the same lowercase form, which
// matches the "first alias in the chain wins" contract closely enough for
// the data actually observed.
type lowRow map[string]any

func lowerKeyed(raw map[string]any) lowRow {
	m := make(lowRow, len(raw))
	for k, v := range raw {
		lk := strings.ToLower(k)
		if _, dup := m[lk]; !dup {
			m[lk] = v
		}
	}
	return m
}

// str resolves the first present, non-nil key to its string form. Numbers
// are rendered without a trailing ".0" so numeric ids stay readable.
func (r lowRow) str(keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			return t
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(t)
		}
	}
	return ""
}

// strPtr is like str but keeps absence distinct from the empty string.
func (r lowRow) strPtr(keys ...string) *string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			return &s
		}
	}
	return nil
}

// num resolves the first present key to a number, coercing numeric strings
// the way the listing always has. Unparseable values count as absent.
func (r lowRow) num(keys ...string) *float64 {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case float64:
			f := t
			return &f
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
				return &f
			}
		}
	}
	return nil
}
