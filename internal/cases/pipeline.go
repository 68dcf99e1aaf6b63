package cases

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/prasetyow/wo-ops-backend/internal/domain"
)

// Query carries every listing knob after request parsing. Zero values mean
// "off" for filters and trigger the defaults for paging/sorting.
type Query struct {
	Page  int // 1-based; values < 1 are coerced to 1
	Limit int // values < 1 fall back to 50

	Q         string // free-text substring, case-insensitive
	Brand     string // brand substring, case-insensitive
	Status    string // exact status match, case-insensitive; "ALL" disables
	AgeBucket string // exact bucket label; "ALL" disables

	OrderBy  string // canonical field name; default "createdAt"
	OrderDir string // "asc" or "desc"; default "desc"
}

// Page is the listing response shape: one page of rows plus the post-filter,
// pre-pagination total.
type Page struct {
	Data  []domain.WorkOrderRow `json:"data"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
	Total int                   `json:"total"`
}

// Counts reports row counts at each pipeline stage, exposed by the listing
// endpoint's debug mode.
type Counts struct {
	Upstream   int `json:"upstreamCount"`
	Normalized int `json:"normalizedCount"`
	Filtered   int `json:"filteredCount"`
}

// Apply runs the full pipeline over already-normalized rows: free-text and
// field filters, a stable sort, then slice-based paging.
func Apply(rows []domain.WorkOrderRow, q Query) (Page, Counts) {
	counts := Counts{Upstream: len(rows), Normalized: len(rows)}

	filtered := Filter(rows, q)
	counts.Filtered = len(filtered)

	sorted := SortRows(filtered, q.OrderBy, q.OrderDir)

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 50
	}

	total := len(sorted)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return Page{
		Data:  sorted[start:end],
		Page:  page,
		Limit: limit,
		Total: total,
	}, counts
}

// Filter applies, in order: the free-text needle over the searchable field
// concatenation, the brand substring, the exact status, and the ageing
// bucket. All matching is case-insensitive.
func Filter(rows []domain.WorkOrderRow, q Query) []domain.WorkOrderRow {
	needle := strings.ToLower(strings.TrimSpace(q.Q))
	brand := strings.ToLower(strings.TrimSpace(q.Brand))
	status := strings.ToLower(strings.TrimSpace(q.Status))
	if status == "all" {
		status = ""
	}
	bucket := strings.TrimSpace(q.AgeBucket)
	if strings.EqualFold(bucket, "ALL") {
		bucket = ""
	}

	if needle == "" && brand == "" && status == "" && bucket == "" {
		return rows
	}

	out := make([]domain.WorkOrderRow, 0, len(rows))
	for _, x := range rows {
		if needle != "" {
			hay := strings.ToLower(strings.Join([]string{
				x.CaseID, x.Description, x.DeliveryName, x.DeviceNumber,
				x.Site, x.SiteName, x.WarehouseName, x.StatusWo, x.Brand,
			}, " "))
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		if brand != "" && !strings.Contains(strings.ToLower(x.Brand), brand) {
			continue
		}
		if status != "" && strings.ToLower(x.StatusWo) != status {
			continue
		}
		if bucket != "" && domain.AgeBucket(x.Ageing) != bucket {
			continue
		}
		out = append(out, x)
	}
	return out
}

// SortRows returns a stably sorted copy of rows ordered by the named field.
// Nulls (nil pointers and unknown field names) sort after every non-null
// value regardless of direction; only the non-null ordering flips for desc.
func SortRows(rows []domain.WorkOrderRow, orderBy, orderDir string) []domain.WorkOrderRow {
	if orderBy == "" {
		orderBy = "createdAt"
	}
	desc := !strings.EqualFold(orderDir, "asc")

	sorted := make([]domain.WorkOrderRow, len(rows))
	copy(sorted, rows)

	coll := collate.New(language.Und)
	sort.SliceStable(sorted, func(i, j int) bool {
		a := FieldValue(sorted[i], orderBy)
		b := FieldValue(sorted[j], orderBy)

		// Nulls last, independent of direction.
		if a == nil && b == nil {
			return false
		}
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}

		diff := compareValues(coll, a, b)
		if desc {
			return diff > 0
		}
		return diff < 0
	})
	return sorted
}

// FieldValue resolves a canonical field name to the row's value for sorting.
// Unknown names return nil for every row, which degrades to a stable no-op
// sort rather than an error.
func FieldValue(r domain.WorkOrderRow, field string) any {
	switch field {
	case "id":
		return r.ID
	case "caseId":
		return r.CaseID
	case "description":
		return r.Description
	case "deliveryName":
		return r.DeliveryName
	case "deviceNumber":
		return r.DeviceNumber
	case "serialNumber":
		return r.SerialNumber
	case "brand":
		return r.Brand
	case "createdAt":
		if r.CreatedAt == nil {
			return nil
		}
		return *r.CreatedAt
	case "ageing":
		if r.Ageing == nil {
			return nil
		}
		return *r.Ageing
	case "ageingType":
		return r.AgeingType
	case "warehouseName":
		return r.WarehouseName
	case "siteName":
		return r.SiteName
	case "statusWo":
		return r.StatusWo
	case "site":
		return r.Site
	case "warehouse":
		return r.Warehouse
	default:
		return nil
	}
}

// isoDateRE recognizes ISO timestamp strings worth comparing by epoch.
var isoDateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T`)

// isoLayouts are tried in order when parsing an ISO-looking timestamp.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999",
	"2006-01-02T15:04:05",
}

func parseISO(s string) (time.Time, bool) {
	if !isoDateRE.MatchString(s) {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// compareValues is the three-tier comparator over non-null values: ISO-date
// strings by parsed instant, numbers numerically, everything else as
// collated strings. Mixed types fall through to the string tier.
func compareValues(coll *collate.Collator, a, b any) int {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			at, aok := parseISO(as)
			bt, bok := parseISO(bs)
			if aok && bok {
				switch {
				case at.Before(bt):
					return -1
				case at.After(bt):
					return 1
				default:
					return 0
				}
			}
		}
	}

	if af, ok := a.(float64); ok {
		if bf, ok := b.(float64); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	return coll.CompareString(asString(a), asString(b))
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}
