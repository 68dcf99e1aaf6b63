package cases

import (
	"reflect"
	"testing"

	"github.com/prasetyow/wo-ops-backend/internal/domain"
)

func sp(s string) *string   { return &s }
func fp(f float64) *float64 { return &f }

func fixtureRows() []domain.WorkOrderRow {
	return []domain.WorkOrderRow{
		{ID: "WO-1", CaseID: "WO-1", Brand: "SANDEN", StatusWo: "OPEN", Ageing: fp(10), CreatedAt: sp("2024-03-01T10:00:00Z"), SiteName: "Jakarta"},
		{ID: "WO-2", CaseID: "WO-2", Brand: "GEA", StatusWo: "CLOSE", Ageing: fp(45), CreatedAt: sp("2024-01-15T10:00:00Z"), SiteName: "Bandung"},
		{ID: "WO-3", CaseID: "WO-3", Brand: "sanden x", StatusWo: "OPEN", Ageing: fp(130), CreatedAt: nil, SiteName: "Surabaya"},
		{ID: "WO-4", CaseID: "WO-4", Brand: "RSA", StatusWo: "PENDING", Ageing: nil, CreatedAt: sp("2024-02-20T10:00:00Z"), SiteName: "Medan"},
	}
}

func ids(rows []domain.WorkOrderRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestFilter_FreeText(t *testing.T) {
	got := Filter(fixtureRows(), Query{Q: "bandung"})
	if !reflect.DeepEqual(ids(got), []string{"WO-2"}) {
		t.Fatalf("q filter: %v", ids(got))
	}
	// Needle matching the brand column.
	got = Filter(fixtureRows(), Query{Q: "SANDEN"})
	if !reflect.DeepEqual(ids(got), []string{"WO-1", "WO-3"}) {
		t.Fatalf("q brand match: %v", ids(got))
	}
}

func TestFilter_BrandSubstring(t *testing.T) {
	got := Filter(fixtureRows(), Query{Brand: "sanden"})
	if !reflect.DeepEqual(ids(got), []string{"WO-1", "WO-3"}) {
		t.Fatalf("brand filter: %v", ids(got))
	}
}

func TestFilter_StatusExact(t *testing.T) {
	got := Filter(fixtureRows(), Query{Status: "open"})
	if !reflect.DeepEqual(ids(got), []string{"WO-1", "WO-3"}) {
		t.Fatalf("status filter: %v", ids(got))
	}
	// "ALL" disables the filter in any casing.
	got = Filter(fixtureRows(), Query{Status: "All"})
	if len(got) != 4 {
		t.Fatalf("status ALL should be a no-op, got %v", ids(got))
	}
	// Exact match only: "OPEN" must not match "PENDING".
	got = Filter(fixtureRows(), Query{Status: "pen"})
	if len(got) != 0 {
		t.Fatalf("partial status must not match: %v", ids(got))
	}
}

func TestFilter_AgeBucket(t *testing.T) {
	got := Filter(fixtureRows(), Query{AgeBucket: domain.Bucket31To60})
	if !reflect.DeepEqual(ids(got), []string{"WO-2"}) {
		t.Fatalf("bucket filter: %v", ids(got))
	}
	got = Filter(fixtureRows(), Query{AgeBucket: domain.BucketUnknown})
	if !reflect.DeepEqual(ids(got), []string{"WO-4"}) {
		t.Fatalf("unknown bucket: %v", ids(got))
	}
}

func TestSortRows_DateField_NullsLastBothDirections(t *testing.T) {
	asc := SortRows(fixtureRows(), "createdAt", "asc")
	if !reflect.DeepEqual(ids(asc), []string{"WO-2", "WO-4", "WO-1", "WO-3"}) {
		t.Fatalf("asc: %v", ids(asc))
	}
	desc := SortRows(fixtureRows(), "createdAt", "desc")
	if !reflect.DeepEqual(ids(desc), []string{"WO-1", "WO-4", "WO-2", "WO-3"}) {
		t.Fatalf("desc: %v", ids(desc))
	}
}

func TestSortRows_NumericField(t *testing.T) {
	asc := SortRows(fixtureRows(), "ageing", "asc")
	if !reflect.DeepEqual(ids(asc), []string{"WO-1", "WO-2", "WO-3", "WO-4"}) {
		t.Fatalf("asc: %v", ids(asc))
	}
	desc := SortRows(fixtureRows(), "ageing", "desc")
	if !reflect.DeepEqual(ids(desc), []string{"WO-3", "WO-2", "WO-1", "WO-4"}) {
		t.Fatalf("desc: %v", ids(desc))
	}
}

func TestSortRows_StringField(t *testing.T) {
	asc := SortRows(fixtureRows(), "siteName", "asc")
	if !reflect.DeepEqual(ids(asc), []string{"WO-2", "WO-1", "WO-4", "WO-3"}) {
		t.Fatalf("asc: %v", ids(asc))
	}
}

func TestSortRows_UnknownFieldIsStableNoOp(t *testing.T) {
	got := SortRows(fixtureRows(), "doesNotExist", "asc")
	if !reflect.DeepEqual(ids(got), []string{"WO-1", "WO-2", "WO-3", "WO-4"}) {
		t.Fatalf("unknown orderBy must keep input order: %v", ids(got))
	}
}

func TestSortRows_Stability(t *testing.T) {
	rows := []domain.WorkOrderRow{
		{ID: "a", StatusWo: "OPEN"},
		{ID: "b", StatusWo: "OPEN"},
		{ID: "c", StatusWo: "OPEN"},
	}
	got := SortRows(rows, "statusWo", "desc")
	if !reflect.DeepEqual(ids(got), []string{"a", "b", "c"}) {
		t.Fatalf("equal keys must keep input order: %v", ids(got))
	}
}

func TestSortRows_DoesNotMutateInput(t *testing.T) {
	rows := fixtureRows()
	before := ids(rows)
	_ = SortRows(rows, "ageing", "desc")
	if !reflect.DeepEqual(ids(rows), before) {
		t.Fatalf("input mutated: %v", ids(rows))
	}
}

func TestApply_Pagination(t *testing.T) {
	rows := fixtureRows()

	page, counts := Apply(rows, Query{Page: 1, Limit: 3, OrderBy: "caseId", OrderDir: "asc"})
	if page.Total != 4 || len(page.Data) != 3 {
		t.Fatalf("page1: total=%d len=%d", page.Total, len(page.Data))
	}
	if counts.Upstream != 4 || counts.Filtered != 4 {
		t.Fatalf("counts: %+v", counts)
	}

	page2, _ := Apply(rows, Query{Page: 2, Limit: 3, OrderBy: "caseId", OrderDir: "asc"})
	if page2.Total != 4 || len(page2.Data) != 1 {
		t.Fatalf("page2: total=%d len=%d", page2.Total, len(page2.Data))
	}
	if page2.Data[0].ID != "WO-4" {
		t.Fatalf("page2 row: %v", page2.Data[0].ID)
	}

	// Out-of-range pages are empty, not an error, and total is unchanged.
	page9, _ := Apply(rows, Query{Page: 9, Limit: 3})
	if page9.Total != 4 || len(page9.Data) != 0 {
		t.Fatalf("page9: total=%d len=%d", page9.Total, len(page9.Data))
	}

	// data.length == min(limit, max(0, total - limit*(page-1))) for all pages.
	for p := 1; p <= 5; p++ {
		got, _ := Apply(rows, Query{Page: p, Limit: 2})
		want := 4 - 2*(p-1)
		if want < 0 {
			want = 0
		}
		if want > 2 {
			want = 2
		}
		if len(got.Data) != want {
			t.Fatalf("page %d: len=%d want %d", p, len(got.Data), want)
		}
	}
}

func TestApply_Defaults(t *testing.T) {
	page, _ := Apply(fixtureRows(), Query{Page: -3, Limit: 0})
	if page.Page != 1 || page.Limit != 50 {
		t.Fatalf("defaults: page=%d limit=%d", page.Page, page.Limit)
	}
}

func TestApply_Idempotent(t *testing.T) {
	q := Query{Q: "o", Page: 1, Limit: 2, OrderBy: "createdAt", OrderDir: "desc"}
	a, _ := Apply(fixtureRows(), q)
	b, _ := Apply(fixtureRows(), q)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical queries must return identical pages")
	}
}
