// Package domain defines the data shapes shared across the repository,
// service, and HTTP layers: the ephemeral normalized work-order row served
// by the listing proxy, and the persisted monitoring annotation models.
package domain

// Ageing bucket labels derived from the numeric age-in-days of a work order.
// Boundaries are inclusive at 30, 60, and 120 days.
const (
	Bucket0To30   = "0-30"
	Bucket31To60  = "31-60"
	Bucket61To120 = "61-120"
	BucketOver120 = "+120"
	BucketUnknown = "UNKNOWN"
)

// WorkOrderRow is the canonical row shape of the outstanding work-order
// listing. It is derived fresh from every upstream response and never
// persisted; pointer fields are nil when the upstream row carried no value.
type WorkOrderRow struct {
	ID            string   `json:"id"`
	CaseID        string   `json:"caseId"`
	Description   string   `json:"description"`
	DeliveryName  string   `json:"deliveryName"`
	DeviceNumber  string   `json:"deviceNumber"`
	SerialNumber  string   `json:"serialNumber"`
	Brand         string   `json:"brand"`
	CreatedAt     *string  `json:"createdAt"` // ISO timestamp when present
	Ageing        *float64 `json:"ageing"`    // age in days
	AgeingType    string   `json:"ageingType"`
	WarehouseName string   `json:"warehouseName"`
	SiteName      string   `json:"siteName"`
	StatusWo      string   `json:"statusWo"`
	Site          string   `json:"site"`
	Warehouse     string   `json:"warehouse"`
}

// AgeBucket maps an age-in-days value to its bucket label. A nil age maps to
// BucketUnknown; any non-negative age maps to exactly one of the other labels.
func AgeBucket(age *float64) string {
	if age == nil {
		return BucketUnknown
	}
	a := *age
	if a != a { // NaN
		return BucketUnknown
	}
	switch {
	case a <= 30:
		return Bucket0To30
	case a <= 60:
		return Bucket31To60
	case a <= 120:
		return Bucket61To120
	default:
		return BucketOver120
	}
}
