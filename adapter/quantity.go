package adapter

import (
	"github.com/shopspring/decimal"

	"github.com/synchro-systems/synchro/value"
)

// ParseQuantity converts a platform's decimal-string quantity (e.g. an
// inventory count reported as "12.0000") into a Value at the adapter
// boundary, grounded on the original polling adapter's Value::from_str
// parse of a platform quantity string. Fractional platform quantities are
// rounded to the nearest whole unit; synchro's core Value type is an
// integer scalar (spec §3), so any sub-unit precision a platform reports
// is a write-back-side concern, not a core one.
func ParseQuantity(s string) (value.Value, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return value.Zero, err
	}
	return value.Value(d.Round(0).IntPart()), nil
}

// FormatQuantity renders a Value back into the decimal-string form a
// platform's write API expects.
func FormatQuantity(v value.Value) string {
	return decimal.NewFromInt(int64(v)).String()
}
