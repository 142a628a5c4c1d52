package till

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/cash-drawer-planner/internal/models"
)

// maxCount keeps count × face value far away from int64 overflow
const maxCount = 1_000_000_000

// FromRawCounts builds a snapshot from form input keyed by denomination.
// Missing and blank values count as zero. Anything else must be a
// non-negative base-10 integer; negative counts are rejected, not clamped.
func FromRawCounts(catalog models.Catalog, raw map[string]string) (models.DrawerSnapshot, error) {
	counts := make(map[string]int64, catalog.Len())
	for _, key := range catalog.Keys() {
		value := strings.TrimSpace(raw[key])
		if value == "" {
			counts[key] = 0
			continue
		}

		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return models.DrawerSnapshot{}, invalidInput(key, fmt.Errorf("%q is not a whole number", value))
		}
		if n < 0 {
			return models.DrawerSnapshot{}, invalidInput(key, errors.New("count cannot be negative"))
		}
		if n > maxCount {
			return models.DrawerSnapshot{}, invalidInput(key, errors.New("count is too large"))
		}
		counts[key] = n
	}
	return models.NewDrawerSnapshot(counts), nil
}

// ParseAmount converts a decimal currency string ("85", "85.5", "$85.00") to
// cents, rounding half away from zero. A blank value is zero; the planner
// reports it as an invalid amount.
func ParseAmount(field, raw string) (int64, error) {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "$")
	value = strings.ReplaceAll(value, ",", "")
	if value == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, invalidInput(field, fmt.Errorf("%q is not an amount", raw))
	}

	cents := d.Shift(2).Round(0)
	if cents.Abs().GreaterThan(decimal.New(maxCount, 4)) {
		return 0, invalidInput(field, errors.New("amount is too large"))
	}
	return cents.IntPart(), nil
}

// FormatMinor renders cents as dollars, e.g. 8500 -> "$85.00"
func FormatMinor(cents int64) string {
	d := decimal.New(cents, -2)
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// DecimalFromMinor converts cents to a two-place decimal for JSON payloads
func DecimalFromMinor(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
