package till

import (
	"errors"

	"github.com/sheikh-saqib/cash-drawer-planner/internal/models"
)

// ComputeTotal sums count × face value over the catalog, in cents. Keys outside
// the catalog do not contribute.
func ComputeTotal(catalog models.Catalog, snapshot models.DrawerSnapshot) (int64, error) {
	var total int64
	for _, d := range catalog.Denominations() {
		n := snapshot.Count(d.Key)
		if n < 0 {
			return 0, invalidInput(d.Key, errors.New("count cannot be negative"))
		}
		total += n * d.MinorValue
	}
	return total, nil
}
