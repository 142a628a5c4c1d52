package cashier

import (
	"fmt"

	"github.com/sheikh-saqib/cash-drawer-planner/internal/models"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/till"
)

// Instructions renders one line per denomination the cashier has to take,
// e.g. "Take 3 × $20 bills ($60.00)" or "Take 4 quarters ($1.00)".
func Instructions(plan models.WithdrawalPlan, catalog models.Catalog) []string {
	lines := plan.Lines(catalog)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		amount := till.FormatMinor(line.Amount)
		if line.Denomination.Category == models.CategoryBill {
			out = append(out, fmt.Sprintf("Take %d × %s (%s)", line.Count, line.Denomination.Label, amount))
			continue
		}
		out = append(out, fmt.Sprintf("Take %d %s (%s)", line.Count, line.Denomination.Label, amount))
	}
	return out
}
