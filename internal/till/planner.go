package till

import (
	"github.com/sheikh-saqib/cash-drawer-planner/internal/models"
)

// DefaultReserve is the minimum that must stay in the drawer: $200.00
const DefaultReserve int64 = 20000

// Planner carries the configuration the planning function needs
type Planner struct {
	Catalog models.Catalog
	Reserve int64 // cents
}

// NewPlanner returns a planner over the given catalog and reserve
func NewPlanner(catalog models.Catalog, reserve int64) *Planner {
	return &Planner{Catalog: catalog, Reserve: reserve}
}

func (p *Planner) Plan(target int64, snapshot models.DrawerSnapshot) (models.WithdrawalPlan, error) {
	return Plan(p.Catalog, target, snapshot, p.Reserve)
}

func (p *Planner) Total(snapshot models.DrawerSnapshot) (int64, error) {
	return ComputeTotal(p.Catalog, snapshot)
}

// Plan decides whether target cents can leave the drawer while reserve cents
// stay behind, and which pieces to hand over.
//
// Allocation is greedy: denominations are taken largest first, each as many
// times as fits in what is left and as the drawer holds. Under limited
// counts this can miss a decomposition that exists (for 30¢ from one quarter
// and three dimes it takes the quarter and is left 5¢ short); callers get
// KindInfeasibleChange in that case. The behaviour is kept as is because
// cashiers expect the largest-bills-first handover.
func Plan(catalog models.Catalog, target int64, snapshot models.DrawerSnapshot, reserve int64) (models.WithdrawalPlan, error) {
	if target <= 0 {
		return models.WithdrawalPlan{}, &Error{Kind: KindInvalidAmount}
	}

	drawerTotal, err := ComputeTotal(catalog, snapshot)
	if err != nil {
		return models.WithdrawalPlan{}, err
	}

	if drawerTotal < reserve {
		return models.WithdrawalPlan{}, &Error{
			Kind:        KindInsufficientReserve,
			DrawerTotal: drawerTotal,
			Reserve:     reserve,
		}
	}

	available := drawerTotal - reserve
	if target > available {
		return models.WithdrawalPlan{}, &Error{
			Kind:         KindExceedsAvailable,
			Requested:    target,
			MaxAvailable: available,
		}
	}

	remaining := target
	counts := make(map[string]int64, catalog.Len())
	for _, d := range catalog.Denominations() {
		take := min(remaining/d.MinorValue, snapshot.Count(d.Key))
		counts[d.Key] = take
		remaining -= take * d.MinorValue
	}

	if remaining > 0 {
		return models.WithdrawalPlan{}, &Error{Kind: KindInfeasibleChange, Unmet: remaining}
	}

	return models.WithdrawalPlan{
		Counts:      counts,
		Amount:      target,
		DrawerTotal: drawerTotal,
		Remaining:   drawerTotal - target,
	}, nil
}
