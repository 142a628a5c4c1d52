package models

// WithdrawalPlan says how many pieces of each denomination to take out of the
// drawer. On success the counts add up exactly to Amount.
type WithdrawalPlan struct {
	Counts      map[string]int64 // denomination key -> pieces withdrawn
	Amount      int64            // requested amount in cents
	DrawerTotal int64            // drawer total before the withdrawal
	Remaining   int64            // drawer total after the withdrawal
}

// PlanLine is one instruction of a plan: take Count pieces of Denomination
type PlanLine struct {
	Denomination Denomination
	Count        int64
	Amount       int64
}

// Lines returns the non-zero entries of the plan in catalog order
func (p WithdrawalPlan) Lines(c Catalog) []PlanLine {
	var lines []PlanLine
	for _, d := range c.Denominations() {
		n := p.Counts[d.Key]
		if n == 0 {
			continue
		}
		lines = append(lines, PlanLine{
			Denomination: d,
			Count:        n,
			Amount:       n * d.MinorValue,
		})
	}
	return lines
}

// Pieces is the total number of bills and coins handed over
func (p WithdrawalPlan) Pieces() int64 {
	var n int64
	for _, c := range p.Counts {
		n += c
	}
	return n
}
