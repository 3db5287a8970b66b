package ledger

// Default reward rules. The cycle counter resets on the visit after it
// reaches the limit; every MilestoneInterval-th visit grants the bonus.
const (
	DefaultPointsCycleLimit    = 10
	DefaultMilestoneInterval   = 10
	DefaultBonusDiscountReward = 10
)
