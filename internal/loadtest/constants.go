package loadtest

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
	maxYearsOfExperience = 40
	bioKeywordCount      = 4
)

// Request outcomes.
const (
	outcomeSuccess     = "success"
	outcomeRateLimited = "rate_limited"
	outcomeFailed      = "failed"
)
