package models

// QueueStatistics — агрегированная статистика очереди.
// Считается заново на каждый запрос, нигде не хранится.
type QueueStatistics struct {
	TotalMembers     int     `json:"totalMembers"`
	ActiveMembers    int     `json:"activeMembers"`
	EligibleMembers  int     `json:"eligibleMembers"`
	TotalRevenue     float64 `json:"totalRevenue"`
	PotentialWinners int     `json:"potentialWinners"`
	PayoutThreshold  float64 `json:"payoutThreshold"`
	ReceivedPayouts  int     `json:"receivedPayouts"`
}
