package queue

import (
	"tenure/internal/models"
)

// Aggregator сводит снимок очереди в QueueStatistics. Чистая функция над
// слайсом, без обращений к базе.
type Aggregator struct {
	// Максимум победителей одного розыгрыша (MAX_WINNERS_PER_PAYOUT).
	MaxWinners int
	// Порог выплаты, отдаётся в статистике как есть (DEFAULT_PAYOUT_THRESHOLD).
	PayoutThreshold float64
}

func NewAggregator(maxWinners int, payoutThreshold float64) *Aggregator {
	return &Aggregator{MaxWinners: maxWinners, PayoutThreshold: payoutThreshold}
}

// Compute считает статистику по снимку. Пустая очередь даёт нули без ошибок.
func (ag *Aggregator) Compute(members []models.QueueMember) models.QueueStatistics {
	stats := models.QueueStatistics{
		TotalMembers:    len(members),
		PayoutThreshold: ag.PayoutThreshold,
	}

	for _, m := range members {
		if m.IsEligible {
			stats.EligibleMembers++
		}
		if m.HasReceivedPayout {
			stats.ReceivedPayouts++
		}
		stats.TotalRevenue += m.LifetimePaymentTotal
	}

	stats.PotentialWinners = ag.MaxWinners
	if stats.EligibleMembers < stats.PotentialWinners {
		stats.PotentialWinners = stats.EligibleMembers
	}

	// Представление по построению содержит только активных подписчиков,
	// поэтому activeMembers совпадает с totalMembers. Если фильтрация
	// представления изменится, править нужно здесь.
	stats.ActiveMembers = stats.TotalMembers

	return stats
}
