package tasks

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"tenure/internal/queue"
	"tenure/internal/ws"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
)

const statsCacheKey = "queue_statistics"

// Planner — фоновые задачи сервиса: прогрев кэша статистики с рассылкой
// обновлений по WebSocket и ежедневная сводка по очереди.
type Planner struct {
	Source   queue.MemberSource
	Agg      *queue.Aggregator
	Redis    *redis.Client
	Hub      *ws.Hub
	CacheTTL time.Duration
}

// RefreshStatistics пересчитывает статистику по снимку представления,
// кладёт её в Redis и рассылает подписчикам дашборда.
func (p *Planner) RefreshStatistics() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snapshot, err := p.Source.GetAllQueueMembers(ctx)
	if err != nil {
		log.Println("Ошибка обновления статистики очереди:", err)
		return
	}
	stats := p.Agg.Compute(snapshot)

	if p.Redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := p.Redis.Set(ctx, statsCacheKey, string(payload), p.CacheTTL).Err(); err != nil {
				log.Println("Ошибка записи статистики в Redis:", err)
			}
		}
	}

	if p.Hub != nil {
		p.Hub.BroadcastWSMessage(ws.WSMessage{
			EventType: "statistics_updated",
			Data:      stats,
		})
	}
}

// LogDailySummary пишет в лог ежедневную сводку по очереди.
func (p *Planner) LogDailySummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snapshot, err := p.Source.GetAllQueueMembers(ctx)
	if err != nil {
		log.Println("Ошибка получения снимка для сводки:", err)
		return
	}
	stats := p.Agg.Compute(snapshot)
	log.Printf("Сводка очереди: участников %d, с правом на выплату %d, потенциальных победителей %d, суммарные платежи %.2f",
		stats.TotalMembers, stats.EligibleMembers, stats.PotentialWinners, stats.TotalRevenue)
}

// InitScheduler инициализирует планировщик cron-задач.
func (p *Planner) InitScheduler() *cron.Cron {
	c := cron.New(cron.WithSeconds())

	// Прогрев кэша статистики каждые 5 минут.
	_, err := c.AddFunc("0 */5 * * * *", p.RefreshStatistics)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи RefreshStatistics:", err)
	}

	// Ежедневная сводка в 03:00.
	_, err = c.AddFunc("0 0 3 * * *", p.LogDailySummary)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи LogDailySummary:", err)
	}

	c.Start()
	log.Println("Cron-планировщик запущен.")
	return c
}
