package models

import (
	"github.com/google/uuid"
)

// QueueMember — строка представления active_member_queue_view.
// Позиции, право на выплату и суммы считает база данных; приложение
// только читает. Никаких миграций и записей для этой модели нет.
type QueueMember struct {
	QueuePosition        int       `gorm:"column:queue_position" json:"queue_position"`
	UserID               uuid.UUID `gorm:"column:user_id;type:uuid" json:"user_id"`
	Email                string    `gorm:"column:email" json:"email"`
	FullName             string    `gorm:"column:full_name" json:"full_name"`
	IsEligible           bool      `gorm:"column:is_eligible" json:"is_eligible"`
	LifetimePaymentTotal float64   `gorm:"column:lifetime_payment_total;type:decimal(15,2)" json:"lifetime_payment_total"`
	HasReceivedPayout    bool      `gorm:"column:has_received_payout" json:"has_received_payout"`
	SubscriptionActive   bool      `gorm:"column:subscription_active" json:"subscription_active"`
}

func (QueueMember) TableName() string {
	return "active_member_queue_view"
}

// PublicQueueMember — урезанная форма строки очереди для GET /api/queue.
// Финансовые поля и PII через этот эндпоинт не отдаются.
type PublicQueueMember struct {
	QueuePosition int       `json:"queue_position"`
	UserID        uuid.UUID `json:"user_id"`
	ID            uuid.UUID `json:"id"`
	MemberStatus  string    `json:"member_status"`
	IsEligible    bool      `json:"is_eligible"`
}

// Public приводит строку представления к публичной форме.
func (m QueueMember) Public() PublicQueueMember {
	return PublicQueueMember{
		QueuePosition: m.QueuePosition,
		UserID:        m.UserID,
		ID:            m.UserID,
		MemberStatus:  "Active",
		IsEligible:    m.IsEligible,
	}
}
