package queue

import (
	"context"
	"errors"
	"fmt"

	"tenure/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrMemberNotFound возвращается, когда по user_id нет строки в представлении.
var ErrMemberNotFound = errors.New("участник очереди не найден")

// MemberSource — источник строк очереди. Хэндлеры работают через интерфейс,
// чтобы в тестах вместо базы можно было подставить дубль.
type MemberSource interface {
	GetAllQueueMembers(ctx context.Context) ([]models.QueueMember, error)
	GetQueueMemberByID(ctx context.Context, userID uuid.UUID) (*models.QueueMember, error)
	SearchQueueMembers(ctx context.Context, term string, limit int) ([]models.QueueMember, error)
	Ping(ctx context.Context) error
}

// Accessor читает active_member_queue_view. Только чтение: членство в очереди
// вычисляет само представление из подписок и платежей.
type Accessor struct {
	db *gorm.DB
}

func NewAccessor(db *gorm.DB) *Accessor {
	return &Accessor{db: db}
}

// GetAllQueueMembers возвращает полный снимок очереди, отсортированный по
// queue_position по возрастанию. При ошибке частичный результат не возвращается.
func (a *Accessor) GetAllQueueMembers(ctx context.Context) ([]models.QueueMember, error) {
	var members []models.QueueMember
	if err := a.db.WithContext(ctx).
		Order("queue_position ASC").
		Find(&members).Error; err != nil {
		return nil, fmt.Errorf("загрузка снимка очереди: %w", err)
	}
	return members, nil
}

// GetQueueMemberByID возвращает одну строку по user_id.
func (a *Accessor) GetQueueMemberByID(ctx context.Context, userID uuid.UUID) (*models.QueueMember, error) {
	var member models.QueueMember
	err := a.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("поиск участника по id: %w", err)
	}
	return &member, nil
}

// SearchQueueMembers ищет участников по подстроке в email и имени без учёта
// регистра, в порядке позиции, не больше limit строк.
func (a *Accessor) SearchQueueMembers(ctx context.Context, term string, limit int) ([]models.QueueMember, error) {
	var members []models.QueueMember
	pattern := "%" + term + "%"
	if err := a.db.WithContext(ctx).
		Where("email ILIKE ? OR full_name ILIKE ?", pattern, pattern).
		Order("queue_position ASC").
		Limit(limit).
		Find(&members).Error; err != nil {
		return nil, fmt.Errorf("поиск участников: %w", err)
	}
	return members, nil
}

// Ping проверяет доступность базы тривиальным SELECT 1 (для health-check).
func (a *Accessor) Ping(ctx context.Context) error {
	var one int
	if err := a.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return fmt.Errorf("проверка соединения с базой: %w", err)
	}
	return nil
}
