package queue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tenure/internal/models"
	"tenure/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const statsCacheKey = "queue_statistics"

// Handler — HTTP-слой очереди: парсинг параметров, фильтрация, оконный срез
// и упаковка ответа. Состояния между запросами нет.
type Handler struct {
	Source MemberSource
	Agg    *Aggregator

	// Redis опционален: при nil кэширование статистики просто выключено.
	Redis    *redis.Client
	CacheTTL time.Duration

	// Легаси-поведение: отсутствующий участник отдаётся как 500.
	NotFound404 bool
	// В продакшене детали ошибок базы наружу не отдаются.
	Production bool
}

// Pagination описывает блок pagination в ответе GET /api/queue.
type Pagination struct {
	Total    int `json:"total"`
	Limit    int `json:"limit"`
	Offset   int `json:"offset"`
	Filtered int `json:"filtered"`
}

// QueuePayload — поле data ответа GET /api/queue.
type QueuePayload struct {
	Queue      []models.PublicQueueMember `json:"queue"`
	Statistics models.QueueStatistics     `json:"statistics"`
	Pagination Pagination                 `json:"pagination"`
}

// GetQueueHandler обрабатывает запрос снимка очереди
// @Summary		Снимок очереди участников
// @Description	Возвращает очередь (при необходимости отфильтрованную и срезанную), статистику и пагинацию
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			search	query		string	false	"Подстрока для поиска по имени/email"
// @Param			limit	query		int	false	"Размер среза"
// @Param			offset	query		int	false	"Смещение среза"
// @Param			currentPosition	query		int	false	"Позиция для окна ±2"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Очередь, статистика и пагинация"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/queue [get]
func (h *Handler) GetQueueHandler(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	limit := positiveIntQuery(c, "limit")
	offset := positiveIntQuery(c, "offset")
	currentPosition := positiveIntQuery(c, "currentPosition")

	snapshot, err := h.Source.GetAllQueueMembers(c.Request.Context())
	if err != nil {
		h.dbError(c, "DB_ERROR", "failed to load queue snapshot", err)
		return
	}

	total := len(snapshot)

	// Статистика всегда считается по полному снимку, а не по отфильтрованной
	// выборке: totalRevenue обязан равняться сумме по всем строкам представления.
	stats := h.Agg.Compute(snapshot)

	filtered := snapshot
	if search != "" {
		filtered = filterMembers(snapshot, search)
	}

	var window []models.QueueMember
	switch {
	case currentPosition > 0:
		// Окно из пяти позиций вокруг текущей, границы зажимаются в
		// [1, total]. Окно имеет приоритет над limit/offset.
		lo := currentPosition - 2
		if lo < 1 {
			lo = 1
		}
		hi := currentPosition + 2
		if hi > total {
			hi = total
		}
		for _, m := range filtered {
			if m.QueuePosition >= lo && m.QueuePosition <= hi {
				window = append(window, m)
			}
		}
	case limit > 0:
		start := offset
		if start > len(filtered) {
			start = len(filtered)
		}
		end := start + limit
		if end > len(filtered) {
			end = len(filtered)
		}
		window = filtered[start:end]
	default:
		window = filtered
	}

	rows := make([]models.PublicQueueMember, 0, len(window))
	for _, m := range window {
		rows = append(rows, m.Public())
	}

	c.JSON(http.StatusOK, response.Ok(QueuePayload{
		Queue:      rows,
		Statistics: stats,
		Pagination: Pagination{
			Total:    total,
			Limit:    limit,
			Offset:   offset,
			Filtered: len(filtered),
		},
	}))
}

// GetStatisticsHandler обрабатывает запрос статистики очереди
// @Summary		Статистика очереди
// @Description	Возвращает агрегированную статистику; результат кэшируется в Redis
// @Tags			queue
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Статистика очереди"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/queue/statistics [get]
func (h *Handler) GetStatisticsHandler(c *gin.Context) {
	ctx := c.Request.Context()

	// Проверка кэша
	if h.Redis != nil {
		if cached, err := h.Redis.Get(ctx, statsCacheKey).Result(); err == nil && cached != "" {
			var stats models.QueueStatistics
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				c.JSON(http.StatusOK, response.Ok(stats))
				return
			}
		}
	}

	snapshot, err := h.Source.GetAllQueueMembers(ctx)
	if err != nil {
		h.dbError(c, "DB_ERROR", "failed to compute queue statistics", err)
		return
	}
	stats := h.Agg.Compute(snapshot)

	if h.Redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			h.Redis.Set(ctx, statsCacheKey, string(payload), h.CacheTTL)
		}
	}

	c.JSON(http.StatusOK, response.Ok(stats))
}

// GetMemberHandler обрабатывает запрос одного участника очереди
// @Summary		Участник очереди по id
// @Description	Возвращает полную строку представления по user_id
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			memberId	path		string	true	"UUID участника"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Участник очереди"
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (VALIDATION_ERROR)"
// @Failure		500	{object}	response.ErrorResponse	"Участник не найден или ошибка базы (MEMBER_NOT_FOUND, DB_ERROR)"
// @Router			/api/queue/{memberId} [get]
func (h *Handler) GetMemberHandler(c *gin.Context) {
	memberID := c.Param("memberId")
	if memberID == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error:   "VALIDATION_ERROR",
			Message: "memberId is required",
		})
		return
	}

	userID, err := uuid.Parse(memberID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error:   "VALIDATION_ERROR",
			Message: "memberId must be a valid UUID",
		})
		return
	}

	member, err := h.Source.GetQueueMemberByID(c.Request.Context(), userID)
	if errors.Is(err, ErrMemberNotFound) {
		// Легаси-контракт отдаёт отсутствующую строку как 500 с текстом
		// "not found" в сообщении; честный 404 включается флагом.
		status := http.StatusInternalServerError
		if h.NotFound404 {
			status = http.StatusNotFound
		}
		c.JSON(status, response.ErrorResponse{
			Error:   "MEMBER_NOT_FOUND",
			Message: "queue member " + memberID + " not found",
		})
		return
	}
	if err != nil {
		h.dbError(c, "DB_ERROR", "failed to load queue member", err)
		return
	}

	c.JSON(http.StatusOK, response.Ok(member))
}

// HealthHandler обрабатывает health-check
// @Summary		Проверка живости
// @Description	Всегда 200; поле database сообщает состояние подключения
// @Tags			queue
// @Produce		json
// @Success		200	{object}	map[string]interface{}	"Статус сервиса"
// @Router			/api/queue/health [get]
func (h *Handler) HealthHandler(c *gin.Context) {
	database := "connected"
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.Source.Ping(ctx); err != nil {
		database = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  database,
	})
}

func (h *Handler) dbError(c *gin.Context, code, message string, err error) {
	resp := response.ErrorResponse{
		Error:   code,
		Message: message,
	}
	if !h.Production {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}

// filterMembers отбирает строки по подстроке в email, имени или user_id
// без учёта регистра.
func filterMembers(members []models.QueueMember, term string) []models.QueueMember {
	needle := strings.ToLower(term)
	matched := make([]models.QueueMember, 0, len(members))
	for _, m := range members {
		if strings.Contains(strings.ToLower(m.Email), needle) ||
			strings.Contains(strings.ToLower(m.FullName), needle) ||
			strings.Contains(strings.ToLower(m.UserID.String()), needle) {
			matched = append(matched, m)
		}
	}
	return matched
}

// positiveIntQuery читает положительный целочисленный query-параметр;
// отсутствующее или некорректное значение трактуется как 0 (не задано).
func positiveIntQuery(c *gin.Context, name string) int {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
