package queue

import (
	"errors"
	"log"
	"net/http"

	"tenure/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RouteSupport помечает маршрут на уровне роутинга: обычный или устаревший
// с причиной. Устаревшие маршруты больше не имеют пути записи — членство в
// очереди вычисляет представление базы данных.
type RouteSupport struct {
	Deprecated bool
	Reason     string
}

// Supported — обычный маршрут.
func Supported() RouteSupport {
	return RouteSupport{}
}

// Deprecated — устаревший маршрут с причиной для логов и ответа 410.
func Deprecated(reason string) RouteSupport {
	return RouteSupport{Deprecated: true, Reason: reason}
}

// Wrap оборачивает хэндлер согласно статусу маршрута. Для устаревших:
// по умолчанию пишется предупреждение в лог и выполняется легаси no-op
// (обратная совместимость), при gone=true клиент получает явный 410.
func (rs RouteSupport) Wrap(gone bool, legacy gin.HandlerFunc) gin.HandlerFunc {
	if !rs.Deprecated {
		return legacy
	}
	return func(c *gin.Context) {
		if gone {
			c.JSON(http.StatusGone, response.ErrorResponse{
				Error:   "DEPRECATED",
				Message: rs.Reason,
			})
			return
		}
		log.Printf("устаревший эндпоинт %s %s: %s", c.Request.Method, c.FullPath(), rs.Reason)
		legacy(c)
	}
}

const derivedMembershipReason = "queue membership is derived from subscriptions and payments; write operations are no longer supported"

// UpdatePositionHandler — устаревший PUT /api/queue/:memberId/position.
// Позицию назначает представление; запрос ничего не меняет и возвращает
// текущую запись участника с предупреждением.
func (h *Handler) UpdatePositionHandler(c *gin.Context) {
	memberID := c.Param("memberId")
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

	c.JSON(http.StatusOK, response.SuccessResponse{
		Success: true,
		Data:    member,
		Warning: derivedMembershipReason,
	})
}

// CreateMemberHandler — устаревший POST /api/queue. Тело игнорируется.
func (h *Handler) CreateMemberHandler(c *gin.Context) {
	c.JSON(http.StatusOK, response.SuccessResponse{
		Success: true,
		Warning: derivedMembershipReason,
		Message: "no queue member was created",
	})
}

// DeleteMemberHandler — устаревший DELETE /api/queue/:memberId.
func (h *Handler) DeleteMemberHandler(c *gin.Context) {
	c.JSON(http.StatusOK, response.SuccessResponse{
		Success: true,
		Warning: derivedMembershipReason,
		Message: "no queue member was deleted",
	})
}
