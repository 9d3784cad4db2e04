package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"tenure/internal/auth"
	"tenure/internal/models"
	"tenure/internal/queue"
	"tenure/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestServer поднимает сервис против тестовой базы. Представление
// подменяется обычной таблицей с тем же именем, чтобы можно было сидировать
// строки напрямую.
func setupTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()
	_ = godotenv.Load("../.env")

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL не задан, интеграционный тест пропущен")
	}

	db, err := storage.Connect(dsn)
	require.NoError(t, err, "Ошибка подключения к тестовой базе")

	db.Exec("DROP TABLE IF EXISTS active_member_queue_view")
	err = db.Exec(`CREATE TABLE active_member_queue_view (
		queue_position integer NOT NULL,
		user_id uuid NOT NULL,
		email text NOT NULL,
		full_name text NOT NULL,
		is_eligible boolean NOT NULL DEFAULT false,
		lifetime_payment_total decimal(15,2) NOT NULL DEFAULT 0,
		has_received_payout boolean NOT NULL DEFAULT false,
		subscription_active boolean NOT NULL DEFAULT true
	)`).Error
	require.NoError(t, err, "Ошибка создания тестовой таблицы очереди")

	require.NoError(t, db.AutoMigrate(&models.User{}), "Ошибка миграции таблицы администраторов")
	db.Exec("TRUNCATE TABLE users RESTART IDENTITY CASCADE")

	accessor := queue.NewAccessor(db)
	handler := &queue.Handler{
		Source: accessor,
		Agg:    queue.NewAggregator(2, 500000),
	}
	authService := auth.NewService(db, "test-access-secret", "test-refresh-secret")

	gin.SetMode(gin.TestMode)
	r := gin.New()

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", authService.Login)
		authGroup.POST("/register", authService.Register)
		authGroup.POST("/refresh", authService.RefreshToken)
	}

	r.GET("/api/queue/health", handler.HealthHandler)

	protected := r.Group("/api/queue", authService.Middleware())
	{
		protected.GET("", handler.GetQueueHandler)
		protected.GET("/statistics", handler.GetStatisticsHandler)
		protected.GET("/:memberId", handler.GetMemberHandler)
		position := queue.Deprecated("queue positions are assigned by the membership view")
		protected.PUT("/:memberId/position", position.Wrap(false, handler.UpdatePositionHandler))
	}

	return httptest.NewServer(r), db
}

func seedQueue(t *testing.T, db *gorm.DB, count int) []models.QueueMember {
	t.Helper()
	members := make([]models.QueueMember, 0, count)
	for i := 1; i <= count; i++ {
		m := models.QueueMember{
			QueuePosition:        i,
			UserID:               uuid.New(),
			Email:                fmt.Sprintf("member%d@tenure.example", i),
			FullName:             fmt.Sprintf("Member %d", i),
			IsEligible:           i <= 3,
			LifetimePaymentTotal: float64(i) * 150,
			HasReceivedPayout:    i == 1,
			SubscriptionActive:   true,
		}
		require.NoError(t, db.Create(&m).Error, "Ошибка сидирования участника %d", i)
		members = append(members, m)
	}
	return members
}

func obtainToken(t *testing.T, baseURL string) string {
	t.Helper()
	email := fmt.Sprintf("admin_%d@tenure.example", time.Now().UnixNano())

	register := map[string]string{
		"name": "Тест", "surname": "Админов", "email": email, "password": "secret123",
	}
	body, _ := json.Marshal(register)
	res, err := http.Post(baseURL+"/auth/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err, "Ошибка запроса регистрации")
	defer res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode, "Регистрация администратора не удалась")

	login := map[string]string{"email": email, "password": "secret123"}
	body, _ = json.Marshal(login)
	res, err = http.Post(baseURL+"/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err, "Ошибка запроса авторизации")
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode, "Авторизация не удалась")

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&tokens))
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}

func authorizedGet(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "Ошибка запроса %s", url)
	return res
}

func TestQueueServiceFlow(t *testing.T) {
	ts, db := setupTestServer(t)
	defer ts.Close()

	members := seedQueue(t, db, 7)
	token := obtainToken(t, ts.URL)

	// Полный снимок.
	res := authorizedGet(t, ts.URL+"/api/queue", token)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Queue []struct {
				QueuePosition int `json:"queue_position"`
			} `json:"queue"`
			Statistics models.QueueStatistics `json:"statistics"`
			Pagination struct {
				Total    int `json:"total"`
				Filtered int `json:"filtered"`
			} `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	assert.True(t, envelope.Success)
	assert.Len(t, envelope.Data.Queue, 7)
	assert.Equal(t, 7, envelope.Data.Statistics.TotalMembers)
	assert.Equal(t, 3, envelope.Data.Statistics.EligibleMembers)
	assert.Equal(t, 2, envelope.Data.Statistics.PotentialWinners)
	// 150*(1+2+...+7) = 4200
	assert.InDelta(t, 4200.0, envelope.Data.Statistics.TotalRevenue, 0.001)

	// Окно вокруг позиции 4.
	res = authorizedGet(t, ts.URL+"/api/queue?currentPosition=4", token)
	defer res.Body.Close()
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	positions := make([]int, 0, len(envelope.Data.Queue))
	for _, row := range envelope.Data.Queue {
		positions = append(positions, row.QueuePosition)
	}
	assert.Equal(t, []int{2, 3, 4, 5, 6}, positions)

	// Поиск без учёта регистра.
	res = authorizedGet(t, ts.URL+"/api/queue?search=MEMBER1", token)
	defer res.Body.Close()
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	assert.Equal(t, 1, envelope.Data.Pagination.Filtered)

	// Поиск на уровне базы (ILIKE) даёт ту же строку.
	found, err := queue.NewAccessor(db).SearchQueueMembers(context.Background(), "member1", 10)
	require.NoError(t, err, "Ошибка поиска участников в базе")
	require.Len(t, found, 1)
	assert.Equal(t, 1, found[0].QueuePosition)

	// Точечный запрос участника.
	res = authorizedGet(t, ts.URL+"/api/queue/"+members[0].UserID.String(), token)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var memberEnvelope struct {
		Success bool               `json:"success"`
		Data    models.QueueMember `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&memberEnvelope))
	assert.Equal(t, members[0].UserID, memberEnvelope.Data.UserID)
	assert.Equal(t, 1, memberEnvelope.Data.QueuePosition)

	// Устаревший PUT не меняет позицию.
	putReq, _ := http.NewRequest(http.MethodPut,
		ts.URL+"/api/queue/"+members[3].UserID.String()+"/position",
		bytes.NewReader([]byte(`{"newPosition": 1}`)))
	putReq.Header.Set("Authorization", "Bearer "+token)
	putReq.Header.Set("Content-Type", "application/json")
	putRes, err := http.DefaultClient.Do(putReq)
	require.NoError(t, err)
	defer putRes.Body.Close()
	assert.Equal(t, http.StatusOK, putRes.StatusCode)

	var putEnvelope struct {
		Data    models.QueueMember `json:"data"`
		Warning string             `json:"warning"`
	}
	require.NoError(t, json.NewDecoder(putRes.Body).Decode(&putEnvelope))
	assert.Equal(t, 4, putEnvelope.Data.QueuePosition, "Позиция после устаревшего PUT не изменилась")
	assert.NotEmpty(t, putEnvelope.Warning)

	// Health без авторизации.
	healthRes, err := http.Get(ts.URL + "/api/queue/health")
	require.NoError(t, err)
	defer healthRes.Body.Close()
	assert.Equal(t, http.StatusOK, healthRes.StatusCode)

	var health map[string]interface{}
	require.NoError(t, json.NewDecoder(healthRes.Body).Decode(&health))
	assert.Equal(t, "connected", health["database"])

	// Без токена защищённые маршруты закрыты.
	noAuth, err := http.Get(ts.URL + "/api/queue")
	require.NoError(t, err)
	defer noAuth.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, noAuth.StatusCode)
}
