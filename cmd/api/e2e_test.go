package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/buhba/boba-diary-engine/internal/adapters/handler/http"
	"github.com/buhba/boba-diary-engine/internal/adapters/repository"
	"github.com/buhba/boba-diary-engine/internal/core/domain"
	"github.com/buhba/boba-diary-engine/internal/core/services"
	"github.com/buhba/boba-diary-engine/internal/core/workers"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	getenv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getenv("DB_USER", "boba_user"),
		getenv("DB_PASSWORD", "secret"),
		getenv("DB_HOST", "localhost"),
		getenv("DB_PORT", "5432"),
		getenv("DB_NAME", "boba_db"),
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Skipf("Database connection failed (skipping e2e tests): %v", err)
	}
	return db
}

func setupRouter(db *sqlx.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := repository.NewPostgresEntryRepository(db)
	worker := workers.NewSummaryWorker(repo, nil)

	entryService := services.NewEntryService(repo, worker)
	statsService := services.NewStatsService(repo, nil)

	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		EntryHandler: adapterHTTP.NewEntryHandler(entryService),
		StatsHandler: adapterHTTP.NewStatsHandler(statsService),
		DB:           db,
		Redis:        nil,
		StartTime:    time.Now(),
	})
}

func TestEndToEnd_DiaryLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	require.NoError(t, repository.RunMigrations(db))
	db.MustExec("TRUNCATE TABLE entries CASCADE")

	router := setupRouter(db)

	var entryID string

	t.Run("1. Create Entry", func(t *testing.T) {
		payload := `{
			"flavor": "Taro Milk Tea",
			"price": 5.50,
			"shop_name": "Boba Guys",
			"location": "Mission",
			"date": "2025-05-01T12:00:00Z",
			"rating": 4
		}`

		req, _ := http.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var created domain.Entry
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, 1, created.Version)
		entryID = created.ID
	})

	t.Run("2. Update Entry", func(t *testing.T) {
		require.NotEmpty(t, entryID, "Create step failed, cannot update")

		payload := `{"flavor": "Brown Sugar Boba", "version": 1}`

		req, _ := http.NewRequest(http.MethodPut, "/api/v1/entries/"+entryID, bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("3. Verify Update", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/entries/"+entryID, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var fetched domain.Entry
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
		assert.Equal(t, "Brown Sugar Boba", fetched.Flavor)
		assert.Equal(t, 2, fetched.Version)
	})

	t.Run("4. Stale Update Rejected", func(t *testing.T) {
		payload := `{"flavor": "Old Edit", "version": 1}`

		req, _ := http.NewRequest(http.MethodPut, "/api/v1/entries/"+entryID, bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("5. Stats Reflect the Diary", func(t *testing.T) {
		payload := `{
			"flavor": "brown sugar boba",
			"price": 4.50,
			"shop_name": "Tea Shop",
			"date": "2025-05-02T12:00:00Z"
		}`
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		req, _ = http.NewRequest(http.MethodGet, "/api/v1/stats/overview", nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var summary domain.Summary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
		assert.Equal(t, 2, summary.DrinkCount)
		assert.True(t, summary.TotalSpent.Equal(decimal.NewFromFloat(10)))
		assert.Equal(t, 1, summary.UniqueFlavors, "flavor uniqueness is case-insensitive")
		assert.Equal(t, 2, summary.UniqueShops)
	})

	t.Run("6. Windowed Breakdown", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/stats/breakdown?period=all-time", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var breakdown domain.Breakdown
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &breakdown))
		assert.Equal(t, 2, breakdown.DrinkCount)
		assert.Len(t, breakdown.DailySpend, 2)
		assert.Equal(t, "May 1, 2025", breakdown.DateRange.Start)
		assert.Equal(t, "May 2, 2025", breakdown.DateRange.End)
	})

	t.Run("7. Delete Entry", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, "/api/v1/entries/"+entryID, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)

		req, _ = http.NewRequest(http.MethodGet, "/api/v1/entries/"+entryID, nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
