package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"ai-docassist-be/internal/model"
	"ai-docassist-be/internal/repository/implementation"
	"ai-docassist-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	repo := implementation.NewQueryLogRepository(gormDB)
	ctx := context.Background()

	t.Run("Create and read back a query log", func(t *testing.T) {
		filterUsed := "folder ge 'Policies/' and folder lt 'Policiet'"
		record := &model.QueryLog{
			SessionId:      "it-session-1",
			Query:          "what's our wellness policy",
			Intent:         "Policy",
			FilterUsed:     &filterUsed,
			DocumentsFound: 3,
			Sources:        datatypes.JSON([]byte(`[{"title":"wellness.pdf"}]`)),
			Confidence:     0.8,
			DurationMs:     420,
		}
		err := repo.Create(ctx, record)
		assert.NoError(t, err)
		assert.NotEqual(t, "", record.Id.String())

		logs, err := repo.FindRecentBySession(ctx, "it-session-1", 5)
		assert.NoError(t, err)
		assert.NotEmpty(t, logs)
		assert.Equal(t, "Policy", logs[0].Intent)
	})

	t.Run("Count by intent", func(t *testing.T) {
		count, err := repo.CountByIntent(ctx, "Policy")
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, count, int64(1))
	})
}
