package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsync/fitsync/internal/models"
	"github.com/fitsync/fitsync/internal/services"
)

func TestLogActivityAppendsRow(t *testing.T) {
	db := setupTestDB(t)

	userID := testUserID
	services.LogActivity(db, &userID, "login", "successful login", "127.0.0.1", "test-agent")
	services.LogActivity(db, nil, "register", "anonymous origin", "127.0.0.1", "test-agent")

	var count int64
	db.Model(&models.ActivityLog{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestLogActivitySwallowsFailure(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Migrator().DropTable("activity_logs"))

	// Must not panic or surface an error
	userID := testUserID
	services.LogActivity(db, &userID, "sync_write", "3 operations", "127.0.0.1", "test-agent")
}

func TestRecentLogsClampsLimit(t *testing.T) {
	db := setupTestDB(t)

	userID := testUserID
	for i := 0; i < services.MaxLogLimit+20; i++ {
		services.LogActivity(db, &userID, "login", fmt.Sprintf("entry %d", i), "127.0.0.1", "test-agent")
	}

	logs, err := services.RecentLogs(db, 0)
	require.NoError(t, err)
	assert.Len(t, logs, services.DefaultLogLimit)

	logs, err = services.RecentLogs(db, 10_000)
	require.NoError(t, err)
	assert.Len(t, logs, services.MaxLogLimit)

	logs, err = services.RecentLogs(db, 5)
	require.NoError(t, err)
	assert.Len(t, logs, 5)
}
