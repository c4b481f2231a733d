package sessionrepo

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlRecorder keeps every statement gorm renders.
type sqlRecorder struct {
	mu  sync.Mutex
	sql []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface      { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	stmt, _ := fc()
	r.mu.Lock()
	r.sql = append(r.sql, stmt)
	r.mu.Unlock()
}

func dryRunDB(t *testing.T) (*gorm.DB, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=mirror dbname=mirror sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               rec,
	})
	require.NoError(t, err)
	return db, rec
}

func TestListMessagesOrdersByInsertSequence(t *testing.T) {
	db, rec := dryRunDB(t)
	repo := NewSessionGormRepository(db)

	_, err := repo.ListMessages(context.Background(), "11111111-1111-1111-1111-111111111111")
	require.NoError(t, err)

	require.Len(t, rec.sql, 1)
	stmt := rec.sql[0]
	assert.Contains(t, stmt, `FROM "chat_messages"`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(stmt), "ORDER BY seq ASC"), stmt)
	assert.NotContains(t, stmt, "created_at")
}
