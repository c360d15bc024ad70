package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestConnectRejectsEmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), "  ", nil)
	require.ErrorContains(t, err, "DSN is empty")
}

func TestConnectOrFallbackWithoutDSN(t *testing.T) {
	var logs bytes.Buffer
	db, cleanup := ConnectOrFallback(context.Background(), "", slog.New(slog.NewTextHandler(&logs, nil)))
	require.Nil(t, db)
	require.NotNil(t, cleanup)
	cleanup()
	require.Contains(t, logs.String(), "falling back to in-memory repositories")
}

func TestGormLoggerDiscardsWithoutLogger(t *testing.T) {
	require.Equal(t, gormlogger.Discard, newGormLogger(nil))
	require.NotNil(t, newGormLogger(slog.Default()))
}
