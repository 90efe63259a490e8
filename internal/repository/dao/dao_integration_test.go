package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB spins up a throwaway postgres container. The
// unique-violation mapping depends on real postgres error codes, so these
// paths cannot be exercised against an in-memory substitute.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker daemon unavailable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=melinia",
			"POSTGRES_PASSWORD=melinia",
			"POSTGRES_DB=melinia_test",
			"listen_addresses = '*'",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	require.NoError(t, resource.Expire(180))

	var db *gorm.DB
	dsn := fmt.Sprintf("host=localhost port=%v user=melinia password=melinia dbname=melinia_test sslmode=disable", resource.GetPort("5432/tcp"))

	pool.MaxWait = 60 * time.Second
	err = pool.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if openErr != nil {
			return openErr
		}

		sqlDB, openErr := db.DB()
		if openErr != nil {
			return openErr
		}

		return sqlDB.Ping()
	})
	require.NoError(t, err)

	require.NoError(t, InitTables(db))

	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	return db
}

func insertUser(t *testing.T, db *gorm.DB, code, email string) User {
	t.Helper()

	user, err := NewUserDAO(db).Insert(context.Background(), User{
		Code:      code,
		Email:     email,
		Password:  "hashed",
		FirstName: "Test",
	})
	require.NoError(t, err)

	return user
}

func TestUserDAOUniqueConstraints(t *testing.T) {
	db := setupTestDB(t)
	userDAO := NewUserDAO(db)

	insertUser(t, db, "MLNUAAA111", "a@melinia.in")

	_, err := userDAO.Insert(context.Background(), User{
		Code: "MLNUBBB222", Email: "a@melinia.in", Password: "hashed", FirstName: "Dup",
	})
	assert.ErrorIs(t, err, ErrUserEmailExists)

	_, err = userDAO.Insert(context.Background(), User{
		Code: "MLNUAAA111", Email: "b@melinia.in", Password: "hashed", FirstName: "Dup",
	})
	assert.ErrorIs(t, err, ErrUserCodeExists)
}

func TestCheckInDAOIdempotence(t *testing.T) {
	db := setupTestDB(t)
	checkInDAO := NewCheckInDAO(db)

	user := insertUser(t, db, "MLNUAAA111", "a@melinia.in")

	record := CheckIn{
		RoundID:     1,
		UserID:      user.ID,
		CheckedInBy: user.ID,
		CheckedInAt: time.Now(),
	}

	first, err := checkInDAO.Insert(context.Background(), record)
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	_, err = checkInDAO.Insert(context.Background(), record)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	// A different round is a fresh check-in, not a duplicate.
	record.RoundID = 2
	_, err = checkInDAO.Insert(context.Background(), record)
	assert.NoError(t, err)
}

func TestRoundResultDAOUpsert(t *testing.T) {
	db := setupTestDB(t)
	resultDAO := NewRoundResultDAO(db)

	user := insertUser(t, db, "MLNUAAA111", "a@melinia.in")

	require.NoError(t, resultDAO.UpsertForUser(context.Background(), 1, user.ID, "QUALIFIED"))
	require.NoError(t, resultDAO.UpsertForUser(context.Background(), 1, user.ID, "ELIMINATED"))

	records, err := resultDAO.FindByRound(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ELIMINATED", records[0].Status)
}
