package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"obligate/internal/models"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// startMySQL поднимает mysql и возвращает пул из одного соединения,
// чтобы сессионные переменные были видны между запросами.
func startMySQL(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping mysql container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mysql:8.0",
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "testpass",
				"MYSQL_DATABASE":      "quark",
			},
			WaitingFor: wait.ForListeningPort("3306/tcp").WithStartupTimeout(3 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to cleanup mysql container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "3306/tcp")
	require.NoError(t, err)
	dsn := fmt.Sprintf("root:testpass@tcp(%s:%s)/quark?parseTime=true&charset=utf8mb4&loc=UTC", host, port.Port())

	logger, _ := test.NewNullLogger()
	gdb, err := Connect(ctx, "mysql", dsn, 20, logger)
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = Close(gdb) })
	return gdb
}

func foreignKeyChecks(t *testing.T, gdb *gorm.DB) int {
	t.Helper()
	var v int
	require.NoError(t, gdb.Raw("SELECT @@SESSION.foreign_key_checks").Scan(&v).Error)
	return v
}

func TestFlush_MySQL(t *testing.T) {
	gdb := startMySQL(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, gdb))
	require.NoError(t, gdb.Create(&models.Network{ID: "n", TenantID: "t"}).Error)
	require.NoError(t, gdb.Create(&models.IPAddress{ID: "ip", Version: 4}).Error)
	require.NoError(t, gdb.Create(&models.Port{ID: "p", NetworkID: "n"}).Error)
	require.NoError(t, gdb.Exec("INSERT INTO "+PortAssociationsTable+" (port_id, ip_address_id) VALUES (?, ?)", "p", "ip").Error)

	require.NoError(t, Flush(ctx, gdb))

	require.Equal(t, 1, foreignKeyChecks(t, gdb), "foreign key checks must be restored after flush")
	var n int64
	require.NoError(t, gdb.Model(&models.Network{}).Count(&n).Error)
	require.Zero(t, n)
	require.Len(t, Tables(gdb), len(models.QuarkModels())+1)
}

func TestWithoutForeignKeyChecks_MySQL(t *testing.T) {
	gdb := startMySQL(t)

	t.Run("restored after error", func(t *testing.T) {
		boom := errors.New("boom")
		err := withoutForeignKeyChecks(gdb, func(tx *gorm.DB) error {
			require.Equal(t, 0, foreignKeyChecks(t, tx))
			return boom
		})
		require.ErrorIs(t, err, boom)
		require.Equal(t, 1, foreignKeyChecks(t, gdb))
	})

	t.Run("restore failure is reported", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		err := withoutForeignKeyChecks(gdb.WithContext(ctx), func(*gorm.DB) error {
			cancel()
			return nil
		})
		require.ErrorContains(t, err, "restore foreign key checks")
	})
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("sqlite", "file::memory:")
	require.EqualError(t, err, "unsupported database driver: sqlite")
}

func TestFlush_NilDB(t *testing.T) {
	require.Error(t, Flush(context.Background(), nil))
}
