// internal/services/tenant_service_test.go
package services

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockTenantService(t *testing.T) (*TenantService, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return NewTenantService(db), mock
}

func tenantRow(id string, current, max int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "status", "current_users", "max_users"}).
		AddRow(id, "Acme", "active", current, max)
}

func TestIncrementUsersAtCapacity(t *testing.T) {
	svc, mock := newMockTenantService(t)

	// The guarded UPDATE matches no row; the count must stay untouched.
	mock.ExpectExec(`UPDATE "tenants" SET "current_users"=current_users \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "tenants"`).
		WillReturnRows(tenantRow("tenant-1", 5, 5))

	tenant, err := svc.IncrementUsers(context.Background(), "tenant-1")
	require.ErrorIs(t, err, ErrConflict)
	assert.Nil(t, tenant)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementUsersTakesSlot(t *testing.T) {
	svc, mock := newMockTenantService(t)

	mock.ExpectExec(`UPDATE "tenants" SET "current_users"=current_users \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "tenants"`).
		WillReturnRows(tenantRow("tenant-1", 3, 5))

	tenant, err := svc.IncrementUsers(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, 3, tenant.CurrentUsers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementUsersUnknownTenant(t *testing.T) {
	svc, mock := newMockTenantService(t)

	mock.ExpectExec(`UPDATE "tenants" SET "current_users"=current_users \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "tenants"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.IncrementUsers(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDecrementUsersFloorsAtZero(t *testing.T) {
	svc, mock := newMockTenantService(t)

	// current_users > 0 guard matches nothing; the call still succeeds.
	mock.ExpectExec(`UPDATE "tenants" SET "current_users"=current_users - 1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "tenants"`).
		WillReturnRows(tenantRow("tenant-1", 0, 5))

	tenant, err := svc.DecrementUsers(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, 0, tenant.CurrentUsers)
}
