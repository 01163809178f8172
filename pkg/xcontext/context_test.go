package xcontext

import (
	"context"
	"testing"

	"github.com/cowetaconnect/backend/internal/entity"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newDBContext(t *testing.T) context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, entity.MigrateTable(db))
	return WithDB(context.Background(), db)
}

func Test_DBTransaction_Commit(t *testing.T) {
	ctx := newDBContext(t)

	txCtx := WithDBTransaction(ctx)
	defer WithRollbackDBTransaction(txCtx)

	err := DB(txCtx).Create(&entity.User{
		Base:  entity.Base{ID: "user1"},
		Email: "jane@example.com",
		Name:  "Jane Doe",
	}).Error
	require.NoError(t, err)

	WithCommitDBTransaction(txCtx)

	var user entity.User
	require.NoError(t, DB(ctx).Take(&user, "id=?", "user1").Error)

	// The deferred rollback after a commit must not undo anything. After the
	// commit the context falls back to the base db.
	WithRollbackDBTransaction(txCtx)
	require.NoError(t, DB(ctx).Take(&user, "id=?", "user1").Error)
}

func Test_DBTransaction_Rollback(t *testing.T) {
	ctx := newDBContext(t)

	txCtx := WithDBTransaction(ctx)
	err := DB(txCtx).Create(&entity.User{
		Base:  entity.Base{ID: "user1"},
		Email: "jane@example.com",
		Name:  "Jane Doe",
	}).Error
	require.NoError(t, err)

	WithRollbackDBTransaction(txCtx)

	var user entity.User
	err = DB(ctx).Take(&user, "id=?", "user1").Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
