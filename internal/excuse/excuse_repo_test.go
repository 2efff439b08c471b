package excuse

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestRepositoryWithTx_BindsQueriesToTransaction(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)

	mock.ExpectBegin()
	tx, err := sqlDB.Begin()
	assert.NoError(t, err)

	base := NewRepository(gdb).(*repository)
	scoped := base.WithTx(tx).(*repository)

	assert.Same(t, tx, scoped.db.Statement.ConnPool)
	assert.NotSame(t, tx, base.db.Statement.ConnPool)
}
