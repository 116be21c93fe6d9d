package common

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectDb(t *testing.T) {
	db, err := ConnectDb(filepath.Join(t.TempDir(), "test.db"))

	assert.NoError(t, err)
	assert.NotNil(t, db)
	assert.NoError(t, db.Exec("SELECT 1").Error)
}

func TestConnectDb_NoPath(t *testing.T) {
	db, err := ConnectDb("")

	assert.Nil(t, db)
	assert.ErrorIs(t, err, ErrNoDatabasePath)
}
