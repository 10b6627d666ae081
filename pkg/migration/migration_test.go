package migration_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/pkg/migration"
)

type widget struct {
	ID   uint
	Name string
}

type createWidgets struct{}

func (createWidgets) Up(db *gorm.DB) error   { return db.AutoMigrate(&widget{}) }
func (createWidgets) Down(db *gorm.DB) error { return db.Migrator().DropTable(&widget{}) }

type addWidgetIndex struct{}

func (addWidgetIndex) Up(db *gorm.DB) error {
	return db.Exec("CREATE INDEX idx_widgets_name ON widgets(name)").Error
}
func (addWidgetIndex) Down(db *gorm.DB) error {
	return db.Exec("DROP INDEX idx_widgets_name").Error
}

func init() {
	// Registered out of order on purpose; the runner sorts by name.
	migration.Register("20260101000001_add_widget_index", addWidgetIndex{})
	migration.Register("20260101000000_create_widgets_table", createWidgets{})
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestRunAppliesPendingInOrder(t *testing.T) {
	db := openDB(t)
	var out bytes.Buffer
	runner := migration.New(db, &out)

	n, err := runner.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, db.Migrator().HasTable(&widget{}))
	assert.Less(t,
		bytes.Index(out.Bytes(), []byte("create_widgets_table")),
		bytes.Index(out.Bytes(), []byte("add_widget_index")))

	n, err = runner.Run()
	require.NoError(t, err)
	assert.Zero(t, n)

	pending, err := runner.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRollbackUndoesLastBatch(t *testing.T) {
	db := openDB(t)
	runner := migration.New(db, nil)

	_, err := runner.Run()
	require.NoError(t, err)

	n, err := runner.Rollback()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, db.Migrator().HasTable(&widget{}))

	status, err := runner.Status()
	require.NoError(t, err)
	require.Len(t, status, 2)
	for _, s := range status {
		assert.False(t, s.Ran, s.Name)
	}

	n, err = runner.Rollback()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	assert.Panics(t, func() {
		migration.Register("20260101000000_create_widgets_table", createWidgets{})
	})
}
