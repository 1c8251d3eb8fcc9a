package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbOnce sync.Once
var db *Db

// Db is a shared in-memory SQLite database migrated with the given models.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	order  []string
}

// NewDb opens the shared database once. Tables are keyed by name and
// migrated in the order given.
func NewDb(tables []string, models map[string]any) *Db {
	dbOnce.Do(func() {
		db = open(tables, models)
	})
	return db
}

func open(tables []string, models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}
	if err := dbConn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		panic(err)
	}

	d := &Db{DbConn: dbConn, models: models, order: tables}
	if err := d.migrate(); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}
	return d
}

func (d *Db) migrate() error {
	for _, table := range d.order {
		if err := d.DbConn.AutoMigrate(d.models[table]); err != nil {
			return err
		}
		if !d.DbConn.Migrator().HasTable(d.models[table]) {
			return fmt.Errorf("table %s was not created", table)
		}
	}
	return nil
}

// ClearDB deletes every row, children first.
func (d *Db) ClearDB() error {
	for i := len(d.order) - 1; i >= 0; i-- {
		model := d.models[d.order[i]]
		if err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear table %s: %w", d.order[i], err)
		}
	}
	return nil
}

// GetModel returns the model registered for a table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
