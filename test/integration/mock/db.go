// Package mock provides shared test doubles for the integration suite.
package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ledgerbook/backend/internal/integration/persistence/model"
)

var dbOnce sync.Once
var db *Db

// Db wraps a shared in-memory SQLite database used by every scenario.
// The schema is migrated once; Reset wipes the rows between scenarios.
type Db struct {
	conn   *gorm.DB
	models map[string]any
}

// NewDb returns the singleton test database with the full schema migrated.
func NewDb() *Db {
	dbOnce.Do(func() {
		db = open()
	})
	return db
}

func open() *Db {
	// A single connection keeps every session on the same in-memory database.
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}
	dbSQL.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}

	models := map[string]any{
		"users":          &model.UserModel{},
		"refresh_tokens": &model.RefreshTokenModel{},
		"teams":          &model.TeamModel{},
		"team_members":   &model.TeamMemberModel{},
		"team_invites":   &model.TeamInviteModel{},
		"books":          &model.BookModel{},
		"accounts":       &model.AccountModel{},
		"categories":     &model.CategoryModel{},
		"transactions":   &model.TransactionModel{},
	}

	modelList := make([]any, 0, len(models))
	for _, m := range models {
		modelList = append(modelList, m)
	}
	if err := conn.AutoMigrate(modelList...); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	return &Db{conn: conn, models: models}
}

// Conn returns the underlying gorm connection.
func (d *Db) Conn() *gorm.DB {
	return d.conn
}

// Reset deletes every row from every table. Scenarios start from an empty
// database but keep the migrated schema.
func (d *Db) Reset() error {
	for _, m := range d.models {
		err := d.conn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error
		if err != nil {
			return fmt.Errorf("failed to reset table for model %T: %w", m, err)
		}
	}
	return nil
}

// GetModel returns a fresh model instance for the given table name.
func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}

// Count returns the number of rows in the given table.
func (d *Db) Count(table string) (int64, error) {
	m, ok := d.models[table]
	if !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var count int64
	if err := d.conn.Model(m).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
