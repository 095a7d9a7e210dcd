//go:build integration

// Package mock provides in-process stand-ins for the service's infrastructure in BDD tests.
package mock

import (
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

type Db struct {
	DbConn *gorm.DB
	models map[string]any
	order  []string
}

// NewDb opens the shared in-memory database once and migrates the models.
// order lists the tables children first; ClearDB empties them in that order.
func NewDb(models map[string]any, order []string) *Db {
	once.Do(func() {
		db = open(models, order)
	})
	return db
}

func open(models map[string]any, order []string) *Db {
	dbConn, err := gorm.Open(sqlite.Open("file:ledger?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	sqlDB, err := dbConn.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	newDbMock := &Db{
		DbConn: dbConn,
		models: models,
		order:  order,
	}

	if err := newDbMock.migrate(); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return newDbMock
}

func (d *Db) migrate() error {
	modelList := make([]any, 0, len(d.order))
	for i := len(d.order) - 1; i >= 0; i-- {
		model, ok := d.models[d.order[i]]
		if !ok {
			return fmt.Errorf("no model registered for table %s", d.order[i])
		}
		modelList = append(modelList, model)
	}

	if err := d.DbConn.AutoMigrate(modelList...); err != nil {
		return err
	}

	for _, model := range modelList {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
	}
	return nil
}

// ClearDB removes every row, children before parents.
func (d *Db) ClearDB() error {
	for _, table := range d.order {
		model := d.models[table]
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
