// internal/db/migrations.go
package db

import (
	"context"
	"errors"
	"fmt"

	"obligate/internal/models"

	"gorm.io/gorm"
)

// PortAssociationsTable — join-таблица порт <-> адрес (many2many у models.Port).
const PortAssociationsTable = "quark_port_ip_address_associations"

// Flush пересоздаёт таблицы quark: удаляет в обратном порядке и заново
// создаёт через AutoMigrate. Таблицы melange не трогает.
func Flush(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("flush: no database")
	}
	dialect := db.Dialector.Name()

	// SET FOREIGN_KEY_CHECKS действует на сессию, поэтому всё на одном соединении
	err := db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		if dialect == "mysql" {
			return withoutForeignKeyChecks(tx, dropQuarkTables)
		}
		return dropQuarkTables(tx)
	})
	if err != nil {
		return err
	}
	return Migrate(ctx, db)
}

func dropQuarkTables(tx *gorm.DB) error {
	if err := tx.Migrator().DropTable(PortAssociationsTable); err != nil {
		return fmt.Errorf("drop %s: %w", PortAssociationsTable, err)
	}
	tables := models.QuarkModels()
	for i := len(tables) - 1; i >= 0; i-- {
		if err := tx.Migrator().DropTable(tables[i]); err != nil {
			return fmt.Errorf("drop %T: %w", tables[i], err)
		}
	}
	return nil
}

// withoutForeignKeyChecks (mysql): fn с выключенными FK-проверками сессии.
// Ошибка обратного включения возвращается вместе с ошибкой fn.
func withoutForeignKeyChecks(tx *gorm.DB, fn func(*gorm.DB) error) (err error) {
	if err := tx.Exec("SET FOREIGN_KEY_CHECKS = 0").Error; err != nil {
		return fmt.Errorf("disable foreign key checks: %w", err)
	}
	defer func() {
		if rerr := tx.Exec("SET FOREIGN_KEY_CHECKS = 1").Error; rerr != nil {
			err = errors.Join(err, fmt.Errorf("restore foreign key checks: %w", rerr))
		}
	}()
	return fn(tx)
}

// Migrate создаёт недостающие таблицы quark (вместе с join-таблицей портов).
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models.QuarkModels()...); err != nil {
		return fmt.Errorf("automigrate quark: %w", err)
	}
	return nil
}

// Tables — какие из таблиц quark сейчас существуют (для отчёта flush).
func Tables(db *gorm.DB) []string {
	var out []string
	for _, m := range models.QuarkModels() {
		if t, ok := m.(interface{ TableName() string }); ok && db.Migrator().HasTable(m) {
			out = append(out, t.TableName())
		}
	}
	if db.Migrator().HasTable(PortAssociationsTable) {
		out = append(out, PortAssociationsTable)
	}
	return out
}
