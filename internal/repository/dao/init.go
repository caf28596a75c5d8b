package dao

import "gorm.io/gorm"

// models in dependency order, parents first.
var models = []any{
	&User{},
	&Tournament{},
	&Team{},
	&Player{},
	&Document{},
	&Official{},
	&TeamJersey{},
	&Registration{},
}

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(models...)
}

// DropTables removes every table created by InitTables, children first.
func DropTables(db *gorm.DB) error {
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return err
		}
	}

	return nil
}
