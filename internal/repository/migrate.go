package repository

import "gorm.io/gorm"

// Migrate creates or updates the schema for every persisted model. On
// Postgres it additionally installs an exclusion constraint so two
// overlapping pending/confirmed reservations for the same property cannot
// both commit, even if they race past the availability check. SQLite (local
// dev, tests) has no equivalent, so there the check-then-act window remains.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&propertyModel{},
		&reservationModel{},
		&notificationModel{},
		&ticketModel{},
		&ticketMessageModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
			return err
		}
		return db.Exec(`
DO $$ BEGIN
  ALTER TABLE reservations ADD CONSTRAINT reservations_no_double_booking
    EXCLUDE USING gist (
      property_id WITH =,
      tstzrange(check_in, check_out, '[)') WITH &&
    ) WHERE (status IN ('pending', 'confirmed'));
EXCEPTION
  WHEN duplicate_table THEN NULL;
  WHEN duplicate_object THEN NULL;
END $$;
`).Error
	}
	return nil
}
