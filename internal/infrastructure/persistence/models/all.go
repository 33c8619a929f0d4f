package models

// All returns every model managed by AutoMigrate, in dependency order.
func All() []interface{} {
	return []interface{}{
		&DossierModel{},
		&PropertyModel{},
		&RequesterModel{},
		&ClaimModel{},
		&ActivityLogModel{},
	}
}
