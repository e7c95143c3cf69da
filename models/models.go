package models

// All returns every model managed by AutoMigrate, parents before children.
func All() []interface{} {
	return []interface{}{
		&User{},
		&LoginToken{},
		&Category{},
		&Brand{},
		&Supplier{},
		&Product{},
		&ProductImage{},
	}
}
