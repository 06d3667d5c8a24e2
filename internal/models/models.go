package models

// All returns every model managed by the schema migration, parents first.
func All() []interface{} {
	return []interface{}{
		&User{},
		&ProductCategory{},
		&Product{},
		&ProductDetail{},
		&Order{},
		&OrderItem{},
		&CartItem{},
		&Notification{},
	}
}
