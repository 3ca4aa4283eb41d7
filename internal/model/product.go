package model

import "github.com/shopspring/decimal"

func init() {
	// Prices render as JSON numbers, the way the catalog client reads them.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog entry. The catalog is maintained outside this service;
// JSON names follow the hijab_products columns.
type Product struct {
	ID       uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string          `json:"nama" gorm:"column:nama;size:255;not null"`
	Category string          `json:"kategori" gorm:"column:kategori;size:100;not null;index"`
	Price    decimal.Decimal `json:"harga" gorm:"column:harga;type:decimal(12,2);not null"`
	ImageURL string          `json:"imageUrl" gorm:"column:imageUrl;size:512"`
}

// TableName pins the table name.
func (Product) TableName() string {
	return "hijab_products"
}
