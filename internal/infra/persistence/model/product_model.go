package model

import "time"

// ProductModel mirrors the 'products' table. Barcodes are unique so the
// scanner lookup can resolve a single row.
type ProductModel struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"type:varchar(255);not null"`
	Barcode     string  `gorm:"type:varchar(32);unique;not null"`
	Price       float64 `gorm:"type:numeric(12,2);not null"`
	Description string  `gorm:"type:text"`
	ImageURL    string  `gorm:"type:varchar(500)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
