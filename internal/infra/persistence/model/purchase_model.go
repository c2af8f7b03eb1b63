package model

import "time"

// PurchaseModel mirrors the 'purchases' table. Rows are immutable once written.
type PurchaseModel struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	UserID         int64     `gorm:"not null;index"`
	Total          float64   `gorm:"type:numeric(12,2);not null"`
	CashbackEarned float64   `gorm:"type:numeric(12,2);not null"`
	PaymentMethod  string    `gorm:"type:varchar(50);not null"`
	Date           time.Time `gorm:"not null"`
	CreatedAt      time.Time

	Items []*PurchaseItemModel `gorm:"foreignKey:PurchaseID"`
}

// TableName explicitly sets the table name for GORM.
func (PurchaseModel) TableName() string {
	return "purchases"
}

// PurchaseItemModel mirrors the 'purchase_items' table. Price is the unit
// price snapshotted at purchase time.
type PurchaseItemModel struct {
	ID         int64   `gorm:"primaryKey;autoIncrement"`
	PurchaseID int64   `gorm:"not null;index"`
	ProductID  int64   `gorm:"not null"`
	Quantity   int     `gorm:"not null"`
	Price      float64 `gorm:"type:numeric(12,2);not null"`

	Product *ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (PurchaseItemModel) TableName() string {
	return "purchase_items"
}
