package model

import "time"

// CartItemModel mirrors the 'cart_items' table. The (user_id, product_id)
// pair is unique so the add-to-cart upsert can rely on the database as the
// last line of defense.
type CartItemModel struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	UserID    int64 `gorm:"not null;index;uniqueIndex:idx_cart_user_product"`
	ProductID int64 `gorm:"not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int   `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Product *ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (CartItemModel) TableName() string {
	return "cart_items"
}
