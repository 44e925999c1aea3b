package models

import "time"

// CartItem is one line item. (user_id, product_id) is unique: re-adding a
// product merges into the existing row instead of creating a duplicate.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_cart_user_product;not null"`
	ProductID uint      `json:"product_id" gorm:"uniqueIndex:idx_cart_user_product;not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	AddedAt   time.Time `json:"added_at"`
	Product   Product   `json:"product" gorm:"foreignKey:ProductID;references:ID"`
}
