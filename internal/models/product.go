package models

// Product is one catalog row. Colors and Sizes are comma-joined tag sets
// ("red,blue", "S,M,L"), the way the original store keeps them.
type Product struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	Name       string  `json:"name" gorm:"size:255;not null"`
	Img        string  `json:"img" gorm:"size:255"`
	Category   string  `json:"category" gorm:"size:100;index"`
	FabricType string  `json:"fabric_type" gorm:"size:100"`
	Type       string  `json:"type" gorm:"size:100"`
	Colors     string  `json:"colors" gorm:"size:255"`
	Sizes      string  `json:"sizes" gorm:"size:255"`
	Price      float64 `json:"price" gorm:"not null"`
	Stock      int     `json:"stock" gorm:"not null;default:0"`
}
