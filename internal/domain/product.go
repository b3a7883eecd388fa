package domain

import "github.com/shopspring/decimal"

// Product categories
const (
	CategoryIndoor      = "indoor"
	CategoryOutdoor     = "outdoor"
	CategoryPot         = "pot"
	CategoryAccessories = "accessories"
)

// Categories lists the known categories in display order
var Categories = []string{CategoryIndoor, CategoryOutdoor, CategoryPot, CategoryAccessories}

// Product represents a catalog item. Products are read-only once loaded.
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement:false" json:"id" csv:"id"`
	Name        string          `gorm:"size:200;index" json:"name" csv:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price" csv:"price"` // price in main currency units
	Category    string          `gorm:"size:32;index" json:"category" csv:"category"`
	Image       string          `gorm:"size:1024" json:"image" csv:"image"` // path relative to the image root
	Rating      int             `json:"rating" csv:"rating"`
	Description string          `gorm:"type:text" json:"description" csv:"description"`
	IsPopular   bool            `json:"is_popular" csv:"is_popular"`
	IsNew       bool            `json:"is_new" csv:"is_new"`
	IsOnSale    bool            `json:"is_on_sale" csv:"is_on_sale"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "shop_product"
}

// IsValidCategory reports whether c is one of the known categories
func IsValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
