package model

// Account is a shop-side login (owner or counter staff).
type Account struct {
	DTO
	Username string `gorm:"unique;not null" json:"username"`
	Password string `json:"-"`
	Role     string `gorm:"default:'OWNER'" json:"role"`
	Active   bool   `gorm:"default:true" json:"active"`
	ShopId   *uint  `json:"shopId"`
	Shop     *Shop  `json:"shop,omitempty"`
}
