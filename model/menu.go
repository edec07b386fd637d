package model

type MenuItem struct {
	DTO
	ShopId      uint    `gorm:"index;not null" json:"shopId"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Category    string  `gorm:"index" json:"category"` // snacks, meals, beverages...
	Price       float64 `gorm:"not null" json:"price"`
	ImageUrl    *string `json:"imageUrl,omitempty"`
	IsVeg       bool    `gorm:"default:true" json:"isVeg"`
	Available   bool    `gorm:"default:true" json:"available"`
}

type CreateMenuItemInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Category    string  `json:"category" validate:"omitempty,max=50"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	ImageUrl    *string `json:"imageUrl"`
	IsVeg       *bool   `json:"isVeg"`
}

type EditMenuItemInput struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Category    *string  `json:"category" validate:"omitempty,max=50"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	ImageUrl    *string  `json:"imageUrl"`
	IsVeg       *bool    `json:"isVeg"`
	Available   *bool    `json:"available"`
}
