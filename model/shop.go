package model

type Shop struct {
	DTO
	Name        string     `gorm:"not null" json:"name"`
	Slug        string     `gorm:"uniqueIndex;size:100" json:"slug"`
	Description string     `json:"description"`
	Location    string     `json:"location"` // block / building on campus
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	LogoUrl     *string    `json:"logoUrl,omitempty"`
	UpiId       string     `json:"upiId"`
	IsOpen      bool       `gorm:"default:true" json:"isOpen"`
	OpensAt     string     `gorm:"size:5" json:"opensAt"`  // "08:00"
	ClosesAt    string     `gorm:"size:5" json:"closesAt"` // "21:00"
	MenuItems   []MenuItem `gorm:"foreignKey:ShopId" json:"menuItems,omitempty"`
}

type CreateShopInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Location    string `json:"location" validate:"required"`
	Phone       string `json:"phone" validate:"omitempty,min=10,max=15"`
	Email       string `json:"email" validate:"omitempty,email"`
	UpiId       string `json:"upiId" validate:"omitempty"`
	OpensAt     string `json:"opensAt" validate:"omitempty,len=5"`
	ClosesAt    string `json:"closesAt" validate:"omitempty,len=5"`
}

type EditShopInput struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Location    *string `json:"location"`
	Phone       *string `json:"phone" validate:"omitempty,min=10,max=15"`
	Email       *string `json:"email" validate:"omitempty,email"`
	UpiId       *string `json:"upiId"`
	LogoUrl     *string `json:"logoUrl"`
	IsOpen      *bool   `json:"isOpen"`
	OpensAt     *string `json:"opensAt" validate:"omitempty,len=5"`
	ClosesAt    *string `json:"closesAt" validate:"omitempty,len=5"`
}
