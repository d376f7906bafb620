package domain

import "github.com/shopspring/decimal"

// Category groups products on the menu.
type Category struct {
	CategoryID  int64  `json:"categoryID"`
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	Version     int64  `json:"version"`
}

// Ingredient is a component used in the shop's drinks and pastries.
type Ingredient struct {
	IngredientID int64  `json:"ingredientID"`
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Origin       string `json:"origin" validate:"max=100"`
	Allergen     bool   `json:"allergen"`
	Version      int64  `json:"version"`
}

// Product is a catalog item that order lines refer to.
type Product struct {
	ProductID   int64           `json:"productID"`
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	CategoryID  *int64          `json:"categoryID,omitempty" validate:"omitempty,gt=0"`
	Version     int64           `json:"version"`
}

// Tea is a loose-leaf tea sold by the shop.
type Tea struct {
	TeaID           int64           `json:"teaID"`
	Name            string          `json:"name" validate:"required,min=2,max=100"`
	Variety         string          `json:"variety" validate:"required,max=50"`
	Origin          string          `json:"origin" validate:"max=100"`
	Description     string          `json:"description" validate:"max=500"`
	Price           decimal.Decimal `json:"price" validate:"gte=0"`
	BrewTemperature int             `json:"brewTemperature" validate:"omitempty,min=50,max=100"`
	SteepSeconds    int             `json:"steepSeconds" validate:"min=0,max=900"`
	Version         int64           `json:"version"`
}

// User is a customer account.
type User struct {
	UserID    int64  `json:"userID"`
	Username  string `json:"username" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Version   int64  `json:"version"`
}
