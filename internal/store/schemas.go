package store

import (
	"time"

	"github.com/johnwards/teasaloon/internal/domain"
)

// CategorySchema maps domain.Category onto the categories table.
var CategorySchema = &Schema[domain.Category]{
	Resource: "Categories",
	Entity:   "Category",
	Table:    "categories",
	Columns:  []string{"name", "description"},
	ID:       func(c *domain.Category) *int64 { return &c.CategoryID },
	Version:  func(c *domain.Category) *int64 { return &c.Version },
	Args: func(c *domain.Category) []any {
		return []any{c.Name, c.Description}
	},
	Dest: func(c *domain.Category) []any {
		return []any{&c.Name, &c.Description}
	},
	ReferencedBy: []Backref{{Table: "products", Column: "category_id"}},
}

// IngredientSchema maps domain.Ingredient onto the ingredients table.
var IngredientSchema = &Schema[domain.Ingredient]{
	Resource: "Ingredients",
	Entity:   "Ingredient",
	Table:    "ingredients",
	Columns:  []string{"name", "origin", "allergen"},
	ID:       func(i *domain.Ingredient) *int64 { return &i.IngredientID },
	Version:  func(i *domain.Ingredient) *int64 { return &i.Version },
	Args: func(i *domain.Ingredient) []any {
		return []any{i.Name, i.Origin, i.Allergen}
	},
	Dest: func(i *domain.Ingredient) []any {
		return []any{&i.Name, &i.Origin, &i.Allergen}
	},
}

// ProductSchema maps domain.Product onto the products table.
var ProductSchema = &Schema[domain.Product]{
	Resource: "Products",
	Entity:   "Product",
	Table:    "products",
	Columns:  []string{"name", "description", "price", "category_id"},
	ID:       func(p *domain.Product) *int64 { return &p.ProductID },
	Version:  func(p *domain.Product) *int64 { return &p.Version },
	Args: func(p *domain.Product) []any {
		return []any{p.Name, p.Description, p.Price, nullInt64(p.CategoryID)}
	},
	Dest: func(p *domain.Product) []any {
		return []any{&p.Name, &p.Description, &p.Price, &p.CategoryID}
	},
	Refs: []Reference[domain.Product]{
		{Field: "categoryID", Table: "categories", Value: func(p *domain.Product) *int64 { return p.CategoryID }},
	},
	ReferencedBy: []Backref{{Table: "order_lines", Column: "product_id"}},
}

// TeaSchema maps domain.Tea onto the teas table.
var TeaSchema = &Schema[domain.Tea]{
	Resource: "Teas",
	Entity:   "Tea",
	Table:    "teas",
	Columns:  []string{"name", "variety", "origin", "description", "price", "brew_temperature", "steep_seconds"},
	ID:       func(t *domain.Tea) *int64 { return &t.TeaID },
	Version:  func(t *domain.Tea) *int64 { return &t.Version },
	Args: func(t *domain.Tea) []any {
		return []any{t.Name, t.Variety, t.Origin, t.Description, t.Price, t.BrewTemperature, t.SteepSeconds}
	},
	Dest: func(t *domain.Tea) []any {
		return []any{&t.Name, &t.Variety, &t.Origin, &t.Description, &t.Price, &t.BrewTemperature, &t.SteepSeconds}
	},
}

// UserSchema maps domain.User onto the users table.
var UserSchema = &Schema[domain.User]{
	Resource: "Users",
	Entity:   "User",
	Table:    "users",
	Columns:  []string{"username", "email", "first_name", "last_name"},
	ID:       func(u *domain.User) *int64 { return &u.UserID },
	Version:  func(u *domain.User) *int64 { return &u.Version },
	Args: func(u *domain.User) []any {
		return []any{u.Username, u.Email, u.FirstName, u.LastName}
	},
	Dest: func(u *domain.User) []any {
		return []any{&u.Username, &u.Email, &u.FirstName, &u.LastName}
	},
}

// OrderSchema maps domain.Order onto the orders table.
var OrderSchema = &Schema[domain.Order]{
	Resource: "Orders",
	Entity:   "Order",
	Table:    "orders",
	Columns:  []string{"payment_mode", "order_creation_time", "reservation", "comment"},
	ID:       func(o *domain.Order) *int64 { return &o.OrderID },
	Version:  func(o *domain.Order) *int64 { return &o.Version },
	Args: func(o *domain.Order) []any {
		return []any{o.PaymentMode, o.OrderCreationTime.UTC(), o.Reservation.UTC(), nullString(o.Comment)}
	},
	Dest: func(o *domain.Order) []any {
		return []any{&o.PaymentMode, &o.OrderCreationTime, &o.Reservation, &o.Comment}
	},
	ReferencedBy: []Backref{{Table: "order_lines", Column: "order_id"}},
	BeforeCreate: func(o *domain.Order) {
		if o.OrderCreationTime.IsZero() {
			o.OrderCreationTime = time.Now().UTC()
		}
	},
}

// OrderLineSchema maps domain.OrderLine onto the order_lines table.
var OrderLineSchema = &Schema[domain.OrderLine]{
	Resource: "OrderLines",
	Entity:   "OrderLine",
	Table:    "order_lines",
	Columns:  []string{"quantity", "product_id", "order_id"},
	ID:       func(l *domain.OrderLine) *int64 { return &l.OrderLineID },
	Version:  func(l *domain.OrderLine) *int64 { return &l.Version },
	Args: func(l *domain.OrderLine) []any {
		return []any{l.Quantity, l.ProductID.ID, nullInt64(l.OrderID)}
	},
	Dest: func(l *domain.OrderLine) []any {
		return []any{&l.Quantity, &l.ProductID.ID, &l.OrderID}
	},
	Refs: []Reference[domain.OrderLine]{
		{Field: "productID.id", Table: "products", Value: func(l *domain.OrderLine) *int64 { return &l.ProductID.ID }},
		{Field: "orderID", Table: "orders", Value: func(l *domain.OrderLine) *int64 { return l.OrderID }},
	},
}
