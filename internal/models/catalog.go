package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Date is a calendar date carried as "2006-01-02" on the wire.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}

	d.Time = t

	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
	case nil:
		d.Time = time.Time{}
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}

	return nil
}

// OptionalID tells an absent field apart from an explicit null. Set is true
// whenever the key was present; Value is nil for null.
type OptionalID struct {
	Set   bool
	Value *int64
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true

	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	o.Value = &id

	return nil
}

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Book struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	AuthorID      int64           `json:"author"`
	CategoryID    *int64          `json:"category"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	PublishedDate Date            `json:"published_date"`
	AverageRating *float64        `json:"average_rating,omitempty"`
}

type AuthorRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Bio  string `json:"bio"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type CreateBookRequest struct {
	Title         string          `json:"title" validate:"required,max=200"`
	AuthorID      int64           `json:"author" validate:"required,gt=0"`
	CategoryID    *int64          `json:"category" validate:"omitempty,gt=0"`
	Description   string          `json:"description" validate:"required"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock" validate:"gte=0"`
	PublishedDate Date            `json:"published_date"`
}

type UpdateBookRequest struct {
	Title         *string          `json:"title,omitempty" validate:"omitempty,max=200"`
	AuthorID      *int64           `json:"author,omitempty" validate:"omitempty,gt=0"`
	CategoryID    OptionalID       `json:"category" swaggertype:"integer" extensions:"x-nullable"`
	Description   *string          `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Stock         *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
	PublishedDate *Date            `json:"published_date,omitempty"`
}

// BookFilter holds the list query for books. Zero values mean "no filter".
type BookFilter struct {
	AuthorName   string           `json:"author,omitempty"`
	CategoryName string           `json:"category,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	MinPrice     *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice     *decimal.Decimal `json:"max_price,omitempty"`
	Search       string           `json:"search,omitempty"`
	Ordering     string           `json:"ordering,omitempty"`
	Page         int              `json:"page"`
	PageSize     int              `json:"pageSize"`
}

// MinBookPrice is the lowest price a book may carry.
var MinBookPrice = decimal.RequireFromString("0.01")
