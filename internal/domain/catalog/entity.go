// internal/domain/catalog/entity.go
package catalog

import "strconv"

// Vehicle represents a selectable car. TireSize is the only field joined against products.
type Vehicle struct {
	ID        string `gorm:"primaryKey;size:64" json:"id" yaml:"id" dynamodbav:"id"`
	Title     string `gorm:"not null;size:255" json:"title" yaml:"title" dynamodbav:"title"`
	Subtitle  string `gorm:"size:255" json:"subtitle,omitempty" yaml:"subtitle" dynamodbav:"subtitle,omitempty"`
	Make      string `gorm:"size:100" json:"make,omitempty" yaml:"make" dynamodbav:"make,omitempty"`
	Model     string `gorm:"size:100" json:"model,omitempty" yaml:"model" dynamodbav:"model,omitempty"`
	Trim      string `gorm:"size:100" json:"trim,omitempty" yaml:"trim" dynamodbav:"trim,omitempty"`
	Year      int    `json:"year,omitempty" yaml:"year" dynamodbav:"year,omitempty"` // 0 when unknown
	TireSize  string `gorm:"size:50;index" json:"tire_size" yaml:"tire_size" dynamodbav:"tire_size"`
	Color     string `gorm:"size:100" json:"color,omitempty" yaml:"color" dynamodbav:"color,omitempty"`
	MileageKm int    `json:"mileage_km,omitempty" yaml:"mileage_km" dynamodbav:"mileage_km,omitempty"`
	Position  int    `gorm:"index" json:"-" yaml:"position" dynamodbav:"position"`
}

// Attributes holds the optional 0-5 scores shown on a product card
type Attributes struct {
	Comfort     *int `json:"comfort,omitempty" yaml:"comfort" dynamodbav:"comfort,omitempty"`
	Handling    *int `json:"handling,omitempty" yaml:"handling" dynamodbav:"handling,omitempty"`
	FuelEconomy *int `json:"fuel_economy,omitempty" yaml:"fuel_economy" dynamodbav:"fuel_economy,omitempty"`
	Durability  *int `json:"durability,omitempty" yaml:"durability" dynamodbav:"durability,omitempty"`
	Noise       *int `json:"noise,omitempty" yaml:"noise" dynamodbav:"noise,omitempty"`
}

// Attribute score keys
const (
	AttrComfort     = "comfort"
	AttrHandling    = "handling"
	AttrFuelEconomy = "fuel_economy"
	AttrDurability  = "durability"
	AttrNoise       = "noise"
)

// Product represents a tyre in the catalog
type Product struct {
	ID                 string     `gorm:"primaryKey;size:64" json:"id" yaml:"id" dynamodbav:"id"`
	Brand              string     `gorm:"not null;size:100;index" json:"brand" yaml:"brand" dynamodbav:"brand"`
	Name               string     `gorm:"not null;size:255" json:"name" yaml:"name" dynamodbav:"name"`
	Image              string     `gorm:"size:500" json:"image,omitempty" yaml:"image" dynamodbav:"image,omitempty"`
	Rating             float64    `json:"rating" yaml:"rating" dynamodbav:"rating"`
	Reviews            int        `json:"reviews" yaml:"reviews" dynamodbav:"reviews"`
	Attributes         Attributes `gorm:"embedded;embeddedPrefix:attr_" json:"attributes" yaml:"attributes" dynamodbav:"attributes"`
	Tags               []string   `gorm:"serializer:json;type:jsonb" json:"tags,omitempty" yaml:"tags" dynamodbav:"tags,omitempty"`
	Price              int64      `gorm:"not null" json:"price" yaml:"price" dynamodbav:"price"` // whole currency units
	OldPrice           int64      `json:"old_price,omitempty" yaml:"old_price" dynamodbav:"old_price,omitempty"`
	DiscountPercent    int        `json:"discount_percent,omitempty" yaml:"discount_percent" dynamodbav:"discount_percent,omitempty"`
	Currency           string     `gorm:"size:8" json:"currency,omitempty" yaml:"currency" dynamodbav:"currency,omitempty"`
	CompatibleTireSize string     `gorm:"size:50;index" json:"compatible_tire_size" yaml:"compatible_tire_size" dynamodbav:"compatible_tire_size"`
	IsPopular          bool       `json:"is_popular" yaml:"is_popular" dynamodbav:"is_popular"`
	Position           int        `gorm:"index" json:"-" yaml:"position" dynamodbav:"position"`
}

// TableName overrides
func (Vehicle) TableName() string { return "vehicles" }
func (Product) TableName() string { return "products" }

// YearString returns the year as text, or "" when unknown
func (v *Vehicle) YearString() string {
	if v.Year == 0 {
		return ""
	}
	return strconv.Itoa(v.Year)
}

// CompatibleWith reports whether the product fits the vehicle.
// Exact string match, no normalisation.
func (p *Product) CompatibleWith(v *Vehicle) bool {
	return p.CompatibleTireSize == v.TireSize
}

// HasTag reports whether any of the product tags equals one of the given tags
func (p *Product) HasTag(tags ...string) bool {
	for _, have := range p.Tags {
		for _, want := range tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// DiscountAmount returns how much cheaper the product is than its old price
func (p *Product) DiscountAmount() int64 {
	if p.OldPrice > p.Price {
		return p.OldPrice - p.Price
	}
	return 0
}

// Score returns the named attribute score and whether it is present
func (a Attributes) Score(name string) (int, bool) {
	var v *int
	switch name {
	case AttrComfort:
		v = a.Comfort
	case AttrHandling:
		v = a.Handling
	case AttrFuelEconomy:
		v = a.FuelEconomy
	case AttrDurability:
		v = a.Durability
	case AttrNoise:
		v = a.Noise
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Score builds an attribute score pointer
func Score(v int) *int {
	return &v
}
