// internal/domain/filter/attribute.go
package filter

import (
	"math"
	"strconv"
	"strings"

	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
)

// Selections holds the three single-select refinements. A nil field is unset.
type Selections struct {
	Brand      *string `json:"brand"`
	PriceRange *string `json:"price_range"`
	Feature    *string `json:"feature"`
}

// IsZero reports whether no refinement is active
func (s Selections) IsZero() bool {
	return s.Brand == nil && s.PriceRange == nil && s.Feature == nil
}

// Key returns a stable string form used for memoization. Values are quoted
// so no two selections share a key.
func (s Selections) Key() string {
	part := func(v *string) string {
		if v == nil {
			return "-"
		}
		return "=" + strconv.Quote(*v)
	}
	return "brand" + part(s.Brand) + "|price" + part(s.PriceRange) + "|feature" + part(s.Feature)
}

// Option is a selectable value with its display label
type Option struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// PriceBucket is a closed price interval. The top bucket has Max == math.MaxInt64.
type PriceBucket struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Min   int64  `json:"min"`
	Max   int64  `json:"max"`
}

// Contains reports min <= price <= max
func (b PriceBucket) Contains(price int64) bool {
	return b.Min <= price && price <= b.Max
}

// Unbounded reports whether the bucket has no upper limit
func (b PriceBucket) Unbounded() bool {
	return b.Max == math.MaxInt64
}

// Adjacent buckets share their boundary value, so a price of exactly 2000
// falls in both 0-2000 and 2000-4000.
var priceBuckets = []PriceBucket{
	{Key: "0-2000", Label: "0 - 2,000 บาท", Min: 0, Max: 2000},
	{Key: "2000-4000", Label: "2,000 - 4,000 บาท", Min: 2000, Max: 4000},
	{Key: "4000-6000", Label: "4,000 - 6,000 บาท", Min: 4000, Max: 6000},
	{Key: "6000-8000", Label: "6,000 - 8,000 บาท", Min: 6000, Max: 8000},
	{Key: "8000-10000", Label: "8,000 - 10,000 บาท", Min: 8000, Max: 10000},
	{Key: "10000+", Label: "10,000+ บาท", Min: 10000, Max: math.MaxInt64},
}

var brands = []Option{
	{Key: "michelin", Label: "Michelin"},
	{Key: "bridgestone", Label: "Bridgestone"},
	{Key: "goodyear", Label: "Goodyear"},
	{Key: "pirelli", Label: "Pirelli"},
	{Key: "continental", Label: "Continental"},
	{Key: "yokohama", Label: "Yokohama"},
	{Key: "dunlop", Label: "Dunlop"},
	{Key: "falken", Label: "Falken"},
}

// featureRule matches either by tag or, when Tags is empty, by an attribute score threshold
type featureRule struct {
	Label     string
	Tags      []string
	Attribute string
}

const featureThreshold = 4

var featureOrder = []string{
	"eco-friendly", "wet-grip", "low-noise", "long-lasting",
	"all-season", "sport", "comfort", "off-road",
}

// "all-season" is tag-only and the tag does not occur in the demo feed, so it
// matches nothing there.
var features = map[string]featureRule{
	"eco-friendly": {Label: "ประหยัดน้ำมัน", Tags: []string{"ประหยัดน้ำมัน"}},
	"wet-grip":     {Label: "เกาะถนนเปียก", Attribute: catalog.AttrHandling},
	"low-noise":    {Label: "เงียบ", Attribute: catalog.AttrNoise},
	"long-lasting": {Label: "ทนทาน", Attribute: catalog.AttrDurability},
	"all-season":   {Label: "ใช้ได้ทุกฤดู", Tags: []string{"All Season"}},
	"sport":        {Label: "สปอร์ต", Tags: []string{"Performance"}},
	"comfort":      {Label: "นุ่มสบาย", Attribute: catalog.AttrComfort},
	"off-road":     {Label: "วิ่งออฟโรด", Tags: []string{"All Terrain"}},
}

// Brands returns the brand options
func Brands() []Option {
	return append([]Option(nil), brands...)
}

// PriceRanges returns the canonical price buckets
func PriceRanges() []PriceBucket {
	return append([]PriceBucket(nil), priceBuckets...)
}

// Features returns the feature options in display order
func Features() []Option {
	out := make([]Option, 0, len(featureOrder))
	for _, key := range featureOrder {
		out = append(out, Option{Key: key, Label: features[key].Label})
	}
	return out
}

// LookupPriceRange finds a canonical bucket by key
func LookupPriceRange(key string) (PriceBucket, bool) {
	for _, b := range priceBuckets {
		if b.Key == key {
			return b, true
		}
	}
	return PriceBucket{}, false
}

// KnownFeature reports whether the key is in the feature table
func KnownFeature(key string) bool {
	_, ok := features[key]
	return ok
}

// MatchBrand is a case-insensitive exact comparison
func MatchBrand(p *catalog.Product, brand string) bool {
	return strings.EqualFold(p.Brand, brand)
}

// MatchPriceRange matches against the canonical bucket; unknown keys match nothing
func MatchPriceRange(p *catalog.Product, key string) bool {
	b, ok := LookupPriceRange(key)
	return ok && b.Contains(p.Price)
}

// MatchFeature applies the feature table; unknown keys match nothing
func MatchFeature(p *catalog.Product, key string) bool {
	rule, ok := features[key]
	if !ok {
		return false
	}
	if len(rule.Tags) > 0 {
		return p.HasTag(rule.Tags...)
	}
	score, ok := p.Attributes.Score(rule.Attribute)
	return ok && score >= featureThreshold
}

// Match reports whether the product passes every active refinement
func (s Selections) Match(p *catalog.Product) bool {
	if s.Brand != nil && !MatchBrand(p, *s.Brand) {
		return false
	}
	if s.PriceRange != nil && !MatchPriceRange(p, *s.PriceRange) {
		return false
	}
	if s.Feature != nil && !MatchFeature(p, *s.Feature) {
		return false
	}
	return true
}

// Narrow keeps the products passing all active refinements, preserving order
func Narrow(products []catalog.Product, sel Selections) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for i := range products {
		if sel.Match(&products[i]) {
			out = append(out, products[i])
		}
	}
	return out
}

// BucketCount is a display bucket with the number of products inside it
type BucketCount struct {
	PriceBucket
	Count int `json:"count"`
}

// DisplayBuckets returns the contiguous run of canonical buckets spanning the
// cheapest to the most expensive product. Counts can overlap at shared boundaries.
func DisplayBuckets(products []catalog.Product) []BucketCount {
	if len(products) == 0 {
		return []BucketCount{}
	}

	lo, hi := products[0].Price, products[0].Price
	for _, p := range products[1:] {
		lo = min(lo, p.Price)
		hi = max(hi, p.Price)
	}

	first, last := -1, -1
	for i, b := range priceBuckets {
		if first < 0 && b.Contains(lo) {
			first = i
		}
		if b.Contains(hi) {
			last = i
		}
	}
	if first < 0 || last < 0 {
		return []BucketCount{}
	}
	// A boundary price like 2000 sits in two buckets; start from the lower one
	// and stop at the first one that reaches the maximum.
	for i := first; i <= last; i++ {
		if priceBuckets[i].Contains(hi) {
			last = i
			break
		}
	}

	out := make([]BucketCount, 0, last-first+1)
	for _, b := range priceBuckets[first : last+1] {
		n := 0
		for i := range products {
			if b.Contains(products[i].Price) {
				n++
			}
		}
		out = append(out, BucketCount{PriceBucket: b, Count: n})
	}
	return out
}
