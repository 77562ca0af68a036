package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrFlavorEmpty    = errors.New("flavor cannot be empty")
	ErrShopNameEmpty  = errors.New("shop name cannot be empty")
	ErrNegativePrice  = errors.New("price cannot be negative")
	ErrInvalidRating  = errors.New("invalid rating (must be 1-4)")
	ErrInvalidDate    = errors.New("entry date is required")
	ErrEntryNotFound  = errors.New("entry not found")
	ErrEntryConflict  = errors.New("entry version conflict")
)

const (
	RatingMin = 1
	RatingMax = 4

	DefaultLocation = "Unknown"
)

// Entry is one recorded boba-drink purchase. Date is set at creation time
// and is the canonical ordering key: the stored collection is newest-first.
type Entry struct {
	ID       string `json:"id" db:"id"`
	ImageURI string `json:"image_uri" db:"image_uri"`

	Flavor   string          `json:"flavor" db:"flavor"`
	Price    decimal.Decimal `json:"price" db:"price"`
	ShopName string          `json:"shop_name" db:"shop_name"`
	Location string          `json:"location" db:"location"`
	Date     time.Time       `json:"date" db:"date"`

	Occasion string `json:"occasion,omitempty" db:"occasion"`
	Rating   *int   `json:"rating,omitempty" db:"rating"`

	// Notes predates Occasion/Rating and is kept so older records
	// still round-trip.
	Notes string `json:"notes,omitempty" db:"notes"`

	Version   int       `json:"version" db:"version"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewEntry(flavor string, price decimal.Decimal, shopName, location, imageURI string, date time.Time) *Entry {
	now := time.Now().UTC()

	if date.IsZero() {
		date = now
	}
	if strings.TrimSpace(location) == "" {
		location = DefaultLocation
	}

	return &Entry{
		ID:       uuid.NewString(),
		ImageURI: imageURI,
		Flavor:   flavor,
		Price:    price,
		ShopName: shopName,
		Location: location,
		Date:     date.UTC(),

		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Flavor) == "" {
		return ErrFlavorEmpty
	}
	if strings.TrimSpace(e.ShopName) == "" {
		return ErrShopNameEmpty
	}
	if e.Price.IsNegative() {
		return ErrNegativePrice
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if e.Rating != nil && (*e.Rating < RatingMin || *e.Rating > RatingMax) {
		return ErrInvalidRating
	}
	return nil
}

// EntryPatch carries the optional fields of a partial update. Nil means
// "leave unchanged"; the entry ID itself is immutable.
type EntryPatch struct {
	ImageURI *string
	Flavor   *string
	Price    *decimal.Decimal
	ShopName *string
	Location *string
	Date     *time.Time
	Occasion *string
	Rating   *int
	Notes    *string
}

func (e *Entry) Apply(patch EntryPatch) {
	if patch.ImageURI != nil {
		e.ImageURI = *patch.ImageURI
	}
	if patch.Flavor != nil {
		e.Flavor = *patch.Flavor
	}
	if patch.Price != nil {
		e.Price = *patch.Price
	}
	if patch.ShopName != nil {
		e.ShopName = *patch.ShopName
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	if patch.Date != nil {
		e.Date = patch.Date.UTC()
	}
	if patch.Occasion != nil {
		e.Occasion = *patch.Occasion
	}
	if patch.Rating != nil {
		e.Rating = patch.Rating
	}
	if patch.Notes != nil {
		e.Notes = *patch.Notes
	}

	e.UpdatedAt = time.Now().UTC()
}
