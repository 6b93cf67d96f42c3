package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
)

// Address is a value object representing a physical address.
// Stored as a JSONB column by the persistence layer.
type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	Postcode string `json:"postcode,omitempty"`
	Country  string `json:"country"`
}

// NewAddress creates a new Address with the required fields
func NewAddress(line1, line2, city, postcode, country string) (Address, error) {
	line1 = strings.TrimSpace(line1)
	city = strings.TrimSpace(city)
	country = strings.TrimSpace(country)

	if line1 == "" {
		return Address{}, errors.New("address line 1 cannot be empty")
	}
	if city == "" {
		return Address{}, errors.New("address city cannot be empty")
	}
	if country == "" {
		country = "New Zealand"
	}

	return Address{
		Line1:    line1,
		Line2:    strings.TrimSpace(line2),
		City:     city,
		Postcode: strings.TrimSpace(postcode),
		Country:  country,
	}, nil
}

// IsZero returns true if the address has no content
func (a Address) IsZero() bool {
	return a.Line1 == "" && a.City == ""
}

// String returns a single-line representation
func (a Address) String() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Line1, a.Line2, a.City, a.Postcode, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Value implements driver.Valuer for JSONB storage
func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB retrieval
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = Address{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan Address: unsupported type")
	}

	if len(bytes) == 0 {
		*a = Address{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}
