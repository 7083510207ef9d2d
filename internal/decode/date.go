package decode

import "fmt"

const baseYear = 1980

// Date is a decoded ManufactureDate word, packed as
// day + month*32 + (year-1980)*512. No calendar validation is applied.
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// DecodeDate unpacks a ManufactureDate word.
func DecodeDate(raw uint16) Date {
	v := int(raw)
	return Date{
		Day:   v % 32,
		Month: (v / 32) % 16,
		Year:  v/512 + baseYear,
	}
}

// ManufactureYear returns only the year of a ManufactureDate word.
func ManufactureYear(raw uint16) int {
	return int(raw)/512 + baseYear
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
