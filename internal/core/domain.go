package core

import (
	"errors"
	"strings"
	"time"
)

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Receipt is one fabricated expense entry derived from an uploaded file.
	// Receipts are immutable once created; there are no edit or delete paths.
	Receipt struct {
		ID         string
		Vendor     string
		Date       Date
		Amount     Money
		Category   Category
		FileName   string
		FileType   string  // MIME type of the originating upload
		Confidence float64 // extraction confidence in [0,1]
	}

	// FileMeta describes an uploaded file before any processing happens.
	FileMeta struct {
		Name        string
		ContentType string
		Size        int64
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidConfidence = errors.New("confidence out of range")
	ErrEmptyID           = errors.New("empty receipt id")
	ErrEmptyVendor       = errors.New("empty vendor name")
	ErrUnknownCategory   = errors.New("unknown category")
)

// DateFormat is the wire/display format for transaction dates.
const DateFormat = "2006-01-02"

// NewDate creates a Date from year, month, day (day-level granularity, UTC).
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to day-level granularity in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t.UTC()}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month (1-12)
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

func (d Date) String() string {
	return d.Time.Format(DateFormat)
}

// Before reports whether d falls strictly before x.
func (d Date) Before(x Date) bool {
	return d.Time.Before(x.Time)
}

// SameMonth reports whether d falls in the given calendar year and month.
func (d Date) SameMonth(year, month int) bool {
	return d.Year() == year && d.Month() == month
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (r Receipt) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(r.Vendor) == "" {
		return ErrEmptyVendor
	}
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if !r.Category.Valid() {
		return ErrUnknownCategory
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return ErrInvalidConfidence
	}
	return nil
}
