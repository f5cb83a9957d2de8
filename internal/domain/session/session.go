package session

import (
	"errors"
)

// DefaultBalance is the opening balance of every demo account.
const DefaultBalance = 125800.50

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

var ErrInvalidRecord = errors.New("invalid session record")

// Record is the mock user profile treated as the logged-in identity.
type Record struct {
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Gender    Gender    `json:"gender"`
	Balance   float64   `json:"balance"`
	Joined    Timestamp `json:"joined"`
}

func (r Record) FullName() string {
	return r.FirstName + " " + r.LastName
}

type NewRecordInput struct {
	FirstName   string
	LastName    string
	Email       string
	CountryCode string
	Phone       string
	Gender      Gender
}
