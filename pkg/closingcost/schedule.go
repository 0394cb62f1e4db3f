// Package closingcost estimates VA purchase closing costs from a versioned fee
// schedule.
package closingcost

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind is how an item's cost is derived.
type Kind int

const (
	// KindFlat items cost a fixed amount.
	KindFlat Kind = iota
	// KindRange items cost the midpoint of Min and Max.
	KindRange
	// KindPercentOfLoan items cost Rate times the loan amount.
	KindPercentOfLoan
)

func (k Kind) String() string {
	switch k {
	case KindFlat:
		return "flat"
	case KindRange:
		return "range"
	case KindPercentOfLoan:
		return "percentOfLoan"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Item is a single fee line.
type Item struct {
	Name   string  `json:"name"`
	Kind   Kind    `json:"kind"`
	Amount float64 `json:"amount,omitempty"`
	Min    float64 `json:"min,omitempty"`
	Max    float64 `json:"max,omitempty"`
	Rate   float64 `json:"rate,omitempty"`
}

// Flat builds a fixed-amount item.
func Flat(name string, amount float64) Item {
	return Item{Name: name, Kind: KindFlat, Amount: amount}
}

// Between builds a range item.
func Between(name string, min, max float64) Item {
	return Item{Name: name, Kind: KindRange, Min: min, Max: max}
}

// PercentOfLoan builds an item charged as a fraction of the loan amount
// (0.01 is one percent).
func PercentOfLoan(name string, rate float64) Item {
	return Item{Name: name, Kind: KindPercentOfLoan, Rate: rate}
}

// Cost returns the item's contribution for the given loan amount.
func (i Item) Cost(loanAmount decimal.Decimal) decimal.Decimal {
	switch i.Kind {
	case KindFlat:
		return decimal.NewFromFloat(i.Amount)
	case KindRange:
		return decimal.NewFromFloat(i.Min).Add(decimal.NewFromFloat(i.Max)).Div(decimal.NewFromInt(2))
	case KindPercentOfLoan:
		return loanAmount.Mul(decimal.NewFromFloat(i.Rate))
	default:
		return decimal.Zero
	}
}

// Category groups related items.
type Category struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Schedule is an immutable, versioned fee table.
type Schedule struct {
	Version    string     `json:"version"`
	Categories []Category `json:"categories"`
}

var (
	// ErrProhibitedFee is returned when a schedule contains a fee VA borrowers may not be charged.
	ErrProhibitedFee = errors.New("fee may not be charged to a VA borrower")

	// ErrInvalidItem is returned for malformed schedule items.
	ErrInvalidItem = errors.New("invalid schedule item")
)

// prohibitedTerms name fees a VA buyer cannot pay.
var prohibitedTerms = []string{"attorney", "broker", "commission", "prepayment penalt"}

// NewSchedule validates categories and returns a schedule holding its own copy
// of them.
func NewSchedule(version string, categories []Category) (Schedule, error) {
	copied := make([]Category, 0, len(categories))
	for _, c := range categories {
		for _, item := range c.Items {
			if err := checkItem(c.Name, item); err != nil {
				return Schedule{}, err
			}
		}
		copied = append(copied, Category{Name: c.Name, Items: append([]Item(nil), c.Items...)})
	}
	return Schedule{Version: version, Categories: copied}, nil
}

func checkItem(category string, item Item) error {
	lower := strings.ToLower(category + " " + item.Name)
	for _, term := range prohibitedTerms {
		if strings.Contains(lower, term) {
			return fmt.Errorf("%s/%s: %w", category, item.Name, ErrProhibitedFee)
		}
	}

	switch item.Kind {
	case KindFlat:
		if item.Amount < 0 {
			return fmt.Errorf("%s/%s: negative amount: %w", category, item.Name, ErrInvalidItem)
		}
	case KindRange:
		if item.Min < 0 || item.Max < item.Min {
			return fmt.Errorf("%s/%s: range %v-%v: %w", category, item.Name, item.Min, item.Max, ErrInvalidItem)
		}
	case KindPercentOfLoan:
		if item.Rate < 0 || item.Rate > 1 {
			return fmt.Errorf("%s/%s: rate %v: %w", category, item.Name, item.Rate, ErrInvalidItem)
		}
	default:
		return fmt.Errorf("%s/%s: unknown kind: %w", category, item.Name, ErrInvalidItem)
	}
	return nil
}

// Copy returns a deep copy of s.
func (s Schedule) Copy() Schedule {
	out := Schedule{Version: s.Version, Categories: make([]Category, len(s.Categories))}
	for i, c := range s.Categories {
		out.Categories[i] = Category{Name: c.Name, Items: append([]Item(nil), c.Items...)}
	}
	return out
}

// DefaultScheduleVersion identifies the built-in schedule.
const DefaultScheduleVersion = "2024.1"

var defaultSchedule = mustSchedule(NewSchedule(DefaultScheduleVersion, []Category{
	{
		Name: "Lender Fees",
		Items: []Item{
			PercentOfLoan("Origination Fee", 0.01),
			Flat("Credit Report", 65),
		},
	},
	{
		Name: "Third-Party Services",
		Items: []Item{
			Between("VA Appraisal", 525, 900),
			PercentOfLoan("Lender's Title Insurance", 0.005),
			Between("Title Search", 200, 400),
			Between("Survey", 350, 700),
			Flat("Flood Determination", 15),
		},
	},
	{
		Name: "Government Recording",
		Items: []Item{
			Between("Deed and Mortgage Recording", 125, 250),
			PercentOfLoan("Mortgage Recording Tax", 0.001),
		},
	},
	{
		Name: "Prepaids & Escrow",
		Items: []Item{
			PercentOfLoan("Prepaid Interest", 0.0025),
			Between("Homeowners Insurance Premium", 1200, 2400),
			Between("Property Tax Escrow", 600, 1800),
		},
	},
}))

func mustSchedule(s Schedule, err error) Schedule {
	if err != nil {
		panic(fmt.Sprintf("invalid built-in closing cost schedule: %v", err))
	}
	return s
}

// DefaultSchedule returns a copy of the built-in schedule.
func DefaultSchedule() Schedule {
	return defaultSchedule.Copy()
}
