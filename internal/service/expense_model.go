package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Category is the kind of spending (or income) an expense records.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryRent          Category = "rent"
	CategoryUtilities     Category = "utilities"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryIncome        Category = "income"
	CategoryOther         Category = "other"
)

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryRent,
	CategoryUtilities,
	CategoryShopping,
	CategoryEntertainment,
	CategoryHealth,
	CategoryIncome,
	CategoryOther,
}

// Expense represents an expense in the service layer.
type Expense struct {
	ID        uuid.UUID
	Date      string
	Category  Category
	Amount    decimal.Decimal
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Payload is a decoded JSON request body. Numbers are kept as json.Number.
type Payload map[string]any

const (
	fieldDate     = "date"
	fieldCategory = "category"
	fieldAmount   = "amount"
	fieldNotes    = "notes"
)

// amountPlaces is the number of decimal places every stored amount carries.
const amountPlaces = 2

// amountIntegerDigits mirrors the NUMERIC(12,2) amount column.
const amountIntegerDigits = 10

var maxAmount = decimal.RequireFromString("9999999999.99")

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DecodePayload decodes a request body into a Payload. An empty body is an empty payload.
func DecodePayload(body []byte) (Payload, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Payload{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload Payload
	if err := dec.Decode(&payload); err != nil || payload == nil {
		return nil, newValidationError("", "request body must be a JSON object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, newValidationError("", "request body must be a JSON object")
	}
	return payload, nil
}

// ParseExpenseID parses an expense identifier.
func ParseExpenseID(raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidIdentifier
	}
	return id, nil
}

// NormalizeAmount converts raw to a non-negative decimal rounded to two places.
// Halves round away from zero, so 12.345 becomes 12.35. Amounts above
// 9999999999.99 are rejected.
func NormalizeAmount(raw any) (decimal.Decimal, error) {
	var amount decimal.Decimal
	var err error

	switch v := raw.(type) {
	case json.Number:
		amount, err = decimal.NewFromString(v.String())
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Decimal{}, newValidationError(fieldAmount, "amount must be a number")
		}
		amount, err = decimal.NewFromString(s)
	case float64:
		amount = decimal.NewFromFloat(v)
	case int:
		amount = decimal.NewFromInt(int64(v))
	case decimal.Decimal:
		amount = v
	default:
		return decimal.Decimal{}, newValidationError(fieldAmount, "amount must be a number")
	}
	if err != nil {
		return decimal.Decimal{}, newValidationError(fieldAmount, "amount must be a number")
	}

	if amount.IsNegative() {
		return decimal.Decimal{}, newValidationError(fieldAmount, "amount must be >=0")
	}
	if amount.IsZero() {
		return decimal.Zero, nil
	}

	// Bound the magnitude from digits and exponent before Round expands the
	// coefficient, so 1e20000000 costs no more than 1e2.
	integerDigits := int64(amount.NumDigits()) + int64(amount.Exponent())
	if integerDigits > amountIntegerDigits {
		return decimal.Decimal{}, amountTooLarge()
	}
	if integerDigits < -amountPlaces {
		return decimal.Zero, nil
	}

	rounded := amount.Round(amountPlaces)
	if rounded.GreaterThan(maxAmount) {
		return decimal.Decimal{}, amountTooLarge()
	}
	return rounded, nil
}

// ValidateDate checks that raw is a string shaped like YYYY-MM-DD. Calendar
// validity is not checked.
func ValidateDate(raw any) (string, error) {
	s, ok := raw.(string)
	if !ok || !datePattern.MatchString(s) {
		return "", newValidationError(fieldDate, "date must be YYYY-MM-DD")
	}
	return s, nil
}

// ValidateCategory checks that raw names one of the known categories.
func ValidateCategory(raw any) (Category, error) {
	s, ok := raw.(string)
	if ok {
		for _, c := range Categories {
			if Category(s) == c {
				return c, nil
			}
		}
	}
	return "", newValidationError(fieldCategory, fmt.Sprintf("category must be one of: %s", categoryList()))
}

// NormalizeNotes returns raw as notes text. Absent or null notes become "".
func NormalizeNotes(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		if strings.ContainsRune(v, 0) {
			return "", newValidationError(fieldNotes, "notes must not contain NUL characters")
		}
		return v, nil
	default:
		return "", newValidationError(fieldNotes, "notes must be a string")
	}
}

func amountTooLarge() *ValidationError {
	return newValidationError(fieldAmount, "amount must be <= "+maxAmount.StringFixed(amountPlaces))
}

func categoryList() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
