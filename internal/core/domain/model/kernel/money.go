package kernel

import (
	"errors"
	"strings"

	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ReferenceCurrency is the currency orders are priced in unless configured otherwise.
const ReferenceCurrency = "TWD"

var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney or ZeroMoney")

// Money is an immutable non-negative amount in a single currency.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney validates the amount and normalizes the currency code to upper case.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	var amountErr, currencyErr error
	if amount.IsNegative() {
		amountErr = errs.NewValueIsOutOfRangeError("amount", amount, 0, "unbounded")
	}
	if currency == "" {
		currencyErr = errs.NewValueIsRequiredError("currency")
	}
	if err := errors.Join(amountErr, currencyErr); err != nil {
		return Money{}, err
	}

	return Money{amount: amount, currency: currency}, nil
}

// MustNewMoney panics on invalid input. Intended for constants and tests.
func MustNewMoney(amount decimal.Decimal, currency string) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

func ZeroMoney(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }

// Add sums two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return Money{}, err
	}
	if m.currency != other.currency {
		return Money{}, errs.NewCurrencyMismatchError(m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Multiply scales the amount by a non-negative quantity.
func (m Money) Multiply(quantity int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if quantity < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))), currency: m.currency}, nil
}

// IsGreaterThanOrEqual compares amounts of the same currency.
func (m Money) IsGreaterThanOrEqual(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, errs.NewCurrencyMismatchError(m.currency, other.currency)
	}
	return m.amount.GreaterThanOrEqual(other.amount), nil
}

// IsEqual compares amounts numerically, so 100 and 100.00 are equal.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Validate() error {
	if m.currency == "" {
		return ErrMoneyIsNotConstructed
	}
	return nil
}

// String renders the amount with two decimal places, e.g. "45000.00 TWD".
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}
