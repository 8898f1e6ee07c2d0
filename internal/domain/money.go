package domain

import (
	"fmt"
	"strings"

	"github.com/catalogcraft/catalog-api/pkg/e"
	"github.com/shopspring/decimal"
)

// Money — денежное значение: сумма в минорных единицах (копейки/центы)
// и трёхбуквенный код валюты по ISO 4217.
type Money struct {
	AmountCents int64
	Currency    string
}

// NewMoney валидирует и нормализует денежное значение.
// Сумма не может быть отрицательной, валюта — ровно три латинские буквы.
func NewMoney(amountCents int64, currency string) (Money, error) {
	if amountCents < 0 {
		return Money{}, e.ErrPriceNegative
	}

	cur := strings.ToUpper(strings.TrimSpace(currency))
	if !validCurrency(cur) {
		return Money{}, e.ErrCurrencyInvalid
	}

	return Money{AmountCents: amountCents, Currency: cur}, nil
}

// IsZero сообщает, что значение не заполнено (нулевой Money без валюты)
func (m Money) IsZero() bool {
	return m.AmountCents == 0 && m.Currency == ""
}

func (m Money) Equal(other Money) bool {
	return m.AmountCents == other.AmountCents && m.Currency == other.Currency
}

// String отдаёт человекочитаемое представление, например "599.99 RUB"
func (m Money) String() string {
	return fmt.Sprintf("%s %s", decimal.New(m.AmountCents, -2).StringFixed(2), m.Currency)
}

func validCurrency(currency string) bool {
	if len(currency) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if currency[i] < 'A' || currency[i] > 'Z' {
			return false
		}
	}
	return true
}
