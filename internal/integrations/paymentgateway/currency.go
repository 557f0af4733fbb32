package paymentgateway

import (
	"fmt"
	"strings"
)

// subunitsPerUnit Omise принимает и возвращает суммы в минимальных единицах валюты
// (сатанги для thb, центы для usd). В сервисе суммы хранятся в основных единицах.
var subunitsPerUnit = map[string]int64{
	"thb": 100,
	"usd": 100,
	"eur": 100,
	"gbp": 100,
	"sgd": 100,
	"myr": 100,
	"aud": 100,
	"cad": 100,
	"chf": 100,
	"cny": 100,
	"hkd": 100,
	"jpy": 1,
}

// SupportedCurrency возвращает true, если для валюты известен множитель минимальных единиц
func SupportedCurrency(currency string) bool {
	_, ok := subunitsPerUnit[strings.ToLower(currency)]
	return ok
}

// toGatewayAmount переводит сумму из основных единиц в минимальные
func toGatewayAmount(amount int64, currency string) (int64, error) {
	multiplier, ok := subunitsPerUnit[strings.ToLower(currency)]
	if !ok {
		return 0, fmt.Errorf("%w: unsupported currency %q", ErrInvalidRequest, currency)
	}
	return amount * multiplier, nil
}

// fromGatewayAmount переводит сумму шлюза обратно в основные единицы.
// Дробная сумма в основных единицах означает, что платеж создан не этим сервисом.
func fromGatewayAmount(amount int64, currency string) (int64, error) {
	multiplier, ok := subunitsPerUnit[strings.ToLower(currency)]
	if !ok {
		return 0, fmt.Errorf("%w: unsupported currency %q", ErrInvalidResponse, currency)
	}
	if amount%multiplier != 0 {
		return 0, fmt.Errorf("%w: amount %d %s is not a whole number of units", ErrInvalidResponse, amount, currency)
	}
	return amount / multiplier, nil
}
