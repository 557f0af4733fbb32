package paymentgateway

import "github.com/m04kA/SMC-PitchBookingService/internal/domain"

// metadataOrderReference ключ metadata платежа с order reference
const metadataOrderReference = "order_reference"

// PaymentRequest параметры создания платежа
type PaymentRequest struct {
	OrderReference string
	Description    string
	Amount         int64  // в основных единицах валюты, клиент переводит в минимальные
	Currency       string // ISO код в нижнем регистре, например "thb"
	ReturnURL      string // куда шлюз вернет браузер после оплаты
}

// PaymentSession созданный платеж, ожидающий оплаты пользователем
type PaymentSession struct {
	ExternalReference string // ID платежа в шлюзе
	RedirectURL       string // страница оплаты шлюза
}

// ChargeResult итог платежа по данным шлюза
type ChargeResult struct {
	ExternalReference string
	OrderReference    string
	Amount            int64 // в основных единицах валюты
	Currency          string
	Outcome           domain.PaymentOutcome
	FailureCode       string
	FailureMessage    string
}
