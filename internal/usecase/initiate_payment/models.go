package initiate_payment

import "time"

// Settings параметры платежей из конфигурации
type Settings struct {
	Currency  string // ISO код валюты в нижнем регистре
	ReturnURL string // базовый адрес возврата, к нему добавляется ?ref=<order reference>
}

// Request модель запроса на оплату бронирования
type Request struct {
	PitchID     int64
	RequesterID int64
	Date        time.Time
	Hours       []int
}

// Response созданный платеж
type Response struct {
	OrderReference string
	RedirectURL    string // страница оплаты шлюза
	Amount         int64
	Currency       string
	StartHour      int
	DurationHours  int
}
