package domain

// Часы суток, доступные для бронирования
const (
	HoursPerDay = 24
	MinHour     = 0
	MaxHour     = HoursPerDay - 1
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Ограничения для PendingPayment
const (
	DefaultCurrency          = "thb"
	MaxPaymentDescriptionLen = 255
)

// ActiveStatuses статусы, при которых бронирование занимает часы поля.
// Отклоненные (refused) бронирования часы не блокируют.
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusValidated,
}

// TerminalStatuses статусы, из которых переходы невозможны
var TerminalStatuses = []ReservationStatus{
	StatusValidated,
	StatusRefused,
}
