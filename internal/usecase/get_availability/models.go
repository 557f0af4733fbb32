package get_availability

import "time"

// Request модель запроса занятости поля на дату
type Request struct {
	PitchID int64
	Date    time.Time // Дата (без времени)
}

// Response занятость поля на дату
type Response struct {
	PitchID       int64
	Date          time.Time
	PitchFound    bool       // false, если поле не существует (результат пустой)
	ReservedHours []int      // Занятые часы по возрастанию
	Hours         []HourSlot // Все часы суток с признаками для выбора слотов
}

// HourSlot состояние одного часа
type HourSlot struct {
	Hour     int
	Reserved bool
	Passed   bool
	Night    bool
	Price    int64
}

// RetryPolicy повтор чтения при ошибках хранилища
type RetryPolicy struct {
	MaxRetries int           // Количество повторов после первой попытки
	Delay      time.Duration // Пауза между попытками
}
