package payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда запись об ожидающем платеже не найдена
	ErrPaymentNotFound = errors.New("payment.repository: pending payment not found")

	// ErrNotConsumed возвращается, когда по order reference нет отметки об обработке
	ErrNotConsumed = errors.New("payment.repository: order reference was not consumed")

	// ErrDuplicateReference возвращается при повторной вставке order reference
	ErrDuplicateReference = errors.New("payment.repository: duplicate order reference")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payment.repository: failed to scan row")

	// ErrSnapshot возвращается, когда сохраненный снимок бронирования поврежден
	ErrSnapshot = errors.New("payment.repository: corrupted reservation snapshot")
)
