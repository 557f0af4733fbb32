package sweep_pending_payments

// Result итог одного прохода очистки
type Result struct {
	Reconciled   int   // записей с платежом, сверенных со шлюзом
	Materialized int   // из них оказались оплачены и стали бронированиями
	Unresolved   int   // шлюз еще не дал окончательного ответа или сверка не удалась
	Deleted      int64 // удалено брошенных записей
}
