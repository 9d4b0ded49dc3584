package model

// All returns every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&QuarterModel{},
		&TargetModel{},
		&InvoiceModel{},
		&ExpenseModel{},
		&SalaryPaymentModel{},
		&ClientModel{},
	}
}
