package domain

// MonthPoint is one point of the dashboard's monthly income/expense series.
type MonthPoint struct {
	Label   string `json:"label"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// Dashboard holds the read-only snapshot consumed by the reporting UI.
// AvailableBalance is derived from the transaction log, not from account
// balances: total income minus total expense.
type Dashboard struct {
	AvailableBalance string        `json:"available_balance"`
	TotalIncome      string        `json:"total_income"`
	TotalExpense     string        `json:"total_expense"`
	Chart            []MonthPoint  `json:"chart"`
	LastTransactions []Transaction `json:"last_transactions"`
	LastAccounts     []Account     `json:"last_accounts"`
}
