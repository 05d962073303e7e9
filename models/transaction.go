package models

type Transaction struct {
	ID          int     `json:"id"`
	UserID      int     `json:"user_id"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

// Summary — агрегат по всем транзакциям пользователя.
type Summary struct {
	TotalIncome  float64 `json:"total_income" example:"1000"`
	TotalExpense float64 `json:"total_expense" example:"250.5"`
	Balance      float64 `json:"balance" example:"749.5"`
}

// CategoryTotal — суммарные траты по одной категории.
type CategoryTotal struct {
	Category   string  `json:"category" example:"food"`
	TotalSpent float64 `json:"total_spent" example:"120.75"`
}
