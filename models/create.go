package models

type CreateUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateTransaction struct {
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}
