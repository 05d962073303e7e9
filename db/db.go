package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Vikas-Jha19/expense-tracker/models"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// ErrUsernameTaken возвращается при попытке зарегистрировать занятое имя пользователя.
var ErrUsernameTaken = errors.New("username already exists")

const maxLimit = 100

type Storage struct {
	DB *sql.DB
}

func NewStorage(connStr string) (*Storage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	// Таблица categories зарезервирована схемой, но эндпоинтов для нее нет
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id),
			type TEXT NOT NULL,
			category TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			date TEXT NOT NULL,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL
		)`,
	}
	for _, q := range schema {
		if _, err := db.Exec(q); err != nil {
			return nil, err
		}
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() {
	s.DB.Close()
}

// CreateUser хеширует пароль и сохраняет нового пользователя.
func (s *Storage) CreateUser(username, password string) (*models.User, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: username, Password: string(hashed)}
	err = s.DB.QueryRow(
		"INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id",
		username, string(hashed),
	).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

// GetUserByUsername возвращает (nil, nil), если пользователь не найден.
func (s *Storage) GetUserByUsername(username string) (*models.User, error) {
	user := &models.User{}
	err := s.DB.QueryRow(
		"SELECT id, username, password FROM users WHERE username = $1",
		username,
	).Scan(&user.ID, &user.Username, &user.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Storage) CreateTransaction(t *models.Transaction) error {
	return s.DB.QueryRow(
		"INSERT INTO transactions (user_id, type, category, amount, date, description) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
		t.UserID, t.Type, t.Category, t.Amount, t.Date, t.Description,
	).Scan(&t.ID)
}

// GetTransactions возвращает страницу транзакций пользователя и общее число строк,
// попавших под фильтры. Порядок по умолчанию — id по возрастанию.
func (s *Storage) GetTransactions(userID int, typeFilter string, minAmount, maxAmount float64, sort string, page, limit int) ([]models.Transaction, int, error) {
	if typeFilter != "" && typeFilter != "income" && typeFilter != "expense" {
		return nil, 0, errors.New("invalid type filter: must be 'income' or 'expense'")
	}
	if sort != "" && sort != "asc" && sort != "desc" {
		return nil, 0, errors.New("invalid sort parameter: must be 'asc' or 'desc'")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	where := "WHERE user_id = $1"
	args := []interface{}{userID}
	if typeFilter != "" {
		args = append(args, typeFilter)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if minAmount > 0 {
		args = append(args, minAmount)
		where += fmt.Sprintf(" AND amount >= $%d", len(args))
	}
	if maxAmount > 0 {
		args = append(args, maxAmount)
		where += fmt.Sprintf(" AND amount <= $%d", len(args))
	}

	var total int
	if err := s.DB.QueryRow("SELECT COUNT(*) FROM transactions "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := "ASC"
	if sort == "desc" {
		order = "DESC"
	}
	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(
		"SELECT id, user_id, type, category, amount, date, COALESCE(description, '') FROM transactions %s ORDER BY id %s LIMIT $%d OFFSET $%d",
		where, order, len(args)-1, len(args),
	)

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var transactions = []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Category, &t.Amount, &t.Date, &t.Description); err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, t)
	}
	return transactions, total, rows.Err()
}

// GetTransaction возвращает (nil, nil), если транзакция не найдена или принадлежит
// другому пользователю.
func (s *Storage) GetTransaction(id, userID int) (*models.Transaction, error) {
	t := &models.Transaction{}
	err := s.DB.QueryRow(
		"SELECT id, user_id, type, category, amount, date, COALESCE(description, '') FROM transactions WHERE id = $1 AND user_id = $2",
		id, userID,
	).Scan(&t.ID, &t.UserID, &t.Type, &t.Category, &t.Amount, &t.Date, &t.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTransaction обновляет строку только при совпадении id и user_id.
func (s *Storage) UpdateTransaction(t *models.Transaction) (bool, error) {
	result, err := s.DB.Exec(
		"UPDATE transactions SET type = $1, category = $2, amount = $3, date = $4, description = $5 WHERE id = $6 AND user_id = $7",
		t.Type, t.Category, t.Amount, t.Date, t.Description, t.ID, t.UserID,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteTransaction удаляет строку только при совпадении id и user_id.
func (s *Storage) DeleteTransaction(id, userID int) (bool, error) {
	result, err := s.DB.Exec(
		"DELETE FROM transactions WHERE id = $1 AND user_id = $2",
		id, userID,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// GetSummary считает доходы, расходы и баланс пользователя.
// Суммы по пустому множеству — нули, не NULL.
func (s *Storage) GetSummary(userID int) (*models.Summary, error) {
	summary := &models.Summary{}
	err := s.DB.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = $1`,
		userID,
	).Scan(&summary.TotalIncome, &summary.TotalExpense)
	if err != nil {
		return nil, err
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense
	return summary, nil
}

// GetCategoryReport возвращает суммы по каждой категории пользователя.
func (s *Storage) GetCategoryReport(userID int) ([]models.CategoryTotal, error) {
	rows, err := s.DB.Query(
		"SELECT category, SUM(amount) FROM transactions WHERE user_id = $1 GROUP BY category ORDER BY category",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report = []models.CategoryTotal{}
	for rows.Next() {
		var ct models.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.TotalSpent); err != nil {
			return nil, err
		}
		report = append(report, ct)
	}
	return report, rows.Err()
}
