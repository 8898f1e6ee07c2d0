package converter

import "time"

// ProductInfoRedisModel — JSON-представление продукта в кэше.
// Схема повторяет usecase.ProductInfo: кэш хранит готовый ответ чтения.
type ProductInfoRedisModel struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
}
