package http

import (
	"time"

	"github.com/catalogcraft/catalog-api/internal/usecase"
)

// PriceBody — цена на проводе: amount строкой в мажорных единицах ("599.99").
type PriceBody struct {
	Amount   string `json:"amount" example:"599.99"`
	Currency string `json:"currency" example:"RUB"`
}

type CreateProductRequest struct {
	Name         string    `json:"name" example:"Настольная лампа"`
	Description  string    `json:"description" example:"Лампа с регулировкой яркости"`
	Price        PriceBody `json:"price"`
	CategoryName string    `json:"category_name" example:"Свет"`
}

type ChangePriceRequest struct {
	Amount   string `json:"amount" example:"399.90"`
	Currency string `json:"currency" example:"RUB"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" example:"Свет"`
	Description string `json:"description" example:"Светильники и лампы"`
}

type ProductResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        PriceBody `json:"price"`
	Status       string    `json:"status"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

type ProductStatusResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type ProductPriceResponse struct {
	ID    int64     `json:"id"`
	Price PriceBody `json:"price"`
}

type ProductImagesResponse struct {
	ProductID  int64    `json:"product_id"`
	ObjectKeys []string `json:"object_keys"`
}

type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type HealthResponse struct {
	Status     string              `json:"status"`
	Components []ComponentResponse `json:"components,omitempty"`
}

type ComponentResponse struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func toProductResponse(info *usecase.ProductInfo) ProductResponse {
	return ProductResponse{
		ID:          info.ID,
		Name:        info.Name,
		Description: info.Description,
		Price: PriceBody{
			Amount:   formatPrice(info.Price),
			Currency: info.Currency,
		},
		Status:       info.Status,
		CategoryID:   info.CategoryID,
		CategoryName: info.CategoryName,
		CreatedAt:    info.CreatedAt,
	}
}

func toProductListResponse(products []usecase.ProductInfo) ProductListResponse {
	res := ProductListResponse{Products: make([]ProductResponse, 0, len(products))}
	for i := range products {
		res.Products = append(res.Products, toProductResponse(&products[i]))
	}
	return res
}

func toCategoryResponse(info *usecase.CategoryInfo) CategoryResponse {
	return CategoryResponse{
		ID:          info.ID,
		Name:        info.Name,
		Description: info.Description,
		CreatedAt:   info.CreatedAt,
	}
}

func toHealthResponse(report *usecase.HealthReport) HealthResponse {
	res := HealthResponse{Status: report.Status}
	for _, c := range report.Components {
		res.Components = append(res.Components, ComponentResponse{
			Name:   c.Name,
			Status: c.Status,
			Error:  c.Error,
		})
	}
	return res
}
