package http

import (
	"net/http"

	"github.com/catalogcraft/catalog-api/internal/usecase"
	"github.com/catalogcraft/catalog-api/pkg/logger"
)

type CategoryHandler struct {
	categories usecase.CategoryUC
	logger     logger.Logger
}

func NewCategoryHandler(categories usecase.CategoryUC, logger logger.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger}
}

// createCategory
//
//	@Summary		Создание категории
//	@Description	Идемпотентно по имени: повторный запрос возвращает существующую категорию с кодом 200
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateCategoryRequest	true	"Категория"
//	@Success		201		{object}	CategoryResponse		"Создана"
//	@Success		200		{object}	CategoryResponse		"Уже существует"
//	@Failure		400		{object}	ErrorResponse			"Ошибка валидации"
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/categories [post]
func (c *CategoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var body CreateCategoryRequest
	if err := decodeJSON(r, &body); err != nil {
		c.logger.Warnf("createCategory: %s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := c.categories.CreateCategory(r.Context(), usecase.NewCreateCategoryReq(body.Name, body.Description))
	if err != nil {
		c.logger.Warnf("createCategory: %s", err.Error())
		WriteError(w, err)
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	WriteSuccess(w, status, toCategoryResponse(&res.Category))
}

// listCategories
//
//	@Summary	Список категорий
//	@Tags		categories
//	@Produce	json
//	@Success	200	{object}	CategoryListResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/api/categories [get]
func (c *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.categories.ListCategories(r.Context())
	if err != nil {
		c.logger.Warnf("listCategories: %s", err.Error())
		WriteError(w, err)
		return
	}

	res := CategoryListResponse{Categories: make([]CategoryResponse, 0, len(categories))}
	for i := range categories {
		res.Categories = append(res.Categories, toCategoryResponse(&categories[i]))
	}

	WriteSuccess(w, http.StatusOK, res)
}
