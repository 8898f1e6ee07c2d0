package http

import (
	"net/http"
	"strconv"

	"github.com/catalogcraft/catalog-api/internal/usecase"
	"github.com/catalogcraft/catalog-api/pkg/e"
	"github.com/catalogcraft/catalog-api/pkg/logger"
)

type ProductHandler struct {
	commands          usecase.ProductCommands
	queries           usecase.ProductQueries
	logger            logger.Logger
	uploadImagesLimit int
}

func NewProductHandler(commands usecase.ProductCommands, queries usecase.ProductQueries, logger logger.Logger, uploadImagesLimit int) *ProductHandler {
	return &ProductHandler{
		commands:          commands,
		queries:           queries,
		logger:            logger,
		uploadImagesLimit: uploadImagesLimit,
	}
}

// createProduct
//
//	@Summary		Создание товара
//	@Description	Создает товар в статусе DRAFT, категория заводится по имени при необходимости
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateProductRequest	true	"Товар"
//	@Success		201		{object}	ProductResponse			"Созданный товар"
//	@Failure		400		{object}	ErrorResponse			"Ошибка валидации"
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var body CreateProductRequest
	if err := decodeJSON(r, &body); err != nil {
		p.logger.Warnf("createProduct: %s", err.Error())
		WriteError(w, err)
		return
	}

	priceCents, err := parsePriceToCents(body.Price.Amount)
	if err != nil {
		p.logger.Warnf("createProduct: price %q: %s", body.Price.Amount, err.Error())
		WriteError(w, err)
		return
	}

	res, err := p.commands.CreateProduct(r.Context(), usecase.NewCreateProductReq(
		body.Name, body.Description, priceCents, body.Price.Currency, body.CategoryName,
	))
	if err != nil {
		p.logger.Warnf("createProduct: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(&res.Product))
}

// getProduct
//
//	@Summary	Получение товара
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int	true	"ID товара"
//	@Success	200	{object}	ProductResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	info, err := p.queries.GetProduct(r.Context(), usecase.NewGetProductReq(id))
	if err != nil {
		p.logger.Warnf("getProduct %d: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(info))
}

// listProducts
//
//	@Summary	Список товаров
//	@Tags		products
//	@Produce	json
//	@Param		status		query		string	false	"Статус (DRAFT|PUBLISHED|ARCHIVED)"
//	@Param		category_id	query		int		false	"ID категории"
//	@Param		limit		query		int		false	"Размер страницы (до 100)"
//	@Param		offset		query		int		false	"Смещение"
//	@Success	200			{object}	ProductListResponse
//	@Failure	400			{object}	ErrorResponse
//	@Router		/api/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	req, err := parseListQuery(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := p.queries.ListProducts(r.Context(), req)
	if err != nil {
		p.logger.Warnf("listProducts: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductListResponse(res.Products))
}

// publishProduct
//
//	@Summary	Публикация товара
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int	true	"ID товара"
//	@Success	200	{object}	ProductStatusResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse	"Недопустимый переход статуса"
//	@Router		/api/products/{id}/publish [post]
func (p *ProductHandler) publishProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := p.commands.PublishProduct(r.Context(), usecase.NewProductStatusReq(id))
	if err != nil {
		p.logger.Warnf("publishProduct %d: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, ProductStatusResponse{ID: res.ID, Status: res.Status})
}

// archiveProduct
//
//	@Summary	Архивация товара
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int	true	"ID товара"
//	@Success	200	{object}	ProductStatusResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse	"Товар уже в архиве"
//	@Router		/api/products/{id}/archive [post]
func (p *ProductHandler) archiveProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := p.commands.ArchiveProduct(r.Context(), usecase.NewProductStatusReq(id))
	if err != nil {
		p.logger.Warnf("archiveProduct %d: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, ProductStatusResponse{ID: res.ID, Status: res.Status})
}

// changeProductPrice
//
//	@Summary	Смена цены товара
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"ID товара"
//	@Param		request	body		ChangePriceRequest	true	"Новая цена"
//	@Success	200		{object}	ProductPriceResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse	"Товар в архиве"
//	@Router		/api/products/{id}/price [put]
func (p *ProductHandler) changeProductPrice(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var body ChangePriceRequest
	if err := decodeJSON(r, &body); err != nil {
		p.logger.Warnf("changeProductPrice %d: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	priceCents, err := parsePriceToCents(body.Amount)
	if err != nil {
		p.logger.Warnf("changeProductPrice %d: price %q: %s", id, body.Amount, err.Error())
		WriteError(w, err)
		return
	}

	res, err := p.commands.ChangeProductPrice(r.Context(), usecase.NewChangeProductPriceReq(id, priceCents, body.Currency))
	if err != nil {
		p.logger.Warnf("changeProductPrice %d: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, ProductPriceResponse{
		ID: res.ID,
		Price: PriceBody{
			Amount:   formatPrice(res.PriceCents),
			Currency: res.Currency,
		},
	})
}

// attachProductImages
//
//	@Summary		Загрузка изображений товара
//	@Description	Принимает multipart/form-data, складывает изображения в S3 и привязывает к товару
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		int		true	"ID товара"
//	@Param			images	formData	file	true	"Изображения товара"
//	@Success		201		{object}	ProductImagesResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse	"Товар в архиве"
//	@Failure		413		{object}	ErrorResponse	"Файл слишком большой"
//	@Failure		415		{object}	ErrorResponse	"Неподдерживаемый формат"
//	@Router			/api/products/{id}/images [post]
func (p *ProductHandler) attachProductImages(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 150 << 20
		maxMemory           = 32 << 20
	)

	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("attachProductImages %d: %s: %s", id, r.Header.Get("Content-Type"), err.Error())
		WriteError(w, err)
		return
	}

	images, err := parseImages(r.MultipartForm.File["images"], p.uploadImagesLimit)
	if err != nil {
		p.logger.Warnf("attachProductImages %d: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	res, err := p.commands.AttachProductImages(r.Context(), usecase.NewAttachImagesReq(id, images))
	if err != nil {
		p.logger.Warnf("attachProductImages %d: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, ProductImagesResponse{ProductID: id, ObjectKeys: res.ImagesKeys})
}

func parseListQuery(r *http.Request) (*usecase.ListProductsReq, error) {
	q := r.URL.Query()
	req := &usecase.ListProductsReq{}

	if v := q.Get("status"); v != "" {
		req.Status = &v
	}
	if v := q.Get("category_id"); v != "" {
		categoryID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, e.Wrap(v, e.ErrInvalidID)
		}
		req.CategoryID = &categoryID
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return nil, e.Wrap(v, e.ErrInvalidID)
		}
		req.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return nil, e.Wrap(v, e.ErrInvalidID)
		}
		req.Offset = offset
	}

	return req, nil
}
