package usecase

import "time"

// PRODUCT COMMANDS

// CreateProductReq — запрос на создание продукта.
// Цена приходит уже разобранной в минорные единицы (см. delivery/helpers).
type CreateProductReq struct {
	Name         string
	Description  string
	PriceCents   int64
	Currency     string
	CategoryName string
}

// CreateProductRes — созданный продукт в виде читающей модели.
type CreateProductRes struct {
	Product ProductInfo
}

// ProductStatusReq — запрос на смену статуса (publish/archive).
type ProductStatusReq struct {
	ID int64
}

// ProductStatusRes — результат смены статуса.
type ProductStatusRes struct {
	ID     int64
	Status string
}

// ChangeProductPriceReq — запрос на смену цены.
type ChangeProductPriceReq struct {
	ID         int64
	PriceCents int64
	Currency   string
}

// ChangeProductPriceRes — актуальная цена после применения команды.
type ChangeProductPriceRes struct {
	ID         int64
	PriceCents int64
	Currency   string
}

// AttachImagesReq — запрос на загрузку изображений продукта.
type AttachImagesReq struct {
	ProductID int64
	Images    []ProductImage
}

// AttachImagesRes — ключи загруженных объектов в S3.
type AttachImagesRes struct {
	ImagesKeys []string
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// PRODUCT QUERIES

// GetProductReq — запрос одного продукта.
type GetProductReq struct {
	ID int64
}

// GetProductsReq — запрос информации о продуктах по их идентификаторам.
type GetProductsReq struct {
	IDs []int64
}

// GetProductsRes — ответ с данными запрошенных продуктов.
type GetProductsRes struct {
	Products         []ProductInfo
	NotFoundProducts []int64
}

// ListProductsReq — постраничная выборка с фильтрами.
// Nil-фильтр означает «без ограничения по этому полю».
type ListProductsReq struct {
	Status     *string
	CategoryID *int64
	Limit      int
	Offset     int
}

type ListProductsRes struct {
	Products []ProductInfo
}

// ProductInfo — DTO с информацией о продукте для внешнего использования.
type ProductInfo struct {
	ID           int64
	Name         string
	Description  string
	Price        int64
	Currency     string
	Status       string
	CategoryID   int64
	CategoryName string
	CreatedAt    time.Time
}

// CATEGORIES

type CreateCategoryReq struct {
	Name        string
	Description string
}

// CreateCategoryRes — категория и признак того, что строка была создана
// этим запросом (false — идемпотентное попадание в существующее имя).
type CreateCategoryRes struct {
	Category CategoryInfo
	Created  bool
}

type CategoryInfo struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

// INFRASTRUCTURE

// UploadImagesReq — запрос на загрузку изображений продукта в S3.
type UploadImagesReq struct {
	ProductID int64
	Images    []ProductImage
}

// UploadImagesRes — результат загрузки изображений (ключи в MinIO).
type UploadImagesRes struct {
	ImagesKeys []string
}

// WriteRawMessageReq — готовый к отправке конверт события.
type WriteRawMessageReq struct {
	AggregateID int64
	EventType   string
	Payload     []byte
}

// HEALTH

const (
	HealthStatusOK       = "ok"
	HealthStatusDegraded = "degraded"
	ComponentStatusUp    = "up"
	ComponentStatusDown  = "down"
)

type HealthReport struct {
	Status     string
	Components []ComponentHealth
}

type ComponentHealth struct {
	Name   string
	Status string
	Error  string
}

// MAPPERS

func NewCreateProductReq(name, description string, priceCents int64, currency, categoryName string) *CreateProductReq {
	return &CreateProductReq{
		Name:         name,
		Description:  description,
		PriceCents:   priceCents,
		Currency:     currency,
		CategoryName: categoryName,
	}
}

func NewProductStatusReq(id int64) *ProductStatusReq {
	return &ProductStatusReq{ID: id}
}

func NewProductStatusRes(id int64, status string) *ProductStatusRes {
	return &ProductStatusRes{ID: id, Status: status}
}

func NewChangeProductPriceReq(id, priceCents int64, currency string) *ChangeProductPriceReq {
	return &ChangeProductPriceReq{
		ID:         id,
		PriceCents: priceCents,
		Currency:   currency,
	}
}

func NewAttachImagesReq(productID int64, images []ProductImage) *AttachImagesReq {
	return &AttachImagesReq{
		ProductID: productID,
		Images:    images,
	}
}

func NewAttachImagesRes(imagesKeys []string) *AttachImagesRes {
	return &AttachImagesRes{ImagesKeys: imagesKeys}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewGetProductReq(id int64) *GetProductReq {
	return &GetProductReq{ID: id}
}

func NewGetProductsReq(ids []int64) *GetProductsReq {
	return &GetProductsReq{ids}
}

func NewGetProductsRes(pr []ProductInfo, notFoundProducts []int64) *GetProductsRes {
	return &GetProductsRes{
		Products:         pr,
		NotFoundProducts: notFoundProducts,
	}
}

func NewProductInfo(id int64, name, description string, price int64, currency, status string, categoryID int64, categoryName string, createdAt time.Time) ProductInfo {
	return ProductInfo{
		ID:           id,
		Name:         name,
		Description:  description,
		Price:        price,
		Currency:     currency,
		Status:       status,
		CategoryID:   categoryID,
		CategoryName: categoryName,
		CreatedAt:    createdAt,
	}
}

func NewCreateCategoryReq(name, description string) *CreateCategoryReq {
	return &CreateCategoryReq{
		Name:        name,
		Description: description,
	}
}

func NewUploadImagesReq(productID int64, images []ProductImage) *UploadImagesReq {
	return &UploadImagesReq{
		ProductID: productID,
		Images:    images,
	}
}

func NewUploadImagesRes(imagesKeys []string) *UploadImagesRes {
	return &UploadImagesRes{ImagesKeys: imagesKeys}
}

func NewWriteRawMessageReq(aggregateID int64, eventType string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		AggregateID: aggregateID,
		EventType:   eventType,
		Payload:     payload,
	}
}
