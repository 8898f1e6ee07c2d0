package domain

// Image описывает изображение продукта, которое хранится в S3.
// Bytes заполняются только на пути загрузки, в БД попадают метаданные.
type Image struct {
	ID        string // uuid
	ProductID int64
	Bucket    string
	ObjectKey string
	Bytes     []byte
	// Передайте значение -1 в Size, если размер потока неизвестен
	// (внимание: при передаче значения -1 будет выделен большой объем памяти).
	Size        *int64
	ContentType *string // Example: "image/png"
}

func NewImage(id string, productID int64, bucket string, objectKey string, bytes []byte, size *int64, contentType *string) *Image {
	return &Image{
		ID:          id,
		ProductID:   productID,
		Bucket:      bucket,
		ObjectKey:   objectKey,
		Bytes:       bytes,
		Size:        size,
		ContentType: contentType,
	}
}
