package generated

// Конструктор для сборки зависимостей в internal/app.

func NewProductInfoConverterImpl() *ProductInfoConverterImpl {
	return &ProductInfoConverterImpl{}
}
