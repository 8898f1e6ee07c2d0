package generated

// Конструкторы для сборки зависимостей в internal/app.

func NewProductConverterImpl() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func NewCategoryConverterImpl() *CategoryConverterImpl {
	return &CategoryConverterImpl{}
}

func NewOutboxEventConverterImpl() *OutboxEventConverterImpl {
	return &OutboxEventConverterImpl{}
}
