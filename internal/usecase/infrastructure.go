package usecase

import "context"

type ImagesInfra interface {
	UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error)
	// CleanupImages запускает фоновое удаление осиротевших объектов с ретраями
	CleanupImages(keys []string)
}

// MessageProducer пишет сериализованные конверты событий в брокер
type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
