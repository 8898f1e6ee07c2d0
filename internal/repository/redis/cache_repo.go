// Package redis кэширует читающую модель продуктов.
// Кэш вспомогательный: любой его отказ компенсируется чтением из PostgreSQL.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/catalogcraft/catalog-api/internal/cfg"
	"github.com/catalogcraft/catalog-api/internal/repository/redis/converter"
	"github.com/catalogcraft/catalog-api/internal/usecase"
	"github.com/catalogcraft/catalog-api/pkg/clients"
	"github.com/catalogcraft/catalog-api/pkg/e"
	"github.com/catalogcraft/catalog-api/pkg/logger"
	"github.com/jimlawless/whereami"
)

const productKeyPrefix = "product:"

func productKey(id int64) string {
	return fmt.Sprintf("%s%d", productKeyPrefix, id)
}

func productKeys(ids []int64) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}

	return keys
}

// CacheRepo реализует кэш продуктов поверх Redis.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ProductInfoConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductInfoConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetProducts возвращает найденные в кэше продукты. Промахи и битые записи
// в результат не попадают — их добирает чтение из БД.
func (r *CacheRepo) GetProducts(ctx context.Context, ids []int64) (map[int64]usecase.ProductInfo, error) {
	keys := productKeys(ids)

	values, err := r.client.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	found := make(map[int64]usecase.ProductInfo, len(values))
	for i, raw := range values {
		model, ok := r.decodeCached(raw, keys[i])
		if !ok {
			continue
		}

		// Ключ и содержимое могут разойтись после ручных правок в Redis.
		// Такая запись стирается и считается промахом.
		if model.ID != ids[i] {
			r.logger.Warnf("Cache key %s holds product %d, dropping the entry", keys[i], model.ID)
			if err := r.client.Client.Del(context.Background(), keys[i]).Err(); err != nil {
				r.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
			}
			continue
		}

		found[ids[i]] = *r.conv.ToUseCase(model)
	}

	return found, nil
}

// SetProducts кладёт продукты в кэш одним пайплайном с TTL из конфигурации.
// Несериализуемые элементы пропускаются, остальные всё равно кэшируются.
func (r *CacheRepo) SetProducts(ctx context.Context, products []usecase.ProductInfo) error {
	pipe := r.client.Client.Pipeline()
	for _, model := range r.conv.ToArrRedisModel(products) {
		data, err := json.Marshal(model)
		if err != nil {
			r.logger.Warnf("Failed to marshal product %d for cache: %v", model.ID, err)
			continue
		}

		pipe.Set(ctx, productKey(model.ID), data, r.cfg.ProductTTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// DeleteProducts убирает продукты из кэша. Вызывается командами
// после фиксации изменений.
func (r *CacheRepo) DeleteProducts(ctx context.Context, ids []int64) error {
	if err := r.client.Client.Del(ctx, productKeys(ids)...).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// decodeCached разворачивает сырое значение MGET в модель кэша.
// Любая некондиция трактуется как промах, подробности уходят в лог.
func (r *CacheRepo) decodeCached(raw any, key string) (*converter.ProductInfoRedisModel, bool) {
	if raw == nil {
		return nil, false
	}

	data, err := redisBytes(raw)
	if err != nil {
		r.logger.Warnf("Unexpected cache value under %s: %v", key, err)
		return nil, false
	}

	var model converter.ProductInfoRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		r.logger.Warnf("Broken cache entry under %s: %v", key, err)
		return nil, false
	}

	return &model, true
}

func redisBytes(raw any) ([]byte, error) {
	switch v := raw.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unexpected value type %T", raw)
	}
}
