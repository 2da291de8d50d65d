package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kitnetia/internal/domain/entity"
	"kitnetia/internal/domain/service"
	"kitnetia/pkg/config"
	"kitnetia/pkg/logger"
)

const (
	propertyKeyPrefix   = "property:"
	generationKeyPrefix = "property:gen:"
	listKeyPrefix       = "properties:list:"
	listGenerationKey   = "properties:gen"
	scanCount           = 100
)

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

type RedisPropertyCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPropertyCache(client *redis.Client, ttl time.Duration) service.PropertyCache {
	return &RedisPropertyCache{client: client, ttl: ttl}
}

func PropertyKey(id string) string {
	return propertyKeyPrefix + id
}

func GenerationKey(id string) string {
	return generationKeyPrefix + id
}

// ListKey derives a stable key for a filtered public listing.
func ListKey(filter entity.PropertyFilter) string {
	raw := fmt.Sprintf("n=%s|b=%d|q=%s", filter.Neighborhood, filter.Bedrooms, filter.Search)
	if filter.MinRent != nil {
		raw += fmt.Sprintf("|min=%g", *filter.MinRent)
	}
	if filter.MaxRent != nil {
		raw += fmt.Sprintf("|max=%g", *filter.MaxRent)
	}
	sum := sha256.Sum256([]byte(raw))
	return listKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *RedisPropertyCache) GetProperty(ctx context.Context, id string) (*entity.Property, error) {
	var property entity.Property
	found, err := c.get(ctx, PropertyKey(id), &property)
	if err != nil || !found {
		return nil, err
	}
	return &property, nil
}

func (c *RedisPropertyCache) PropertyGeneration(ctx context.Context, id string) (int64, error) {
	return generation(c.client.Get(ctx, GenerationKey(id)))
}

func (c *RedisPropertyCache) SetProperty(ctx context.Context, property *entity.Property, generation int64) error {
	if !property.IsActive {
		return nil
	}
	return c.setIfGeneration(ctx, GenerationKey(property.ID), generation, PropertyKey(property.ID), property)
}

func (c *RedisPropertyCache) GetList(ctx context.Context, filter entity.PropertyFilter) ([]*entity.Property, error) {
	var properties []*entity.Property
	found, err := c.get(ctx, ListKey(filter), &properties)
	if err != nil || !found {
		return nil, err
	}
	return properties, nil
}

func (c *RedisPropertyCache) ListGeneration(ctx context.Context) (int64, error) {
	return generation(c.client.Get(ctx, listGenerationKey))
}

func (c *RedisPropertyCache) SetList(ctx context.Context, filter entity.PropertyFilter, properties []*entity.Property, generation int64) error {
	if properties == nil {
		properties = []*entity.Property{}
	}
	return c.setIfGeneration(ctx, listGenerationKey, generation, ListKey(filter), properties)
}

func (c *RedisPropertyCache) Invalidate(ctx context.Context, id string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey(id))
		pipe.Incr(ctx, listGenerationKey)
		pipe.Del(ctx, PropertyKey(id))
		return nil
	})
	if err != nil {
		return fmt.Errorf("bump cache generation: %w", err)
	}

	var keys []string
	var cursor uint64
	for {
		page, next, err := c.client.Scan(ctx, cursor, listKeyPrefix+"*", scanCount).Result()
		if err != nil {
			return fmt.Errorf("scan list keys: %w", err)
		}
		keys = append(keys, page...)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("delete cache keys: %w", err)
		}
	}

	logger.Debug("Invalidated %d property cache keys for %s", len(keys)+1, id)
	return nil
}

func generation(cmd *redis.StringCmd) (int64, error) {
	gen, err := cmd.Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

// setIfGeneration writes key only while genKey still holds want.
func (c *RedisPropertyCache) setIfGeneration(ctx context.Context, genKey string, want int64, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := generation(tx.Get(ctx, genKey))
		if err != nil {
			return err
		}
		if current != want {
			logger.Debug("Skipping stale cache fill for %s", key)
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *RedisPropertyCache) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// NoopPropertyCache is used when REDIS_ADDR is empty.
type NoopPropertyCache struct{}

func (NoopPropertyCache) GetProperty(context.Context, string) (*entity.Property, error) {
	return nil, nil
}

func (NoopPropertyCache) PropertyGeneration(context.Context, string) (int64, error) {
	return 0, nil
}

func (NoopPropertyCache) SetProperty(context.Context, *entity.Property, int64) error {
	return nil
}

func (NoopPropertyCache) GetList(context.Context, entity.PropertyFilter) ([]*entity.Property, error) {
	return nil, nil
}

func (NoopPropertyCache) ListGeneration(context.Context) (int64, error) {
	return 0, nil
}

func (NoopPropertyCache) SetList(context.Context, entity.PropertyFilter, []*entity.Property, int64) error {
	return nil
}

func (NoopPropertyCache) Invalidate(context.Context, string) error {
	return nil
}
