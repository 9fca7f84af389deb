package resultlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config настраивает публикацию результатов загрузки в Redis.
type Config struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TTL      int    `yaml:"ttl"` // секунды, 0 = 3600
}

// LoadResult представляет итог одной загрузки, публикуемый в Redis после
// завершения (успешного или с ошибкой).
//
// Redis-ключи:
//
//	SET  sqlbridge:load:<job>:state  <JSON>  EX <ttl>  — для GET-запросов оркестратора
//	PUB  sqlbridge:load:<job>                          — для event-driven маршрутизации
type LoadResult struct {
	Job         string    `json:"job"`
	Server      string    `json:"server,omitempty"`
	Database    string    `json:"database"`
	Table       string    `json:"table"`
	Mode        string    `json:"mode"` // "insert" | "update"
	Status      string    `json:"status"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	DurationMs  int64     `json:"duration_ms"`
	Attempted   int       `json:"attempted"`
	Succeeded   int       `json:"succeeded"`
	Failed      int       `json:"failed"`
	SourceFile  string    `json:"source_file,omitempty"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	Error       *string   `json:"error,omitempty"`
}

// Publisher публикует результаты загрузок в Redis.
type Publisher struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPublisher(config Config) *Publisher {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Address,
		Password: config.Password,
		DB:       config.DB,
	})
	ttl := time.Duration(config.TTL) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Publisher{client: client, ttl: ttl}
}

// Publish публикует итог загрузки:
//   - SET sqlbridge:load:<job>:state <JSON> EX <ttl>  → для опроса (polling)
//   - PUBLISH sqlbridge:load:<job> <JSON>             → для подписки (pub/sub)
//
// Вызывается независимо от исхода загрузки. execErr == nil означает успех,
// иначе в результат попадает текст ошибки.
func (p *Publisher) Publish(ctx context.Context, result LoadResult, execErr error) error {
	if execErr != nil {
		result.Status = "failed"
		errStr := execErr.Error()
		result.Error = &errStr
	} else {
		result.Status = "success"
	}
	result.DurationMs = result.FinishedAt.Sub(result.StartedAt).Milliseconds()

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	stateKey := fmt.Sprintf("sqlbridge:load:%s:state", result.Job)
	eventChannel := fmt.Sprintf("sqlbridge:load:%s", result.Job)

	if err := p.client.Set(ctx, stateKey, payload, p.ttl).Err(); err != nil {
		return fmt.Errorf("redis SET failed: %w", err)
	}
	if err := p.client.Publish(ctx, eventChannel, payload).Err(); err != nil {
		return fmt.Errorf("redis PUBLISH failed: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (p *Publisher) Close() error {
	return p.client.Close()
}
