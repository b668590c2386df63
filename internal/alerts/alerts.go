// Package alerts publishes low-stock warnings raised after sales.
package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/store-inventory/internal/models"
)

// LowStockKey is the Redis list holding the most recent low-stock alerts.
const LowStockKey = "inventory:alerts:lowstock"

type Alert struct {
	ProductID int       `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	MinStock  int       `json:"min_stock"`
	Time      time.Time `json:"time"`
}

func NewAlert(p models.Product, at time.Time) Alert {
	return Alert{
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  p.Quantity,
		MinStock:  p.MinStock,
		Time:      at.UTC(),
	}
}

func (a Alert) String() string {
	return fmt.Sprintf("⚠️ ALERT: Product %d (%s) is below min stock! Qty=%d, MinStock=%d",
		a.ProductID, a.Name, a.Quantity, a.MinStock)
}

// DefaultKeep is the alert history length used when none is configured.
const DefaultKeep = 100

func keepOrDefault(keep int) int {
	if keep < 1 {
		return DefaultKeep
	}
	return keep
}

// Notifier records alerts and returns the latest ones, newest first.
type Notifier interface {
	Notify(ctx context.Context, a Alert) error
	Recent(ctx context.Context, n int) ([]Alert, error)
}

// RedisNotifier keeps the last keep alerts in a capped Redis list.
type RedisNotifier struct {
	rdb  *redis.Client
	keep int
}

func NewRedisNotifier(rdb *redis.Client, keep int) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, keep: keepOrDefault(keep)}
}

func (n *RedisNotifier) Notify(ctx context.Context, a Alert) error {
	log.Println(a)

	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode alert: %w", err)
	}

	pipe := n.rdb.TxPipeline()
	pipe.RPush(ctx, LowStockKey, data)
	pipe.LTrim(ctx, LowStockKey, int64(-n.keep), -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push alert: %w", err)
	}
	return nil
}

func (n *RedisNotifier) Recent(ctx context.Context, count int) ([]Alert, error) {
	if count <= 0 {
		return []Alert{}, nil
	}
	entries, err := n.rdb.LRange(ctx, LowStockKey, int64(-count), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read alerts: %w", err)
	}

	alerts := make([]Alert, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		var a Alert
		if err := json.Unmarshal([]byte(entries[i]), &a); err != nil {
			log.Printf("skipping malformed alert entry: %v", err)
			continue
		}
		alerts = append(alerts, a)
	}
	return alerts, nil
}

// LogNotifier writes alerts to the standard logger and keeps the last keep in memory.
type LogNotifier struct {
	mu     sync.Mutex
	keep   int
	alerts []Alert
}

func NewLogNotifier(keep int) *LogNotifier {
	return &LogNotifier{keep: keepOrDefault(keep)}
}

func (n *LogNotifier) Notify(_ context.Context, a Alert) error {
	log.Println(a)

	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, a)
	if len(n.alerts) > n.keep {
		n.alerts = append([]Alert(nil), n.alerts[len(n.alerts)-n.keep:]...)
	}
	return nil
}

func (n *LogNotifier) Recent(_ context.Context, count int) ([]Alert, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if count > len(n.alerts) {
		count = len(n.alerts)
	}
	out := make([]Alert, 0, max(count, 0))
	for i := len(n.alerts) - 1; i >= len(n.alerts)-count; i-- {
		out = append(out, n.alerts[i])
	}
	return out, nil
}
