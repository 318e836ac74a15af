package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// ValkeyClient caches the raw JSON of hot read endpoints, mainly the
// public package list, so the storefront landing page avoids a database
// round trip.
type ValkeyClient struct {
	client rueidis.Client
	ttl    time.Duration
}

type Config struct {
	Addr     string
	Password string
	TTL      time.Duration
}

func NewValkeyClient(cfg Config) (*ValkeyClient, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{cfg.Addr},
		Password:    cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to valkey: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &ValkeyClient{client: client, ttl: ttl}, nil
}

func packagesListKey(page, pageSize int) string {
	return fmt.Sprintf("packages:list:%d:%d", page, pageSize)
}

// GetPackagesListRaw returns the cached JSON body for a package list
// page, or an error on miss.
func (c *ValkeyClient) GetPackagesListRaw(ctx context.Context, page, pageSize int) ([]byte, error) {
	if c == nil {
		return nil, rueidis.Nil
	}
	cmd := c.client.B().Get().Key(packagesListKey(page, pageSize)).Build()
	return c.client.Do(ctx, cmd).AsBytes()
}

// SetPackagesList stores the serialized response under a short TTL.
// Failures are swallowed: the cache is an optimization, never a
// dependency.
func (c *ValkeyClient) SetPackagesList(ctx context.Context, page, pageSize int, value interface{}) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	cmd := c.client.B().Set().
		Key(packagesListKey(page, pageSize)).
		Value(rueidis.BinaryString(payload)).
		Ex(c.ttl).
		Build()
	_ = c.client.Do(ctx, cmd).Error()
}

// InvalidatePackagesList drops all cached package list pages. Called
// after any admin write to packages.
func (c *ValkeyClient) InvalidatePackagesList(ctx context.Context) {
	if c == nil {
		return
	}
	var cursor uint64
	for {
		scan := c.client.B().Scan().Cursor(cursor).Match("packages:list:*").Count(100).Build()
		entry, err := c.client.Do(ctx, scan).AsScanEntry()
		if err != nil {
			return
		}
		if len(entry.Elements) > 0 {
			del := c.client.B().Del().Key(entry.Elements...).Build()
			_ = c.client.Do(ctx, del).Error()
		}
		cursor = entry.Cursor
		if cursor == 0 {
			return
		}
	}
}

func (c *ValkeyClient) Close() {
	if c == nil {
		return
	}
	c.client.Close()
}
