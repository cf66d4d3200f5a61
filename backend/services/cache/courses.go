package cache

import (
	"context"
	"encoding/json"
	"time"

	"lms/backend/models"

	"github.com/redis/go-redis/v9"
)

const listTTL = 5 * time.Minute

// CourseCache keeps catalog listings in redis. Constructed with an empty
// address it degrades to a no-op, so callers never nil-check.
type CourseCache struct {
	client *redis.Client
}

func New(addr string) *CourseCache {
	if addr == "" {
		return &CourseCache{}
	}
	return &CourseCache{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func listKey(category string) string {
	if category == "" {
		category = "all"
	}
	return "courses:list:" + category
}

func (c *CourseCache) GetList(ctx context.Context, category string) ([]models.Course, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, listKey(category)).Bytes()
	if err != nil {
		return nil, false
	}

	var courses []models.Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		return nil, false
	}
	return courses, true
}

func (c *CourseCache) SetList(ctx context.Context, category string, courses []models.Course) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(courses)
	if err != nil {
		return
	}
	c.client.Set(ctx, listKey(category), raw, listTTL)
}

// InvalidateLists drops every cached listing; called after any course write.
func (c *CourseCache) InvalidateLists(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, "courses:list:*", 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}
