package backend

import (
	"github.com/drydockhq/drydock/pkg/db/models"
	lru "github.com/hashicorp/golang-lru/v2"
)

// cache keeps recently listed webhook subscriptions keyed by project id.
// Entries are dropped whenever a project's subscriptions change.
type cache struct {
	b    *Backend
	subs *lru.Cache[int64, []models.Webhook]
}

func newCache(b *Backend, size int) *cache {
	if size <= 0 {
		size = 1
	}
	c := &cache{b: b}
	subs, _ := lru.New[int64, []models.Webhook](size)
	c.subs = subs
	return c
}

func (c *cache) Get(projectID int64) ([]models.Webhook, bool) {
	return c.subs.Get(projectID)
}

func (c *cache) Set(projectID int64, subs []models.Webhook) {
	c.subs.Add(projectID, subs)
}

func (c *cache) Delete(projectID int64) {
	c.subs.Remove(projectID)
}

func (c *cache) Len() int {
	return c.subs.Len()
}
