package consolidator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"app/models"
)

func TestSourceCacheValidity(t *testing.T) {
	cache := newSourceCache(ConfigureSources(nil))
	now := time.Now()

	// Empty entry: never valid, even inside the window.
	assert.False(t, cache.isValid("sales", now))
	assert.Nil(t, cache.get("sales"))

	data := &models.SalesData{TotalSales: 42}
	cache.put("sales", data, now)

	assert.True(t, cache.isValid("sales", now.Add(14*time.Minute)))
	assert.False(t, cache.isValid("sales", now.Add(15*time.Minute)))
	assert.Same(t, data, cache.get("sales").(*models.SalesData))

	// Unknown source names are never valid and puts to them are dropped.
	assert.False(t, cache.isValid("weather", now))
	cache.put("weather", data, now)
	assert.Nil(t, cache.get("weather"))
}

func TestSourceCachePutResetsTimestamp(t *testing.T) {
	cache := newSourceCache(ConfigureSources(nil))
	now := time.Now()

	cache.put("inventory", &models.InventoryData{TotalValue: 1}, now)
	assert.False(t, cache.isValid("inventory", now.Add(61*time.Minute)))

	refreshed := &models.InventoryData{TotalValue: 2}
	cache.put("inventory", refreshed, now.Add(61*time.Minute))
	assert.True(t, cache.isValid("inventory", now.Add(100*time.Minute)))
	assert.Same(t, refreshed, cache.get("inventory").(*models.InventoryData))
}
