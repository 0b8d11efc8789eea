package board

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCacheStoresEntry(t *testing.T) {
	cache := NewChartCache(10 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}

	val1, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	val2, err := cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, "html", val1)
	assert.Equal(t, val1, val2)
	assert.Equal(t, 1, calls)
}

func TestChartCacheExpires(t *testing.T) {
	cache := NewChartCache(2 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = cache.GetOrRender("key", render)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestChartCacheDoesNotCacheErrors(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	render := func() (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("boom")
		}
		return "ok", nil
	}

	_, err := cache.GetOrRender("key", render)
	require.Error(t, err)
	val, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	assert.Equal(t, "ok", val)
}

func TestWidgetHashTracksPayload(t *testing.T) {
	base := Widget{ID: "w", Title: "Cloud Accounts", Type: WidgetDonut,
		Data: &ChartData{Donut: &DonutData{Total: 4}}}
	same := base.Clone()
	changed := base.Clone()
	changed.Data.Donut.Total = 5

	assert.Equal(t, widgetHash(base), widgetHash(same))
	assert.NotEqual(t, widgetHash(base), widgetHash(changed))
}
