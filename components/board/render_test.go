package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWidgetDonut(t *testing.T) {
	r := NewChartRenderer(WithRenderCache(nil))
	w := SeedWidgets()["widget-1"]
	html, err := r.RenderWidget(w)
	require.NoError(t, err)
	assert.Contains(t, html, "Cloud Accounts")
	assert.Contains(t, html, "connected")
}

func TestRenderWidgetGauge(t *testing.T) {
	r := NewChartRenderer(WithRenderCache(nil))
	w := SeedWidgets()["widget-5"]
	html, err := r.RenderWidget(w)
	require.NoError(t, err)
	assert.Contains(t, html, "Image Risk Assessment")
	assert.Contains(t, html, "critical")
}

func TestRenderWidgetEmptyBarAndLine(t *testing.T) {
	r := NewChartRenderer(WithRenderCache(nil))
	for _, w := range []Widget{
		{ID: "b", Title: "Bars", Type: WidgetBar},
		{ID: "l", Title: "Lines", Type: WidgetLine},
	} {
		html, err := r.RenderWidget(w)
		require.NoError(t, err)
		assert.Contains(t, html, w.Title)
	}
}

func TestRenderWidgetTextEscapesContent(t *testing.T) {
	r := NewChartRenderer(WithRenderCache(nil))
	html, err := r.RenderWidget(Widget{
		ID:      "t",
		Title:   "Note",
		Type:    WidgetText,
		Content: "<script>alert(1)</script>",
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.True(t, strings.HasPrefix(html, `<div class="board-widget-text">`))
}

func TestRenderWidgetUnsupportedType(t *testing.T) {
	r := NewChartRenderer(WithRenderCache(nil))
	_, err := r.RenderWidget(Widget{ID: "x", Type: WidgetType("sparkline")})
	require.Error(t, err)
}

func TestRenderWidgetUsesCache(t *testing.T) {
	cache := &countingCache{}
	r := NewChartRenderer(WithRenderCache(cache))
	w := SeedWidgets()["widget-1"]
	_, err := r.RenderWidget(w)
	require.NoError(t, err)
	require.Len(t, cache.keys, 1)
	assert.Contains(t, cache.keys[0], "widget-1:donut:")

	// A payload change produces a distinct cache key.
	w.Data.Donut.Total = 99
	_, err = r.RenderWidget(w)
	require.NoError(t, err)
	require.Len(t, cache.keys, 2)
	assert.NotEqual(t, cache.keys[0], cache.keys[1])
}

type countingCache struct {
	keys []string
}

func (c *countingCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	c.keys = append(c.keys, key)
	return render()
}
