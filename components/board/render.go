package board

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "320px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartRenderer turns widget records into self-contained chart HTML.
// Donut widgets render as pie charts, gauges as gauges; bar and line
// widgets currently carry no payload and render as empty charts with the
// widget title. Text widgets render as an escaped content block without
// touching echarts.
type ChartRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithRenderCache injects a render cache.
func WithRenderCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the echarts theme (defaults to Westeros).
func WithChartTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.theme = theme
	}
}

// WithChartAssetsHost rewrites the assets host so the ECharts JS loads
// from a CDN or self-hosted bucket.
func WithChartAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// NewChartRenderer builds a renderer with the shared cache.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		cache: sharedChartCache,
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// RenderWidget returns HTML for a single widget.
func (r *ChartRenderer) RenderWidget(w Widget) (string, error) {
	renderFn := func() (string, error) { return r.render(w) }
	if r.cache != nil {
		key := fmt.Sprintf("%s:%s:%s", w.ID, w.Type, widgetHash(w))
		return r.cache.GetOrRender(key, renderFn)
	}
	return renderFn()
}

func (r *ChartRenderer) render(w Widget) (string, error) {
	switch w.Type {
	case WidgetDonut:
		return r.renderDonut(w)
	case WidgetGauge:
		return r.renderGauge(w)
	case WidgetBar:
		return r.renderBar(w)
	case WidgetLine:
		return r.renderLine(w)
	case WidgetText:
		return renderText(w), nil
	default:
		return "", fmt.Errorf("board: unsupported widget type: %s", w.Type)
	}
}

func (r *ChartRenderer) renderDonut(w Widget) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalChartOptions(w.Title)...)
	pie.AddSeries(w.Title, donutSeries(w.Data))
	return renderChart(pie)
}

func (r *ChartRenderer) renderGauge(w Widget) (string, error) {
	gauge := charts.NewGauge()
	gauge.SetGlobalOptions(r.globalChartOptions(w.Title)...)
	gauge.AddSeries(w.Title, gaugeSeries(w.Data))
	return renderChart(gauge)
}

func (r *ChartRenderer) renderBar(w Widget) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalChartOptions(w.Title)...)
	bar.SetXAxis([]string{})
	bar.AddSeries(w.Title, []opts.BarData{})
	return renderChart(bar)
}

func (r *ChartRenderer) renderLine(w Widget) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalChartOptions(w.Title)...)
	line.SetXAxis([]string{})
	line.AddSeries(w.Title, []opts.LineData{})
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func renderText(w Widget) string {
	return fmt.Sprintf(
		`<div class="board-widget-text"><h3>%s</h3><p>%s</p></div>`,
		html.EscapeString(w.Title),
		html.EscapeString(w.Content),
	)
}

func donutSeries(data *ChartData) []opts.PieData {
	if data == nil || data.Donut == nil {
		return nil
	}
	out := make([]opts.PieData, len(data.Donut.Segments))
	for i, seg := range data.Donut.Segments {
		out[i] = opts.PieData{Name: seg.Label, Value: seg.Value}
	}
	return out
}

func gaugeSeries(data *ChartData) []opts.GaugeData {
	if data == nil || data.Gauge == nil {
		return nil
	}
	g := data.Gauge
	out := []opts.GaugeData{
		{Name: "critical", Value: g.Critical},
		{Name: "high", Value: g.High},
	}
	if g.Medium > 0 {
		out = append(out, opts.GaugeData{Name: "medium", Value: g.Medium})
	}
	if g.Low > 0 {
		out = append(out, opts.GaugeData{Name: "low", Value: g.Low})
	}
	return out
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ChartRenderer) globalChartOptions(title string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}
