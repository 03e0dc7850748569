package dashgrid

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "320px"

var sharedChartCache = NewRenderCache(5 * time.Minute)

// FleetUtilizationPoint is one vehicle class's on-rent share.
type FleetUtilizationPoint struct {
	Class      string
	OnRent     int
	FleetTotal int
}

// FleetRepository fetches utilization numbers for the fleet chart provider.
type FleetRepository interface {
	FetchUtilization(ctx context.Context, user UserContext) ([]FleetUtilizationPoint, error)
}

// StaticFleetRepository serves fixed demo numbers. Host applications
// register their own repository against the catalog entry.
type StaticFleetRepository struct{}

func (StaticFleetRepository) FetchUtilization(context.Context, UserContext) ([]FleetUtilizationPoint, error) {
	return []FleetUtilizationPoint{
		{Class: "Economy", OnRent: 41, FleetTotal: 52},
		{Class: "Compact", OnRent: 35, FleetTotal: 44},
		{Class: "SUV", OnRent: 28, FleetTotal: 30},
		{Class: "Van", OnRent: 9, FleetTotal: 14},
		{Class: "Premium", OnRent: 6, FleetTotal: 11},
	}, nil
}

// FleetChartProvider renders fleet utilization as server-side echarts HTML.
type FleetChartProvider struct {
	repo  FleetRepository
	cache *RenderCache
	theme string
}

// FleetChartOption customizes provider behavior.
type FleetChartOption func(*FleetChartProvider)

// WithFleetChartCache injects a render cache.
func WithFleetChartCache(cache *RenderCache) FleetChartOption {
	return func(p *FleetChartProvider) {
		p.cache = cache
	}
}

// WithFleetChartTheme overrides the chart theme.
func WithFleetChartTheme(theme string) FleetChartOption {
	return func(p *FleetChartProvider) {
		p.theme = theme
	}
}

// NewFleetChartProvider builds the provider.
func NewFleetChartProvider(repo FleetRepository, options ...FleetChartOption) *FleetChartProvider {
	p := &FleetChartProvider{
		repo:  repo,
		cache: sharedChartCache,
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Fetch converts utilization data into chart markup.
func (p *FleetChartProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if p.repo == nil {
		return nil, fmt.Errorf("fleet chart provider: repository is required")
	}
	points, err := p.repo.FetchUtilization(ctx, meta.User)
	if err != nil {
		return nil, fmt.Errorf("fleet chart provider: %w", err)
	}

	chartType := strings.ToLower(settingString(meta.Settings, "chart_type", "bar"))
	title := settingString(meta.Settings, "title", "Fleet Utilization")

	renderFn := func() (string, error) {
		return p.render(chartType, title, points)
	}
	key := fmt.Sprintf("%s:%s:%s:%s", meta.Placement.WidgetID, meta.User.StorageKey(), chartType, title)
	html, err := p.cache.GetOrRender(key, renderFn)
	if err != nil {
		return nil, err
	}
	return WidgetData{
		"chart_html": html,
		"chart_type": chartType,
		"title":      title,
	}, nil
}

func (p *FleetChartProvider) render(chartType, title string, points []FleetUtilizationPoint) (string, error) {
	classes := make([]string, len(points))
	onRent := make([]opts.BarData, len(points))
	totals := make([]opts.BarData, len(points))
	for i, point := range points {
		classes[i] = point.Class
		onRent[i] = opts.BarData{Value: point.OnRent}
		totals[i] = opts.BarData{Value: point.FleetTotal}
	}
	global := []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  p.theme,
			Width:  "100%",
			Height: defaultChartHeight,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	}

	switch chartType {
	case "bar":
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(classes)
		bar.AddSeries("On rent", onRent)
		bar.AddSeries("Fleet", totals)
		return renderChart(bar)
	case "line":
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		line.SetXAxis(classes)
		line.AddSeries("On rent", toLineData(onRent))
		line.AddSeries("Fleet", toLineData(totals))
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	default:
		return "", fmt.Errorf("fleet chart provider: unsupported chart type %s", chartType)
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toLineData(bars []opts.BarData) []opts.LineData {
	data := make([]opts.LineData, len(bars))
	for i, b := range bars {
		data[i] = opts.LineData{Value: b.Value}
	}
	return data
}

func settingString(settings map[string]any, key, fallback string) string {
	if settings == nil {
		return fallback
	}
	if v, ok := settings[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
