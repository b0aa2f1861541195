package chart

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/vfg2006/sales-pipeline/internal/domain"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	defaultWidth  = 1200
	defaultHeight = 600
)

// ForecastRenderer draws the observed monthly revenue and its forecast as a PNG.
type ForecastRenderer struct {
	Width  int
	Height int
	Title  string
}

func NewForecastRenderer() *ForecastRenderer {
	return &ForecastRenderer{
		Width:  defaultWidth,
		Height: defaultHeight,
		Title:  "Monthly Sales Forecast",
	}
}

// Render writes the chart to path, replacing any existing file. Nothing is
// written when rendering fails.
func (r *ForecastRenderer) Render(path string, observed []domain.MonthlyRevenue, forecast []domain.ForecastPoint) error {
	if len(observed) == 0 {
		return fmt.Errorf("no observed values to plot")
	}

	observedX := make([]time.Time, 0, len(observed))
	observedY := make([]float64, 0, len(observed))
	for _, point := range observed {
		observedX = append(observedX, point.Period.Start())
		observedY = append(observedY, point.TotalSales.InexactFloat64())
	}

	// the forecast line starts at the last observation so the two series connect
	forecastX := []time.Time{observedX[len(observedX)-1]}
	forecastY := []float64{observedY[len(observedY)-1]}
	for _, point := range forecast {
		forecastX = append(forecastX, point.Period.Start())
		forecastY = append(forecastY, point.Value)
	}

	graph := chart.Chart{
		Title:  r.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
		},
		YAxis: chart.YAxis{
			Name:  "Total Sales",
			Range: yRange(append(append([]float64{}, observedY...), forecastY...)),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Observed",
				XValues: observedX,
				YValues: observedY,
				Style: chart.Style{
					StrokeColor: drawing.ColorBlue,
					StrokeWidth: 2,
				},
			},
			chart.TimeSeries{
				Name:    "Forecast",
				XValues: forecastX,
				YValues: forecastY,
				Style: chart.Style{
					StrokeColor:     drawing.ColorRed,
					StrokeWidth:     2,
					StrokeDashArray: []float64{5.0, 5.0},
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buffer := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating chart directory: %w", err)
		}
	}

	if err := os.WriteFile(path, buffer.Bytes(), 0o644); err != nil {
		return fmt.Errorf("error writing chart: %w", err)
	}

	return nil
}

// yRange pads a flat series so the axis never has a zero-width range.
func yRange(values []float64) chart.Range {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo > 0 {
		pad := (hi - lo) * 0.05
		return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
	}
	pad := math.Max(math.Abs(hi)*0.1, 1)
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
