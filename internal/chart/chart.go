// Package chart renders run results as PNG comparison charts.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/francisatoyebi/housepulse/internal/domain"
)

// Output filenames within the configured directory.
const (
	PieFileName = "rating_pie.png"
	BarFileName = "rating_bar.png"
)

const (
	pieWidth  = 1000
	pieHeight = 800
	barWidth  = 1200
	barHeight = 800

	chartTitle = "Viewer Post Rating for This Week"
)

// Renderer writes donut and bar charts of contestant ratings into a
// directory. Implements domain.Renderer.
type Renderer struct {
	outputDir string
}

// NewRenderer creates a renderer writing into outputDir. The directory is
// created on first render.
func NewRenderer(outputDir string) *Renderer {
	return &Renderer{outputDir: outputDir}
}

// Path returns the full path of a chart file by name.
func (r *Renderer) Path(name string) string {
	return filepath.Join(r.outputDir, name)
}

// RenderAll renders both charts for a run.
func (r *Renderer) RenderAll(run *domain.Run) error {
	if len(run.Results) == 0 {
		return domain.ErrNoResults
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", r.outputDir, err)
	}

	if err := r.renderDonut(run); err != nil {
		return fmt.Errorf("failed to render donut chart: %w", err)
	}
	if err := r.renderBar(run); err != nil {
		return fmt.Errorf("failed to render bar chart: %w", err)
	}
	return nil
}

func (r *Renderer) renderDonut(run *domain.Run) error {
	values := make([]chart.Value, 0, len(run.Results))
	for _, res := range run.Results {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", res.Name, res.Rating),
			Value: res.Rating,
		})
	}

	donut := chart.DonutChart{
		Title:  chartTitle,
		Width:  pieWidth,
		Height: pieHeight,
		Values: values,
	}

	return r.renderToFile(PieFileName, donut.Render)
}

func (r *Renderer) renderBar(run *domain.Run) error {
	bars := make([]chart.Value, 0, len(run.Results))
	maxRating := 0.0
	for _, res := range run.Results {
		bars = append(bars, chart.Value{
			Label: res.Name,
			Value: res.Rating,
		})
		if res.Rating > maxRating {
			maxRating = res.Rating
		}
	}

	bar := chart.BarChart{
		Title:    chartTitle,
		Width:    barWidth,
		Height:   barHeight,
		BarWidth: 60,
		XAxis:    chart.Style{},
		YAxis: chart.YAxis{
			Name: "Percentage Rating",
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: maxRating * 1.1,
			},
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f%%", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	return r.renderToFile(BarFileName, bar.Render)
}

func (r *Renderer) renderToFile(name string, render func(chart.RendererProvider, io.Writer) error) error {
	f, err := os.Create(r.Path(name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}

	if err := render(chart.PNG, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
