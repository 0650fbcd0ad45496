// Package htmlreport renders a finalized Report's distributions as SVG
// charts, written as a single self-contained HTML file.
package htmlreport

import (
	"bytes"
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"fastqscope/internal/qc"
)

// integerTicks labels the x-axis with whole-number positions, matching
// the per-base plots' discrete domain.
type integerTicks struct{}

func (integerTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for i := int(min); i <= int(max); i++ {
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: fmt.Sprintf("%d", i)})
	}
	return ticks
}

// Write renders charts for r to prefix+".html", embedding each SVG inline.
func Write(r *qc.Report, prefix string) error {
	lengthSVG, err := lengthPlot(r.LengthDistribution)
	if err != nil {
		return fmt.Errorf("render length distribution: %w", err)
	}
	qualitySVG, err := qualityPlot(r.QualityDistribution)
	if err != nil {
		return fmt.Errorf("render quality distribution: %w", err)
	}
	gcSVG, err := gcPlot(r.PerSequenceGCDistribution, r.TheoreticalGCDistribution)
	if err != nil {
		return fmt.Errorf("render GC distribution: %w", err)
	}
	baseContentSVG, err := baseContentPlot(r.PerBaseSequenceContent)
	if err != nil {
		return fmt.Errorf("render per-base content: %w", err)
	}
	dupSVG, err := duplicationPlot(r.DuplicationLevels)
	if err != nil {
		return fmt.Errorf("render duplication levels: %w", err)
	}

	f, err := os.Create(prefix + ".html")
	if err != nil {
		return fmt.Errorf("create html report: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, htmlTemplate, r.Filename, r.Filename, r.QualityStatus.Overall,
		lengthSVG, qualitySVG, gcSVG, baseContentSVG, dupSVG)
	return nil
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>fastqscope report: %s</title></head>
<body>
<h1>%s</h1>
<p>Overall status: %s</p>
<h2>Length distribution</h2>
%s
<h2>Per-base quality</h2>
%s
<h2>Per-sequence GC content</h2>
%s
<h2>Per-base sequence content</h2>
%s
<h2>Duplication levels</h2>
%s
</body>
</html>
`

func renderSVG(p *plot.Plot) (string, error) {
	var buf bytes.Buffer
	writer, err := p.WriterTo(10*vg.Inch, 4*vg.Inch, "svg")
	if err != nil {
		return "", err
	}
	if _, err := writer.WriteTo(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func lengthPlot(bins []qc.LengthBin) (string, error) {
	if len(bins) == 0 {
		return "<p>No length data.</p>", nil
	}
	p := plot.New()
	p.Title.Text = "Read Length Distribution"
	p.X.Label.Text = "Length bin"
	p.Y.Label.Text = "Read count"

	pts := make(plotter.XYs, len(bins))
	for i, b := range bins {
		pts[i].X = float64(i)
		pts[i].Y = float64(b.Count)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", err
	}
	line.LineStyle.Color = color.RGBA{R: 50, G: 100, B: 200, A: 255}
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)
	return renderSVG(p)
}

func qualityPlot(points []qc.QualityPoint) (string, error) {
	if len(points) == 0 {
		return "<p>No quality data.</p>", nil
	}
	p := plot.New()
	p.Title.Text = "Per-Base Quality"
	p.X.Label.Text = "Position in read"
	p.Y.Label.Text = "Mean quality"
	p.X.Tick.Marker = integerTicks{}
	p.Y.Min = 0

	pts := make(plotter.XYs, len(points))
	for i, pt := range points {
		pts[i].X = float64(pt.Pos)
		pts[i].Y = pt.Quality
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", err
	}
	line.LineStyle.Color = color.RGBA{R: 255, G: 215, A: 255}
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)
	return renderSVG(p)
}

func gcPlot(observed []qc.SeqGCPoint, theoretical []qc.TheoreticalGCPoint) (string, error) {
	if len(observed) == 0 {
		return "<p>No GC content data.</p>", nil
	}
	p := plot.New()
	p.Title.Text = "Per Sequence GC Content"
	p.X.Label.Text = "GC content (%)"
	p.Y.Label.Text = "Read count"

	obsPts := make(plotter.XYs, len(observed))
	for i, pt := range observed {
		obsPts[i].X = float64(pt.GC)
		obsPts[i].Y = float64(pt.Count)
	}
	obsLine, err := plotter.NewLine(obsPts)
	if err != nil {
		return "", err
	}
	obsLine.Color = color.RGBA{B: 255, A: 255}
	obsLine.Width = vg.Points(2)
	p.Add(obsLine)
	p.Legend.Add("Observed", obsLine)

	if len(theoretical) > 0 {
		expPts := make(plotter.XYs, len(theoretical))
		for i, pt := range theoretical {
			expPts[i].X = float64(pt.GC)
			expPts[i].Y = pt.Count
		}
		expLine, err := plotter.NewLine(expPts)
		if err != nil {
			return "", err
		}
		expLine.Color = color.RGBA{R: 255, G: 100, B: 100, A: 255}
		expLine.Width = vg.Points(2)
		expLine.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		p.Add(expLine)
		p.Legend.Add("Modelled Normal", expLine)
	}
	p.Legend.Top = true
	return renderSVG(p)
}

func baseContentPlot(bins []qc.BaseContentBin) (string, error) {
	if len(bins) == 0 {
		return "<p>No per-base content data.</p>", nil
	}
	p := plot.New()
	p.Title.Text = "Per Base Sequence Content"
	p.X.Label.Text = "Position in read"
	p.Y.Label.Text = "Base composition (%)"
	p.Y.Min = 0
	p.Y.Max = 100
	p.Legend.Top = true

	series := map[string]color.RGBA{
		"A": {R: 255, A: 255},
		"C": {G: 200, A: 255},
		"G": {B: 255, A: 255},
		"T": {R: 255, G: 165, A: 255},
		"N": {R: 150, G: 150, A: 255},
	}
	for _, base := range []string{"A", "C", "G", "T", "N"} {
		pts := make(plotter.XYs, len(bins))
		for i, b := range bins {
			pts[i].X = float64(i)
			switch base {
			case "A":
				pts[i].Y = b.A
			case "C":
				pts[i].Y = b.C
			case "G":
				pts[i].Y = b.G
			case "T":
				pts[i].Y = b.T
			case "N":
				pts[i].Y = b.N
			}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return "", err
		}
		line.LineStyle.Width = vg.Points(1.3)
		line.LineStyle.Color = series[base]
		p.Add(line)
		p.Legend.Add(base, line)
	}
	return renderSVG(p)
}

func duplicationPlot(levels []qc.DuplicationLevel) (string, error) {
	if len(levels) == 0 {
		return "<p>No duplication data.</p>", nil
	}
	p := plot.New()
	p.Title.Text = "Sequence Duplication Levels"
	p.X.Label.Text = "Duplication bucket"
	p.Y.Label.Text = "Percent of distinct sequences"
	p.Y.Max = 100

	pts := make(plotter.XYs, len(levels))
	for i, l := range levels {
		pts[i].X = float64(i)
		pts[i].Y = l.Percentage
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	p.Add(line)
	return renderSVG(p)
}
