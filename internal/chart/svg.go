package chart

import (
	"bytes"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
)

// SVGRenderer draws vertical bar charts as SVG documents.
type SVGRenderer struct {
	Width  int
	Height int
	// Colors are CSS colors used for each series in turn.
	Colors     []string
	Background string
	Text       string
}

// NewSVGRenderer returns a renderer with the default palette.
func NewSVGRenderer() *SVGRenderer {
	return &SVGRenderer{
		Width:      640,
		Height:     360,
		Colors:     []string{"#1FB8CD", "#FFC185", "#B4413C", "#ECEBD5", "#5D878F"},
		Background: "#FCFCF9",
		Text:       "#13343B",
	}
}

const (
	svgMarginTop    = 48
	svgMarginBottom = 48
	svgMarginSide   = 40
)

// Draw returns the SVG document as a string.
func (r *SVGRenderer) Draw(p Projection) (string, error) {
	var buf bytes.Buffer
	if err := r.Write(&buf, p); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write renders the projection to w.
func (r *SVGRenderer) Write(w io.Writer, p Projection) error {
	if err := p.Validate(); err != nil {
		return err
	}

	plotW := r.Width - 2*svgMarginSide
	plotH := r.Height - svgMarginTop - svgMarginBottom
	if plotW <= 0 || plotH <= 0 {
		return fmt.Errorf("svg canvas %dx%d is too small", r.Width, r.Height)
	}
	scale := p.Scale()
	groupW := plotW / len(p.Labels)
	barW := max(groupW*3/4/len(p.Series), 1)
	baseline := svgMarginTop + plotH

	canvas := svg.New(w)
	canvas.Start(r.Width, r.Height)
	canvas.Rect(0, 0, r.Width, r.Height, "fill:"+r.Background)
	canvas.Text(svgMarginSide, 28, p.Title, fmt.Sprintf("fill:%s;font-size:16px;font-family:sans-serif;font-weight:bold", r.Text))
	canvas.Line(svgMarginSide, baseline, svgMarginSide+plotW, baseline, fmt.Sprintf("stroke:%s;stroke-width:1", r.Text))

	for i, label := range p.Labels {
		groupX := svgMarginSide + i*groupW + groupW/8
		for si, series := range p.Series {
			h := 0
			if scale > 0 {
				h = int(series.Values[i] / scale * float64(plotH))
			}
			h = min(max(h, 0), plotH)
			x := groupX + si*barW
			canvas.Rect(x, baseline-h, barW, h, "fill:"+r.color(si))
			canvas.Text(x+barW/2, baseline-h-4, formatValue(series.Values[i]),
				fmt.Sprintf("fill:%s;font-size:10px;font-family:sans-serif;text-anchor:middle", r.Text))
		}
		canvas.Text(svgMarginSide+i*groupW+groupW/2, baseline+16, label,
			fmt.Sprintf("fill:%s;font-size:11px;font-family:sans-serif;text-anchor:middle", r.Text))
	}

	for si, series := range p.Series {
		y := r.Height - 14
		x := svgMarginSide + si*140
		canvas.Rect(x, y-9, 10, 10, "fill:"+r.color(si))
		canvas.Text(x+14, y, series.Label, fmt.Sprintf("fill:%s;font-size:11px;font-family:sans-serif", r.Text))
	}
	canvas.End()
	return nil
}

func (r *SVGRenderer) color(i int) string {
	if len(r.Colors) == 0 {
		return "#1FB8CD"
	}
	return r.Colors[i%len(r.Colors)]
}
