// Package view holds the server-rendered pages of the dashboard.
package view

import (
	"embed"
	"html/template"
	"io"
	"strconv"
	"time"

	dsentity "stock_sentiment/internal/feature/dataset/domain/entity"
	"stock_sentiment/internal/feature/plot/domain/entity"
)

// Template names registered by Templates.
const (
	IndexTemplate = "index.html"
	PlotTemplate  = "plot.html"
)

//go:embed templates/*.html
var templateFS embed.FS

// CorrelationExplanation is the static legend shown under the heatmap.
const CorrelationExplanation template.HTML = `
<h3>Explanation of Correlation Coefficients</h3>
<p>Correlation coefficients (r) range from -1 to 1, indicating the strength and direction of the relationship between two variables:</p>
<ul>
    <li><b>+1:</b> Perfect positive correlation. When one variable increases, the other variable increases proportionally.</li>
    <li><b>+0.7 to +0.9:</b> Strong positive correlation. An increase in one variable tends to correspond with a strong increase in the other.</li>
    <li><b>+0.4 to +0.6:</b> Moderate positive correlation. One variable increases with the other, but less consistently than stronger correlations.</li>
    <li><b>+0.1 to +0.3:</b> Weak positive correlation. There's a slight tendency for one variable to increase when the other increases.</li>
    <li><b>0:</b> No correlation. There's no discernible relationship between the variables.</li>
    <li><b>-0.1 to -0.3:</b> Weak negative correlation. One variable tends to decrease slightly when the other increases.</li>
    <li><b>-0.4 to -0.6:</b> Moderate negative correlation. An increase in one variable generally corresponds with a decrease in the other.</li>
    <li><b>-0.7 to -0.9:</b> Strong negative correlation. When one variable increases, the other tends to decrease significantly.</li>
    <li><b>-1:</b> Perfect negative correlation. An increase in one variable leads to a proportional decrease in the other.</li>
</ul>
`

// SymbolOption is one entry of the symbol selector.
type SymbolOption struct {
	Code string
	Name string
}

// IndexPage is the data for the symbol selection form.
type IndexPage struct {
	Symbols []SymbolOption
}

// PlotPage is the data for the result page.
type PlotPage struct {
	Symbol      string
	TimeSeries  template.HTML
	Heatmap     template.HTML
	Explanation template.HTML
	Columns     []string
	Rows        dsentity.Table
}

// NewIndexPage builds the selector in registry order.
func NewIndexPage(symbols []dsentity.Symbol) IndexPage {
	opts := make([]SymbolOption, 0, len(symbols))
	for _, s := range symbols {
		opts = append(opts, SymbolOption{Code: s.Code, Name: s.Name})
	}
	return IndexPage{Symbols: opts}
}

// NewPlotPage wraps a finished plot with the legend and table header.
func NewPlotPage(p *entity.Plot) PlotPage {
	return PlotPage{
		Symbol:      p.Symbol,
		TimeSeries:  p.TimeSeries,
		Heatmap:     p.Heatmap,
		Explanation: CorrelationExplanation,
		Columns:     dsentity.RequiredColumns,
		Rows:        p.Table,
	}
}

// Templates parses the embedded page templates.
// テンプレートは埋め込み済みのためパースに失敗するのはビルド不備のみで、その場合は panic します。
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcMap()).ParseFS(templateFS, "templates/*.html"))
}

var pages = Templates()

// Render executes the named page into w.
func Render(w io.Writer, name string, data any) error {
	return pages.ExecuteTemplate(w, name, data)
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"date": func(t time.Time) string { return t.Format("2006-01-02") },
		"num":  func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	}
}
