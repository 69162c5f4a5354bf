package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartDateLayout = "Jan 2006"
	pageTitle       = "Prediksi Konsentrasi Gas Rumah Kaca"
)

// gasStyle carries the presentation attributes of one gas panel.
type gasStyle struct {
	display string
	unit    string
	color   string
	band    string
}

var gasStyles = map[string]gasStyle{
	"CO2_seasonal": {display: "CO₂", unit: "ppm", color: "red", band: "rgba(255,0,0,0.2)"},
	"CH4_seasonal": {display: "CH₄", unit: "ppb", color: "blue", band: "rgba(0,0,255,0.2)"},
	"N2O_seasonal": {display: "N₂O", unit: "ppb", color: "green", band: "rgba(0,128,0,0.2)"},
	"SF6_seasonal": {display: "SF₆", unit: "ppt", color: "orange", band: "rgba(255,165,0,0.2)"},
}

func styleFor(gas string) gasStyle {
	if style, ok := gasStyles[gas]; ok {
		return style
	}
	return gasStyle{
		display: strings.TrimSuffix(gas, "_seasonal"),
		color:   "gray",
		band:    "rgba(128,128,128,0.2)",
	}
}

func (s gasStyle) title() string {
	if s.unit == "" {
		return s.display
	}
	return fmt.Sprintf("%s (%s)", s.display, s.unit)
}

func (s gasStyle) yAxisTitle() string {
	if s.unit == "" {
		return "Konsentrasi"
	}
	return fmt.Sprintf("Konsentrasi (%s)", s.unit)
}

// WriteChart writes the interactive HTML dashboard to w: one panel
// per gas showing recent history, the forecast and its prediction
// interval. A non-empty logo is embedded as a data URI in the page.
func WriteChart(w io.Writer, panels []Panel, logo []byte) error {
	if len(panels) == 0 {
		return fmt.Errorf("no panels to render")
	}

	page := components.NewPage()
	page.PageTitle = pageTitle
	page.SetLayout(components.PageFlexLayout)

	for _, panel := range panels {
		chart, err := panelChart(panel)
		if err != nil {
			return fmt.Errorf("panel %s: %w", panel.Gas, err)
		}
		page.AddCharts(chart)
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	_, err := w.Write(injectLogo(buf.Bytes(), logo))
	return err
}

// SaveChart renders the dashboard to the named file.
func SaveChart(path string, panels []Panel, logo []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WriteChart(f, panels, logo); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadLogo reads the logo image for embedding. Callers decide how to
// treat a missing file, typically by rendering without the logo.
func LoadLogo(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func panelChart(panel Panel) (*charts.Line, error) {
	if panel.History == nil || panel.History.Len() == 0 {
		return nil, fmt.Errorf("no historical data")
	}
	if len(panel.History.Timestamps) != panel.History.Len() {
		return nil, fmt.Errorf("historical series has no timestamps")
	}
	if len(panel.Forecast) == 0 {
		return nil, fmt.Errorf("no forecast records")
	}

	style := styleFor(panel.Gas)
	level := panel.Level
	if level <= 0 || level >= 1 {
		level = 0.95
	}
	bandName := fmt.Sprintf("Interval Kepercayaan %s%% %s",
		strconv.FormatFloat(level*100, 'g', -1, 64), style.display)

	nHist := panel.History.Len()
	nFc := len(panel.Forecast)

	labels := make([]string, 0, nHist+nFc)
	for _, ts := range panel.History.Timestamps {
		labels = append(labels, ts.Format(chartDateLayout))
	}
	for _, rec := range panel.Forecast {
		labels = append(labels, rec.Date.Format(chartDateLayout))
	}

	// Series sharing one category axis are padded with gaps so the
	// history stops where the forecast begins.
	hist := make([]opts.LineData, 0, nHist+nFc)
	for _, v := range panel.History.Values {
		hist = append(hist, opts.LineData{Value: v})
	}
	for i := 0; i < nFc; i++ {
		hist = append(hist, opts.LineData{Value: "-"})
	}

	forecast := make([]opts.LineData, 0, nHist+nFc)
	lower := make([]opts.LineData, 0, nHist+nFc)
	band := make([]opts.LineData, 0, nHist+nFc)
	for i := 0; i < nHist; i++ {
		forecast = append(forecast, opts.LineData{Value: "-"})
		lower = append(lower, opts.LineData{Value: "-"})
		band = append(band, opts.LineData{Value: "-"})
	}
	for _, rec := range panel.Forecast {
		forecast = append(forecast, opts.LineData{Value: rec.Forecast})
		lower = append(lower, opts.LineData{Value: rec.Lower})
		band = append(band, opts.LineData{Value: rec.Upper - rec.Lower})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "850px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: style.title(), Left: "center"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true, Left: "center", Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Tanggal"}),
		charts.WithYAxisOpts(opts.YAxis{Name: style.yAxisTitle(), Scale: true}),
	)

	stack := "band-" + panel.Gas

	// The interval is drawn with the stacked band trick: an invisible
	// line at the lower bound plus a filled series holding the
	// upper-lower delta stacked on top of it.
	line.SetXAxis(labels).
		AddSeries("Data Historis "+style.display, hist,
			charts.WithLineStyleOpts(opts.LineStyle{Color: style.color, Width: 2}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: style.color}),
		).
		AddSeries("Prediksi "+style.display, forecast,
			charts.WithLineStyleOpts(opts.LineStyle{Color: style.color, Width: 3, Type: "dotted"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: style.color}),
			charts.WithLineChartOpts(opts.LineChart{Symbol: "diamond"}),
		).
		AddSeries(bandName, lower,
			charts.WithLineStyleOpts(opts.LineStyle{Color: "rgba(255,255,255,0)", Width: 1}),
			charts.WithLineChartOpts(opts.LineChart{Stack: stack, Symbol: "none"}),
		).
		AddSeries(bandName, band,
			charts.WithLineStyleOpts(opts.LineStyle{Color: "rgba(255,255,255,0)", Width: 1}),
			charts.WithLineChartOpts(opts.LineChart{Stack: stack, Symbol: "none"}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: style.band, Opacity: 1}),
		)

	return line, nil
}

func injectLogo(html, logo []byte) []byte {
	if len(logo) == 0 {
		return html
	}

	img := fmt.Sprintf(
		`<img src="data:image/png;base64,%s" alt="logo" style="position:fixed;bottom:24px;right:24px;width:110px;opacity:0.6;"/>`,
		base64.StdEncoding.EncodeToString(logo),
	)

	marker := []byte("</body>")
	if !bytes.Contains(html, marker) {
		return append(html, []byte(img)...)
	}
	return bytes.Replace(html, marker, append([]byte(img), marker...), 1)
}
