package export

import (
	"io"
	"strings"

	"prodexa/internal/model"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ChartKind names one of the catalogue charts.
type ChartKind string

const (
	ChartStockBar ChartKind = "stock-bar"
	ChartStockPie ChartKind = "stock-pie"
	ChartPriceBar ChartKind = "price-bar"
)

// ChartKinds lists the supported charts.
var ChartKinds = []ChartKind{ChartStockBar, ChartStockPie, ChartPriceBar}

func chartKindList() string {
	names := make([]string, len(ChartKinds))
	for i, k := range ChartKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// WriteChart renders the chart of the given kind as a standalone HTML page.
func WriteChart(w io.Writer, kind ChartKind, products []model.Product) error {
	var err error
	switch kind {
	case ChartStockBar:
		err = stockBar(products).Render(w)
	case ChartStockPie:
		err = stockPie(products).Render(w)
	case ChartPriceBar:
		err = priceBar(products).Render(w)
	default:
		return model.Validation("unknown chart %q, supported charts are %s", kind, chartKindList())
	}
	if err != nil {
		return model.IO("failed to render chart: %v", err)
	}
	return nil
}

func productNames(products []model.Product) []string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return names
}

func stockBar(products []model.Product) *charts.Bar {
	data := make([]opts.BarData, len(products))
	for i, p := range products {
		data[i] = opts.BarData{Value: p.Stock}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Stock levels"}),
		charts.WithTitleOpts(opts.Title{Title: "Product Stock Levels"}),
	)
	bar.SetXAxis(productNames(products)).AddSeries("Stock", data)
	return bar
}

func stockPie(products []model.Product) *charts.Pie {
	data := make([]opts.PieData, 0, len(products))
	for _, p := range products {
		if p.Stock > 0 {
			data = append(data, opts.PieData{Name: p.Name, Value: p.Stock})
		}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Stock distribution"}),
		charts.WithTitleOpts(opts.Title{Title: "Stock Distribution by Product"}),
	)
	pie.AddSeries("Stock", data)
	return pie
}

func priceBar(products []model.Product) *charts.Bar {
	data := make([]opts.BarData, len(products))
	for i, p := range products {
		data[i] = opts.BarData{Value: p.Price.Round(2).InexactFloat64()}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Prices"}),
		charts.WithTitleOpts(opts.Title{Title: "Product Prices"}),
	)
	bar.SetXAxis(productNames(products)).AddSeries("Price", data)
	return bar
}
