//go:build analysis

// Samples hash-to-point over seed-derived message/nonce pairs and renders
// coefficient and rejection-rate histograms as a self-contained HTML page.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/tuneinsight/lattigo/v4/utils"

	"falcon-vault/falcon"
	"falcon-vault/keccak"
)

type summaryStats struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Median float64
	Max    float64
}

func computeStats(x []float64) summaryStats {
	n := len(x)
	if n == 0 {
		return summaryStats{}
	}
	cp := append([]float64(nil), x...)
	sort.Float64s(cp)
	var m float64
	for _, v := range x {
		m += v
	}
	m /= float64(n)
	var m2 float64
	for _, v := range x {
		d := v - m
		m2 += d * d
	}
	std := 0.0
	if n > 1 {
		std = math.Sqrt(m2 / float64(n-1))
	}
	return summaryStats{
		Count:  n,
		Mean:   m,
		Std:    std,
		Min:    cp[0],
		Median: cp[n/2],
		Max:    cp[n-1],
	}
}

func computeHistogram(values []float64, nbins int) (edges []float64, counts []int) {
	cp := append([]float64(nil), values...)
	sort.Float64s(cp)
	minv, maxv := cp[0], cp[len(cp)-1]
	width := (maxv - minv) / float64(nbins)
	if width <= 0 {
		width = 1
	}
	edges = make([]float64, nbins+1)
	for i := 0; i <= nbins; i++ {
		edges[i] = minv + float64(i)*width
	}
	counts = make([]int, nbins)
	for _, v := range values {
		idx := int((v - minv) / width)
		if idx >= nbins {
			idx = nbins - 1
		}
		counts[idx]++
	}
	return
}

func toBarItems(vals []int) []opts.BarData {
	out := make([]opts.BarData, len(vals))
	for i, v := range vals {
		out[i] = opts.BarData{Value: v}
	}
	return out
}

func newHistogramChart(title string, values []float64, nbins int) *charts.Bar {
	stats := computeStats(values)
	edges, counts := computeHistogram(values, nbins)
	xLabels := make([]string, nbins)
	for i := 0; i < nbins; i++ {
		xLabels[i] = fmt.Sprintf("%.1f", 0.5*(edges[i]+edges[i+1]))
	}
	bar := charts.NewBar()
	subtitle := fmt.Sprintf("n=%d, mean=%.3f, std=%.3f, median=%.1f", stats.Count, stats.Mean, stats.Std, stats.Median)
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}, opts.DataZoom{Type: "slider"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(xLabels).
		AddSeries("count", toBarItems(counts)).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))
	return bar
}

// drawCount replays the rejection sampling of hash-to-point to count how many
// 16-bit draws a given (message, nonce) pair consumes.
func drawCount(message, nonce []byte) int {
	const acceptBound = (1 << 16) / falcon.Q * falcon.Q
	sponge := keccak.New()
	sponge.Write(nonce)
	sponge.Write(message)
	stream := sponge.XOF()
	var draw [2]byte
	draws, filled := 0, 0
	for filled < falcon.N {
		stream.Read(draw[:])
		t := uint32(draw[0])<<8 | uint32(draw[1])
		if t < acceptBound {
			filled++
		}
		draws++
	}
	return draws
}

func main() {
	samples := flag.Int("samples", 2000, "number of (message, nonce) pairs")
	seedStr := flag.String("seed", "falcon-vault-analysis", "PRNG seed string")
	out := flag.String("out", "hashpoint_analysis.html", "output HTML path")
	flag.Parse()

	prng, err := utils.NewKeyedPRNG([]byte(*seedStr))
	if err != nil {
		log.Fatalf("keyed PRNG: %v", err)
	}

	coeffs := make([]float64, 0, *samples*falcon.N)
	draws := make([]float64, 0, *samples)
	message := make([]byte, 64)
	nonce := make([]byte, falcon.NonceSize)
	for i := 0; i < *samples; i++ {
		if _, err := io.ReadFull(prng, message); err != nil {
			log.Fatalf("sample message: %v", err)
		}
		if _, err := io.ReadFull(prng, nonce); err != nil {
			log.Fatalf("sample nonce: %v", err)
		}
		c, err := falcon.HashToPoint(message, nonce)
		if err != nil {
			log.Fatalf("hash-to-point at sample %d: %v", i, err)
		}
		for _, v := range c {
			coeffs = append(coeffs, float64(v))
		}
		draws = append(draws, float64(drawCount(message, nonce)))
	}

	page := components.NewPage()
	page.AddCharts(
		newHistogramChart("hash-to-point coefficients", coeffs, 128),
		newHistogramChart("16-bit draws per point", draws, 60),
	)
	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalf("render: %v", err)
	}

	cs := computeStats(coeffs)
	ds := computeStats(draws)
	fmt.Printf("coefficients: mean=%.2f std=%.2f (uniform over [0,%d) expects mean=%.2f)\n",
		cs.Mean, cs.Std, falcon.Q, float64(falcon.Q-1)/2)
	fmt.Printf("draws: mean=%.2f min=%.0f max=%.0f\n", ds.Mean, ds.Min, ds.Max)
	fmt.Printf("report written to %s\n", *out)
}
