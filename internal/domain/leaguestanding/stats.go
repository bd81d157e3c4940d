package leaguestanding

import (
	"math"
	"sort"
)

const DefaultHistogramMaxBins = 10

type Metric string

const (
	MetricTotal        Metric = "total"
	MetricMatchesWon   Metric = "matches_won"
	MetricMatchesLost  Metric = "matches_lost"
	MetricMatchesDrawn Metric = "matches_drawn"
)

func (m Metric) Value(r Row) float64 {
	switch m {
	case MetricMatchesWon:
		return float64(r.MatchesWon)
	case MetricMatchesLost:
		return float64(r.MatchesLost)
	case MetricMatchesDrawn:
		return float64(r.MatchesDrawn)
	default:
		return r.Total
	}
}

// Point is one bar of a per-team chart.
type Point struct {
	LeagueEntry string
	Label       string
	Value       float64
}

// Bin is a histogram bucket covering [Start, End); the last bin also holds End.
type Bin struct {
	Start float64
	End   float64
	Count int
}

// SortedBy returns a copy of rows ordered by metric descending. Equal values
// keep their input order.
func SortedBy(rows []Row, metric Metric) []Row {
	out := append([]Row(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		return metric.Value(out[i]) > metric.Value(out[j])
	})
	return out
}

// Series is the per-team bar data for metric, highest first.
func Series(rows []Row, metric Metric) []Point {
	sorted := SortedBy(rows, metric)
	out := make([]Point, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, Point{
			LeagueEntry: r.LeagueEntry,
			Label:       r.EntryName,
			Value:       metric.Value(r),
		})
	}
	return out
}

// TopN returns at most n rows with the highest totals. Every returned row has
// a total at least as high as every row left out.
func TopN(rows []Row, n int) []Row {
	if n <= 0 {
		return []Row{}
	}
	sorted := SortedBy(rows, MetricTotal)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Leader returns the row with the highest total, preferring the earliest row
// on ties. ok is false when rows is empty or no total is above zero.
func Leader(rows []Row) (leader Row, ok bool) {
	best := -1
	for i, r := range rows {
		if best < 0 || r.Total > rows[best].Total {
			best = i
		}
	}
	if best < 0 || rows[best].Total <= 0 {
		return Row{}, false
	}
	return rows[best], true
}

// Histogram buckets totals into at most maxBins bins whose width is a nice
// step (1, 2 or 5 times a power of ten) and whose edges are multiples of it.
// With maxBins of 1 the single bin spans the aligned range.
func Histogram(rows []Row, maxBins int) []Bin {
	if len(rows) == 0 {
		return []Bin{}
	}
	if maxBins < 1 {
		maxBins = DefaultHistogramMaxBins
	}

	lo, hi := rows[0].Total, rows[0].Total
	for _, r := range rows[1:] {
		lo = math.Min(lo, r.Total)
		hi = math.Max(hi, r.Total)
	}

	step := niceStep(hi-lo, maxBins)
	start, stop := alignToStep(lo, hi, step)
	if maxBins == 1 {
		step = stop - start
	}
	// Aligning the edges to the grid can add a bin past the cap.
	for math.Round((stop-start)/step) > float64(maxBins) {
		step = nextNiceStep(step)
		start, stop = alignToStep(lo, hi, step)
	}

	count := int(math.Round((stop - start) / step))
	if count < 1 {
		count = 1
	}

	bins := make([]Bin, count)
	for i := range bins {
		bins[i] = Bin{
			Start: roundToStep(start+float64(i)*step, step),
			End:   roundToStep(start+float64(i+1)*step, step),
		}
	}

	for _, r := range rows {
		idx := int(math.Floor((r.Total - start) / step))
		if idx < 0 {
			idx = 0
		}
		if idx >= count {
			idx = count - 1
		}
		bins[idx].Count++
	}

	return bins
}

func niceStep(span float64, maxBins int) float64 {
	if span <= 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return 1
	}

	level := math.Ceil(math.Log10(float64(maxBins)))
	step := math.Pow(10, math.Round(math.Log10(span))-level)
	for math.Ceil(span/step) > float64(maxBins) {
		step *= 10
	}
	for _, div := range []float64{5, 2} {
		candidate := step / div
		if span/candidate <= float64(maxBins) {
			step = candidate
		}
	}
	return step
}

func alignToStep(lo, hi, step float64) (start, stop float64) {
	start = math.Floor(lo/step) * step
	stop = math.Ceil(hi/step) * step
	if stop <= start {
		stop = start + step
	}
	return start, stop
}

// nextNiceStep moves step one place along 1, 2, 5, 10, 20, 50...
func nextNiceStep(step float64) float64 {
	base := math.Pow(10, math.Floor(math.Log10(step)))
	mantissa := math.Round(step / base)
	if mantissa >= 10 {
		base *= 10
		mantissa = 1
	}
	switch {
	case mantissa < 2:
		return 2 * base
	case mantissa < 5:
		return 5 * base
	default:
		return 10 * base
	}
}

func roundToStep(v, step float64) float64 {
	if step >= 1 {
		return math.Round(v)
	}
	digits := math.Ceil(-math.Log10(step))
	scale := math.Pow(10, digits)
	return math.Round(v*scale) / scale
}
