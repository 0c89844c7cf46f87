package models

import "fmt"

// Metric is one of the fixed score or rank facets a column can carry.
type Metric int

const (
	MetricTotal Metric = iota
	MetricChinese
	MetricMath
	MetricEnglish
	MetricPhysics
	MetricChemistry
	MetricBiology
	MetricPolitics
	MetricHistory
	MetricGeography
	MetricClassRank
	MetricSchoolRank
)

// MetricInfo is the static description of a metric.
type MetricInfo struct {
	// Name is the stable identifier used in JSON.
	Name string
	// Keywords are matched by substring against normalized headers.
	Keywords []string
	// Rank marks class and school rank metrics.
	Rank bool
}

// metricTable maps every metric to its detection keywords. Adding a subject is
// a new entry here plus a constant above.
var metricTable = []MetricInfo{
	MetricTotal:      {Name: "total", Keywords: []string{"总分", "总成绩", "totalscore"}},
	MetricChinese:    {Name: "chinese", Keywords: []string{"语文", "chinese"}},
	MetricMath:       {Name: "math", Keywords: []string{"数学", "math"}},
	MetricEnglish:    {Name: "english", Keywords: []string{"英语", "english"}},
	MetricPhysics:    {Name: "physics", Keywords: []string{"物理", "physics"}},
	MetricChemistry:  {Name: "chemistry", Keywords: []string{"化学", "chemistry"}},
	MetricBiology:    {Name: "biology", Keywords: []string{"生物", "biology"}},
	MetricPolitics:   {Name: "politics", Keywords: []string{"政治", "politics"}},
	MetricHistory:    {Name: "history", Keywords: []string{"历史", "history"}},
	MetricGeography:  {Name: "geography", Keywords: []string{"地理", "geography"}},
	MetricClassRank:  {Name: "class_rank", Rank: true},
	MetricSchoolRank: {Name: "school_rank", Rank: true},
}

// Metrics lists every metric in detection order.
func Metrics() []Metric {
	out := make([]Metric, len(metricTable))
	for i := range metricTable {
		out[i] = Metric(i)
	}
	return out
}

// Info returns the static description of m.
func (m Metric) Info() MetricInfo {
	if m < 0 || int(m) >= len(metricTable) {
		return MetricInfo{Name: fmt.Sprintf("metric(%d)", int(m))}
	}
	return metricTable[m]
}

func (m Metric) String() string { return m.Info().Name }

// MarshalText makes metrics usable as JSON object keys.
func (m Metric) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(metricTable) {
		return nil, fmt.Errorf("unknown metric %d", int(m))
	}
	return []byte(metricTable[m].Name), nil
}

// UnmarshalText parses a metric name.
func (m *Metric) UnmarshalText(text []byte) error {
	for i, info := range metricTable {
		if info.Name == string(text) {
			*m = Metric(i)
			return nil
		}
	}
	return fmt.Errorf("unknown metric %q", string(text))
}
