package model

// ChartKind 图表类型
type ChartKind string

const (
	ChartKindBar  ChartKind = "bar"
	ChartKindLine ChartKind = "line"
)

// Chart 图表描述（渲染层自行绘制）
type Chart struct {
	Kind     ChartKind `json:"kind"`
	Title    string    `json:"title"`
	XField   string    `json:"xField"`
	YField   string    `json:"yField"`
	YLabel   string    `json:"yLabel"`
	Markers  bool      `json:"markers"`
	Color    string    `json:"color,omitempty"`
	ZeroLine bool      `json:"zeroLine"`
	Labels   []string  `json:"labels"`
	Values   []float64 `json:"values"`
}
