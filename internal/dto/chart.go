package dto

const VegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"

// ChartSpec is a Vega-Lite v5 layered chart. Only the subset of the grammar
// used by the dual-axis sales/weather chart is modelled.
type ChartSpec struct {
	Schema   string    `json:"$schema"`
	Title    string    `json:"title"`
	Width    string    `json:"width"`
	Height   int       `json:"height"`
	Data     ChartData `json:"data"`
	Encoding *Encoding `json:"encoding,omitempty"`
	Layer    []Layer   `json:"layer"`
	Resolve  *Resolve  `json:"resolve,omitempty"`
}

type ChartData struct {
	Values []map[string]any `json:"values"`
}

// Layer is either a single mark or a nested group of layers.
type Layer struct {
	Mark     *Mark     `json:"mark,omitempty"`
	Encoding *Encoding `json:"encoding,omitempty"`
	Layer    []Layer   `json:"layer,omitempty"`
}

type Mark struct {
	Type        string    `json:"type"`
	Color       string    `json:"color,omitempty"`
	StrokeWidth float64   `json:"strokeWidth,omitempty"`
	StrokeDash  []float64 `json:"strokeDash,omitempty"`
	Size        float64   `json:"size,omitempty"`
}

type Encoding struct {
	X       *FieldDef  `json:"x,omitempty"`
	Y       *FieldDef  `json:"y,omitempty"`
	Tooltip []FieldDef `json:"tooltip,omitempty"`
}

type FieldDef struct {
	Field  string `json:"field"`
	Type   string `json:"type"`
	Title  string `json:"title,omitempty"`
	Format string `json:"format,omitempty"`
	Axis   *Axis  `json:"axis,omitempty"`
}

type Axis struct {
	Title      string `json:"title"`
	Format     string `json:"format,omitempty"`
	TitleColor string `json:"titleColor,omitempty"`
	Orient     string `json:"orient,omitempty"`
}

type Resolve struct {
	Scale map[string]string `json:"scale"`
}
