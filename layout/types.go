package layout

import (
	"math"
	"strconv"

	"github.com/ByLCY/justify/linebreak"
)

// 该文件定义布局结果与资源描述，供布局计算、渲染与调试 JSON 共用。

// Result 保存布局后的页面、资源与断行信息。
type Result struct {
	Pages     []Page       `json:"pages"`
	Runs      []ItemRun    `json:"runs,omitempty"`
	Resources ResourceSet  `json:"resources"`
	Meta      DocumentMeta `json:"meta"`
	Settings  Settings     `json:"settings"`
	// Warnings 记录未解析的数据绑定等非致命问题。
	Warnings []string `json:"warnings,omitempty"`
}

// ResourceSet 记录解析出的字体、颜色与样式定义。
type ResourceSet struct {
	Fonts  map[string]FontResource `json:"fonts"`
	Colors map[string]Color        `json:"colors"`
	Styles map[string]Style        `json:"styles"`
}

// FontResource 描述字体资源，src 可以是文件路径或 builtin:* 形式。
type FontResource struct {
	Name      string `json:"name"`
	Src       string `json:"src"`
	Style     string `json:"style"`
	Base      string `json:"base"`      // builtin 模式下记录真实字体名
	IsBuiltin bool   `json:"isBuiltin"` // 是否为内建字体
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Page 记录页面尺寸、边距与已经定位的段落。
type Page struct {
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	Margin     Margin         `json:"margin"`
	Paragraphs []ParagraphBox `json:"paragraphs"`
}

// Margin 以毫米为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// ParagraphBox 是段落落在某一页上的部分。跨页的段落会拆成多个 ParagraphBox，
// 后续部分的 Continued 为 true。
type ParagraphBox struct {
	Index      int       `json:"index"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	Font       string    `json:"font"`
	FontSize   float64   `json:"fontSize"`
	LineHeight float64   `json:"lineHeight"`
	Color      Color     `json:"color"`
	Align      string    `json:"align"`
	Algorithm  string    `json:"algorithm"`
	Lines      []LineBox `json:"lines"`
	Continued  bool      `json:"continued,omitempty"`
	// Relaxed 表示首次断行不可行，已放宽 threshold 重新排版。
	Relaxed bool            `json:"relaxed,omitempty"`
	Debug   *ParagraphDebug `json:"debug,omitempty"`
}

// LineBox 表示一行排好的文本。Y 为行框顶部的页面坐标，Segments 的 X 相对段落左边。
type LineBox struct {
	Number       int               `json:"number"`
	BreakAt      int               `json:"breakAt"`
	Content      string            `json:"content"`
	Y            float64           `json:"y"`
	Width        float64           `json:"width"`
	NaturalWidth float64           `json:"naturalWidth"`
	Segments     []Segment         `json:"segments"`
	Ratio        Float             `json:"ratio"`
	Fitness      linebreak.Fitness `json:"fitness"`
	Demerits     Float             `json:"demerits"`
	Overfull     bool              `json:"overfull,omitempty"`
	Underfull    bool              `json:"underfull,omitempty"`
	Hyphenated   bool              `json:"hyphenated,omitempty"`
}

// Segment 是行内一段连续可见文本。
type Segment struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Width float64 `json:"width"`
	Space bool    `json:"space,omitempty"`
}

// ItemRun 是 items 块的断行结果：不含文本，只报告断点。
type ItemRun struct {
	Index  int         `json:"index"`
	Width  float64     `json:"width"`
	Items  []string    `json:"items"`
	Breaks []BreakInfo `json:"breaks"`
	Error  string      `json:"error,omitempty"`
}

// BreakInfo 是 linebreak.Breakpoint 的 JSON 友好形式。
type BreakInfo struct {
	BreakAt  int               `json:"breakAt"`
	Line     int               `json:"line"`
	Ratio    Float             `json:"ratio"`
	Fitness  linebreak.Fitness `json:"fitness"`
	Demerits Float             `json:"demerits"`
	Overfull bool              `json:"overfull,omitempty"`
}

// BreakInfos 转换一组断点。
func BreakInfos(breaks []linebreak.Breakpoint) []BreakInfo {
	out := make([]BreakInfo, len(breaks))
	for i, b := range breaks {
		out[i] = BreakInfo{
			BreakAt:  b.BreakAt,
			Line:     b.Line,
			Ratio:    Float(b.AdjustmentRatio),
			Fitness:  b.Fitness,
			Demerits: Float(b.Demerits),
			Overfull: b.Overfull(),
		}
	}
	return out
}

// Float 是可以安全写入 JSON 的浮点数：±Inf 与 NaN 编码为 null。
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// ParagraphDebug holds optional debug info displayed only when enabled by BuildOptions.
type ParagraphDebug struct {
	RawUnits *RawUnits `json:"rawUnits,omitempty"`
	Items    []string  `json:"items,omitempty"`
}

// RawUnits describes original author-specified units for key fields.
type RawUnits struct {
	FontSize   *RawLengthJSON     `json:"fontSize,omitempty"`
	LineHeight *RawLineHeightJSON `json:"lineHeight,omitempty"`
}

// RawLengthJSON is a JSON-friendly representation of Length.
type RawLengthJSON struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// RawLineHeightJSON is a JSON-friendly representation of LineHeightSpec.
type RawLineHeightJSON struct {
	Kind   string  `json:"kind"` // "factor" | "absolute"
	Factor float64 `json:"factor,omitempty"`
	Value  float64 `json:"value,omitempty"`
	Unit   string  `json:"unit,omitempty"`
}

// Style 用于描述可继承的段落样式。
type Style struct {
	Name    string            `json:"name"`
	Extends string            `json:"extends,omitempty"`
	Props   map[string]string `json:"props"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
