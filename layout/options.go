package layout

import (
	"github.com/ByLCY/justify/linebreak"
	"github.com/ByLCY/justify/paragraph"
)

// BuildOptions 配置布局阶段所需的依赖，例如排版后端与断行策略。
type BuildOptions struct {
	Typesetter Typesetter
	// Strategy 非空时覆盖文档 settings 中的 algorithm，对所有段落生效。
	Strategy linebreak.Layout
	// Config 非空时覆盖文档 settings 中的 Knuth-Plass 参数。
	Config *linebreak.Config
	// Relax 为 true 时，断行不可行的段落会以 threshold=+Inf 重试一次。
	Relax bool
	Debug DebugOptions
}

// DebugOptions 控制调试相关输出。
type DebugOptions struct {
	RawUnits bool // 在调试 JSON 中输出 debug.rawUnits 影子字段
	Items    bool // 在调试 JSON 中输出每个段落的 item 序列
}

// Typesetter 按字体与字号提供文本度量。
type Typesetter interface {
	Face(font FontResource, size float64) (Face, error)
}

// Face 以毫米为单位测量文本宽度。
type Face interface {
	paragraph.Measurer
	// LineHeight 返回字体的自然行高（mm）。
	LineHeight() float64
}
