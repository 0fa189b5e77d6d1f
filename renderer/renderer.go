package renderer

import "github.com/ByLCY/justify/layout"

// Renderer 将布局结果输出为最终文件，例如 PDF 或带边框的纯文本。
// Render 返回生成的数据以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Backend 既能为布局提供字体度量，也能输出最终结果。
type Backend interface {
	Renderer
	layout.Typesetter
}
