package layout

import (
	"encoding/json"
	"os"
)

// MarshalDebugJSON 将布局结果编码为缩进 JSON。非有限的调整比例与 demerits 编码为 null，
// 对应行通过 overfull/underfull 标记说明原因。
func MarshalDebugJSON(res *Result) ([]byte, error) {
	return json.MarshalIndent(res, "", "  ")
}

// WriteDebugJSON 将布局结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := MarshalDebugJSON(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
