package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/justify/dsl"
	"github.com/ByLCY/justify/layout"
	"github.com/ByLCY/justify/renderer"
	canvasrenderer "github.com/ByLCY/justify/renderer/canvas"
	textrenderer "github.com/ByLCY/justify/renderer/text"
)

const (
	formatPDF  = "pdf"
	formatText = "text"
)

type renderFlags struct {
	out           string
	data          string
	debug         string
	debugRawUnits bool
	debugItems    bool
}

func newRenderCommand(a *app) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render <file.justify>",
		Short: "排版 .justify 文档并输出 PDF 或纯文本",
		Args:  cobra.ExactArgs(1),
	}
	flags := cmd.Flags()
	flags.StringVarP(&f.out, "out", "o", "", "输出路径；pdf 缺省为输入文件同名 .pdf，text 缺省为标准输出")
	flags.String(keyFormat, formatPDF, "输出格式：pdf 或 text")
	flags.StringVar(&f.data, "data", "", "绑定到文档的 JSON 数据，以 @ 开头时从文件读取")
	flags.StringVar(&f.debug, "debug", "", "布局调试 JSON 输出路径")
	flags.BoolVar(&f.debugRawUnits, "debug-raw-units", false, "在调试 JSON 中输出 debug.rawUnits 影子字段")
	flags.BoolVar(&f.debugItems, "debug-items", false, "在调试 JSON 中输出每个段落的 item 序列")
	flags.Bool(keyRelax, true, "断行不可行的段落以 threshold=inf 重试")
	flags.Bool(keyGuides, false, "PDF 中绘制段落边框并标记过满行")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := a.bind(cmd.Flags(), keyFormat, keyRelax, keyGuides); err != nil {
			return err
		}
		input := args[0]
		data, err := loadData(f.data)
		if err != nil {
			return err
		}

		format := strings.ToLower(a.v.GetString(keyFormat))
		var backend renderer.Backend
		switch format {
		case formatPDF:
			backend = canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
				BaseDir: filepath.Dir(input),
				Guides:  a.v.GetBool(keyGuides),
			})
		case formatText:
			backend = textrenderer.New()
		default:
			return fmt.Errorf("未知的输出格式：%s", format)
		}

		result, err := a.layout(input, data, backend, layout.DebugOptions{RawUnits: f.debugRawUnits, Items: f.debugItems})
		if err != nil {
			return err
		}
		for _, w := range result.Warnings {
			cmd.PrintErrln("警告：" + w)
		}
		if f.debug != "" {
			if err := writeDebug(result, f.debug); err != nil {
				return err
			}
		}

		output, err := backend.Render(result)
		if err != nil {
			return fmt.Errorf("渲染失败: %w", err)
		}
		out := f.out
		if out == "" && format == formatPDF {
			out = strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
		}
		if out == "" {
			_, err = cmd.OutOrStdout().Write(output)
			return err
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
		if err := os.WriteFile(out, output, 0o644); err != nil {
			return fmt.Errorf("写入输出文件失败: %w", err)
		}
		a.logger.Printf("已生成 %s", out)
		return nil
	}
	return cmd
}

// layout 串联解析与布局。
func (a *app) layout(path string, data any, ts layout.Typesetter, debug layout.DebugOptions) (*layout.Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开 DSL 文件 %s: %w", path, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析 DSL 失败: %w", err)
	}
	result, err := layout.Build(doc, data, layout.BuildOptions{
		Typesetter: ts,
		Relax:      a.v.GetBool(keyRelax),
		Debug:      debug,
	})
	if err != nil {
		return nil, fmt.Errorf("布局计算失败: %w", err)
	}

	for _, page := range result.Pages {
		for _, pb := range page.Paragraphs {
			note := ""
			if pb.Continued {
				note += "（续）"
			}
			if pb.Relaxed {
				note += "（已放宽 threshold）"
			}
			a.logger.Printf("第 %d 个段落：%s，%d 行%s", pb.Index, pb.Algorithm, len(pb.Lines), note)
		}
	}
	for _, run := range result.Runs {
		if run.Error != "" {
			a.logger.Printf("第 %d 组 items：%s", run.Index, run.Error)
			continue
		}
		a.logger.Printf("第 %d 组 items：%d 行", run.Index, len(run.Breaks))
	}
	return result, nil
}

func loadData(value string) (any, error) {
	if value == "" {
		return nil, nil
	}
	raw := []byte(value)
	if path, ok := strings.CutPrefix(value, "@"); ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取数据文件失败: %w", err)
		}
		raw = b
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
	}
	return data, nil
}

func writeDebug(result *layout.Result, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, path); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
