package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/ByLCY/justify/layout"
	"github.com/ByLCY/justify/linebreak"
	"github.com/ByLCY/justify/paragraph"
	textrenderer "github.com/ByLCY/justify/renderer/text"
)

// brokenLine 是 break --json 输出的一行。
type brokenLine struct {
	layout.BreakInfo
	Content string `json:"content"`
}

func newBreakCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break [file]",
		Short: "对纯文本断行，每个字符宽度为 1",
		Long: `break 把文件（缺省为标准输入）中的文本视为一个段落，按等宽字符断行，
并输出带边框的结果或 JSON 形式的断点。`,
		Args: cobra.MaximumNArgs(1),
	}
	flags := cmd.Flags()
	flags.Int(keyWidth, 80, "行宽（字符数）")
	flags.Bool(keyJSON, false, "以 JSON 输出断点")
	flags.Bool(keyFill, false, "按调整比例拉伸空白，使各行填满行宽")
	flags.Bool(keyRelax, true, "无可行断行时以 threshold=inf 并允许溢出重试")
	settingKeys := addSettingFlags(flags)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := a.bind(cmd.Flags(), append(settingKeys, keyWidth, keyJSON, keyFill, keyRelax)...); err != nil {
			return err
		}
		text, err := readText(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		width := a.v.GetInt(keyWidth)
		if width <= 0 {
			return fmt.Errorf("行宽必须为正数，实际 %d", width)
		}
		s, err := a.settings()
		if err != nil {
			return err
		}

		lines, err := a.breakText(text, float64(width), s)
		if err != nil {
			return err
		}
		for _, l := range lines {
			a.logger.Printf("第 %d 行：items %d-%d ratio %.3f fitness %s demerits %.0f",
				l.Number, l.Start, l.End, l.AdjustmentRatio, l.Fitness, l.Demerits)
		}

		out := cmd.OutOrStdout()
		if a.v.GetBool(keyJSON) {
			return writeBreaksJSON(out, lines)
		}
		rows := make([]string, len(lines))
		for i, l := range lines {
			if a.v.GetBool(keyFill) {
				rows[i] = textrenderer.Row(segments(l.Segments), 1)
			} else {
				rows[i] = l.Content
			}
		}
		_, err = fmt.Fprintln(out, textrenderer.Frame(rows, width))
		return err
	}
	return cmd
}

// breakText 分词并断行。relax 打开时，不可行的段落以 threshold=inf、允许溢出重试一次。
func (a *app) breakText(text string, width float64, s layout.Settings) ([]paragraph.Line, error) {
	opts, err := s.Options()
	if err != nil {
		return nil, err
	}
	p, err := paragraph.Build(text, paragraph.Monospace, opts)
	if err != nil {
		return nil, err
	}
	strategy, err := s.Strategy(s.Config())
	if err != nil {
		return nil, err
	}
	lines, err := p.Layout(strategy, width)
	if errors.Is(err, linebreak.ErrInfeasibleBreak) && a.v.GetBool(keyRelax) {
		a.logger.Printf("无可行断行，放宽 threshold 后重试: %v", err)
		s.Threshold = layout.Float(math.Inf(1))
		s.AllowOverflow = true
		if strategy, err = s.Strategy(s.Config()); err != nil {
			return nil, err
		}
		lines, err = p.Layout(strategy, width)
	}
	if err != nil {
		return nil, fmt.Errorf("断行失败: %w", err)
	}
	return lines, nil
}

func writeBreaksJSON(w io.Writer, lines []paragraph.Line) error {
	out := make([]brokenLine, len(lines))
	for i, l := range lines {
		bp := linebreak.Breakpoint{
			BreakAt:         l.End,
			Line:            l.Number,
			AdjustmentRatio: l.AdjustmentRatio,
			Fitness:         l.Fitness,
			Demerits:        l.Demerits,
		}
		out[i] = brokenLine{BreakInfo: layout.BreakInfos([]linebreak.Breakpoint{bp})[0], Content: l.Content}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func segments(in []paragraph.Segment) []layout.Segment {
	out := make([]layout.Segment, len(in))
	for i, s := range in {
		out[i] = layout.Segment{Text: s.Text, X: s.X, Width: s.Width, Space: s.Space}
	}
	return out
}

// readText 读取文件或标准输入，去掉末尾空白。行首空白保留，逐字符分词时它们占据宽度。
func readText(stdin io.Reader, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return "", fmt.Errorf("读取文本失败: %w", err)
	}
	text := strings.TrimRightFunc(string(data), unicode.IsSpace)
	if strings.TrimSpace(text) == "" {
		return "", errors.New("文本为空")
	}
	return text, nil
}
