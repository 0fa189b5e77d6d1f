package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ByLCY/justify/dsl"
	"github.com/ByLCY/justify/linebreak"
	"github.com/ByLCY/justify/paragraph"
)

// 断行算法名称。
const (
	AlgorithmKnuthPlass = "knuth-plass"
	AlgorithmFirstFit   = "first-fit"
)

// Settings 汇总 settings 段落中的断行参数。
type Settings struct {
	Algorithm       string  `json:"algorithm"`
	Threshold       Float   `json:"threshold"`
	Looseness       int     `json:"looseness"`
	LinePenalty     float64 `json:"linePenalty"`
	FlaggedDemerits float64 `json:"flaggedDemerits"`
	FitnessDemerits float64 `json:"fitnessDemerits"`
	Granularity     string  `json:"granularity"`
	HyphenPenalty   float64 `json:"hyphenPenalty"`
	SpaceStretch    float64 `json:"spaceStretch"`
	SpaceShrink     float64 `json:"spaceShrink"`
	FinishingGlue   bool    `json:"finishingGlue"`
	AllowOverflow   bool    `json:"allowOverflow"`
}

// DefaultSettings 返回 Knuth-Plass 默认参数与按词切分的默认分词选项。
func DefaultSettings() Settings {
	cfg := linebreak.DefaultConfig()
	opts := paragraph.DefaultOptions()
	return Settings{
		Algorithm:       AlgorithmKnuthPlass,
		Threshold:       Float(cfg.Threshold),
		Looseness:       cfg.Looseness,
		LinePenalty:     cfg.LinePenalty,
		FlaggedDemerits: cfg.FlaggedDemerits,
		FitnessDemerits: cfg.FitnessDemerits,
		Granularity:     opts.Granularity.String(),
		HyphenPenalty:   opts.HyphenPenalty,
		SpaceStretch:    opts.SpaceStretch,
		SpaceShrink:     opts.SpaceShrink,
		FinishingGlue:   opts.FinishingGlue,
	}
}

// Config 返回对应的 linebreak.Config。
func (s Settings) Config() linebreak.Config {
	return linebreak.DefaultConfig().
		WithThreshold(float64(s.Threshold)).
		WithLooseness(s.Looseness).
		WithLinePenalty(s.LinePenalty).
		WithFlaggedDemerits(s.FlaggedDemerits).
		WithFitnessDemerits(s.FitnessDemerits)
}

// Options 返回段落分词选项。
func (s Settings) Options() (paragraph.Options, error) {
	g, err := paragraph.ParseGranularity(s.Granularity)
	if err != nil {
		return paragraph.Options{}, err
	}
	opts := paragraph.DefaultOptions()
	opts.Granularity = g
	opts.HyphenPenalty = s.HyphenPenalty
	opts.SpaceStretch = s.SpaceStretch
	opts.SpaceShrink = s.SpaceShrink
	opts.FinishingGlue = s.FinishingGlue
	return opts, nil
}

// Strategy 按 algorithm 构造断行策略，cfg 为已合并覆盖项后的参数。
func (s Settings) Strategy(cfg linebreak.Config) (linebreak.Layout, error) {
	switch s.Algorithm {
	case "", AlgorithmKnuthPlass:
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return linebreak.NewKnuthPlass(cfg), nil
	case AlgorithmFirstFit:
		return &linebreak.FirstFit{Threshold: cfg.Threshold, AllowOverflow: s.AllowOverflow}, nil
	default:
		return nil, fmt.Errorf("未知的断行算法：%s", s.Algorithm)
	}
}

// Set 应用一条 settings 赋值或段落参数覆盖。
func (s *Settings) Set(key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "algorithm":
		switch v := strings.ToLower(value); v {
		case AlgorithmKnuthPlass, "optimal-fit", "knuthplass":
			s.Algorithm = AlgorithmKnuthPlass
		case AlgorithmFirstFit, "greedy":
			s.Algorithm = AlgorithmFirstFit
		default:
			return fmt.Errorf("未知的断行算法：%s", value)
		}
	case "threshold":
		var f float64
		if f, err = parseNumber(value); err == nil {
			s.Threshold = Float(f)
		}
	case "looseness":
		s.Looseness, err = strconv.Atoi(value)
	case "line-penalty":
		s.LinePenalty, err = parseNumber(value)
	case "flagged-demerits":
		s.FlaggedDemerits, err = parseNumber(value)
	case "fitness-demerits":
		s.FitnessDemerits, err = parseNumber(value)
	case "granularity":
		var g paragraph.Granularity
		if g, err = paragraph.ParseGranularity(value); err == nil {
			s.Granularity = g.String()
		}
	case "hyphen-penalty":
		s.HyphenPenalty, err = parseNumber(value)
	case "space-stretch":
		s.SpaceStretch, err = parseNumber(value)
	case "space-shrink":
		s.SpaceShrink, err = parseNumber(value)
	case "finishing-glue":
		s.FinishingGlue, err = strconv.ParseBool(value)
	case "allow-overflow":
		s.AllowOverflow, err = strconv.ParseBool(value)
	default:
		return fmt.Errorf("未知的 settings 项：%s", key)
	}
	if err != nil {
		return fmt.Errorf("settings.%s 的值 %q 无法解析", key, value)
	}
	return nil
}

// 允许在段落参数中覆盖的 settings 项。
var paragraphSettings = []string{"algorithm", "threshold", "looseness", "granularity", "hyphen-penalty"}

func collectSettings(doc *dsl.Document) (Settings, error) {
	s := DefaultSettings()
	for _, section := range doc.Sections {
		if section.Settings == nil || section.Settings.Block == nil {
			continue
		}
		for _, stmt := range section.Settings.Block.Statements {
			if stmt.Assignment == nil {
				continue
			}
			if err := s.Set(stmt.Assignment.Key, stmt.Assignment.Value.Text()); err != nil {
				return s, err
			}
		}
	}
	return s, nil
}

// parseNumber 接受普通数字与 inf / -inf。
func parseNumber(value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) {
		return 0, fmt.Errorf("无法解析数值 %q", value)
	}
	return f, nil
}
