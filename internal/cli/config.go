package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ByLCY/justify/layout"
)

const (
	configName = "justify"
	configType = "yaml"
	envPrefix  = "JUSTIFY"
)

// 配置项键名，与命令行参数同名。
const (
	keyWidth  = "width"
	keyJSON   = "json"
	keyFill   = "fill"
	keyRelax  = "relax"
	keyFormat = "format"
	keyGuides = "guides"
)

// setting 描述一个断行参数的命令行默认值。break 的默认值复现参考示例：
// 逐字符分词、空格可拉伸一倍且不可压缩、末行不加收尾 glue。
type setting struct {
	key, def, usage string
}

var breakSettings = []setting{
	{"algorithm", layout.AlgorithmKnuthPlass, "断行算法：knuth-plass 或 first-fit"},
	{"threshold", "inf", "可接受的最大 badness，inf 表示不限"},
	{"looseness", "0", "相对最优解增加（正）或减少（负）的行数"},
	{"line-penalty", "10", "每行附加的 demerits"},
	{"flagged-demerits", "100", "连续两行以连字符结尾的额外 demerits"},
	{"fitness-demerits", "100", "相邻行松紧等级跳跃的额外 demerits"},
	{"granularity", "rune", "分词粒度：rune 或 word"},
	{"hyphen-penalty", "50", "在连字符处断行的代价"},
	{"space-stretch", "1", "空格的拉伸量（相对空格宽度）"},
	{"space-shrink", "0", "空格的压缩量（相对空格宽度）"},
	{"finishing-glue", "false", "末行追加可无限拉伸的 glue"},
	{"allow-overflow", "false", "first-fit 无法容纳时允许溢出"},
}

// loadConfig 读取配置文件并启用 JUSTIFY_ 前缀的环境变量。
// 未显式指定且默认位置不存在配置文件时不视为错误。
func (a *app) loadConfig() error {
	v := a.v
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if a.configFile != "" {
		v.SetConfigFile(a.configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("读取配置文件失败: %w", err)
	}
	a.logger.Printf("使用配置文件 %s", v.ConfigFileUsed())
	return nil
}

// bind 把当前命令的参数绑定到同名配置项。优先级为：参数 > 环境变量 > 配置文件 > 参数默认值。
func (a *app) bind(flags *pflag.FlagSet, keys ...string) error {
	for _, key := range keys {
		if err := a.v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return fmt.Errorf("绑定参数 %s 失败: %w", key, err)
		}
	}
	return nil
}

func addSettingFlags(flags *pflag.FlagSet) []string {
	keys := make([]string, len(breakSettings))
	for i, s := range breakSettings {
		flags.String(s.key, s.def, s.usage)
		keys[i] = s.key
	}
	return keys
}

// settings 以 layout.Settings 的解析规则应用全部断行参数。
func (a *app) settings() (layout.Settings, error) {
	s := layout.DefaultSettings()
	for _, def := range breakSettings {
		if err := s.Set(def.key, a.v.GetString(def.key)); err != nil {
			return s, err
		}
	}
	return s, nil
}
