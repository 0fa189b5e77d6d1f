// Package cli 提供 justify 命令行：break 对纯文本断行，render 排版 .justify 文档。
package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version 在构建时通过 -ldflags 注入。
var Version = "0.1.0-dev"

type app struct {
	v          *viper.Viper
	configFile string
	verbose    bool
	logger     *log.Logger
}

// NewRootCommand 构造完整的命令树。每次调用都使用独立的 viper 实例。
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), logger: log.New(io.Discard, "", 0)}

	root := &cobra.Command{
		Use:           "justify",
		Short:         "Knuth-Plass 最优断行与排版",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.verbose {
				a.logger = log.New(cmd.ErrOrStderr(), "justify: ", 0)
			}
			return a.loadConfig()
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "配置文件路径（默认查找 ./justify.yaml 与 $HOME/.config/justify/justify.yaml）")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "向 stderr 输出每行的断行信息")

	root.AddCommand(newBreakCommand(a))
	root.AddCommand(newRenderCommand(a))
	root.AddCommand(newVersionCommand())
	return root
}

// Execute 运行命令行，args 为空时读取 os.Args。
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root := NewRootCommand()
	if args != nil {
		root.SetArgs(args)
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "打印版本号",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "justify", Version)
		},
	}
}
