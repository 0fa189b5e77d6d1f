package layout

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ByLCY/justify/binding"
	"github.com/ByLCY/justify/dsl"
	"github.com/ByLCY/justify/fonts"
	"github.com/ByLCY/justify/linebreak"
	"github.com/ByLCY/justify/paragraph"
)

const (
	blockSpacing    = 3.0
	defaultFontSize = "12pt"
)

// 段落对齐方式。
const (
	AlignJustify = "justify"
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
)

// Build 根据 DSL AST 生成页面与段落的布局结果。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}

	res, err := collectResources(doc)
	if err != nil {
		return nil, err
	}
	settings, err := collectSettings(doc)
	if err != nil {
		return nil, err
	}
	sections := pageSections(doc)
	if len(sections) == 0 {
		return nil, fmt.Errorf("文档中缺少 page 段落")
	}

	b := &builder{
		res:      res,
		settings: settings,
		data:     data,
		opts:     opts,
		out: &Result{
			Resources: res,
			Meta:      collectMeta(doc),
			Settings:  settings,
		},
	}
	for _, section := range sections {
		if err := b.buildPages(section); err != nil {
			return nil, err
		}
	}
	return b.out, nil
}

type builder struct {
	res        ResourceSet
	settings   Settings
	data       any
	opts       BuildOptions
	out        *Result
	paragraphs int
	runs       int
}

func (b *builder) buildPages(section *dsl.PageSection) error {
	width, height, err := resolvePageSize(section.Spec)
	if err != nil {
		return err
	}
	if section.Block == nil {
		return fmt.Errorf("page 段落缺少内容")
	}

	margin := resolveMargin(section.Spec.Params)
	if width-margin.Left-margin.Right <= 0 {
		return fmt.Errorf("页面 %s 的左右边距超过了页面宽度", section.Spec.Size)
	}
	collector := newPageCollector(width, height, margin)
	ctx := &flowContext{
		x:         margin.Left,
		width:     width - margin.Left - margin.Right,
		cursorY:   collector.contentTop(),
		collector: collector,
	}

	for _, stmt := range section.Block.Statements {
		cmd := stmt.Command
		if cmd == nil {
			continue
		}
		switch cmd.Name {
		case "paragraph", "p", "text":
			err = b.paragraph(cmd, ctx)
		case "items":
			err = b.items(cmd, ctx)
		case "space", "vspace":
			if len(cmd.Args) > 0 {
				ctx.cursorY += parseMM(cmd.Args[0].Value)
			}
		case "pagebreak", "page-break":
			ctx.pageBreak()
		default:
			err = fmt.Errorf("第 %d 行：不支持的命令 %s", cmd.Pos.Line, cmd.Name)
		}
		if err != nil {
			return err
		}
	}

	b.out.Pages = append(b.out.Pages, collector.pages()...)
	return nil
}

// paragraph 对一个 paragraph 命令分词、断行，并把行逐一放到页面上。
func (b *builder) paragraph(cmd *dsl.Command, ctx *flowContext) error {
	index := b.paragraphs
	b.paragraphs++

	style, inline := parseArgs(cmd.Args, true)
	attrs := mergeStyleAttributes(style, inline, b.res.Styles)
	if _, isStyle := b.res.Styles[style]; style != "" && !isStyle && attrs["font"] == "" {
		attrs["font"] = style
	}

	raw := extractText(cmd.Block)
	for _, path := range binding.Missing(raw, b.data) {
		b.out.Warnings = append(b.out.Warnings, fmt.Sprintf("第 %d 个段落：数据路径 %s 未解析", index, path))
	}
	text := binding.Interpolate(raw, b.data)

	font, err := resolveFontResource(attrs["font"], b.res)
	if err != nil {
		return err
	}
	size, err := parseFontSize(attrs["size"])
	if err != nil {
		return fmt.Errorf("第 %d 个段落：%w", index, err)
	}
	fontSize := size.ToMM()
	face, err := b.opts.Typesetter.Face(font, fontSize)
	if err != nil {
		return fmt.Errorf("第 %d 个段落：加载字体 %s 失败: %w", index, font.Name, err)
	}

	var debug *ParagraphDebug
	if b.opts.Debug.RawUnits {
		debug = &ParagraphDebug{RawUnits: &RawUnits{FontSize: &RawLengthJSON{Value: size.Value, Unit: size.Unit.String()}}}
	}
	lineHeight := face.LineHeight()
	if v := attrs["line-height"]; v != "" {
		spec, err := ParseLineHeight(v)
		if err != nil {
			return fmt.Errorf("第 %d 个段落：%w", index, err)
		}
		lineHeight = spec.Resolve(fontSize)
		if debug != nil {
			debug.RawUnits.LineHeight = rawLineHeight(spec)
		}
	}
	if lineHeight <= 0 {
		lineHeight = defaultLineHeight.Resolve(fontSize)
	}

	width := ctx.width
	if v := attrs["width"]; v != "" {
		width = parseDimension(v, ctx.width)
	}
	if width <= 0 {
		return fmt.Errorf("第 %d 个段落：宽度必须为正数，实际 %q", index, attrs["width"])
	}
	align, err := normalizeAlign(attrs["align"])
	if err != nil {
		return fmt.Errorf("第 %d 个段落：%w", index, err)
	}

	settings := b.settings
	for _, key := range paragraphSettings {
		if v, ok := attrs[key]; ok {
			if err := settings.Set(key, v); err != nil {
				return fmt.Errorf("第 %d 个段落：%w", index, err)
			}
		}
	}
	popts, err := settings.Options()
	if err != nil {
		return fmt.Errorf("第 %d 个段落：%w", index, err)
	}
	popts.Indent = parseMM(attrs["indent"])

	p, err := paragraph.Build(text, face, popts)
	if err != nil {
		return fmt.Errorf("第 %d 个段落：%w", index, err)
	}
	breaks, relaxed, err := b.breakParagraph(p.Items, width, settings)
	if err != nil {
		return fmt.Errorf("第 %d 个段落断行失败: %w", index, err)
	}
	lines, err := lineBoxes(p, breaks, width, align)
	if err != nil {
		return fmt.Errorf("第 %d 个段落：%w", index, err)
	}
	if b.opts.Debug.Items {
		if debug == nil {
			debug = &ParagraphDebug{}
		}
		debug.Items = itemStrings(p.Items)
	}

	box := ParagraphBox{
		Index:      index,
		X:          ctx.x,
		Width:      width,
		Font:       font.Name,
		FontSize:   fontSize,
		LineHeight: lineHeight,
		Color:      resolveColor(attrs["color"], b.res),
		Align:      align,
		Algorithm:  settings.Algorithm,
		Relaxed:    relaxed,
		Debug:      debug,
	}
	ctx.place(box, lines)

	spacing := blockSpacing
	if v := attrs["space-after"]; v != "" {
		spacing = parseMM(v)
	}
	ctx.cursorY += spacing
	return nil
}

// breakParagraph 运行断行策略；不可行且允许放宽时以 threshold=+Inf 重试一次。
func (b *builder) breakParagraph(items []linebreak.Item, width float64, s Settings) ([]linebreak.Breakpoint, bool, error) {
	layout, err := b.strategy(s, false)
	if err != nil {
		return nil, false, err
	}
	breaks, err := layout.LayoutParagraph(items, width)
	if err == nil || !b.opts.Relax || !errors.Is(err, linebreak.ErrInfeasibleBreak) {
		return breaks, false, err
	}
	layout, err = b.strategy(s, true)
	if err != nil {
		return nil, false, err
	}
	breaks, err = layout.LayoutParagraph(items, width)
	return breaks, true, err
}

func (b *builder) strategy(s Settings, relax bool) (linebreak.Layout, error) {
	if b.opts.Strategy != nil && !relax {
		return b.opts.Strategy, nil
	}
	cfg := s.Config()
	if b.opts.Config != nil {
		cfg = *b.opts.Config
	}
	if relax {
		cfg.Threshold = linebreak.Infinity
		s.AllowOverflow = true
	}
	return s.Strategy(cfg)
}

// items 直接对 box/glue/penalty 序列断行，只记录断点。
func (b *builder) items(cmd *dsl.Command, ctx *flowContext) error {
	index := b.runs
	b.runs++

	_, attrs := parseArgs(cmd.Args, false)
	width := ctx.width
	if v := attrs["width"]; v != "" {
		width = parseDimension(v, ctx.width)
	}
	seq, err := parseItems(cmd.Block)
	if err != nil {
		return fmt.Errorf("第 %d 个 items 块：%w", index, err)
	}

	settings := b.settings
	for _, key := range paragraphSettings {
		if v, ok := attrs[key]; ok {
			if err := settings.Set(key, v); err != nil {
				return fmt.Errorf("第 %d 个 items 块：%w", index, err)
			}
		}
	}
	run := ItemRun{Index: index, Width: width, Items: itemStrings(seq)}
	breaks, _, err := b.breakParagraph(seq, width, settings)
	if err != nil {
		run.Error = err.Error()
	} else {
		run.Breaks = BreakInfos(breaks)
	}
	b.out.Runs = append(b.out.Runs, run)
	return nil
}

func parseItems(block *dsl.Block) ([]linebreak.Item, error) {
	if block == nil {
		return nil, fmt.Errorf("缺少 item 列表")
	}
	var out []linebreak.Item
	for _, stmt := range block.Statements {
		cmd := stmt.Command
		if cmd == nil {
			continue
		}
		var nums []float64
		flagged := false
		for _, arg := range cmd.Args {
			if arg.Value == "flagged" {
				flagged = true
				continue
			}
			f, err := parseNumber(trimUnit(arg.Value))
			if err != nil {
				return nil, fmt.Errorf("第 %d 行：%w", arg.Pos.Line, err)
			}
			nums = append(nums, f)
		}
		arg := func(i int) float64 {
			if i < len(nums) {
				return nums[i]
			}
			return 0
		}
		switch cmd.Name {
		case "box":
			out = append(out, linebreak.Box(arg(0)))
		case "glue":
			out = append(out, linebreak.Glue(arg(0), arg(1), arg(2)))
		case "penalty":
			out = append(out, linebreak.Penalty(arg(0), arg(1), flagged))
		case "break", "forced":
			out = append(out, linebreak.ForcedBreak())
		default:
			return nil, fmt.Errorf("第 %d 行：未知的 item 类型 %s", cmd.Pos.Line, cmd.Name)
		}
	}
	return out, nil
}

func itemStrings(items []linebreak.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.String()
	}
	return out
}

// lineBoxes 把断点转换为可绘制的行。两端对齐时按调整比例分配 glue，
// 过满行最多压缩到 shrink 用尽；其它对齐方式按自然宽度排布后整体平移。
func lineBoxes(p *paragraph.Paragraph, breaks []linebreak.Breakpoint, width float64, align string) ([]LineBox, error) {
	placed := slices.Clone(breaks)
	for i := range placed {
		switch {
		case align != AlignJustify:
			placed[i].AdjustmentRatio = 0
		case placed[i].AdjustmentRatio < -1:
			placed[i].AdjustmentRatio = -1
		}
	}
	lines, err := p.Lines(placed)
	if err != nil {
		return nil, err
	}

	out := make([]LineBox, len(lines))
	for i, l := range lines {
		bp := breaks[i]
		offset := 0.0
		if align != AlignJustify {
			offset = alignOffset(width, l.Width, align)
		}
		segs := make([]Segment, len(l.Segments))
		for j, s := range l.Segments {
			segs[j] = Segment{Text: s.Text, X: s.X + offset, Width: s.Width, Space: s.Space}
		}
		out[i] = LineBox{
			Number:       l.Number,
			BreakAt:      l.End,
			Content:      l.Content,
			Width:        l.Width,
			NaturalWidth: l.NaturalWidth,
			Segments:     segs,
			Ratio:        Float(bp.AdjustmentRatio),
			Fitness:      bp.Fitness,
			Demerits:     Float(bp.Demerits),
			Overfull:     bp.Overfull(),
			Underfull:    bp.Underfull(),
			Hyphenated:   l.Hyphenated,
		}
	}
	return out, nil
}

type pageAccumulator struct {
	paragraphs []ParagraphBox
}

func (p *pageAccumulator) appendParagraph(pb ParagraphBox) {
	p.paragraphs = append(p.paragraphs, pb)
}

type pageCollector struct {
	width   float64
	height  float64
	margin  Margin
	accs    []*pageAccumulator
	current int
}

func newPageCollector(width, height float64, margin Margin) *pageCollector {
	pc := &pageCollector{
		width:  width,
		height: height,
		margin: margin,
	}
	pc.newPage()
	return pc
}

func (pc *pageCollector) newPage() *pageAccumulator {
	acc := &pageAccumulator{}
	pc.accs = append(pc.accs, acc)
	pc.current = len(pc.accs) - 1
	return acc
}

func (pc *pageCollector) curr() *pageAccumulator {
	return pc.accs[pc.current]
}

func (pc *pageCollector) contentTop() float64 {
	return pc.margin.Top
}

func (pc *pageCollector) contentBottom() float64 {
	return pc.height - pc.margin.Bottom
}

func (pc *pageCollector) pages() []Page {
	out := make([]Page, len(pc.accs))
	for i, acc := range pc.accs {
		out[i] = Page{
			Width:      pc.width,
			Height:     pc.height,
			Margin:     pc.margin,
			Paragraphs: acc.paragraphs,
		}
	}
	return out
}

type flowContext struct {
	x         float64
	width     float64
	cursorY   float64
	collector *pageCollector
}

// place 从当前光标开始逐行放置段落，放不下的行移到下一页。
func (ctx *flowContext) place(box ParagraphBox, lines []LineBox) {
	frag := box
	frag.Y = ctx.cursorY
	for _, line := range lines {
		if !ctx.fits(box.LineHeight) {
			if len(frag.Lines) > 0 {
				ctx.collector.curr().appendParagraph(frag)
				frag = box
				frag.Continued = true
				frag.Debug = nil
			}
			ctx.pageBreak()
			frag.Y = ctx.cursorY
		}
		line.Y = ctx.cursorY
		frag.Lines = append(frag.Lines, line)
		frag.Height += box.LineHeight
		ctx.cursorY += box.LineHeight
	}
	ctx.collector.curr().appendParagraph(frag)
}

// fits 判断高度为 height 的行能否放在当前页。页顶的行总能放下，避免无限换页。
func (ctx *flowContext) fits(height float64) bool {
	if ctx.cursorY <= ctx.collector.contentTop() {
		return true
	}
	return ctx.cursorY+height <= ctx.collector.contentBottom()
}

func (ctx *flowContext) pageBreak() {
	ctx.collector.newPage()
	ctx.cursorY = ctx.collector.contentTop()
}

func collectResources(doc *dsl.Document) (ResourceSet, error) {
	res := ResourceSet{
		Fonts:  map[string]FontResource{},
		Colors: map[string]Color{},
		Styles: map[string]Style{},
	}
	rawStyles := map[string]Style{}

	for _, section := range doc.Sections {
		if section.Resources == nil || section.Resources.Block == nil {
			continue
		}
		for _, stmt := range section.Resources.Block.Statements {
			if stmt.Command == nil {
				continue
			}
			switch stmt.Command.Name {
			case "font":
				font := parseFontResource(stmt.Command)
				if font.Name != "" {
					res.Fonts[font.Name] = font
				}
			case "color":
				name, value := parseColorResource(stmt.Command)
				if name == "" || value == "" {
					continue
				}
				c, err := parseColor(value)
				if err != nil {
					return res, err
				}
				res.Colors[name] = c
			case "style":
				style := parseStyleResource(stmt.Command)
				if style.Name != "" {
					rawStyles[style.Name] = style
				}
			}
		}
	}

	if len(res.Fonts) == 0 {
		res.Fonts["Body"] = FontResource{
			Name:      "Body",
			Src:       "builtin:" + fonts.Default,
			Base:      fonts.Default,
			IsBuiltin: true,
		}
	}

	resolvedStyles, err := resolveStyles(rawStyles)
	if err != nil {
		return res, err
	}
	res.Styles = resolvedStyles

	return res, nil
}

func collectMeta(doc *dsl.Document) DocumentMeta {
	meta := DocumentMeta{
		Creator: "Justify",
	}
	for _, section := range doc.Sections {
		if section.Meta == nil || section.Meta.Block == nil {
			continue
		}
		for _, stmt := range section.Meta.Block.Statements {
			if stmt.Assignment == nil {
				continue
			}
			switch strings.ToLower(stmt.Assignment.Key) {
			case "title":
				meta.Title = stmt.Assignment.Value.Text()
			case "author":
				meta.Author = stmt.Assignment.Value.Text()
			case "subject":
				meta.Subject = stmt.Assignment.Value.Text()
			case "creator":
				meta.Creator = stmt.Assignment.Value.Text()
			case "keywords":
				meta.Keywords = stmt.Assignment.Value.Strings()
			}
		}
	}
	return meta
}

func parseFontResource(cmd *dsl.Command) FontResource {
	if len(cmd.Args) == 0 {
		return FontResource{}
	}
	font := FontResource{
		Name: cmd.Args[0].Value,
		Base: cmd.Args[0].Value,
	}

	if cmd.Block == nil {
		return font
	}
	for _, stmt := range cmd.Block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		switch stmt.Assignment.Key {
		case "src":
			font.Src = stmt.Assignment.Value.Text()
			if base, ok := strings.CutPrefix(font.Src, "builtin:"); ok {
				font.IsBuiltin = true
				font.Base = base
				if font.Base == "" {
					font.Base = fonts.Default
				}
			}
		case "style":
			font.Style = stmt.Assignment.Value.Text()
		}
	}
	return font
}

func parseStyleResource(cmd *dsl.Command) Style {
	if len(cmd.Args) == 0 {
		return Style{}
	}
	style := Style{
		Name:  cmd.Args[0].Value,
		Props: map[string]string{},
	}
	if len(cmd.Args) >= 3 && strings.EqualFold(cmd.Args[1].Value, "extends") {
		style.Extends = cmd.Args[2].Value
	}

	if cmd.Block == nil {
		return style
	}

	for _, stmt := range cmd.Block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		val := stmt.Assignment.Value.Text()
		if val == "" {
			continue
		}
		style.Props[stmt.Assignment.Key] = val
	}
	return style
}

func resolveStyles(styles map[string]Style) (map[string]Style, error) {
	resolved := map[string]Style{}
	visiting := map[string]bool{}

	var dfs func(name string) (Style, error)
	dfs = func(name string) (Style, error) {
		if style, ok := resolved[name]; ok {
			return style, nil
		}
		style, ok := styles[name]
		if !ok {
			return Style{}, fmt.Errorf("style %s 未定义", name)
		}
		if visiting[name] {
			return Style{}, fmt.Errorf("style 继承存在循环：%s", name)
		}
		visiting[name] = true

		props := map[string]string{}
		if style.Extends != "" {
			parent, err := dfs(style.Extends)
			if err != nil {
				return Style{}, err
			}
			for k, v := range parent.Props {
				props[k] = v
			}
		}
		for k, v := range style.Props {
			props[k] = v
		}
		style.Props = props
		resolved[name] = style
		delete(visiting, name)
		return style, nil
	}

	for name := range styles {
		if _, err := dfs(name); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

func parseColorResource(cmd *dsl.Command) (string, string) {
	if len(cmd.Args) == 0 {
		return "", ""
	}
	name := cmd.Args[0].Value
	value := ""
	if len(cmd.Args) > 1 {
		value = cmd.Args[len(cmd.Args)-1].Value
	}
	return name, value
}

func resolvePageSize(spec dsl.PageSpec) (float64, float64, error) {
	base, ok := pagePresets[strings.ToUpper(spec.Size)]
	if !ok {
		return 0, 0, fmt.Errorf("暂不支持的纸张尺寸：%s", spec.Size)
	}

	width := base[0]
	height := base[1]
	for _, token := range spec.Params {
		if token.Value == "landscape" {
			width, height = height, width
		}
	}
	return width, height, nil
}

var pagePresets = map[string][2]float64{
	"A4":     {210, 297},
	"A5":     {148, 210},
	"A6":     {105, 148},
	"LETTER": {215.9, 279.4},
}

// resolveMargin 读取 margin 后的 1~4 个长度，语义与 CSS 相同，
// 唯一的区别是 3 个值时左边距为 0。
func resolveMargin(params []*dsl.Lexeme) Margin {
	margin := Margin{Top: 20, Right: 20, Bottom: 20, Left: 20}
	for i := 0; i < len(params); i++ {
		if params[i].Value != "margin" {
			continue
		}
		vals := []float64{}
		for j := i + 1; j < len(params) && len(vals) < 4; j++ {
			l, err := ParseLength(params[j].Value)
			if err != nil {
				break
			}
			vals = append(vals, l.ToMM())
		}
		switch len(vals) {
		case 1:
			v := vals[0]
			margin = Margin{Top: v, Right: v, Bottom: v, Left: v}
		case 2:
			margin = Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}
		case 3:
			margin = Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: 0}
		case 4:
			margin = Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}
		}
	}
	return margin
}

func pageSections(doc *dsl.Document) []*dsl.PageSection {
	var out []*dsl.PageSection
	for _, section := range doc.Sections {
		if section.Page != nil {
			out = append(out, section.Page)
		}
	}
	return out
}

// parseArgs 把 key value 对解析成属性表。参数个数为奇数时，第一个标识符是样式名。
func parseArgs(args []*dsl.Lexeme, allowStyle bool) (string, map[string]string) {
	result := map[string]string{}
	if len(args) == 0 {
		return "", result
	}

	cursor := 0
	var style string
	if allowStyle && len(args)%2 == 1 && args[0].Type == "Ident" {
		style = args[0].Value
		cursor = 1
	}

	for cursor < len(args)-1 {
		result[args[cursor].Value] = args[cursor+1].Value
		cursor += 2
	}

	return style, result
}

func mergeStyleAttributes(style string, inline map[string]string, styles map[string]Style) map[string]string {
	out := make(map[string]string)
	if style != "" {
		if s, ok := styles[style]; ok {
			for k, v := range s.Props {
				out[k] = v
			}
		}
	}
	for k, v := range inline {
		out[k] = v
	}
	return out
}

// extractText 以空格连接块内的所有字符串。
func extractText(block *dsl.Block) string {
	if block == nil {
		return ""
	}
	var parts []string
	for _, stmt := range block.Statements {
		if stmt.Text != nil {
			parts = append(parts, string(stmt.Text.Value))
		}
	}
	return strings.Join(parts, " ")
}

func resolveFontResource(name string, res ResourceSet) (FontResource, error) {
	if font, ok := res.Fonts[name]; ok {
		return font, nil
	}
	if name != "" {
		return FontResource{}, fmt.Errorf("字体 %s 未定义", name)
	}
	if font, ok := res.Fonts["Body"]; ok {
		return font, nil
	}
	names := make([]string, 0, len(res.Fonts))
	for n := range res.Fonts {
		names = append(names, n)
	}
	if len(names) == 0 {
		return FontResource{}, fmt.Errorf("没有可用的默认字体")
	}
	slices.Sort(names)
	return res.Fonts[names[0]], nil
}

// parseFontSize 解析字号，无单位时按 pt 处理。
func parseFontSize(value string) (Length, error) {
	if value == "" {
		value = defaultFontSize
	}
	l, err := ParseLength(value)
	if err != nil {
		return Length{}, err
	}
	if l.Value <= 0 {
		return Length{}, fmt.Errorf("字号必须为正数，实际 %q", value)
	}
	if l.Unit == UnitNone {
		l.Unit = UnitPT
	}
	return l, nil
}

func rawLineHeight(spec LineHeightSpec) *RawLineHeightJSON {
	if spec.Kind == LineHeightFactor {
		return &RawLineHeightJSON{Kind: "factor", Factor: spec.Factor}
	}
	return &RawLineHeightJSON{Kind: "absolute", Value: spec.Len.Value, Unit: spec.Len.Unit.String()}
}

func normalizeAlign(v string) (string, error) {
	switch strings.ToLower(v) {
	case "", "justify", "justified", "both":
		return AlignJustify, nil
	case "left", "start":
		return AlignLeft, nil
	case "center", "middle":
		return AlignCenter, nil
	case "right", "end":
		return AlignRight, nil
	default:
		return "", fmt.Errorf("不支持的对齐方式：%s", v)
	}
}

func resolveColor(value string, res ResourceSet) Color {
	if value == "" {
		return Color{R: 30, G: 30, B: 30}
	}
	if c, ok := res.Colors[value]; ok {
		return c
	}
	if strings.HasPrefix(value, "#") {
		if c, err := parseColor(value); err == nil {
			return c
		}
	}
	return Color{R: 30, G: 30, B: 30}
}

func parseColor(value string) (Color, error) {
	value = strings.TrimPrefix(value, "#")
	switch len(value) {
	case 3:
		r := strings.Repeat(string(value[0]), 2)
		g := strings.Repeat(string(value[1]), 2)
		b := strings.Repeat(string(value[2]), 2)
		return Color{
			R: mustHex(r),
			G: mustHex(g),
			B: mustHex(b),
		}, nil
	case 6, 8:
		return Color{
			R: mustHex(value[0:2]),
			G: mustHex(value[2:4]),
			B: mustHex(value[4:6]),
		}, nil
	default:
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
}

func mustHex(s string) int {
	v, _ := strconv.ParseInt(s, 16, 64)
	return int(v)
}

// parseDimension 解析长度或相对 reference 的百分比。
func parseDimension(value string, reference float64) float64 {
	if num, ok := strings.CutSuffix(value, "%"); ok {
		if f, err := strconv.ParseFloat(num, 64); err == nil {
			return reference * f / 100
		}
		return 0
	}
	return parseMM(value)
}

func trimUnit(value string) string {
	for _, suffix := range []string{"pt", "mm", "cm", "in", "%"} {
		if strings.HasSuffix(value, suffix) {
			return strings.TrimSuffix(value, suffix)
		}
	}
	return value
}

func alignOffset(container, width float64, align string) float64 {
	if container <= width {
		return 0
	}
	switch align {
	case AlignCenter:
		return (container - width) / 2
	case AlignRight:
		return container - width
	default:
		return 0
	}
}
