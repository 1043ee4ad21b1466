package utils

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"html/template"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"schoolportal/config"
	examModels "schoolportal/models/exam"

	"github.com/google/uuid"
)

// PaperRenderData is everything the HTML builder needs for one paper.
type PaperRenderData struct {
	Heading             string
	StandardName        string
	SubjectNames        []string
	TotalMarks          int
	IncludeAnswers      bool
	IncludeExplanations bool
	Items               []PaperRenderItem
}

// PaperRenderItem pairs a populated MCQ with its per-item marks.
type PaperRenderItem struct {
	MCQ   examModels.MCQ
	Marks int
}

// pdfSemaphore bounds concurrent headless renders. Each render spawns a
// chromium process; unbounded concurrency would exhaust the host.
var pdfSemaphore chan struct{}

// InitPdfService sizes the render semaphore from config. Call once at boot.
func InitPdfService() {
	n := config.AppConfig.PdfConcurrency
	if n < 1 {
		n = 1
	}
	pdfSemaphore = make(chan struct{}, n)
}

var (
	displayMathRe = regexp.MustCompile(`\$\$([^$]+)\$\$`)
	inlineMathRe  = regexp.MustCompile(`\$([^$]+)\$`)
	gujaratiRunRe = regexp.MustCompile(`[\x{0A80}-\x{0AFF}][\x{0A80}-\x{0AFF}\s.,;:!?0-9]*`)
)

// FormatQuestionText escapes raw question/option text and applies the inline
// markup rules: $$...$$ becomes display math, $...$ inline math (rewritten to
// \[..\] and \(..\) so the two passes cannot overlap; KaTeX auto-render is
// configured for those delimiters), and runs of Gujarati script are tagged
// for font substitution.
func FormatQuestionText(raw string) template.HTML {
	s := html.EscapeString(raw)
	s = displayMathRe.ReplaceAllString(s, `<span class="math display">\[$1\]</span>`)
	s = inlineMathRe.ReplaceAllString(s, `<span class="math inline">\($1\)</span>`)
	s = gujaratiRunRe.ReplaceAllString(s, `<span class="gujarati">$0</span>`)
	return template.HTML(s)
}

const optionLabels = "ABCDEFGH"

// OptionLabel returns the display letter for an option index.
func OptionLabel(i int) string {
	if i < 0 || i >= len(optionLabels) {
		return "?"
	}
	return string(optionLabels[i])
}

var paperTemplate = template.Must(template.New("paper").Funcs(template.FuncMap{
	"format":  FormatQuestionText,
	"label":   OptionLabel,
	"fileURL": GetFileURL,
	"inc":     func(i int) int { return i + 1 },
	"join":    func(s []string, sep string) string { return strings.Join(s, sep) },
}).Parse(paperTemplateHTML))

const paperTemplateHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/katex@0.16.9/dist/katex.min.css">
<script defer src="https://cdn.jsdelivr.net/npm/katex@0.16.9/dist/katex.min.js"></script>
<script defer src="https://cdn.jsdelivr.net/npm/katex@0.16.9/dist/contrib/auto-render.min.js"
	onload="renderMathInElement(document.body, {delimiters: [{left: '\\[', right: '\\]', display: true}, {left: '\\(', right: '\\)', display: false}]});"></script>
<style>
	@page { size: A4; margin: 12mm; }
	body { font-family: 'Times New Roman', serif; font-size: 11pt; margin: 0; }
	.gujarati { font-family: 'Noto Sans Gujarati', 'Shruti', sans-serif; }
	.header { text-align: center; border-bottom: 2px solid #000; padding-bottom: 6px; margin-bottom: 10px; }
	.header h1 { font-size: 16pt; margin: 0; }
	.header .meta { font-size: 10pt; margin-top: 4px; }
	.watermark {
		position: fixed; top: 40%; left: 15%;
		font-size: 60pt; color: rgba(0,0,0,0.07);
		transform: rotate(-30deg); z-index: -1;
	}
	.questions { column-count: 2; column-gap: 8mm; column-rule: 1px solid #ccc; }
	.question { break-inside: avoid; margin-bottom: 8px; }
	.question .qtext { font-weight: bold; }
	.question img, .option img { max-width: 70mm; display: block; margin: 2px 0; }
	.option { margin-left: 14px; }
	.option.correct::after { content: " \2713"; color: green; font-weight: bold; }
	.explanation { margin-left: 14px; font-size: 9.5pt; font-style: italic; color: #333; }
	.marks { float: right; font-weight: normal; font-size: 9.5pt; }
</style>
</head>
<body>
<div class="watermark">SCHOOL PORTAL</div>
<div class="header">
	<h1>{{.Heading}}</h1>
	<div class="meta">{{.StandardName}}{{if .SubjectNames}} &mdash; {{join .SubjectNames ", "}}{{end}} &nbsp;|&nbsp; Total Marks: {{.TotalMarks}}</div>
</div>
<div class="questions">
{{range $i, $item := .Items}}
	<div class="question">
		<div class="qtext">{{inc $i}}. {{format $item.MCQ.QuestionText}}<span class="marks">[{{$item.Marks}}]</span></div>
		{{if $item.MCQ.QuestionImage}}<img src="{{fileURL $item.MCQ.QuestionImage}}">{{end}}
		{{range $item.MCQ.Options}}
		<div class="option{{if and $.IncludeAnswers .IsCorrect}} correct{{end}}">({{label .OrderIndex}}) {{format .OptionText}}
			{{if .Image}}<img src="{{fileURL .Image}}">{{end}}
		</div>
		{{end}}
		{{if and $.IncludeExplanations $item.MCQ.Explanation}}
		<div class="explanation">{{format $item.MCQ.Explanation}}</div>
		{{end}}
	</div>
{{end}}
</div>
</body>
</html>`

// BuildPaperHTML assembles the printable HTML document for a paper.
func BuildPaperHTML(data PaperRenderData) (string, error) {
	var buf bytes.Buffer
	if err := paperTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderPaperPDF builds the paper HTML and prints it to PDF bytes with
// headless chromium. The render is bounded by the package semaphore and a
// per-render timeout; on any failure the whole operation fails with no
// partial output.
func RenderPaperPDF(ctx context.Context, data PaperRenderData) ([]byte, error) {
	htmlDoc, err := BuildPaperHTML(data)
	if err != nil {
		return nil, err
	}

	if pdfSemaphore == nil {
		InitPdfService()
	}
	select {
	case pdfSemaphore <- struct{}{}:
		defer func() { <-pdfSemaphore }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	workDir, err := os.MkdirTemp("", "paper-pdf-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(workDir)

	htmlPath := filepath.Join(workDir, uuid.NewString()+".html")
	pdfPath := filepath.Join(workDir, "out.pdf")
	if err := os.WriteFile(htmlPath, []byte(htmlDoc), 0644); err != nil {
		return nil, err
	}

	timeout := time.Duration(config.AppConfig.PdfTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	renderCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{
		"--headless",
		"--disable-gpu",
		"--no-sandbox",
		"--print-to-pdf=" + pdfPath,
		"--run-all-compositor-stages-before-draw",
		"--virtual-time-budget=8000",
		htmlPath,
	}
	cmd := exec.CommandContext(renderCtx, config.AppConfig.ChromiumPath, args...)
	outBytes, err := cmd.CombinedOutput()
	if err != nil {
		log.Printf("chromium exec error: %v: %s", err, string(outBytes))
		return nil, fmt.Errorf("pdf render failed: %w", err)
	}

	pdfBytes, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("pdf render produced no output: %w", err)
	}
	return pdfBytes, nil
}
