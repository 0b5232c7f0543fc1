// Package printer writes styled CLI output.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hay-kot/criterio"

	"github.com/hay-kot/modalkit/internal/styles"
)

// Symbols
const (
	Check = "✔"
	Cross = "✘"
	Dot   = "•"
)

var (
	colorRed = lipgloss.Color("#d75f6b")

	redStyle     = lipgloss.NewStyle().Foreground(colorRed)
	greenStyle   = lipgloss.NewStyle().Foreground(styles.ColorGreen)
	yellowStyle  = lipgloss.NewStyle().Foreground(styles.ColorYellow)
	grayStyle    = lipgloss.NewStyle().Foreground(styles.ColorGray)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

type ctxKey struct{}

// Printer handles formatted output with colors and styles
type Printer struct {
	writer io.Writer
}

// New creates a new Printer that writes to the given writer
func New(w io.Writer) *Printer {
	return &Printer{
		writer: w,
	}
}

// NewContext returns a context with the printer attached
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx retrieves the printer from context, or creates a default one
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

// FatalError prints a formatted error box and does NOT exit
// Caller should handle exit code
func (p *Printer) FatalError(err error) {
	if err == nil {
		return
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		p.printValidationErrors(err, fieldErrs)
		return
	}

	p.line(redStyle.Render("╭ Error"))
	p.line(redStyle.Render("│") + " " + grayStyle.Render(err.Error()))
	p.line(redStyle.Render("╵"))
}

// printValidationErrors formats criterio.FieldErrors nicely
func (p *Printer) printValidationErrors(wrappedErr error, fieldErrs criterio.FieldErrors) {
	errStr := wrappedErr.Error()
	fieldErrStr := fieldErrs.Error()

	// Keep the wrapping context, e.g. "load config: invalid config"
	errContext := ""
	if idx := strings.Index(errStr, fieldErrStr); idx > 0 {
		errContext = strings.TrimSuffix(errStr[:idx], ": ")
	}

	p.line(redStyle.Render("╭ Validation Error"))

	if errContext != "" {
		p.line(redStyle.Render("│") + " " + grayStyle.Render(errContext))
		p.line(redStyle.Render("│"))
	}

	for _, fe := range fieldErrs {
		line := redStyle.Render("│") + " " + redStyle.Render(Cross) + " "
		if fe.Field != "" {
			line += grayStyle.Render(fe.Field + ": ")
		}
		line += fe.Err.Error()
		p.line(line)
	}

	p.line(redStyle.Render("╵"))
}

// Successf prints a success message in green
func (p *Printer) Successf(format string, args ...any) {
	p.line(greenStyle.Render(Check + " " + fmt.Sprintf(format, args...)))
}

// Infof prints an info message in gray
func (p *Printer) Infof(format string, args ...any) {
	p.line(grayStyle.Render(Dot + " " + fmt.Sprintf(format, args...)))
}

// Warnf prints a warning message in yellow
func (p *Printer) Warnf(format string, args ...any) {
	p.line(yellowStyle.Render(Dot + " " + fmt.Sprintf(format, args...)))
}

// Printf prints a plain message without colors
func (p *Printer) Printf(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

// Section prints a section header (bold + underlined)
func (p *Printer) Section(title string) {
	p.line(sectionStyle.Render(title))
}

// CheckItem prints a success item with green checkmark
func (p *Printer) CheckItem(label, detail string) {
	p.item(greenStyle, Check, label, detail)
}

// WarnItem prints a warning item with yellow dot
func (p *Printer) WarnItem(label, detail string) {
	p.item(yellowStyle, Dot, label, detail)
}

// FailItem prints a failure item with red cross
func (p *Printer) FailItem(label, detail string) {
	p.item(redStyle, Cross, label, detail)
}

func (p *Printer) item(style lipgloss.Style, symbol, label, detail string) {
	line := "  " + style.Render(symbol) + " " + label
	if detail != "" {
		line += ": " + detail
	}
	p.line(line)
}

func (p *Printer) line(s string) {
	_, _ = io.WriteString(p.writer, s+"\n")
}
