package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/modalkit/internal/core/dialog"
	"github.com/hay-kot/modalkit/internal/printer"
	"github.com/hay-kot/modalkit/internal/styles"
)

// Dialog kinds accepted by preview.
const (
	KindDelete  = "delete"
	KindLogin   = "login"
	KindError   = "error"
	KindSuccess = "success"
)

var kinds = []string{KindDelete, KindLogin, KindError, KindSuccess}

type PreviewCmd struct {
	flags  *Flags
	kind   string
	press  string
	width  int
	height int
}

// NewPreviewCmd creates a new preview command
func NewPreviewCmd(flags *Flags) *PreviewCmd {
	return &PreviewCmd{flags: flags}
}

// Register adds the preview command to the application
func (cmd *PreviewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "preview",
		Usage:     "Render a dialog without starting the TUI",
		UsageText: "modalkit preview [options] [text] [extra...]",
		Description: `Renders one of the built-in dialogs to stdout.

With --press the named button is pressed afterwards and the resulting
outcome is printed, together with the arguments the dialog callback
received (if it ran at all). Without --kind on an interactive terminal
you are prompted for the dialog and its text.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "kind",
				Aliases:     []string{"k"},
				Usage:       "dialog to render (delete, login, error, success)",
				Destination: &cmd.kind,
			},
			&cli.StringFlag{
				Name:        "press",
				Aliases:     []string{"p"},
				Usage:       "label of the button to press after rendering",
				Destination: &cmd.press,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "area width to center the dialog in (0 = terminal width)",
				Destination: &cmd.width,
			},
			&cli.IntFlag{
				Name:        "height",
				Usage:       "area height to center the dialog in (0 = no centering)",
				Destination: &cmd.height,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PreviewCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if cmd.flags.Config == nil {
		return fmt.Errorf("configuration not loaded")
	}

	args := c.Args().Slice()
	primary := ""
	if len(args) > 0 {
		primary = args[0]
		args = args[1:]
	}

	if cmd.kind == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("--kind is required when stdin is not a terminal")
		}
		if err := cmd.prompt(&primary); err != nil {
			return fmt.Errorf("prompt: %w", err)
		}
	}

	extras := make([]any, len(args))
	for i, a := range args {
		extras[i] = a
	}

	logger := log.With().Str("component", "preview").Logger()
	svc, windows := NewStack(cmd.flags.Config, logger)

	result := &previewResult{}
	opener, err := openerFor(svc, cmd.kind, result.record)
	if err != nil {
		return err
	}

	h, err := opener(primary, extras...)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	width, height := cmd.area()
	if width > 0 && height > 0 {
		_, _ = fmt.Fprintln(out, windows.Overlay("", width, height))
	} else {
		_, _ = fmt.Fprintln(out, windows.Render())
	}

	if cmd.press == "" {
		return nil
	}

	if err := h.PressLabel(cmd.press); err != nil {
		return err
	}

	return result.report(ctx, p, h.Outcome())
}

// prompt asks for the dialog kind and text with a huh form.
func (cmd *PreviewCmd) prompt(primary *string) error {
	cmd.kind = KindDelete

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Dialog").
				Options(huh.NewOptions(kinds...)...).
				Value(&cmd.kind),
			huh.NewInput().
				Title("Text").
				Description("name or message shown in the dialog body").
				Value(primary),
		),
	).WithTheme(styles.FormTheme()).Run()
}

// area resolves the area the dialog is centered in.
func (cmd *PreviewCmd) area() (int, int) {
	width := cmd.width
	if width == 0 && term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}
	return width, cmd.height
}

func openerFor(svc *dialog.Service, kind string, cb dialog.Callback) (dialog.Opener, error) {
	switch kind {
	case KindDelete:
		return svc.Delete(cb), nil
	case KindLogin:
		return svc.AskToLogin(cb), nil
	case KindError:
		return svc.ErrorMessage(cb), nil
	case KindSuccess:
		return svc.SuccessMessage(cb), nil
	default:
		return nil, fmt.Errorf("unknown dialog kind %q (valid: %s)", kind, strings.Join(kinds, ", "))
	}
}

// previewResult captures what the dialog callback received.
type previewResult struct {
	invoked bool
	extras  []any
}

func (r *previewResult) record(_ dialog.Event, extras ...any) {
	r.invoked = true
	r.extras = slices.Clone(extras)
}

func (r *previewResult) report(ctx context.Context, p *printer.Printer, o *dialog.Outcome) error {
	ev, err := o.Wait(ctx)
	switch {
	case errors.Is(err, dialog.ErrRejected):
		p.Warnf("outcome: %s (%s)", dialog.StateRejected, ev.Button)
	case err != nil:
		return fmt.Errorf("wait for outcome: %w", err)
	default:
		p.Successf("outcome: %s (%s)", dialog.StateFulfilled, ev.Button)
	}

	if r.invoked {
		p.Infof("callback: invoked with %s", formatExtras(r.extras))
	} else {
		p.Infof("callback: not invoked")
	}
	return nil
}

func formatExtras(extras []any) string {
	parts := make([]string, len(extras))
	for i, e := range extras {
		parts[i] = fmt.Sprintf("%q", fmt.Sprint(e))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
