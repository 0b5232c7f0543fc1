package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
)

func TestPrinter_Messages(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Successf("outcome: %s", "fulfilled")
	p.Warnf("outcome: %s", "rejected")
	p.Infof("callback: not invoked")
	p.Printf("plain %d", 1)

	out := ansi.Strip(buf.String())
	assert.Equal(t, "✔ outcome: fulfilled\n• outcome: rejected\n• callback: not invoked\nplain 1\n", out)
}

func TestPrinter_Items(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.CheckItem("template", "modal.tmpl")
	p.FailItem("terminal", "")

	out := ansi.Strip(buf.String())
	assert.Equal(t, "  ✔ template: modal.tmpl\n  ✘ terminal\n", out)
}

func TestPrinter_FatalError(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf).FatalError(errors.New("boom"))

		out := ansi.Strip(buf.String())
		assert.Contains(t, out, "╭ Error")
		assert.Contains(t, out, "│ boom")
	})

	t.Run("field errors keep context", func(t *testing.T) {
		var buf bytes.Buffer
		fieldErrs := criterio.NewFieldErrors("styles.delete", errors.New("unknown window class"))
		New(&buf).FatalError(fmt.Errorf("load config: %w", fieldErrs))

		out := ansi.Strip(buf.String())
		assert.Contains(t, out, "╭ Validation Error")
		assert.Contains(t, out, "│ load config")
		assert.Contains(t, out, "✘ styles.delete: unknown window class")
	})

	t.Run("nil is ignored", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf).FatalError(nil)
		assert.Empty(t, buf.String())
	})
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))
	assert.NotNil(t, Ctx(context.Background()))
}
