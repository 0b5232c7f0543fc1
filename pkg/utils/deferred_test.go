package utils

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeferredWriter_Flush(t *testing.T) {
	var d DeferredWriter

	_, err := d.Write([]byte("first\n"))
	require.NoError(t, err)
	_, err = d.Write([]byte("second\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, d.Flush(&out))
	assert.Equal(t, "first\nsecond\n", out.String())

	out.Reset()
	require.NoError(t, d.Flush(&out))
	assert.Empty(t, out.String(), "flush resets the buffer")
}

func TestDeferredWriter_ConcurrentWrites(t *testing.T) {
	var (
		d  DeferredWriter
		wg sync.WaitGroup
	)

	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = fmt.Fprintf(&d, "%02d\n", i)
		}()
	}
	wg.Wait()

	var out bytes.Buffer
	require.NoError(t, d.Flush(&out))
	assert.Len(t, out.String(), 20*3)
}
