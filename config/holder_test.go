package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/veloxmap/config"
	"github.com/syssam/veloxmap/types/sqltype"
)

const disabledMapping = `
converters:
  - name: string_clob
    auto_apply: true
entities:
  - name: Tester
    attributes:
      - name: name
        type: string
        convert: disabled
`

func nameCode(t *testing.T, md *config.Metadata) sqltype.Code {
	t.Helper()
	p, ok := md.ClassMapping("Tester").Property("name")
	require.True(t, ok)
	return p.Value.MustType().SQLDescriptor().Code()
}

func TestHolder_Get(t *testing.T) {
	h, err := config.NewHolder(writeMapping(t, testerMapping), nopLogger())
	require.NoError(t, err)
	defer h.Stop()

	require.NotNil(t, h.Get())
	assert.Equal(t, sqltype.Clob, nameCode(t, h.Get()))
	assert.Len(t, h.File().Entities, 2)
}

func TestHolder_Reload(t *testing.T) {
	path := writeMapping(t, testerMapping)
	h, err := config.NewHolder(path, nopLogger())
	require.NoError(t, err)
	defer h.Stop()

	old := h.Get()
	var got *config.Metadata
	h.OnChange(func(md *config.Metadata) { got = md })

	require.NoError(t, os.WriteFile(path, []byte(disabledMapping), 0o644))
	require.NoError(t, h.Reload())

	assert.Same(t, h.Get(), got)
	assert.Equal(t, sqltype.Varchar, nameCode(t, h.Get()))
	assert.Equal(t, sqltype.Clob, nameCode(t, old), "published snapshots never change")
}

func TestHolder_ReloadKeepsOldOnError(t *testing.T) {
	path := writeMapping(t, testerMapping)
	h, err := config.NewHolder(path, nopLogger())
	require.NoError(t, err)
	defer h.Stop()

	before := h.Get()
	broken := `
converters:
  - name: string_clob
    auto_apply: true
entities:
  - name: Tester
    attributes:
      - name: name
        type_name: nope
`
	require.NoError(t, os.WriteFile(path, []byte(broken), 0o644))
	err = h.Reload()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reload mappings")
	assert.Same(t, before, h.Get())
}

func TestNewHolder_Invalid(t *testing.T) {
	_, err := config.NewHolder(writeMapping(t, "dialect: oracle"), nopLogger())
	assert.Error(t, err)
}

func TestHolder_WatchFile(t *testing.T) {
	path := writeMapping(t, testerMapping)
	h, err := config.NewHolder(path, nopLogger())
	require.NoError(t, err)
	defer h.Stop()

	var (
		mu      sync.Mutex
		changed bool
	)
	h.OnChange(func(*config.Metadata) {
		mu.Lock()
		changed = true
		mu.Unlock()
	})
	require.NoError(t, h.WatchFile())

	require.NoError(t, os.WriteFile(path, []byte(disabledMapping), 0o644))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return changed
	}, 5*time.Second, 20*time.Millisecond)
	require.Eventually(t, func() bool {
		// Editors and os.WriteFile may emit several events; wait for the final content.
		e := h.Get().ClassMapping("Tester")
		if e == nil {
			return false
		}
		p, ok := e.Property("name")
		if !ok {
			return false
		}
		typ, err := p.Type()
		return err == nil && typ.SQLDescriptor().Code() == sqltype.Varchar
	}, 5*time.Second, 20*time.Millisecond)
}

func TestHolder_StopTwice(t *testing.T) {
	h, err := config.NewHolder(writeMapping(t, testerMapping), nopLogger())
	require.NoError(t, err)
	require.NoError(t, h.WatchFile())
	h.Stop()
	h.Stop()
}

func TestHolder_WatchFileTwice(t *testing.T) {
	h, err := config.NewHolder(writeMapping(t, testerMapping), nopLogger())
	require.NoError(t, err)
	require.NoError(t, h.WatchFile())
	assert.EqualError(t, h.WatchFile(), "config: mapping file is already watched")
	h.Stop()
	assert.EqualError(t, h.WatchFile(), "config: holder is stopped")
}

func TestHolder_ReloadLogsTypeChanges(t *testing.T) {
	path := writeMapping(t, testerMapping)
	var buf bytes.Buffer
	h, err := config.NewHolder(path, slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, err)
	defer h.Stop()

	require.NoError(t, os.WriteFile(path, []byte(disabledMapping), 0o644))
	require.NoError(t, h.Reload())

	out := buf.String()
	assert.Contains(t, out, `msg="basic type changed" entity=Tester attribute=name old=converted::string_clob new=string`)
	assert.Contains(t, out, `msg="entity count changed" old=2 new=1`)
	assert.NotContains(t, out, "basic type not resolved")
}
