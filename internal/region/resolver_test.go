package region

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldeneye/internal/fetch"
	"goldeneye/internal/nsapi"
)

const dumpXML = `<?xml version="1.0" encoding="UTF-8"?>
<REGIONS>
<REGION><NAME>Elsewhere</NAME><NUMNATIONS>3</NUMNATIONS></REGION>
<REGION><NAME>Target Land</NAME><NUMNATIONS>90</NUMNATIONS><NATIONS>a:b</NATIONS></REGION>
</REGIONS>`

type fakeSource struct {
	docs  map[string]string
	err   error
	calls []string
}

func (f *fakeSource) Region(ctx context.Context, name string) ([]byte, error) {
	f.calls = append(f.calls, name)
	if f.err != nil {
		return nil, f.err
	}
	doc, ok := f.docs[name]
	if !ok {
		return nil, fmt.Errorf("region=%s: %w", name, fetch.ErrNotFound)
	}
	return []byte(doc), nil
}

func writeDump(t *testing.T, name string, gz bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	if gz {
		w := gzip.NewWriter(f)
		_, err = w.Write([]byte(dumpXML))
		require.NoError(t, err)
		require.NoError(t, w.Close())
		return path
	}
	_, err = f.Write([]byte(dumpXML))
	require.NoError(t, err)
	return path
}

func liveSource() *fakeSource {
	return &fakeSource{docs: map[string]string{
		"target_land": `<REGION><NAME>Target Land</NAME><NUMNATIONS>100</NUMNATIONS></REGION>`,
	}}
}

func TestResolver_LoadPrior(t *testing.T) {
	r := NewResolver(liveSource(), nil)
	for _, tc := range []struct {
		file string
		gz   bool
	}{
		{"regions.xml", false},
		{"regions.xml.gz", true},
	} {
		t.Run(tc.file, func(t *testing.T) {
			prior, err := r.LoadPrior(writeDump(t, tc.file, tc.gz), "TARGET LAND")
			require.NoError(t, err)
			assert.Equal(t, 90, prior.NumNations)
			assert.Equal(t, []string{"a", "b"}, prior.Nations())
		})
	}
}

func TestResolver_LoadPrior_Errors(t *testing.T) {
	r := NewResolver(liveSource(), nil)

	_, err := r.LoadPrior(filepath.Join(t.TempDir(), "missing.xml.gz"), "target_land")
	assert.ErrorIs(t, err, ErrDumpMissing)

	_, err = r.LoadPrior(writeDump(t, "regions.xml", false), "nowhere")
	assert.ErrorIs(t, err, ErrNotInDump)

	// A plain file with a .gz suffix fails in the gzip reader.
	_, err = r.LoadPrior(writeDump(t, "regions.xml.gz", false), "target_land")
	assert.Error(t, err)
}

func TestResolver_Resolve(t *testing.T) {
	src := liveSource()
	r := NewResolver(src, nil)

	snap, err := r.Resolve(context.Background(), "Target Land", writeDump(t, "regions.xml", false), true)
	require.NoError(t, err)
	require.True(t, snap.Compared())
	assert.Equal(t, 90, snap.Prior.NumNations)
	assert.Equal(t, 100, snap.Live.NumNations)
	assert.Equal(t, []string{"target_land"}, src.calls)
}

func TestResolver_Resolve_NoCompare(t *testing.T) {
	src := liveSource()
	r := NewResolver(src, nil)

	snap, err := r.Resolve(context.Background(), "target_land", "", false)
	require.NoError(t, err)
	assert.False(t, snap.Compared())
	assert.Nil(t, snap.Prior)
	assert.Equal(t, 100, snap.Live.NumNations)
}

func TestResolver_Resolve_DumpCheckedBeforeLiveFetch(t *testing.T) {
	src := liveSource()
	r := NewResolver(src, nil)

	_, err := r.Resolve(context.Background(), "target_land", filepath.Join(t.TempDir(), "nope.xml"), true)
	assert.ErrorIs(t, err, ErrDumpMissing)
	assert.Empty(t, src.calls)
}

func TestResolver_FetchLive_NotFound(t *testing.T) {
	r := NewResolver(liveSource(), nil)
	_, err := r.FetchLive(context.Background(), "ghost town")
	assert.ErrorIs(t, err, ErrRegionNotFound)
}

func TestResolver_FetchLive_TransportFailure(t *testing.T) {
	r := NewResolver(&fakeSource{err: &fetch.TransportError{URL: "x", Err: os.ErrDeadlineExceeded}}, nil)
	_, err := r.FetchLive(context.Background(), "target_land")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRegionNotFound)
}

func TestResolver_FetchLive_Malformed(t *testing.T) {
	r := NewResolver(&fakeSource{docs: map[string]string{"target_land": "<REGION>"}}, nil)
	_, err := r.FetchLive(context.Background(), "target_land")
	assert.True(t, nsapi.IsDecodeError(err))
}
