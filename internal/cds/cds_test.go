package cds

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldeneye/internal/cache"
)

const dispatchText = `[b]Civil Defense Siren[/b]
[region]Ignored Header[/region]
[table]
[tr][td][region]Bar Region[/region][/td][td]active[/td][/tr]
[tr][td][region]baz[/region][/td][/tr]
[/table]
[region]Footer Place[/region]`

func TestExtractRegions(t *testing.T) {
	got, err := ExtractRegions(dispatchText)
	require.NoError(t, err)
	assert.Equal(t, []string{"bar_region", "baz"}, got)

	_, err = ExtractRegions("no marker here [region]x[/region]")
	assert.ErrorIs(t, err, ErrNoTable)

	got, err = ExtractRegions("table with nothing tagged")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClassify(t *testing.T) {
	res := Classify([]string{"foo", "Bar_Region"}, []string{"bar_region", "baz"})
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, []string{"Bar_Region"}, res.Names)

	none := Classify(nil, []string{"baz"})
	assert.Equal(t, 0, none.Count)
	assert.Empty(t, none.Names)
}

type fakeDispatch struct {
	doc   string
	calls int
	id    int
}

func (f *fakeDispatch) Dispatch(ctx context.Context, id int) ([]byte, error) {
	f.calls++
	f.id = id
	return []byte(f.doc), nil
}

func TestLoader_Regions(t *testing.T) {
	src := &fakeDispatch{doc: `<WORLD><DISPATCH id="1081644"><TEXT>` +
		`table[region]Bar Region[/region]table</TEXT></DISPATCH></WORLD>`}
	store := cache.New(t.TempDir())
	l := NewLoader(store, src, nil)

	got, err := l.Regions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"bar_region"}, got)
	assert.Equal(t, DispatchID, src.id)

	_, err = l.Regions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls, "dispatch is cached for the day")
	assert.FileExists(t, store.Path(CacheKey))
}
