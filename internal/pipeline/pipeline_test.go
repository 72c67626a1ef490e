package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/sigsum/internal/backend"
	"github.com/crimson-sun/sigsum/internal/capture"
)

// fakeBackend records requests and replays canned output.
type fakeBackend struct {
	decodeOut   string
	exportOut   string
	decodeCalls []backend.DecodeRequest
	captureErr  error
}

func (f *fakeBackend) Scan(context.Context, string) ([]backend.Device, error) { return nil, nil }

func (f *fakeBackend) Capture(context.Context, backend.CaptureRequest) error { return f.captureErr }

func (f *fakeBackend) Decode(_ context.Context, req backend.DecodeRequest) (string, error) {
	f.decodeCalls = append(f.decodeCalls, req)
	return f.decodeOut, nil
}

func (f *fakeBackend) Export(context.Context, backend.ExportRequest) (string, error) {
	return f.exportOut, nil
}

func (f *fakeBackend) ListDecoders(context.Context) ([]backend.Decoder, error) { return nil, nil }

func newTestPipeline(t *testing.T, fb *fakeBackend) (*Pipeline, string) {
	t.Helper()
	store, err := capture.NewStore(t.TempDir())
	require.NoError(t, err)
	id, _, err := store.NewCapture("test")
	require.NoError(t, err)
	return New(store, fb), id
}

func TestDecodeSummaryAppliesDefaultFilter(t *testing.T) {
	fb := &fakeBackend{decodeOut: "i2c-1: Start\ni2c-1: Write\ni2c-1: Address write: 50\ni2c-1: Data write: 0B\ni2c-1: Stop"}
	p, id := newTestPipeline(t, fb)

	out, err := p.Decode(context.Background(), id, DecodeParams{Protocol: "i2c"})
	require.NoError(t, err)

	assert.Contains(t, out, "I2C: 1 transactions")
	assert.Contains(t, out, "W 0x50: [0B]")
	require.Len(t, fb.decodeCalls, 1)
	assert.Equal(t, backend.SummaryFilter("i2c"), fb.decodeCalls[0].AnnotationFilter)
}

func TestDecodeSummaryFilterOverride(t *testing.T) {
	fb := &fakeBackend{decodeOut: "i2c-1: Data write: 0B"}
	p, id := newTestPipeline(t, fb)

	_, err := p.Decode(context.Background(), id, DecodeParams{
		Protocol:         "i2c",
		AnnotationFilter: "i2c=data-write",
	})
	require.NoError(t, err)
	assert.Equal(t, "i2c=data-write", fb.decodeCalls[0].AnnotationFilter)
}

func TestDecodeRawUsesGenericFormatter(t *testing.T) {
	fb := &fakeBackend{decodeOut: "i2c-1: Start\ni2c-1: Stop"}
	p, id := newTestPipeline(t, fb)

	out, err := p.Decode(context.Background(), id, DecodeParams{Protocol: "i2c", Raw: true})
	require.NoError(t, err)

	assert.Contains(t, out, "Decoded 2 annotations")
	assert.Contains(t, out, "i2c-1: Start")
	// Raw mode runs without the summary filter.
	assert.Empty(t, fb.decodeCalls[0].AnnotationFilter)
}

func TestDecodeRawReusesCache(t *testing.T) {
	fb := &fakeBackend{decodeOut: "i2c-1: Start"}
	p, id := newTestPipeline(t, fb)

	_, err := p.Decode(context.Background(), id, DecodeParams{Protocol: "i2c", Raw: true})
	require.NoError(t, err)
	_, err = p.Decode(context.Background(), id, DecodeParams{Protocol: "i2c", Raw: true})
	require.NoError(t, err)

	// Second raw decode is served from the cache.
	assert.Len(t, fb.decodeCalls, 1)
}

func TestDecodeWithOptionsSkipsCache(t *testing.T) {
	fb := &fakeBackend{decodeOut: "uart-1: TX data: 48"}
	p, id := newTestPipeline(t, fb)

	params := DecodeParams{Protocol: "uart", Raw: true, Options: []string{"baudrate=115200"}}
	_, err := p.Decode(context.Background(), id, params)
	require.NoError(t, err)
	_, err = p.Decode(context.Background(), id, params)
	require.NoError(t, err)

	assert.Len(t, fb.decodeCalls, 2)
}

func TestDecodeUnknownCapture(t *testing.T) {
	p, _ := newTestPipeline(t, &fakeBackend{})
	_, err := p.Decode(context.Background(), "cap_999", DecodeParams{Protocol: "i2c"})
	require.ErrorIs(t, err, capture.ErrNotFound)
}

func TestRawWindow(t *testing.T) {
	fb := &fakeBackend{exportOut: "0101\n0101\n0101\n0101"}
	p, id := newTestPipeline(t, fb)

	out, err := p.RawWindow(context.Background(), id, "bits", "", 1, 2)
	require.NoError(t, err)
	assert.Contains(t, out, "Samples 1-2 of 4")
}

func TestActivity(t *testing.T) {
	fb := &fakeBackend{exportOut: "A0:11111111\nA1:10101010"}
	p, id := newTestPipeline(t, fb)

	out, err := p.Activity(context.Background(), id, "")
	require.NoError(t, err)
	assert.Contains(t, out, "8 samples, 2 channels")
	assert.Contains(t, out, "always high")
	assert.Contains(t, out, "active")
}

func TestCaptureAllocatesID(t *testing.T) {
	fb := &fakeBackend{}
	store, err := capture.NewStore(t.TempDir())
	require.NoError(t, err)
	p := New(store, fb)

	id, err := p.Capture(context.Background(), backend.CaptureRequest{Driver: "fx2lafw", SampleRate: "1m"}, "probe")
	require.NoError(t, err)
	assert.Equal(t, "cap_001", id)

	info, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "probe", info.Description)
}
