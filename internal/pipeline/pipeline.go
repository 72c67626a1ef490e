// Package pipeline connects the capture store, the acquisition/decoding
// backend, and the protocol assemblers into the decode workflow: look
// up the capture, pick an annotation filter, reuse cached decoder
// output where possible, and reduce the result to a bounded summary.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/crimson-sun/sigsum/internal/activity"
	"github.com/crimson-sun/sigsum/internal/assembler"
	"github.com/crimson-sun/sigsum/internal/backend"
	"github.com/crimson-sun/sigsum/internal/capture"
	"github.com/crimson-sun/sigsum/internal/render"
)

// DefaultMaxItems bounds summaries when the caller does not say.
const DefaultMaxItems = 500

// Pipeline owns no mutable state of its own; every method is safe for
// concurrent use as long as the store and backend are.
type Pipeline struct {
	store   *capture.Store
	backend backend.Backend
}

// New creates a Pipeline from the given components.
func New(store *capture.Store, b backend.Backend) *Pipeline {
	return &Pipeline{store: store, backend: b}
}

// DecodeParams selects and shapes one protocol decode.
type DecodeParams struct {
	Protocol         string
	ChannelMapping   []string // sig=channel pairs
	Options          []string // key=val decoder options
	AnnotationFilter string   // overrides the default summary filter
	Raw              bool     // full annotations instead of the transaction summary
	MaxItems         int
}

// Capture acquires samples into a new capture slot and returns its ID.
func (p *Pipeline) Capture(ctx context.Context, req backend.CaptureRequest, description string) (string, error) {
	id, path, err := p.store.NewCapture(description)
	if err != nil {
		return "", err
	}
	req.OutputFile = path

	if err := p.backend.Capture(ctx, req); err != nil {
		return "", fmt.Errorf("capture %s: %w", id, err)
	}
	log.Info().Str("capture", id).Str("driver", req.Driver).Msg("capture saved")
	return id, nil
}

// Decode runs a protocol decoder over a saved capture and returns the
// formatted report.
//
// Summary mode applies the protocol's default annotation filter unless
// the caller overrides it, and dispatches to the protocol's assembler.
// Raw mode reuses cached decoder output when the request has no custom
// filter or options, and renders the generic truncating view.
func (p *Pipeline) Decode(ctx context.Context, captureID string, params DecodeParams) (string, error) {
	info, err := p.store.Get(captureID)
	if err != nil {
		return "", err
	}

	max := params.MaxItems
	if max <= 0 {
		max = DefaultMaxItems
	}

	filter := params.AnnotationFilter
	if !params.Raw && filter == "" {
		filter = backend.SummaryFilter(params.Protocol)
	}

	if params.Raw && params.AnnotationFilter == "" && len(params.Options) == 0 {
		if cached, ok := p.store.CachedDecode(captureID, params.Protocol); ok {
			return render.Truncated(cached, max), nil
		}
	}

	raw, err := p.backend.Decode(ctx, backend.DecodeRequest{
		InputFile:        info.FilePath,
		Decoder:          params.Protocol,
		Options:          params.Options,
		ChannelMapping:   params.ChannelMapping,
		AnnotationFilter: filter,
	})
	if err != nil {
		return "", err
	}
	p.store.CacheDecode(captureID, params.Protocol, raw)

	if params.Raw {
		return render.Truncated(raw, max), nil
	}
	return assembler.Summarize(raw, params.Protocol, max), nil
}

// RawWindow exports a capture in a text format and returns a bounded
// sample window.
func (p *Pipeline) RawWindow(ctx context.Context, captureID, format, channels string, start, size int) (string, error) {
	info, err := p.store.Get(captureID)
	if err != nil {
		return "", err
	}
	raw, err := p.backend.Export(ctx, backend.ExportRequest{
		InputFile: info.FilePath,
		Format:    format,
		Channels:  channels,
	})
	if err != nil {
		return "", err
	}
	return render.Window(raw, start, size), nil
}

// Activity exports a capture as bits and returns the per-channel
// activity summary.
func (p *Pipeline) Activity(ctx context.Context, captureID, channels string) (string, error) {
	info, err := p.store.Get(captureID)
	if err != nil {
		return "", err
	}
	raw, err := p.backend.Export(ctx, backend.ExportRequest{
		InputFile: info.FilePath,
		Format:    "bits",
		Channels:  channels,
	})
	if err != nil {
		return "", err
	}
	return activity.Summarize(raw), nil
}
