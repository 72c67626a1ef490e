// Package backend drives the external acquisition/decoding tool.
//
// All interaction with the sigrok-cli binary is isolated here: argument
// construction, context-bounded execution, and output parsing. The core
// summarization packages never touch hardware or the decoding engine —
// they only consume the text this package returns.
package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrNotInstalled reports that the sigrok-cli binary is not on PATH.
var ErrNotInstalled = errors.New("sigrok-cli not found on PATH")

// ErrNoDevices reports a scan that found no hardware.
var ErrNoDevices = errors.New("no devices found")

const defaultTimeout = 30 * time.Second

// Device is one scanned logic analyzer.
type Device struct {
	Driver      string
	Description string
}

// Decoder is one available protocol decoder.
type Decoder struct {
	ID          string
	Description string
}

// CaptureRequest describes one acquisition run.
type CaptureRequest struct {
	OutputFile     string
	Driver         string
	Channels       string
	SampleRate     string
	NumSamples     int
	DurationMS     int
	Triggers       string
	WaitTrigger    bool
	TriggerTimeout time.Duration
}

// DecodeRequest describes one protocol decode of a saved capture.
type DecodeRequest struct {
	InputFile        string
	Decoder          string
	Options          []string // key=val decoder options, in order
	ChannelMapping   []string // sig=channel pairs, in order
	AnnotationFilter string
}

// ExportRequest describes one raw-data export of a saved capture.
type ExportRequest struct {
	InputFile string
	Format    string // "bits", "hex", "ascii", "csv"
	Channels  string
}

// Backend is the acquisition/decoding collaborator the pipeline depends
// on. The production implementation shells out to sigrok-cli; tests
// substitute a fake.
type Backend interface {
	Scan(ctx context.Context, driver string) ([]Device, error)
	Capture(ctx context.Context, req CaptureRequest) error
	Decode(ctx context.Context, req DecodeRequest) (string, error)
	Export(ctx context.Context, req ExportRequest) (string, error)
	ListDecoders(ctx context.Context) ([]Decoder, error)
}

// SigrokCLI runs the sigrok-cli binary.
type SigrokCLI struct {
	binary string
}

// NewSigrokCLI verifies sigrok-cli is on PATH.
func NewSigrokCLI() (*SigrokCLI, error) {
	path, err := exec.LookPath("sigrok-cli")
	if err != nil {
		return nil, fmt.Errorf("%w (install it with your package manager, e.g. 'apt install sigrok-cli')", ErrNotInstalled)
	}
	return &SigrokCLI{binary: path}, nil
}

func (s *SigrokCLI) Scan(ctx context.Context, driver string) ([]Device, error) {
	out, err := s.run(ctx, []string{"--driver", driver, "--scan"}, defaultTimeout)
	if err != nil {
		return nil, err
	}

	var devices []Device
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "The following") {
			continue
		}
		devices = append(devices, Device{Driver: driver, Description: line})
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("%w with driver %q (check USB connection and udev permissions)", ErrNoDevices, driver)
	}
	return devices, nil
}

func (s *SigrokCLI) Capture(ctx context.Context, req CaptureRequest) error {
	_, err := s.run(ctx, captureArgs(req), captureTimeout(req))
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	return nil
}

func (s *SigrokCLI) Decode(ctx context.Context, req DecodeRequest) (string, error) {
	out, err := s.run(ctx, decodeArgs(req), defaultTimeout)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", req.Decoder, err)
	}
	return out, nil
}

func (s *SigrokCLI) Export(ctx context.Context, req ExportRequest) (string, error) {
	out, err := s.run(ctx, exportArgs(req), defaultTimeout)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return out, nil
}

func (s *SigrokCLI) ListDecoders(ctx context.Context) ([]Decoder, error) {
	out, err := s.run(ctx, []string{"--list-supported"}, defaultTimeout)
	if err != nil {
		return nil, err
	}
	return parseDecoderList(out), nil
}

// run executes sigrok-cli with a hard timeout and returns stdout.
func (s *SigrokCLI) run(ctx context.Context, args []string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Debug().Strs("args", args).Msg("running sigrok-cli")

	cmd := exec.CommandContext(ctx, s.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("sigrok-cli timed out after %s", timeout)
		}
		return "", fmt.Errorf("sigrok-cli: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// captureArgs builds the acquisition command line. Kept separate from
// execution so the construction is testable without the binary.
func captureArgs(req CaptureRequest) []string {
	args := []string{"--driver", req.Driver, "--config", "samplerate=" + req.SampleRate}

	if req.Channels != "" {
		args = append(args, "--channels", req.Channels)
	}

	switch {
	case req.NumSamples > 0:
		args = append(args, "--samples", strconv.Itoa(req.NumSamples))
	case req.DurationMS > 0:
		args = append(args, "--time", strconv.Itoa(req.DurationMS))
	default:
		args = append(args, "--samples", "1024")
	}

	if req.Triggers != "" {
		args = append(args, "--triggers", req.Triggers)
	}
	if req.WaitTrigger {
		args = append(args, "--wait-trigger")
	}

	return append(args, "--output-file", req.OutputFile)
}

// captureTimeout sizes the timeout to the request: trigger waits use
// the caller's trigger timeout, duration-based captures need at least
// the duration plus slack.
func captureTimeout(req CaptureRequest) time.Duration {
	if req.Triggers != "" && req.TriggerTimeout > 0 {
		return req.TriggerTimeout
	}
	if req.DurationMS > 0 {
		d := time.Duration(req.DurationMS)*time.Millisecond + 10*time.Second
		if d > defaultTimeout {
			return d
		}
	}
	return defaultTimeout
}

// decodeArgs builds the decoder spec "decoder:sig=ch:key=val" plus the
// optional annotation filter.
func decodeArgs(req DecodeRequest) []string {
	spec := req.Decoder
	opts := append(append([]string{}, req.ChannelMapping...), req.Options...)
	if len(opts) > 0 {
		spec += ":" + strings.Join(opts, ":")
	}

	args := []string{"-i", req.InputFile, "-P", spec}
	if req.AnnotationFilter != "" {
		args = append(args, "-A", req.AnnotationFilter)
	}
	return args
}

func exportArgs(req ExportRequest) []string {
	args := []string{"-i", req.InputFile, "--output-format", req.Format}
	if req.Channels != "" {
		args = append(args, "--channels", req.Channels)
	}
	return args
}

// parseDecoderList extracts the protocol decoder section of
// "sigrok-cli --list-supported" output.
func parseDecoderList(out string) []Decoder {
	var decoders []Decoder
	inSection := false
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(strings.ToLower(line), "protocol decoders") {
			inSection = true
			continue
		}
		if inSection && strings.HasPrefix(line, "Supported ") {
			break
		}
		if !inSection {
			continue
		}
		fields := strings.Fields(line)
		switch {
		case len(fields) == 0:
		case len(fields) == 1:
			decoders = append(decoders, Decoder{ID: fields[0]})
		default:
			decoders = append(decoders, Decoder{ID: fields[0], Description: strings.Join(fields[1:], " ")})
		}
	}
	return decoders
}
