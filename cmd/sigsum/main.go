// Command sigsum captures logic analyzer data, decodes protocols, and
// condenses the decoder output into compact transaction reports.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/sigsum/internal/backend"
	"github.com/crimson-sun/sigsum/internal/capture"
	"github.com/crimson-sun/sigsum/internal/config"
	"github.com/crimson-sun/sigsum/internal/logging"
	"github.com/crimson-sun/sigsum/internal/pipeline"
	"github.com/crimson-sun/sigsum/internal/server"
	"github.com/crimson-sun/sigsum/pkg/sigsum"
)

var (
	cfg        config.Config
	configFile string
)

func main() {
	root := &cobra.Command{
		Use:   "sigsum",
		Short: "Condense logic analyzer decoder output into transaction reports",
		Long: `sigsum drives sigrok-cli to capture and decode logic analyzer data,
then folds the decoder annotations into compact per-protocol transaction
reports (I2C, SPI, UART, CAN, and more).

The summarize, window, and activity commands work on saved text and need
no hardware; capture and decode shell out to sigrok-cli.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if configFile != "" {
				cfg, err = config.LoadFile(configFile)
				if err != nil {
					return err
				}
			} else {
				cfg = config.Load()
			}
			logging.Init(cfg.Log.Level, true)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "TOML config file")

	root.AddCommand(
		summarizeCmd(),
		windowCmd(),
		activityCmd(),
		protocolsCmd(),
		captureCmd(),
		decodeCmd(),
		serveCmd(),
	)

	if err := root.ExecuteContext(signalContext()); err != nil {
		os.Exit(1)
	}
}

// signalContext cancels on SIGINT/SIGTERM so a hung sigrok-cli run can
// be interrupted cleanly.
func signalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx
}

// readInput reads the named file, or stdin when no name is given.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func summarizeCmd() *cobra.Command {
	var maxItems int
	cmd := &cobra.Command{
		Use:   "summarize <protocol> [file]",
		Short: "Fold decoder annotations into a transaction report",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(args[1:])
			if err != nil {
				return err
			}
			max := maxItems
			if max <= 0 {
				max = cfg.Summary.MaxItems
			}
			fmt.Println(sigsum.Summarize(raw, args[0], sigsum.WithMaxItems(max)))
			return nil
		},
	}
	cmd.Flags().IntVar(&maxItems, "max", 0, "max transactions/lines in the report")
	return cmd
}

func windowCmd() *cobra.Command {
	var start, size int
	cmd := &cobra.Command{
		Use:   "window [file]",
		Short: "Show a bounded window of raw sample lines",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(args)
			if err != nil {
				return err
			}
			if size <= 0 {
				size = cfg.Summary.WindowSize
			}
			fmt.Println(sigsum.Window(raw, start, size))
			return nil
		},
	}
	cmd.Flags().IntVar(&start, "start", 0, "first sample index")
	cmd.Flags().IntVar(&size, "size", 0, "window size in samples")
	return cmd
}

func activityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activity [file]",
		Short: "Summarize per-channel signal activity from binary sample rows",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(args)
			if err != nil {
				return err
			}
			fmt.Println(sigsum.Activity(raw))
			return nil
		},
	}
}

func protocolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "protocols",
		Short: "List protocols with a dedicated transaction assembler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range sigsum.Protocols() {
				fmt.Println(p)
			}
			return nil
		},
	}
}

// newPipeline wires the capture store and sigrok backend for the
// hardware-facing commands.
func newPipeline() (*pipeline.Pipeline, error) {
	b, err := backend.NewSigrokCLI()
	if err != nil {
		return nil, err
	}
	store, err := capture.NewStore(cfg.Capture.StoreDir)
	if err != nil {
		return nil, err
	}
	return pipeline.New(store, b), nil
}

func captureCmd() *cobra.Command {
	var (
		driver      string
		sampleRate  string
		channels    string
		numSamples  int
		durationMS  int
		triggers    string
		waitTrigger bool
		description string
	)
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Acquire samples into the capture store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			if driver == "" {
				driver = cfg.Capture.Driver
			}
			if sampleRate == "" {
				sampleRate = cfg.Capture.SampleRate
			}
			id, err := p.Capture(cmd.Context(), backend.CaptureRequest{
				Driver:      driver,
				SampleRate:  sampleRate,
				Channels:    channels,
				NumSamples:  numSamples,
				DurationMS:  durationMS,
				Triggers:    triggers,
				WaitTrigger: waitTrigger,
			}, description)
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "", "sigrok driver (default from config)")
	cmd.Flags().StringVar(&sampleRate, "samplerate", "", "sample rate, e.g. 1m (default from config)")
	cmd.Flags().StringVar(&channels, "channels", "", "channels to record, e.g. A0,A1")
	cmd.Flags().IntVar(&numSamples, "samples", 0, "number of samples")
	cmd.Flags().IntVar(&durationMS, "time", 0, "capture duration in ms")
	cmd.Flags().StringVar(&triggers, "triggers", "", "trigger spec, e.g. A0=r")
	cmd.Flags().BoolVar(&waitTrigger, "wait-trigger", false, "wait for the trigger before sampling")
	cmd.Flags().StringVar(&description, "description", "", "capture description")
	return cmd
}

func decodeCmd() *cobra.Command {
	var (
		protocol string
		mapping  []string
		options  []string
		filter   string
		raw      bool
		maxItems int
	)
	cmd := &cobra.Command{
		Use:   "decode <capture-id>",
		Short: "Decode a saved capture and print the transaction report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			out, err := p.Decode(cmd.Context(), args[0], pipeline.DecodeParams{
				Protocol:         protocol,
				ChannelMapping:   mapping,
				Options:          options,
				AnnotationFilter: filter,
				Raw:              raw,
				MaxItems:         maxItems,
			})
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&protocol, "protocol", "", "protocol decoder, e.g. i2c")
	cmd.Flags().StringArrayVar(&mapping, "map", nil, "signal=channel mapping (repeatable)")
	cmd.Flags().StringArrayVar(&options, "option", nil, "decoder option key=val (repeatable)")
	cmd.Flags().StringVar(&filter, "filter", "", "annotation filter override")
	cmd.Flags().BoolVar(&raw, "raw", false, "full annotations instead of the transaction summary")
	cmd.Flags().IntVar(&maxItems, "max", 0, "max transactions/lines in the report")
	cmd.MarkFlagRequired("protocol")
	return cmd
}

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the summarization HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Init(cfg.Log.Level, false)
			if addr == "" {
				addr = cfg.Server.ListenAddr
			}
			return server.New(cfg.Summary.MaxItems).Run(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
