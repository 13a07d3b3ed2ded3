// Command lrptdemod demodulates a Meteor-M2 LRPT baseband capture
// (WAV or raw I/Q) into a file of soft symbols.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dernasherbrezon/lrptdemod/internal/audio"
	"github.com/dernasherbrezon/lrptdemod/internal/config"
	"github.com/dernasherbrezon/lrptdemod/internal/demod"
	"github.com/dernasherbrezon/lrptdemod/internal/dsp"
	"github.com/dernasherbrezon/lrptdemod/internal/server"
	"github.com/dernasherbrezon/lrptdemod/internal/source"
	"github.com/dernasherbrezon/lrptdemod/internal/writer"
)

const version = "1.0.0"

func main() {
	os.Exit(run())
}

func run() int {
	outPath := flag.String("o", "", "output file (default: LRPT_YYYY_MM_DD-HH_MM.s)")
	symbolRateStr := flag.String("r", "72000", "symbol rate (accepts k/M suffixes)")
	srcRateStr := flag.String("s", "", "override input samplerate for raw inputs")
	bps := flag.Int("bps", 16, "override input bit depth for raw inputs")
	modeStr := flag.String("m", "qpsk", "modulation mode: qpsk or oqpsk")
	costasBWStr := flag.String("b", "100", "Costas loop bandwidth, Hz (accepts k/M suffixes)")
	rrcAlpha := flag.Float64("a", config.DefaultRRCAlpha, "RRC roll-off")
	rrcOrder := flag.Int("f", config.DefaultRRCOrder, "RRC filter order")
	interpFactor := flag.Int("O", config.DefaultInterpFactor, "interpolation factor")
	refreshMS := flag.Int("R", 50, "UI refresh interval, ms")
	quiet := flag.Bool("q", false, "suppress status output")
	showVersion := flag.Bool("v", false, "show version")
	listenAddr := flag.String("n", "", "serve live status/symbol stream over HTTP+WS at this address (supplemented feature, e.g. :8080)")
	pushSymbols := flag.Bool("p", false, "when -n is set, also stream soft symbols over the monitor websocket")
	monitorAudio := flag.Bool("monitor-audio", false, "play the AGC-normalized envelope through the default sound output")
	listDevices := flag.Bool("list-devices", false, "list audio output devices and exit")
	coarseScan := flag.Bool("F", false, "pre-scan the signal for a coarse frequency estimate before locking")
	flag.Parse()

	if *showVersion {
		fmt.Printf("lrptdemod %s\n", version)
		return 0
	}

	if *listDevices {
		if err := audio.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "audio init: %v\n", err)
			return 1
		}
		defer audio.Terminate()
		if err := audio.PrintDevices(); err != nil {
			fmt.Fprintf(os.Stderr, "list devices: %v\n", err)
			return 1
		}
		return 0
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: lrptdemod [flags] <input-file>")
		flag.PrintDefaults()
		return 1
	}
	inputPath := flag.Arg(0)

	symbolRate, err := config.Dehumanize(*symbolRateStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -r: %v\n", err)
		return 1
	}
	costasBW, err := config.Dehumanize(*costasBWStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -b: %v\n", err)
		return 1
	}
	mode := dsp.ParseMode(*modeStr)

	src, err := openSource(inputPath, *srcRateStr, *bps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	cfg, err := config.New(src.SampleRate(), symbolRate, *interpFactor, *rrcAlpha, *rrcOrder, costasBW, mode, config.DefaultAGCTarget, config.DefaultAGCWindow)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		src.Close()
		return 1
	}

	initFreq := 0.0
	if *coarseScan {
		initFreq = demod.PrescanFreq(src, cfg)
		src.Close()
		src, err = openSource(inputPath, *srcRateStr, *bps)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
	}

	destPath := *outPath
	if destPath == "" {
		destPath = config.GenFilename(time.Now())
	}
	out, err := writer.New(destPath, writer.DefaultChunkSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		src.Close()
		return 1
	}

	driver := demod.New(src, cfg, out, initFreq)

	var monitor *audio.Monitor
	if *monitorAudio {
		if err := audio.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "audio init: %v\n", err)
		} else {
			defer audio.Terminate()
			monitor = audio.NewMonitor()
			if err := monitor.Open(); err != nil {
				fmt.Fprintf(os.Stderr, "monitor open: %v\n", err)
				monitor = nil
			} else if err := monitor.Start(); err != nil {
				fmt.Fprintf(os.Stderr, "monitor start: %v\n", err)
				monitor = nil
			} else {
				defer monitor.Close()
				driver.SetMonitorSink(func(chunk []float32) {
					if err := monitor.WriteChunk(chunk); err != nil {
						fmt.Fprintf(os.Stderr, "monitor write: %v\n", err)
					}
				})
			}
		}
	}

	var handlers *server.Handlers
	if *listenAddr != "" {
		handlers = server.NewHandlers(driver)
		if *pushSymbols {
			driver.SetSymbolSink(handlers.PushSymbols)
		}
		srv := server.NewServer(*listenAddr, handlers)
		go func() {
			if err := srv.Start(); err != nil {
				fmt.Fprintf(os.Stderr, "monitor server: %v\n", err)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		driver.Stop()
	}()

	driver.Start()

	if !*quiet {
		go printStatus(driver, time.Duration(*refreshMS)*time.Millisecond)
	}
	if handlers != nil {
		go pushStatusLoop(driver, handlers, time.Duration(*refreshMS)*time.Millisecond)
	}

	if err := driver.Join(); err != nil {
		fmt.Fprintf(os.Stderr, "demodulation error: %v\n", err)
		return 1
	}

	if !*quiet {
		printLine(driver)
		fmt.Println()
	}
	return 0
}

func openSource(path, srcRateStr string, bps int) (source.Source, error) {
	ext := filepath.Ext(path)
	if ext == ".wav" || ext == ".WAV" {
		return source.OpenWAV(path)
	}

	if srcRateStr == "" {
		return nil, fmt.Errorf("raw input requires -s <samplerate>")
	}
	srcRate, err := config.Dehumanize(srcRateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid -s: %w", err)
	}
	return source.OpenRaw(path, srcRate, bps)
}

func printStatus(d *demod.Driver, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for d.Status() {
		<-t.C
		printLine(d)
	}
}

func printLine(d *demod.Driver) {
	lockStr := "no"
	if d.Locked() {
		lockStr = "yes"
	}
	fmt.Printf("\r%s / %s   freq=%.5f rad/smp   gain=%.3f   locked=%s   ",
		config.Humanize(d.Done()), config.Humanize(d.Size()), d.Freq(), d.Gain(), lockStr)
}

func pushStatusLoop(d *demod.Driver, h *server.Handlers, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for d.Status() {
		<-t.C
		h.PushStatus()
	}
	h.PushStatus()
}
