// main.go - Command line entry point

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

const PCM_CHUNK_FRAMES = 512

func boilerPlate() {
	fmt.Fprintln(os.Stderr, "\n\033[38;2;255;20;147m ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████\033[0m\n\033[38;2;255;50;147m▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀\033[0m\n\033[38;2;255;80;147m▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███\033[0m\n\033[38;2;255;110;147m░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄\033[0m\n\033[38;2;255;140;147m░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒\033[0m\n\033[38;2;255;170;147m░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░\033[0m\n\033[38;2;255;200;147m ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░\033[0m\n\033[38;2;255;230;147m ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░\033[0m\n\033[38;2;255;255;147m ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░\033[0m")
	fmt.Fprintln(os.Stderr, "\nSound expression synthesizer for simulated micro:bit boards.")
	fmt.Fprintln(os.Stderr, "(c) 2024 - 2026 Zayn Otley")
	fmt.Fprintln(os.Stderr, "https://github.com/IntuitionAmiga/sfxsynth")
	fmt.Fprintln(os.Stderr, "License: GPLv3 or later")
}

func main() {
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *Config) *cobra.Command {
	var logger *slog.Logger
	root := &cobra.Command{
		Use:           "sfxsynth",
		Short:         "Decode, play and render micro:bit sound expressions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = cfg.NewLogger(os.Stderr)
			slog.SetDefault(logger)
			_, err := cfg.Validate()
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&cfg.Backend, "backend", "b", cfg.Backend, "audio backend: oto, ebiten, portaudio, alsa, headless")
	pf.IntVarP(&cfg.SampleRate, "rate", "r", cfg.SampleRate, "device sample rate")
	pf.IntVar(&cfg.Volume, "volume", cfg.Volume, "master volume 0-255")
	pf.BoolVar(&cfg.Muted, "mute", cfg.Muted, "start muted")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "debug logging")
	pf.Uint64Var(&cfg.NoiseSeed, "seed", cfg.NoiseSeed, "noise seed (0 = random)")

	log := func() *slog.Logger { return logger }
	root.AddCommand(
		newPlayCmd(cfg, log),
		newDecodeCmd(),
		newListCmd(),
		newRenderCmd(cfg),
		newToneCmd(cfg, log),
		newPCMCmd(cfg, log),
		newBoardCmd(cfg, log),
		newScriptCmd(cfg, log),
		newServeCmd(cfg, log),
		&cobra.Command{
			Use:   "features",
			Short: "Show version and compiled features",
			Run: func(cmd *cobra.Command, args []string) {
				printFeatures(cmd.OutOrStdout())
			},
		},
	)
	return root
}

func newPlayCmd(cfg *Config, log func() *slog.Logger) *cobra.Command {
	var fromClipboard bool
	cmd := &cobra.Command{
		Use:   "play <name|descriptor|@file>...",
		Short: "Play sound expressions one after another",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromClipboard {
				text, err := readClipboardExpression()
				if err != nil {
					return err
				}
				args = append(args, text)
			}
			if len(args) == 0 {
				return fmt.Errorf("nothing to play")
			}

			sess, err := openSession(*cfg, log(), AudioOptions{})
			if err != nil {
				return err
			}
			defer sess.Close()

			player := NewExpressionPlayer(sess.board)
			for _, arg := range args {
				if path, ok := strings.CutPrefix(arg, "@"); ok {
					err = player.Load(path)
				} else {
					err = player.LoadExpression(arg)
				}
				if err != nil {
					return err
				}
				meta := player.Metadata()
				title := meta.Title
				if title == "" {
					title = "expression"
				}
				fmt.Printf("Playing %s (%d records, %s)\n", title, meta.Records, player.DurationText())
				player.Play()
				if err := player.Wait(cmd.Context()); err != nil {
					player.Stop()
					return nil
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromClipboard, "clipboard", false, "also play the expression on the clipboard")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	var asJSON, encode, exact, toClipboard bool
	cmd := &cobra.Command{
		Use:   "decode <name|descriptor>",
		Short: "Decode an expression and print its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jitter := JitterFunc(nil)
			if exact {
				jitter = NoJitter
			}
			effects, err := ParseSoundEffectsWithJitter(ReplaceBuiltinSound(args[0]), jitter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(effects)
			case encode:
				fmt.Fprintln(out, EncodeSoundEffects(effects))
			default:
				for i, fx := range effects {
					fmt.Fprintf(out, "%2d: %s\n", i, fx)
				}
				fmt.Fprintf(out, "total %s\n", formatDurationText(TotalDuration(effects)/1000))
			}
			if toClipboard {
				return writeClipboardExpression(EncodeSoundEffects(effects))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&encode, "encode", false, "print the re-encoded descriptor")
	cmd.Flags().BoolVar(&exact, "exact", false, "decode without randomisation")
	cmd.Flags().BoolVar(&toClipboard, "copy", false, "copy the re-encoded descriptor to the clipboard")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in expressions",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range BuiltinSoundNames() {
				effects, err := ParseSoundEffectsWithJitter(ReplaceBuiltinSound(name), NoJitter)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				meta := metadataFor(name, effects)
				fmt.Fprintf(out, "%-12s %d records  %s\n", name, meta.Records, formatDurationText(meta.Duration))
			}
			return nil
		},
	}
}

func newRenderCmd(cfg *Config) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render <name|descriptor>",
		Short: "Render an expression to a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			effects, err := DecodeExpression(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				name := args[0]
				if !IsBuiltinSound(name) {
					name = "expression"
				}
				output = name + ".wav"
			}
			samples := RenderExpression(effects, cfg.SampleRate, cfg.SynthOptions()...)
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := WriteWAV(f, samples, cfg.SampleRate); err != nil {
				return err
			}
			fmt.Printf("Wrote %s (%d samples, %s)\n", output, len(samples),
				formatDurationText(float64(len(samples))/float64(cfg.SampleRate)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <name>.wav)")
	return cmd
}

func newToneCmd(cfg *Config, log func() *slog.Logger) *cobra.Command {
	var periodUs, amplitude int
	var duration time.Duration
	cmd := &cobra.Command{
		Use:   "tone",
		Short: "Sound the legacy pin oscillator",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(*cfg, log(), AudioOptions{})
			if err != nil {
				return err
			}
			defer sess.Close()

			sess.board.SetPeriodUs(periodUs)
			sess.board.SetAmplitudeU10(amplitude)
			fmt.Printf("Tone %.1fHz for %s\n", sess.board.Frequency(), duration)
			timer := time.NewTimer(duration)
			defer timer.Stop()
			select {
			case <-cmd.Context().Done():
			case <-timer.C:
			}
			sess.board.SetAmplitudeU10(0)
			return nil
		},
	}
	cmd.Flags().IntVar(&periodUs, "period-us", 2273, "period in microseconds (0 = 6068Hz)")
	cmd.Flags().IntVar(&amplitude, "amplitude", 512, "amplitude 0-1023 (0 = off)")
	cmd.Flags().DurationVar(&duration, "duration", time.Second, "how long to sound")
	return cmd
}

func newPCMCmd(cfg *Config, log func() *slog.Logger) *cobra.Command {
	var channel string
	var rate int
	cmd := &cobra.Command{
		Use:   "pcm <file.u8|file.wav>",
		Short: "Stream raw unsigned 8-bit or WAV audio through a board channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := loadPCMFile(args[0], rate)
			if err != nil {
				return err
			}
			return streamPCM(cmd.Context(), *cfg, log(), channel, buf)
		},
	}
	cmd.Flags().StringVar(&channel, "channel", "default", "channel: default or speech")
	cmd.Flags().IntVar(&rate, "pcm-rate", 11025, "sample rate of raw .u8 input")
	return cmd
}

func loadPCMFile(path string, rate int) (*AudioBuffer, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return LoadWAV(f)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return PCMBufferFromU8(data, rate), nil
}

// splitBuffer slices buf into blocks of at most frames samples sharing
// its storage.
func splitBuffer(buf *AudioBuffer, frames int) []*AudioBuffer {
	var out []*AudioBuffer
	for off := 0; off < buf.Length(); off += frames {
		end := min(off+frames, buf.Length())
		out = append(out, &AudioBuffer{SampleRate: buf.SampleRate, Data: buf.Data[off:end]})
	}
	return out
}

func streamPCM(ctx context.Context, cfg Config, logger *slog.Logger, channel string, buf *AudioBuffer) error {
	if channel != "default" && channel != "speech" {
		return fmt.Errorf("unknown channel %q", channel)
	}
	chunks := splitBuffer(buf, PCM_CHUNK_FRAMES)
	next := 0
	var ch *BufferedAudio
	feed := func() {
		if next < len(chunks) {
			next++
			ch.WriteData(chunks[next-1])
		}
	}

	opts := AudioOptions{}
	if channel == "speech" {
		opts.SpeechAudioCallback = feed
	} else {
		opts.DefaultAudioCallback = feed
	}
	sess, err := openSession(cfg, logger, opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	ch = sess.board.Default()
	if channel == "speech" {
		ch = sess.board.Speech()
	}
	fmt.Printf("Streaming %d samples at %dHz on %s\n", buf.Length(), buf.SampleRate, channel)
	sess.ctx.Run(func() {
		ch.Init(buf.SampleRate)
		feed()
	})

	ticker := time.NewTicker(PLAYER_POLL_INTERVAL)
	defer ticker.Stop()
	for {
		var finished bool
		sess.ctx.Run(func() {
			finished = sess.ctx.IsClosed() || next >= len(chunks) && ch.Pending() == 0
		})
		if finished {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func newBoardCmd(cfg *Config, log func() *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Interactive soundboard of the built-in expressions",
		RunE: func(cmd *cobra.Command, args []string) error {
			boilerPlate()
			sess, err := openSession(*cfg, log(), AudioOptions{})
			if err != nil {
				return err
			}
			defer sess.Close()
			return NewSoundboard(sess.board, cfg.Volume, os.Stdout).Run(cmd.Context())
		},
	}
}

func newScriptCmd(cfg *Config, log func() *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "script <file.lua>",
		Short: "Run a Lua script against the board (require \"audio\")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(*cfg, log(), AudioOptions{})
			if err != nil {
				return err
			}
			defer sess.Close()
			return RunLuaScript(cmd.Context(), sess.board, args[0])
		},
	}
}

func newServeCmd(cfg *Config, log func() *slog.Logger) *cobra.Command {
	var renderOnly bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			boilerPlate()
			var board *BoardAudio
			if !renderOnly {
				sess, err := openSession(*cfg, log(), AudioOptions{})
				if err != nil {
					return err
				}
				defer sess.Close()
				board = sess.board
			}
			fmt.Printf("\n  sfxsynth API running at: http://localhost%s\n\n", cfg.Listen)
			return NewSoundServer(board, *cfg, log()).Run(cmd.Context(), cfg.Listen)
		},
	}
	cmd.Flags().StringVar(&cfg.Listen, "addr", cfg.Listen, "listen address")
	cmd.Flags().BoolVar(&renderOnly, "render-only", false, "serve without an audio device")
	return cmd
}
