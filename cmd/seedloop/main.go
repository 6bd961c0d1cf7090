package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/cbegin/seedloop"
)

func main() {
	var (
		seedText   = flag.String("seed", "", "seed, decimal or 0x hex (also accepted as the first argument)")
		segments   = flag.Int("segments", 1, "segments to render or play")
		outPath    = flag.String("out", "", "WAV output path (default seed_0x<seed>.wav)")
		midiPath   = flag.String("midi", "", "also export the segment timeline as a MIDI file")
		configPath = flag.String("config", "", "YAML config file; flags override it")
		play       = flag.Bool("play", false, "play through the audio device instead of rendering")
		loop       = flag.Bool("loop", false, "with -play, loop until interrupted")
		volume     = flag.Float64("volume", 1.0, "master volume scalar")
		audition   = flag.String("audition", "", "render one instrument on its own: "+strings.Join(seedloop.Instruments(), "|"))
		verbose    = flag.Bool("verbose", false, "log engine details to stderr")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *audition != "" {
		if err := runAudition(*audition, *outPath); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg := seedloop.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = seedloop.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["segments"] {
		cfg.Segments = *segments
	}
	if set["out"] {
		cfg.Output = *outPath
	}
	if set["midi"] {
		cfg.MIDI = *midiPath
	}
	if set["volume"] {
		cfg.Volume = *volume
	}
	if s := firstNonEmpty(*seedText, flag.Arg(0)); s != "" {
		seed, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			log.Fatalf("invalid seed %q: %v", s, err)
		}
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if *play {
		if err := runPlay(cfg, logger, *loop); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := runRender(cfg, logger); err != nil {
		log.Fatal(err)
	}
}

func runRender(cfg seedloop.Config, logger *slog.Logger) error {
	r, err := seedloop.RenderSegments(cfg, logger)
	if err != nil {
		return err
	}
	path := cfg.OutputPath()
	if err := r.WriteWAVFile(path); err != nil {
		return err
	}
	if cfg.MIDI != "" {
		if err := r.WriteMIDIFile(cfg.MIDI); err != nil {
			return err
		}
	}
	fmt.Print(r.Description)
	fmt.Printf("wrote %s (%d frames, %.2f bpm, root %.2f Hz, rms %.4f)\n", path, r.Frames(), r.BPM, r.RootFreq, r.RMS)
	return nil
}

func runPlay(cfg seedloop.Config, logger *slog.Logger, loop bool) error {
	var opts []seedloop.PlayerOption
	opts = append(opts, seedloop.WithLogger(logger))
	if !loop {
		opts = append(opts, seedloop.WithSegments(cfg.Segments))
	}
	pl, err := seedloop.NewPlayer(cfg, opts...)
	if err != nil {
		return err
	}
	fmt.Print(pl.Describe())
	ch := pl.Watch()
	if err := pl.Play(); err != nil {
		return err
	}
	fmt.Printf("playing seed %#x\n", cfg.Seed)
	for event := range ch {
		switch event.Kind {
		case seedloop.EventPlaybackEnded:
			fmt.Println("playback completed")
			goto done
		case seedloop.EventMelodyHit:
			fmt.Printf("melody  %8d  rms %.3f %s\n", event.Frame, event.RMS, meter(event.RMS))
		case seedloop.EventBassHit:
			fmt.Printf("bass    %8d  rms %.3f %s\n", event.Frame, event.RMS, meter(event.RMS))
		}
	}
done:
	pl.Wait()
	return pl.Stop()
}

func runAudition(name, out string) error {
	l, r, err := seedloop.Audition(name, 44100, 2, 0.5)
	if err != nil {
		return err
	}
	if out == "" {
		out = name + ".wav"
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := seedloop.WriteWAV(f, l, r, 44100); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func meter(rms float32) string {
	n := int(rms * 40)
	if n > 40 {
		n = 40
	}
	return strings.Repeat("#", n)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
