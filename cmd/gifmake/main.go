// Command gifmake assembles an animated GIF from a list of frame sources:
// file paths or http(s) URLs, given either as arguments or as a YAML
// manifest.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kerosindigital/GifCreator-NextGen/pkg/config"
	"github.com/kerosindigital/GifCreator-NextGen/pkg/gifcreator"
	"github.com/kerosindigital/GifCreator-NextGen/pkg/normalize"
)

var (
	configFile = flag.String("config", "", "YAML manifest describing the frames to assemble.")
	output     = flag.String("output", "out.gif", "file to write the animated GIF to.")
	delay      = flag.Int("delay", 10, "delay between frames in hundredths of a second.")
	loopCount  = flag.Int("loop", 0, "number of animation loops, 0 loops forever.")
	verbose    = flag.Bool("v", false, "enable debug logging.")
)

func main() {
	flag.Parse()
	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	out := *output
	loop := *loopCount
	var sources []normalize.Source
	var delays []int

	if *configFile != "" {
		cfg, err := config.Load(*configFile)
		if err != nil {
			log.Fatal().Err(err).Msg("error reading config file")
		}
		if cfg.Output != "" {
			out = cfg.Output
		}
		loop = cfg.LoopCount
		for _, f := range cfg.Frames {
			sources = append(sources, f.Source)
			delays = append(delays, f.Delay)
		}
	} else {
		for _, arg := range flag.Args() {
			sources = append(sources, arg)
			delays = append(delays, *delay)
		}
	}
	if len(sources) == 0 {
		log.Fatal().Msg("no frame sources given; pass -config or list paths/URLs as arguments")
	}

	frames, err := normalize.All(context.Background(), sources)
	if err != nil {
		log.Fatal().Err(err).Msg("error normalizing frame sources")
	}
	stream, err := gifcreator.New().Create(frames, delays, loop)
	if err != nil {
		log.Fatal().Err(err).Msg("error assembling animated gif")
	}
	if err := os.WriteFile(out, stream, 0644); err != nil {
		log.Fatal().Err(err).Msg("error writing output file")
	}
	log.Info().
		Str("output", out).
		Int("frames", len(frames)).
		Int("bytes", len(stream)).
		Msg("wrote animated gif")
}
