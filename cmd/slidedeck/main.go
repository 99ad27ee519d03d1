package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/peterbourgon/ff/v3"

	"github.com/lecturevod/slidedeck/config"
	"github.com/lecturevod/slidedeck/log"
	"github.com/lecturevod/slidedeck/pipeline"
)

func main() {
	fs := flag.NewFlagSet("slidedeck", flag.ExitOnError)
	cli := config.Cli{}
	version := fs.Bool("version", false, "print application version")
	jobID := fs.String("job-id", "", "job identifier; a UUID is generated if unset")
	enableSlides := fs.Bool("enable-slides", true, "run ROI location, funnel analysis and high-resolution capture")
	config.RegisterFlags(fs, &cli)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("SLIDEDECK")); err != nil {
		fmt.Fprintf(os.Stderr, "error parsing cli: %s\n", err)
		os.Exit(1)
	}

	if *version {
		fmt.Printf("slidedeck version: %s\n", config.Version)
		return
	}
	if cli.SourceVideo == "" {
		fmt.Fprintln(os.Stderr, "-source is required")
		os.Exit(1)
	}

	cli.ApplyTo()

	id := *jobID
	if id == "" {
		id = uuid.NewString()
	}

	p := pipeline.New()
	p.DumpDebugImages = cli.DumpDebugImages

	cb := func(percent int, message string) {
		log.Log(id, message, "percent", percent)
	}

	result, err := p.Process(id, cli.SourceVideo, *enableSlides, cli.EnableTranscription, cb)
	if err != nil {
		log.LogError(id, "job failed", err)
		os.Exit(1)
	}

	if result.PPTXPath != "" {
		fmt.Printf("deck written to %s (%d slides)\n", result.PPTXPath, result.SlideCount)
	}
	if result.TranscriptPath != "" {
		fmt.Printf("transcript written to %s\n", result.TranscriptPath)
	}
}
