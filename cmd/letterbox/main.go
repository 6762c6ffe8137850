package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ivlev/letterbox/internal/config"
	"github.com/ivlev/letterbox/internal/edges"
	"github.com/ivlev/letterbox/internal/engine"
	"github.com/ivlev/letterbox/internal/source"
	"github.com/ivlev/letterbox/internal/system"
)

func main() {
	configPtr := flag.String("config", "", "YAML-файл настроек (флаги имеют приоритет)")
	flags := config.RegisterFlags(flag.CommandLine)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <input> <output>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Удаляет черные полосы (letterbox/pillarbox). <input> - изображение, папка\n")
		fmt.Fprintf(os.Stderr, "с изображениями или PDF; для папок и PDF <output> - папка.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPtr)
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	// Флаги из командной строки перекрывают файл и окружение
	flags.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("config: %v", err)
	}
	cfg.InputPath, cfg.OutputPath = flag.Arg(0), flag.Arg(1)

	if cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	system.InitResourceLimits()

	logrus.Infof("input: %s", cfg.InputPath)
	logrus.Infof("output: %s", cfg.OutputPath)

	det, err := edges.NewDetector(cfg.Detector, cfg.EdgeParams())
	if err != nil {
		logrus.Fatalf("detector: %v", err)
	}

	src, err := source.Open(cfg.InputPath)
	if err != nil {
		logrus.Fatalf("source: %v", err)
	}
	defer src.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	project := engine.NewProject(cfg, src, det)
	rep, err := project.Run(ctx)
	if err != nil {
		src.Close()
		logrus.Fatalf("%v", err)
	}

	cropped := 0
	for _, e := range rep.Entries {
		if e.Cropped {
			cropped++
		}
	}
	logrus.Infof("done: %d page(s), %d cropped", len(rep.Entries), cropped)
}
