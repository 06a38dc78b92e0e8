package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"pdfqa/internal/answer"
	"pdfqa/internal/chunker"
	"pdfqa/internal/config"
	"pdfqa/internal/extractor/pdf"
	"pdfqa/internal/llm"
	"pdfqa/internal/service"
	"pdfqa/internal/summarizer"
	"pdfqa/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var verbose bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docqa/config.yaml if not provided)")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Println("Usage: docqa [--config=config.yaml] document.pdf")
		os.Exit(1)
	}
	docPath := flag.Arg(0)

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		// Keep the TUI clean; anything noteworthy still reaches stderr.
		log.SetLevel(logrus.WarnLevel)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Assemble components
	split := chunker.New(
		chunker.WithSizes(cfg.Chunking.TargetSize, cfg.Chunking.MaxSize, cfg.Chunking.MinSize),
		chunker.WithOverlap(cfg.Chunking.Overlap),
		chunker.WithKeepTail(cfg.Chunking.KeepTail),
	)

	composerOpts := []answer.Option{
		answer.WithThresholds(cfg.Retrieval.MinSimilarity, cfg.Retrieval.AnswerThreshold),
		answer.WithLogger(log),
	}
	if cfg.Answerer.Enabled {
		provider := llm.NewOllama(cfg.Answerer.BaseURL, cfg.Answerer.Model,
			time.Duration(cfg.Answerer.TimeoutSecs)*time.Second)
		composerOpts = append(composerOpts, answer.WithProvider(provider))
	}

	svc := service.New(
		pdf.New(log),
		split,
		answer.New(composerOpts...),
		summarizer.NewFrequencySummarizer(),
		cfg.Retrieval.TopK,
		cfg.Summary.MaxSentences,
		log,
	)

	summary, err := svc.LoadDocument(docPath)
	if err != nil {
		log.Fatalf("failed to load %s: %v", docPath, err)
	}

	m := tui.New(svc, summary)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
