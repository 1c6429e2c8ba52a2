package main

import (
	"flag"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/wikilm/wiki40b_bpe"
)

func main() {
	configPath := flag.String("config", "",
		"YAML config file; flags given on the command line override it")
	inputDir := flag.String("input", "",
		"directory holding the raw .jsonl shards")
	outputDir := flag.String("output", "",
		"directory to write cleaned .json arrays to")
	pattern := flag.String("pattern", "",
		"glob for input shards, `**` recurses")
	minChars := flag.Int("min_chars", 0,
		"drop records shorter than this after cleaning, 0 disables")
	keepParagraphs := flag.Bool("keep_paragraphs", false,
		"keep paragraph breaks instead of collapsing all whitespace")
	nfc := flag.Bool("nfc", false, "NFC-normalize cleaned text")
	reorder := flag.String("reorder", "",
		"shard order: path_ascending, path_descending, size_ascending, "+
			"size_descending, random, none")
	flag.Parse()

	cfg := wiki40b_bpe.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = wiki40b_bpe.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	// Only flags actually passed win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputDir = *inputDir
		case "output":
			cfg.OutputDir = *outputDir
		case "pattern":
			cfg.InputPattern = *pattern
		case "min_chars":
			cfg.MinCharsAfterClean = *minChars
		case "keep_paragraphs":
			cfg.PreserveParagraphs = *keepParagraphs
		case "nfc":
			cfg.NormalizeUnicode = *nfc
		case "reorder":
			cfg.Reorder = *reorder
		}
	})

	log.Printf("Cleaning %s/%s into %s", cfg.InputDir, cfg.InputPattern,
		cfg.OutputDir)
	begin := time.Now()
	converter := wiki40b_bpe.NewConverter(cfg)
	batch, err := converter.ConvertDir(cfg.InputDir, cfg.OutputDir,
		cfg.InputPattern, cfg.OutputExt, cfg.Reorder)
	if err != nil {
		log.Fatal(err)
	}
	var total int64
	for _, stats := range batch.Files {
		total += stats.Bytes
	}
	log.Printf("Done: %d files, %d kept, %d dropped, %d skipped, %s read "+
		"in %s", len(batch.Files), batch.Kept, batch.Dropped, batch.Skipped,
		humanize.Bytes(uint64(total)), time.Since(begin).Round(time.Millisecond))
}
