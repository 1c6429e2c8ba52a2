package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/wikilm/wiki40b_bpe"
	"github.com/wikilm/wiki40b_bpe/pkg/bpe"
)

// Either trains a BPE vocabulary on the cleaned shards or loads a pre-trained
// gpt_bpe vocabulary, then writes the tokenized corpus and run metadata.

func main() {
	configPath := flag.String("config", "",
		"YAML config file; flags given on the command line override it")
	input := flag.String("input", "",
		"directory holding the cleaned .json arrays")
	pattern := flag.String("pattern", "",
		"glob for cleaned files under -input, `**` recurses")
	tokenizerId := flag.String("tokenizer", "",
		"`train` to learn a vocabulary, or a gpt_bpe tokenizer id "+
			"[gpt2, pile, clip, nerdstash, huggingface-id]")
	vocabSize := flag.Int("vocab_size", 0, "vocabulary size to train")
	minFrequency := flag.Int("min_frequency", 0,
		"ignore merges seen fewer times than this")
	vocabDir := flag.String("vocab_dir", "",
		"directory to save vocab.json and merges.txt to")
	corpusPath := flag.String("corpus", "", "tokenized corpus output")
	metadataPath := flag.String("metadata", "", "run metadata output")
	flag.Parse()

	cfg := wiki40b_bpe.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = wiki40b_bpe.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	training := &cfg.Training
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			training.Input = *input
		case "pattern":
			training.Pattern = *pattern
		case "tokenizer":
			training.Tokenizer = *tokenizerId
		case "vocab_size":
			training.VocabSize = *vocabSize
		case "min_frequency":
			training.MinFrequency = *minFrequency
		case "vocab_dir":
			training.VocabDir = *vocabDir
		case "corpus":
			training.CorpusPath = *corpusPath
		case "metadata":
			training.MetadataPath = *metadataPath
		}
	})

	pathInfos, err := wiki40b_bpe.GlobShards(training.Input, training.Pattern)
	if err != nil {
		log.Fatal(err)
	}
	wiki40b_bpe.SortPathInfoByPath(pathInfos, true)
	sourceFiles := wiki40b_bpe.Paths(pathInfos)
	if len(sourceFiles) == 0 {
		log.Fatalf("No files matching %s found in %s",
			training.Pattern, training.Input)
	}

	var numDocuments int
	var preTokenizer string
	if training.Tokenizer == "train" {
		numDocuments, preTokenizer = trainAndSerialize(training, sourceFiles)
	} else {
		numDocuments, preTokenizer = streamPretrained(training, sourceFiles)
	}
	log.Printf("Tokenizer and corpus ready! Processed %d documents total.",
		numDocuments)

	meta := wiki40b_bpe.RunMetadata{
		VocabSize:     training.VocabSize,
		NumDocuments:  numDocuments,
		SourceFiles:   sourceFiles,
		PreTokenizer:  preTokenizer,
		SpecialTokens: training.SpecialTokens,
		MinFrequency:  training.MinFrequency,
	}
	if err := wiki40b_bpe.WriteMetadata(training.MetadataPath, meta); err != nil {
		log.Fatal(err)
	}
	log.Printf("Training metadata saved to %s", training.MetadataPath)
}

// trainAndSerialize needs every text in memory: the trainer sees the whole
// corpus before any document can be tokenized.
func trainAndSerialize(training *wiki40b_bpe.TrainingConfig,
	sourceFiles []string) (int, string) {
	log.Print("Loading texts from JSON files...")
	var texts []string
	if _, err := wiki40b_bpe.ReadCleanedTexts(sourceFiles,
		func(text string) error {
			texts = append(texts, text)
			return nil
		}); err != nil {
		log.Fatal(err)
	}
	log.Printf("Total documents loaded: %d", len(texts))
	if len(texts) == 0 {
		log.Fatal("No documents to train on")
	}

	trainerCfg := bpe.DefaultTrainerConfig()
	trainerCfg.VocabSize = training.VocabSize
	trainerCfg.MinFrequency = training.MinFrequency
	trainerCfg.SpecialTokens = training.SpecialTokens
	tokenizer, err := bpe.NewHFTrainer(trainerCfg).Train(texts)
	if err != nil {
		log.Fatal(err)
	}
	if err := tokenizer.SaveVocab(training.VocabDir); err != nil {
		log.Fatal(err)
	}
	log.Printf("Vocabulary saved to %s",
		filepath.Join(training.VocabDir, "vocab.json"))

	log.Printf("Tokenizing corpus and saving to %s...", training.CorpusPath)
	corpus, err := wiki40b_bpe.CreateCorpus(training.CorpusPath)
	if err != nil {
		log.Fatal(err)
	}
	corpus.ProgressEvery = training.ProgressEvery
	corpus.Total = len(texts)
	if err := wiki40b_bpe.SerializeCorpus(texts, tokenizer,
		corpus); err != nil {
		corpus.Abort()
		log.Fatal(err)
	}
	if err := corpus.Close(); err != nil {
		log.Fatal(err)
	}
	return corpus.Documents(), trainerCfg.PreTokenizerDescription()
}

// streamPretrained tokenizes each text as it is read, so memory stays flat
// regardless of corpus size.
func streamPretrained(training *wiki40b_bpe.TrainingConfig,
	sourceFiles []string) (int, string) {
	tokenizer, err := bpe.NewGPTTokenizer(training.Tokenizer)
	if err != nil {
		log.Fatal(err)
	}
	training.VocabSize = tokenizer.VocabSize()

	log.Printf("Tokenizing corpus and saving to %s...", training.CorpusPath)
	corpus, err := wiki40b_bpe.CreateCorpus(training.CorpusPath)
	if err != nil {
		log.Fatal(err)
	}
	corpus.ProgressEvery = training.ProgressEvery
	if _, err := wiki40b_bpe.ReadCleanedTexts(sourceFiles,
		func(text string) error {
			return wiki40b_bpe.SerializeDocument(text, tokenizer, corpus)
		}); err != nil {
		corpus.Abort()
		log.Fatal(err)
	}
	if err := corpus.Close(); err != nil {
		log.Fatal(err)
	}
	return corpus.Documents(), "gpt_bpe:" + training.Tokenizer
}
