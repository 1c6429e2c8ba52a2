package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/wikilm/wiki40b_bpe"
	"github.com/wikilm/wiki40b_bpe/pkg/bpe"
)

// A REPL that shows what the cleaner does to a line of raw wiki40b text and
// how a pre-trained tokenizer splits the result.

func main() {
	tokenizerOpt := flag.String("tokenizer", "gpt2",
		"gpt_bpe tokenizer to show tokens with, empty to skip")
	keepParagraphs := flag.Bool("keep_paragraphs", false,
		"keep paragraph breaks instead of collapsing all whitespace")
	flag.Parse()

	cfg := wiki40b_bpe.DefaultConfig()
	cfg.PreserveParagraphs = *keepParagraphs
	cleaner := wiki40b_bpe.NewCleaner(cfg)

	var tokenizer *bpe.GPTTokenizer
	if *tokenizerOpt != "" {
		var err error
		if tokenizer, err = bpe.NewGPTTokenizer(*tokenizerOpt); err != nil {
			log.Fatal(err)
		}
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(">>> ")
		input, err := reader.ReadString('\n')
		if err == io.EOF && input == "" {
			fmt.Println()
			return
		} else if err != nil && err != io.EOF {
			log.Fatal(err)
		}
		// Typed \n stands for a real newline.
		input = strings.Replace(strings.TrimSuffix(input, "\n"), "\\n",
			"\n", -1)

		cleaned := cleaner.CleanText(input)
		fmt.Printf("%q\n", cleaned)
		if tokenizer == nil {
			continue
		}
		tokens, err := tokenizer.Tokenize(cleaned)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(wiki40b_bpe.RenderCorpusLine(tokens))
	}
}
