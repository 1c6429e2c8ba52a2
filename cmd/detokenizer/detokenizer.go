package main

import (
	"bufio"
	"flag"
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/wikilm/wiki40b_bpe"
)

// Turns a tokenized corpus back into plain text, one document per line.

func main() {
	inputFile := flag.String("input", "ngram_training_corpus.txt",
		"tokenized corpus to detokenize")
	outputFile := flag.String("output", "detokenized.txt",
		"output file to write plain text to")
	flag.Parse()

	if *inputFile == "" {
		flag.Usage()
		log.Fatal("Must provide -input")
	}
	if *outputFile == "" {
		flag.Usage()
		log.Fatal("Must provide -output")
	}

	// check if input file exists
	if _, err := os.Stat(*inputFile); os.IsNotExist(err) {
		log.Fatal("Input file does not exist")
	}

	inputFileHandle, err := os.Open(*inputFile)
	if err != nil {
		log.Fatal(err)
	}
	defer inputFileHandle.Close()

	outputFileHandle, err := os.Create(*outputFile)
	if err != nil {
		log.Fatal(err)
	}
	defer outputFileHandle.Close()

	reader := bufio.NewReaderSize(inputFileHandle, 1024*1024)
	writer := bufio.NewWriterSize(outputFileHandle, 1024*1024)
	var lines int
	var written uint64
	for {
		// Corpus lines hold whole documents and can be arbitrarily long.
		line, readErr := reader.ReadString('\n')
		if len(line) > 0 {
			if line[len(line)-1] == '\n' {
				line = line[:len(line)-1]
			}
			text := wiki40b_bpe.DecodeCorpusLine(line)
			if _, err := writer.WriteString(text + "\n"); err != nil {
				log.Fatal(err)
			}
			lines++
			written += uint64(len(text) + 1)
		}
		if readErr == io.EOF {
			break
		} else if readErr != nil {
			log.Fatal(readErr)
		}
	}
	if err := writer.Flush(); err != nil {
		log.Fatal(err)
	}
	log.Printf("Detokenized %d documents into %s (%s)", lines, *outputFile,
		humanize.Bytes(written))
}
