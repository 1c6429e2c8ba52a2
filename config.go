package wiki40b_bpe

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Replacement is one literal marker rewrite, applied as a full pass over the
// text.
type Replacement struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// TrainingConfig holds the settings handed to the external BPE trainer and
// the corpus/metadata sinks.
type TrainingConfig struct {
	Input         string   `yaml:"input"`
	Pattern       string   `yaml:"pattern"`
	Tokenizer     string   `yaml:"tokenizer"`
	VocabSize     int      `yaml:"vocab_size"`
	MinFrequency  int      `yaml:"min_frequency"`
	SpecialTokens []string `yaml:"special_tokens"`
	VocabDir      string   `yaml:"vocab_dir"`
	CorpusPath    string   `yaml:"corpus"`
	MetadataPath  string   `yaml:"metadata"`
	ProgressEvery int      `yaml:"progress_every"`
}

// Config
// Every tunable of the cleaning pipeline. Components are built from a Config
// so tests can run them with alternate thresholds.
type Config struct {
	InputDir     string `yaml:"input_dir"`
	OutputDir    string `yaml:"output_dir"`
	InputPattern string `yaml:"input_pattern"`
	OutputExt    string `yaml:"output_ext"`
	Reorder      string `yaml:"reorder"`

	// MinCharsAfterClean drops records whose cleaned text has fewer
	// characters. 0 disables the filter.
	MinCharsAfterClean int           `yaml:"min_chars_after_clean"`
	MarkerReplacements []Replacement `yaml:"marker_replacements"`
	CutAtHeadings      []string      `yaml:"cut_at_headings"`
	PreserveParagraphs bool          `yaml:"preserve_paragraphs"`
	NormalizeUnicode   bool          `yaml:"normalize_unicode"`
	ReadBufferSize     int           `yaml:"read_buffer_size"`

	Training TrainingConfig `yaml:"training"`
}

// DefaultMarkerReplacements
// The doubled newline marker must come before the single one, otherwise it
// is expanded twice.
func DefaultMarkerReplacements() []Replacement {
	return []Replacement{
		{"_NEWLINE__NEWLINE_", "\n\n"},
		{"_NEWLINE_", "\n"},
		{"_START_ARTICLE_", "\n"},
		{"_START_SECTION_", "\n"},
		{"_START_PARAGRAPH_", "\n"},
	}
}

// DefaultCutAtHeadings lists the trailing Wikipedia sections that are dropped
// along with everything after them.
func DefaultCutAtHeadings() []string {
	return []string{
		"references",
		"external links",
		"see also",
		"further reading",
		"notes",
		"bibliography",
		"sources",
	}
}

func DefaultConfig() Config {
	return Config{
		InputDir:           "train_dirty",
		OutputDir:          "train_clean",
		InputPattern:       "*.jsonl",
		OutputExt:          ".json",
		Reorder:            "path_ascending",
		MinCharsAfterClean: 200,
		MarkerReplacements: DefaultMarkerReplacements(),
		CutAtHeadings:      DefaultCutAtHeadings(),
		ReadBufferSize:     8 * 1024 * 1024,
		Training: TrainingConfig{
			Input:        "train_clean",
			Pattern:      "**/*.json",
			Tokenizer:    "train",
			VocabSize:    20000,
			MinFrequency: 2,
			SpecialTokens: []string{
				"[UNK]", "[PAD]", "[BOS]", "[EOS]", SentinelToken,
			},
			VocabDir:      ".",
			CorpusPath:    "ngram_training_corpus.txt",
			MetadataPath:  "bpe_training_metadata.json",
			ProgressEvery: 1000,
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Keys absent from the file
// keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}
