package wiki40b_bpe

import (
	"bufio"
	"bytes"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// ConvertState is where a shard conversion is in its lifecycle. It is only
// used to say where a failure happened.
type ConvertState int

const (
	StateOpen ConvertState = iota
	StateReading
	StateWriting
	StateClosed
)

func (s ConvertState) String() string {
	switch s {
	case StateOpen:
		return "opening"
	case StateReading:
		return "reading"
	case StateWriting:
		return "writing"
	case StateClosed:
		return "closing"
	}
	return "unknown"
}

// Stats are the per-shard counters.
type Stats struct {
	InPath    string
	OutPath   string
	Bytes     int64
	Kept      int
	Dropped   int
	DroppedBy [numDropReasons]int
}

func (s *Stats) drop(reason DropReason) {
	s.Dropped++
	s.DroppedBy[reason]++
}

// BatchStats sums a run over several shards. Files holds the stats of every
// shard that converted; Skipped counts the ones that did not.
type BatchStats struct {
	Files   []Stats
	Kept    int
	Dropped int
	Skipped int
}

// ShardJob is one input shard and where its cleaned array goes.
type ShardJob struct {
	In  string
	Out string
}

// Converter streams JSONL shards into cleaned JSON array files, one record
// at a time.
type Converter struct {
	cleaner *Cleaner
	filter  RecordFilter
	bufSize int
}

func NewConverter(cfg Config) *Converter {
	bufSize := cfg.ReadBufferSize
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	return &Converter{
		cleaner: NewCleaner(cfg),
		filter:  RecordFilter{MinChars: cfg.MinCharsAfterClean},
		bufSize: bufSize,
	}
}

// ProcessLine parses, cleans and filters one input line. The error is one of
// ErrMalformedJSON, ErrMissingText or ErrTooShort when the record is dropped.
func (cv *Converter) ProcessLine(line []byte) (*Record, error) {
	rec, err := ParseRecord(line)
	if err != nil {
		return nil, err
	}
	cv.cleaner.CleanRecord(rec)
	if err := cv.filter.Check(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Convert reads JSONL from r and writes a JSON array of the surviving
// records to w. Blank lines are skipped without being counted. Only read
// and write failures are returned; dropped records are counted in stats.
func (cv *Converter) Convert(r io.Reader, w io.Writer, stats *Stats) error {
	reader := bufio.NewReaderSize(r, cv.bufSize)
	writer := bufio.NewWriterSize(w, 64*1024)
	if _, err := writer.WriteString("[\n"); err != nil {
		return withKind(ErrIO, errors.Wrap(err, StateWriting.String()))
	}

	var buf bytes.Buffer
	first := true
	for {
		line, readErr := reader.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			return withKind(ErrIO, errors.Wrap(readErr, StateReading.String()))
		}
		if line = bytes.TrimSpace(line); len(line) > 0 {
			rec, err := cv.ProcessLine(line)
			if err != nil {
				stats.drop(dropReasonOf(err))
			} else {
				buf.Reset()
				if !first {
					buf.WriteString(",\n")
				}
				if err := rec.AppendJSON(&buf); err != nil {
					return withKind(ErrIO, err)
				}
				if _, err := writer.Write(buf.Bytes()); err != nil {
					return withKind(ErrIO,
						errors.Wrap(err, StateWriting.String()))
				}
				first = false
				stats.Kept++
			}
		}
		if readErr == io.EOF {
			break
		}
	}

	if _, err := writer.WriteString("\n]\n"); err != nil {
		return withKind(ErrIO, errors.Wrap(err, StateWriting.String()))
	}
	if err := writer.Flush(); err != nil {
		return withKind(ErrIO, errors.Wrap(err, StateClosed.String()))
	}
	return nil
}

// ConvertFile converts one shard. A missing input fails with
// ErrMissingFile; anything else that stops the shard fails with ErrIO. The
// output only appears once the whole array has been written.
func (cv *Converter) ConvertFile(inPath string, outPath string) (Stats,
	error) {
	stats := Stats{InPath: inPath, OutPath: outPath}

	inFile, err := os.Open(inPath)
	if errors.Is(err, fs.ErrNotExist) {
		return stats, withKind(ErrMissingFile, err)
	} else if err != nil {
		return stats, withKind(ErrIO, errors.Wrap(err, StateOpen.String()))
	}
	defer inFile.Close()
	if stat, statErr := inFile.Stat(); statErr == nil {
		stats.Bytes = stat.Size()
	}

	outFile, err := createAtomic(outPath)
	if err != nil {
		return stats, withKind(ErrIO, err)
	}
	defer outFile.Abort()

	if err := cv.Convert(inFile, outFile, &stats); err != nil {
		return stats, errors.WithMessage(err, inPath)
	}
	if err := outFile.Commit(); err != nil {
		return stats, withKind(ErrIO, err)
	}
	return stats, nil
}

// ConvertAll converts every job in order. A shard that fails is reported
// and skipped; the batch always runs to the end.
func (cv *Converter) ConvertAll(jobs []ShardJob) BatchStats {
	var batch BatchStats
	for _, job := range jobs {
		stats, err := cv.ConvertFile(job.In, job.Out)
		if err != nil {
			batch.Skipped++
			if errors.Is(err, ErrMissingFile) {
				log.Printf("Warning: File %s not found, skipping...", job.In)
			} else {
				log.Printf("Warning: Error converting %s: %v, skipping...",
					job.In, err)
			}
			continue
		}
		log.Printf("%s -> %s | kept=%d dropped=%d (%s)",
			filepath.Base(job.In), filepath.Base(job.Out),
			stats.Kept, stats.Dropped, humanize.Bytes(uint64(stats.Bytes)))
		batch.Files = append(batch.Files, stats)
		batch.Kept += stats.Kept
		batch.Dropped += stats.Dropped
	}
	return batch
}

// ConvertDir finds the shards matching pattern under inDir, orders them by
// sortSpec and converts each into outDir with extension ext.
func (cv *Converter) ConvertDir(inDir string, outDir string, pattern string,
	ext string, sortSpec string) (BatchStats, error) {
	pathInfos, err := GlobShards(inDir, pattern)
	if err != nil {
		return BatchStats{}, err
	}
	if len(pathInfos) == 0 {
		log.Printf("No %s files found in: %s", pattern, inDir)
		return BatchStats{}, nil
	}
	if err := ReorderPathInfos(pathInfos, sortSpec); err != nil {
		return BatchStats{}, err
	}
	jobs := make([]ShardJob, 0, len(pathInfos))
	for _, pathInfo := range pathInfos {
		jobs = append(jobs, ShardJob{
			In:  pathInfo.Path,
			Out: OutputPathFor(pathInfo.Path, outDir, ext),
		})
	}
	return cv.ConvertAll(jobs), nil
}
