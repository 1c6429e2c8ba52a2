package wiki40b_bpe

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/yargevad/filepathx"
)

type PathInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// GlobShards
// Given a directory path and a glob pattern relative to it, finds the
// matching files, returning a slice of PathInfo. Patterns may use `**` to
// match directories recursively. Directories are skipped; no matches is not
// an error.
func GlobShards(dirPath string, pattern string) ([]PathInfo, error) {
	matches, err := filepathx.Glob(filepath.Join(dirPath, pattern))
	if err != nil {
		return nil, errors.Wrapf(err, "globbing %s in %s", pattern, dirPath)
	}
	pathInfos := make([]PathInfo, 0, len(matches))
	for _, match := range matches {
		stat, statErr := os.Stat(match)
		if statErr != nil {
			return nil, statErr
		}
		if stat.IsDir() {
			continue
		}
		pathInfos = append(pathInfos, PathInfo{
			Path:    match,
			Size:    stat.Size(),
			ModTime: stat.ModTime(),
		})
	}
	return pathInfos, nil
}

func SortPathInfoBySize(pathInfos []PathInfo, ascending bool) {
	if ascending {
		sort.SliceStable(pathInfos, func(i, j int) bool {
			return pathInfos[i].Size < pathInfos[j].Size
		})
	} else {
		sort.SliceStable(pathInfos, func(i, j int) bool {
			return pathInfos[i].Size > pathInfos[j].Size
		})
	}
}

func SortPathInfoByPath(pathInfos []PathInfo, ascending bool) {
	if ascending {
		sort.Slice(pathInfos, func(i, j int) bool {
			return pathInfos[i].Path < pathInfos[j].Path
		})
	} else {
		sort.Slice(pathInfos, func(i, j int) bool {
			return pathInfos[i].Path > pathInfos[j].Path
		})
	}
}

func ShufflePathInfos(pathInfos []PathInfo) {
	rand.Shuffle(len(pathInfos), func(i, j int) {
		pathInfos[i], pathInfos[j] = pathInfos[j], pathInfos[i]
	})
}

// ReorderPathInfos orders shards according to sortSpec: path_ascending (also
// the empty spec), path_descending, size_ascending, size_descending, random,
// or none to keep glob order.
func ReorderPathInfos(pathInfos []PathInfo, sortSpec string) error {
	switch sortSpec {
	case "", "path_ascending":
		SortPathInfoByPath(pathInfos, true)
	case "path_descending":
		SortPathInfoByPath(pathInfos, false)
	case "size_ascending":
		SortPathInfoBySize(pathInfos, true)
	case "size_descending":
		SortPathInfoBySize(pathInfos, false)
	case "random":
		ShufflePathInfos(pathInfos)
	case "none":
	default:
		return errors.New(fmt.Sprintf("Invalid sort spec: %s", sortSpec))
	}
	return nil
}

// Paths returns the path of every PathInfo, in order.
func Paths(pathInfos []PathInfo) []string {
	paths := make([]string, len(pathInfos))
	for idx := range pathInfos {
		paths[idx] = pathInfos[idx].Path
	}
	return paths
}

// OutputPathFor maps an input shard to its cleaned output path: the base
// name with its extension swapped for ext, inside outDir.
func OutputPathFor(inPath string, outDir string, ext string) string {
	base := filepath.Base(inPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, base+ext)
}
