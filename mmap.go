package wiki40b_bpe

import (
	"os"

	"github.com/edsrzf/mmap-go"
)

// readMmap maps file read-only. Empty files cannot be mapped, so they come
// back as an empty, nil mapping.
func readMmap(file *os.File) (mmap.MMap, error) {
	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() == 0 {
		return nil, nil
	}
	return mmap.Map(file, mmap.RDONLY, 0)
}
