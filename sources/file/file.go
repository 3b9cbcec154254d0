package file

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/googlegenomics/locget/spans"
)

//NewFileRangeReader adapts a local sequence file into a spans.RangeReader.
//The caller keeps ownership of the file and closes it when done.
func NewFileRangeReader(f *os.File) spans.RangeReader {
	return func(start int64, length int64) (io.ReadCloser, error) {
		if _, err := f.Seek(start, io.SeekStart); err != nil {
			return nil, err
		}
		return ioutil.NopCloser(io.LimitReader(f, length)), nil
	}
}
