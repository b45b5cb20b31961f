package export

import (
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// Compression represents the compression applied to a stream export.
type Compression uint8

const (
	CompressionNone   Compression = 0
	CompressionLZ4    Compression = 1
	CompressionSnappy Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionSnappy:
		return "snappy"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// compressWriter wraps w. Closing the result flushes the compressor but does not close w.
func compressWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	case CompressionSnappy:
		return snappy.NewBufferedWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression type: %d", c)
	}
}

// decompressReader undoes compressWriter.
func decompressReader(r io.Reader, c Compression) (io.Reader, error) {
	switch c {
	case CompressionNone:
		return r, nil
	case CompressionLZ4:
		return lz4.NewReader(r), nil
	case CompressionSnappy:
		return snappy.NewReader(r), nil
	default:
		return nil, fmt.Errorf("unsupported compression type: %d", c)
	}
}
