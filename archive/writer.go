package archive

import (
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/meteocima/pangu-runner/fields"
)

// Writer appends layer records to an archive file. It implements
// fields.Writer.
type Writer struct {
	f    *os.File
	zw   *zstd.Encoder
	enc  *msgpack.Encoder
	rows int
	cols int
}

// Create opens a new archive for writing. rows and cols fix the layer
// extents for every record written through this writer.
func Create(path string, rows, cols int) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Writer{
		f:    f,
		zw:   zw,
		enc:  msgpack.NewEncoder(zw),
		rows: rows,
		cols: cols,
	}, nil
}

// WriteLayer stores one layer tagged with its template and step.
func (w *Writer) WriteLayer(layer []float32, tmpl fields.Template, step int) error {
	if len(layer) != w.rows*w.cols {
		return fmt.Errorf("layer %s has %d values, archive grid is %dx%d", tmpl, len(layer), w.rows, w.cols)
	}
	return w.enc.Encode(&Record{
		Param:  tmpl.Param,
		Level:  tmpl.Level,
		Step:   step,
		Rows:   w.rows,
		Cols:   w.cols,
		Values: layer,
	})
}

// Close flushes the compressed stream and closes the file.
func (w *Writer) Close() error {
	if err := w.zw.Close(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
