// internal/appcore/writer_factories.go
package appcore

import (
	"io"

	"reseg/internal/reseg"
	"reseg/internal/writers"
)

// ResultWriterFactory starts the writer selected by --output.
type ResultWriterFactory struct {
	Format string
	Sort   bool
	Header bool
	Pretty bool
}

func NewResultWriterFactory(format string, sort, header, pretty bool) ResultWriterFactory {
	return ResultWriterFactory{Format: format, Sort: sort, Header: header, Pretty: pretty}
}

func (w ResultWriterFactory) Start(out io.Writer, bufSize int) (chan<- reseg.Result, <-chan error) {
	return writers.StartResultWriter(out, w.Format, w.Sort, w.Header, w.Pretty, bufSize)
}
