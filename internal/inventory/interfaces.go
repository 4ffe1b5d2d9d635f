package inventory

import "io"

// IPrinter is the interface for rendering inventories
//
//go:generate mockery --name=IPrinter --output=./mocks
type IPrinter interface {
	Print(w io.Writer, doc *Document, format OutputFormatType) error
	PrintHost(w io.Writer, doc *Document, host string, format OutputFormatType) error
}
