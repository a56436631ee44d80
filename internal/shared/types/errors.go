package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyDataset       = errors.New("dataset is empty")
	ErrUnknownChart       = errors.New("unknown chart")
	ErrUnknownDataset     = errors.New("unknown dataset")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
	ErrInvalidDateRange   = errors.New("invalid date range: start date is after end date")
	ErrNilDocument        = errors.New("report document is nil")
	ErrPublisherDisabled  = errors.New("report publishing is not configured")
	ErrInvalidChartWidth  = errors.New("chart width must be positive")
	ErrInvalidDateLiteral = errors.New("dates must use the YYYY-MM-DD format")
)

// RenderError indica uma falha do backend de gráficos ao desenhar um gráfico.
type RenderError struct {
	Chart string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("error rendering chart %s: %v", e.Chart, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// EncodingError indica que um texto não pôde ser representado em Latin-1,
// mesmo após a substituição por placeholders.
type EncodingError struct {
	Text string
	Err  error
}

func (e *EncodingError) Error() string {
	text := e.Text
	if len(text) > 40 {
		text = text[:37] + "..."
	}
	return fmt.Sprintf("error encoding text %q for PDF: %v", text, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// IOError indica uma falha de escrita em disco durante a exportação.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("error during %s of %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// UserMessage converte qualquer erro do pipeline de exportação em uma única
// mensagem legível para o usuário.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var renderErr *RenderError
	var encodingErr *EncodingError
	var ioErr *IOError

	switch {
	case errors.As(err, &renderErr):
		if errors.Is(renderErr, ErrEmptyDataset) {
			return "Error generating PDF: there is no data to chart for the selected filters"
		}
		return fmt.Sprintf("Error generating PDF: could not draw the %s chart", strings.ReplaceAll(renderErr.Chart, "_", " "))
	case errors.As(err, &encodingErr):
		return "Error generating PDF: some text could not be converted for printing"
	case errors.As(err, &ioErr):
		return fmt.Sprintf("Error saving PDF: %v", ioErr.Err)
	}

	return fmt.Sprintf("Error generating PDF: %v", err)
}
