package export

import (
	"bytes"
	"fmt"

	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/shared/types"
)

// Serialize grava o documento em um único buffer começando com "%PDF-".
// A primeira chamada fecha o documento e guarda os bytes; as seguintes devolvem cópias.
func Serialize(doc *Document) ([]byte, error) {
	if doc == nil || doc.pdf == nil {
		return nil, types.ErrNilDocument
	}

	if doc.data == nil {
		var buf bytes.Buffer
		if err := doc.pdf.Output(&buf); err != nil {
			return nil, fmt.Errorf("error serializing PDF document: %w", err)
		}
		doc.data = buf.Bytes()
	}

	return bytes.Clone(doc.data), nil
}
