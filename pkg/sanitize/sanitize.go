// Package sanitize restringe texto livre ao conjunto Latin-1 (ISO-8859-1),
// o único suportado pelas fontes padrão do PDF.
package sanitize

import (
	"strings"

	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/shared/types"
	"golang.org/x/text/encoding/charmap"
)

// Placeholder substitui qualquer caractere que não exista em Latin-1 ou que
// seja um controle C1.
const Placeholder = '?'

// Substituições tipográficas aplicadas antes da codificação: bullet, en dash,
// em dash, aspas curvas e reticências.
var replacer = strings.NewReplacer(
	"\u2022", "*",
	"\u2013", "-",
	"\u2014", "--",
	"\u2018", "'",
	"\u2019", "'",
	"\u201C", "\"",
	"\u201D", "\"",
	"\u2026", "...",
)

// Text aplica as substituições tipográficas e troca cada caractere restante
// fora de Latin-1 pelo Placeholder. Nunca falha; texto vazio volta inalterado.
func Text(text string) string {
	if text == "" {
		return text
	}

	text = replacer.Replace(text)
	if Encodable(text) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if encodableRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(Placeholder)
		}
	}
	return b.String()
}

// Encodable informa se todo o texto pode ser representado em Latin-1.
func Encodable(text string) bool {
	for _, r := range text {
		if !encodableRune(r) {
			return false
		}
	}
	return true
}

// Encode sanitiza o texto e o converte para bytes Latin-1, prontos para as
// fontes padrão do gofpdf.
func Encode(text string) (string, error) {
	clean := Text(text)
	out, err := charmap.ISO8859_1.NewEncoder().String(clean)
	if err != nil {
		return "", &types.EncodingError{Text: clean, Err: err}
	}
	return out, nil
}

// encodableRune rejeita também os controles C1 (U+0080 a U+009F): as fontes
// padrão do gofpdf usam cp1252 e os imprimiriam como "€", "Ÿ" etc.
func encodableRune(r rune) bool {
	if r >= 0x80 && r <= 0x9f {
		return false
	}
	_, ok := charmap.ISO8859_1.EncodeRune(r)
	return ok
}
