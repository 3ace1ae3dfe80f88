package einvoice

import "strings"

// xmlReplacer ersetzt die fünf reservierten XML-Zeichen in der festen
// Reihenfolge & < > " '. Nicht-ASCII (Umlaute) bleibt unverändert.
var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape macht einen dynamischen Wert sicher für XML-Textknoten und
// Attributwerte. Jeder Text, der aus Rechnungsdaten stammt
// (Beschreibungen, Namen, Adressen, Notizen), muss hier durch.
func Escape(s string) string {
	return xmlReplacer.Replace(s)
}
