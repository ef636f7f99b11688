package adapter

import "strings"

// Categorias canônicas emitidas pelo classificador.
const (
	CategoryWidgets     = "widgets"
	CategoryGadgets     = "gadgets"
	CategoryAccessories = "accessories"
)

// ClassifyLabel deriva a categoria canônica a partir do rótulo livre que as
// APIs de parceiro retornam: substring case-insensitive de "widget"/"gadget",
// com "accessories" como balde padrão.
func ClassifyLabel(label string) string {
	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "widget"):
		return CategoryWidgets
	case strings.Contains(lower, "gadget"):
		return CategoryGadgets
	default:
		return CategoryAccessories
	}
}
