package quote

// DefaultTerms returns the general conditions printed on every quotation.
func DefaultTerms() []string {
	return []string{
		"Los precios están sujetos a cambios sin previo aviso",
		"La garantía aplica según las especificaciones del producto",
		"Tiempos de entrega sujetos a disponibilidad",
		"Se requiere 50% de anticipo para procesar el pedido",
	}
}
