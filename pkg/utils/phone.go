package utils

import "strings"

// NormalizePhone remove tudo que não é dígito do número de telefone.
// A API do WhatsApp só aceita números no formato internacional sem
// separadores: "+1 (555) 123-4567" -> "15551234567".
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
