package utils

import (
	"fmt"
	"time"
)

// FormatReportDate converte a data bruta do Google Analytics (YYYYMMDD)
// para o rótulo curto usado nos gráficos, ex: "20240105" -> "Jan 5".
// Valores fora do formato esperado são devolvidos sem alteração.
func FormatReportDate(raw string) string {
	date, err := time.Parse("20060102", raw)
	if err != nil {
		return raw
	}

	return fmt.Sprintf("%s %d", date.Format("Jan"), date.Day())
}
