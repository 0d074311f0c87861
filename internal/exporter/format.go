package exporter

import (
	"fmt"
	"strconv"
)

// observationHeader is the column order shared by the CSV and XLSX artifacts
var observationHeader = []string{
	"ano", "mes", "localidade_codigo", "localidade", "indice", "unidade", "valor",
}

// formatFloat formats a decimal value for text output with exactly 2
// decimal places, matching how IBGE publishes the index
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an integer value for text output
func formatInt(i int) string {
	return strconv.Itoa(i)
}
