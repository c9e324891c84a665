package handler

import (
	"fmt"
	"html/template"
	"time"

	"github.com/nmoreyra/cartelera/internal/domain"
)

// TemplateFuncs returns the function map shared by every template set.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(cents int64) string {
			sign := ""
			if cents < 0 {
				sign = "-"
				cents = -cents
			}
			return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
		},
		// price renders cents as a bare decimal for form inputs.
		"price": func(cents int64) string {
			return fmt.Sprintf("%d.%02d", cents/100, cents%100)
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"year": func() int {
			return time.Now().Year()
		},
		"genre": domain.GenreName,
		"statusLabel": func(status string) string {
			switch status {
			case domain.OrderStatusPaid:
				return "Paid"
			case domain.OrderStatusCancelled:
				return "Cancelled"
			default:
				return "Pending"
			}
		},
	}
}
