package ai

import (
	"strconv"
	"strings"
)

// Сентинелы вердикта аудита. Проверка — по подстроке: если аудитор не
// вернул фразу одобрения, работа считается не принятой.
const (
	VerdictRecommended = "RECOMMENDED FOR PAYMENT"
	VerdictRevisions   = "REVISIONS NEEDED"
)

// DefaultEstimatedDays — срок по умолчанию, когда оценщик не вернул число.
const DefaultEstimatedDays = 14

// VerdictApproved проверяет, содержит ли текст аудита фразу одобрения.
func VerdictApproved(audit string) bool {
	return strings.Contains(strings.ToUpper(audit), VerdictRecommended)
}

// ParseEstimatedDays извлекает целое число дней из ответа оценщика.
// Ответ может содержать лишний текст; берём первое целое число.
// Нечисловой, пустой или неположительный ответ даёт DefaultEstimatedDays.
func ParseEstimatedDays(answer string) int {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return DefaultEstimatedDays
	}

	if days, err := strconv.Atoi(answer); err == nil {
		if days > 0 {
			return days
		}
		return DefaultEstimatedDays
	}

	for _, field := range strings.Fields(answer) {
		field = strings.Trim(field, ".,:;!?")
		if days, err := strconv.Atoi(field); err == nil && days > 0 {
			return days
		}
	}

	return DefaultEstimatedDays
}

// StripDataURL убирает префикс data-URL, оставляя чистый base64.
func StripDataURL(payload string) string {
	if idx := strings.Index(payload, ","); idx != -1 {
		return payload[idx+1:]
	}
	return payload
}
