package validation

import (
	"encoding/base64"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
)

// Константы валидации
const (
	MinProjectTitleLength       = 3
	MaxProjectTitleLength       = 200
	MinProjectDescriptionLength = 10
	MaxProjectDescriptionLength = 5000
	MaxProposalMessageLength    = 2000
	MaxSkillLength              = 50
	MaxSkillsCount              = 50
	MinBudget                   = 0.0
	MaxSubmissionURLLength      = 500
	MaxResumeSizeBytes          = 10 << 20 // 10 МБ до декодирования
)

// ValidateLength проверяет длину строки в рунах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateProjectTitle проверяет заголовок проекта.
func ValidateProjectTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("заголовок проекта обязателен")
	}
	return ValidateLength("заголовок", title, MinProjectTitleLength, MaxProjectTitleLength)
}

// ValidateProjectDescription проверяет описание проекта.
func ValidateProjectDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("описание проекта обязательно")
	}
	return ValidateLength("описание", description, MinProjectDescriptionLength, MaxProjectDescriptionLength)
}

// ParseBudget разбирает бюджет из строки формы. Бюджет неотрицательный.
func ParseBudget(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("бюджет обязателен")
	}
	budget, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(budget, 0) || math.IsNaN(budget) {
		return 0, fmt.Errorf("бюджет должен быть числом")
	}
	if budget < MinBudget {
		return 0, fmt.Errorf("бюджет не может быть отрицательным")
	}
	return budget, nil
}

// ValidateProposalMessage проверяет текст отклика.
func ValidateProposalMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("текст отклика обязателен")
	}
	return ValidateLength("текст отклика", message, 0, MaxProposalMessageLength)
}

// ValidateSubmissionURL проверяет ссылку на результат работы.
func ValidateSubmissionURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("ссылка на результат обязательна")
	}
	if len(raw) > MaxSubmissionURLLength {
		return fmt.Errorf("ссылка слишком длинная")
	}
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("ссылка должна быть корректным http(s) URL")
	}
	return nil
}

// ValidateSkills проверяет список навыков.
func ValidateSkills(skills []string) error {
	if len(skills) > MaxSkillsCount {
		return fmt.Errorf("слишком много навыков, максимум %d", MaxSkillsCount)
	}
	for _, skill := range skills {
		if utf8.RuneCountInString(skill) > MaxSkillLength {
			return fmt.Errorf("навык %q слишком длинный", skill)
		}
	}
	return nil
}

// ValidateResume проверяет вложенное резюме: размер и что это PDF.
// Принимает и data-URL, и чистый base64.
func ValidateResume(resumeBase64 string) error {
	if resumeBase64 == "" {
		return nil
	}
	if len(resumeBase64) > MaxResumeSizeBytes {
		return fmt.Errorf("резюме слишком большое")
	}

	payload := resumeBase64
	if idx := strings.Index(payload, ","); idx != -1 {
		payload = payload[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("резюме должно быть в кодировке base64")
	}

	kind, err := filetype.Match(raw)
	if err != nil || kind.Extension != "pdf" {
		return fmt.Errorf("резюме должно быть PDF-файлом")
	}
	return nil
}
