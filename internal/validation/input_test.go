package validation

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProjectTitle(t *testing.T) {
	assert.NoError(t, ValidateProjectTitle("Лендинг для NFT-коллекции"))
	assert.Error(t, ValidateProjectTitle(""))
	assert.Error(t, ValidateProjectTitle("ab"))
	assert.Error(t, ValidateProjectTitle(strings.Repeat("а", MaxProjectTitleLength+1)))
}

func TestValidateProjectDescription(t *testing.T) {
	assert.NoError(t, ValidateProjectDescription("Нужен одностраничник с минтом."))
	assert.Error(t, ValidateProjectDescription(""))
	assert.Error(t, ValidateProjectDescription("коротко"))
}

func TestParseBudget(t *testing.T) {
	budget, err := ParseBudget("2.5")
	require.NoError(t, err)
	assert.Equal(t, 2.5, budget)

	budget, err = ParseBudget(" 0 ")
	require.NoError(t, err)
	assert.Equal(t, 0.0, budget)

	_, err = ParseBudget("")
	assert.Error(t, err)
	_, err = ParseBudget("не число")
	assert.Error(t, err)
	// Верхнего предела нет, крупные бюджеты валидны.
	budget, err = ParseBudget("2000000")
	require.NoError(t, err)
	assert.Equal(t, 2000000.0, budget)

	_, err = ParseBudget("-1")
	assert.Error(t, err)
	_, err = ParseBudget("+Inf")
	assert.Error(t, err)
	_, err = ParseBudget("NaN")
	assert.Error(t, err)
}

func TestValidateSubmissionURL(t *testing.T) {
	assert.NoError(t, ValidateSubmissionURL("https://github.com/acme/landing"))
	assert.NoError(t, ValidateSubmissionURL("http://example.com/demo"))
	assert.Error(t, ValidateSubmissionURL(""))
	assert.Error(t, ValidateSubmissionURL("ftp://example.com/file"))
	assert.Error(t, ValidateSubmissionURL("просто текст"))
	assert.Error(t, ValidateSubmissionURL("https://"))
}

func TestValidateSkills(t *testing.T) {
	assert.NoError(t, ValidateSkills([]string{"Go", "Solana"}))
	assert.NoError(t, ValidateSkills(nil))

	tooMany := make([]string, MaxSkillsCount+1)
	for i := range tooMany {
		tooMany[i] = "skill"
	}
	assert.Error(t, ValidateSkills(tooMany))

	assert.Error(t, ValidateSkills([]string{strings.Repeat("x", MaxSkillLength+1)}))
}

func TestValidateResume(t *testing.T) {
	pdf := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4\nсодержимое\n%%EOF"))

	assert.NoError(t, ValidateResume(""))
	assert.NoError(t, ValidateResume(pdf))
	assert.NoError(t, ValidateResume("data:application/pdf;base64,"+pdf))

	notPDF := base64.StdEncoding.EncodeToString([]byte("обычный текст"))
	assert.Error(t, ValidateResume(notPDF))
	assert.Error(t, ValidateResume("не base64 вовсе!!!"))
}
