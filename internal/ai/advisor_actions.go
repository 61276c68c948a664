package ai

import (
	"context"
	"fmt"
	"strings"
)

// GenerateJobDescription превращает черновой запрос клиента в готовое
// описание вакансии.
func (c *Client) GenerateJobDescription(ctx context.Context, prompt string) (string, error) {
	userPrompt := fmt.Sprintf(`Transform this rough request into a professional freelancing job description suitable for a direct-hire platform: "%s". Focus on project goals, specific deliverables, and required expertise.`, prompt)

	messages := textMessages(
		"You are an expert recruiter and project manager. You help clients write clear, professional, and attractive job posts for any industry.",
		userPrompt,
	)

	description, err := c.chatCompletion(ctx, messages, 0.7)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(description), nil
}

// AnalyzeResumeMatch сравнивает резюме кандидата (PDF в base64) с описанием
// проекта. Резюме уходит вложенным документом внутри content.
// Вызывающая сторона пропускает вызов целиком, если файла нет.
func (c *Client) AnalyzeResumeMatch(ctx context.Context, projectDesc, resumeBase64 string) (string, error) {
	prompt := fmt.Sprintf("Job Description: %s\n\nTask: Analyze this candidate's resume against the job description. Provide a 'Match Score' (0-100), a list of 3 key strengths, and any potential missing skills. Be professional and objective.", projectDesc)

	messages := []map[string]any{
		{
			"role":    "system",
			"content": "You are an elite AI hiring assistant. You provide high-signal analysis of resumes relative to specific job requirements.",
		},
		{
			"role": "user",
			"content": []map[string]any{
				{
					"type": "file",
					"file": map[string]any{
						"filename":  "resume.pdf",
						"file_data": "data:application/pdf;base64," + StripDataURL(resumeBase64),
					},
				},
				{
					"type": "text",
					"text": prompt,
				},
			},
		},
	}

	analysis, err := c.chatCompletion(ctx, messages, 0.7)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(analysis), nil
}

// EstimateDeadline оценивает срок выполнения проекта в днях.
// Нечисловой или пустой ответ деградирует до 14 дней.
func (c *Client) EstimateDeadline(ctx context.Context, projectDesc, proposalMsg string) (int, error) {
	prompt := fmt.Sprintf("Project Description: %s\nFreelancer Proposal: %s\n\nEstimate a realistic number of days to complete this project based on complexity. Return ONLY a single integer representing the number of days.", projectDesc, proposalMsg)

	messages := textMessages(
		"You are a technical project manager. You estimate project timelines accurately. Return only the digit.",
		prompt,
	)

	answer, err := c.chatCompletion(ctx, messages, 0.3)
	if err != nil {
		return 0, err
	}

	return ParseEstimatedDays(answer), nil
}

// AuditSubmission выполняет "Proof of Work" аудит сданной работы.
// Вердикт определяется подстрокой, см. VerdictApproved.
func (c *Client) AuditSubmission(ctx context.Context, projectDesc, repoURL string) (string, error) {
	prompt := fmt.Sprintf("Project Goal: %s\nSubmitted Repo: %s\n\nTask: Perform a 'Proof of Work' audit. Acknowledge the repository link and evaluate if it logically aligns with the project goals. Provide a verdict: '%s' or '%s'. List 2 key observations about the submission quality.", projectDesc, repoURL, VerdictRecommended, VerdictRevisions)

	messages := textMessages(
		"You are a Technical Auditor for a decentralized freelancing platform. You verify that work submitted meets the contractual requirements before funds are released.",
		prompt,
	)

	audit, err := c.chatCompletion(ctx, messages, 0.7)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(audit), nil
}

// ExplainEscrow возвращает простое объяснение механики эскроу для
// публичной справки.
func (c *Client) ExplainEscrow(ctx context.Context) (string, error) {
	messages := []map[string]any{
		{
			"role":    "user",
			"content": "Explain in simple terms how a blockchain escrow works for any freelancer and client, and why it is safer and cheaper than traditional platforms like Upwork or Fiverr.",
		},
	}

	explanation, err := c.chatCompletion(ctx, messages, 0.7)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(explanation), nil
}
