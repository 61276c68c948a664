package dto

// SwitchRoleRequest — смена роли текущей сессии.
type SwitchRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// CreateProjectRequest — форма создания проекта. Бюджет приходит строкой
// из поля формы и разбирается на сервере; навыки — строка через запятую.
type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Budget      string `json:"budget" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Skills      string `json:"skills"`
}

// GenerateDescriptionRequest — черновик для генерации описания вакансии.
type GenerateDescriptionRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// CreateProposalRequest — отклик фрилансера. Резюме опционально:
// PDF в base64 (допускается data-URL).
type CreateProposalRequest struct {
	Message      string `json:"message" binding:"required"`
	ResumeBase64 string `json:"resumeBase64"`
}

// SubmitWorkRequest — сдача работы по контракту.
type SubmitWorkRequest struct {
	URL string `json:"url" binding:"required"`
}
