package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/chainlance-backend/internal/domain/valueobject"
)

// DeadlineTBD — значение дедлайна до того, как принят отклик и AI оценил срок.
const DeadlineTBD = "TBD"

// Статусы приёмки работы.
const (
	SubmissionStatusPending = "PENDING"
	SubmissionStatusAudited = "AUDITED"
)

// Project описывает размещённый заказ в общем пуле.
type Project struct {
	ID               string                    `json:"id"`
	Title            string                    `json:"title"`
	Description      string                    `json:"description"`
	Budget           float64                   `json:"budget"`
	Category         string                    `json:"category"`
	ClientName       string                    `json:"clientName"`
	Status           valueobject.ProjectStatus `json:"status"`
	Deadline         string                    `json:"deadline"`
	Skills           []string                  `json:"skills"`
	Proposals        []Proposal                `json:"proposals"`
	HiredFreelancerID string                   `json:"hiredFreelancerId,omitempty"`
	SubmissionURL    string                    `json:"submissionUrl,omitempty"`
	SubmissionAudit  string                    `json:"submissionAudit,omitempty"`
	SubmissionStatus string                    `json:"submissionStatus,omitempty"`
}

// NewProjectID генерирует идентификатор проекта.
func NewProjectID() string {
	return "sol-p-" + uuid.NewString()
}

// IsOwnedBy проверяет, принадлежит ли проект адресу (полному или усечённому).
func (p *Project) IsOwnedBy(address string) bool {
	if address == "" {
		return false
	}
	return p.ClientName == address || p.ClientName == ShortAddress(address)
}

// HasProposalFrom проверяет, откликался ли фрилансер на проект.
func (p *Project) HasProposalFrom(freelancerID string) bool {
	for _, prop := range p.Proposals {
		if prop.FreelancerID == freelancerID {
			return true
		}
	}
	return false
}

// IsHired проверяет, нанят ли фрилансер на этот проект.
func (p *Project) IsHired(freelancerID string) bool {
	return freelancerID != "" && p.HiredFreelancerID == freelancerID
}

// Clone возвращает глубокую копию проекта. Стор отдаёт наружу только
// копии, чтобы снапшот нельзя было изменить мимо мутаций.
func (p *Project) Clone() Project {
	cp := *p
	// append от nil теряет пустой срез, а пустой список должен
	// сериализоваться как [], а не null.
	if p.Skills != nil {
		cp.Skills = make([]string, len(p.Skills))
		copy(cp.Skills, p.Skills)
	}
	if p.Proposals != nil {
		cp.Proposals = make([]Proposal, len(p.Proposals))
		copy(cp.Proposals, p.Proposals)
	}
	return cp
}

// Proposal представляет отклик фрилансера. После создания не изменяется.
type Proposal struct {
	ID           string `json:"id"`
	ProjectID    string `json:"projectId"`
	FreelancerID string `json:"freelancerId"`
	Message      string `json:"message"`
	Timestamp    string `json:"timestamp"`
	ResumeBase64 string `json:"resumeBase64,omitempty"`
	AIAnalysis   string `json:"aiAnalysis,omitempty"`
}

// NewProposal создаёт отклик с новым идентификатором и текущим временем.
func NewProposal(projectID, freelancerID, message, resumeBase64, aiAnalysis string) Proposal {
	return Proposal{
		ID:           "prop-" + uuid.NewString(),
		ProjectID:    projectID,
		FreelancerID: freelancerID,
		Message:      message,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		ResumeBase64: resumeBase64,
		AIAnalysis:   aiAnalysis,
	}
}

// ShortAddress усекает адрес кошелька до отображаемой формы "ABCD...WXYZ".
func ShortAddress(address string) string {
	if len(address) <= 8 {
		return address
	}
	return fmt.Sprintf("%s...%s", address[:4], address[len(address)-4:])
}

// SplitSkills разбирает список навыков из строки с запятыми.
func SplitSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
