package valueobject

import "github.com/ignatzorin/chainlance-backend/internal/pkg/apperror"

type ProjectStatus string

const (
	ProjectStatusOpen       ProjectStatus = "OPEN"
	ProjectStatusFunded     ProjectStatus = "FUNDED"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
	// Зарезервирован типом, но недостижим в текущем жизненном цикле.
	ProjectStatusDisputed ProjectStatus = "DISPUTED"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusOpen, ProjectStatusFunded, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusDisputed:
		return true
	}
	return false
}

// CanTransitionTo описывает жизненный цикл проекта:
// OPEN -> FUNDED -> IN_PROGRESS -> COMPLETED.
// Найм допускается и напрямую из OPEN: клиент может принять отклик до
// внесения депозита.
func (s ProjectStatus) CanTransitionTo(newStatus ProjectStatus) bool {
	transitions := map[ProjectStatus][]ProjectStatus{
		ProjectStatusOpen:       {ProjectStatusFunded, ProjectStatusInProgress},
		ProjectStatusFunded:     {ProjectStatusInProgress},
		ProjectStatusInProgress: {ProjectStatusCompleted},
		ProjectStatusCompleted:  {},
		ProjectStatusDisputed:   {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == newStatus {
			return true
		}
	}
	return false
}

// AcceptsProposals сообщает, принимает ли проект новые отклики.
// Отклики на уже профинансированный проект разрешены, см. правила
// видимости для фрилансера.
func (s ProjectStatus) AcceptsProposals() bool {
	return s == ProjectStatusOpen || s == ProjectStatusFunded
}

func NewProjectStatus(status string) (ProjectStatus, error) {
	s := ProjectStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус проекта")
	}
	return s, nil
}

type Role string

const (
	RoleClient     Role = "CLIENT"
	RoleFreelancer Role = "FREELANCER"
)

func (r Role) IsValid() bool {
	return r == RoleClient || r == RoleFreelancer
}

func NewRole(role string) (Role, error) {
	r := Role(role)
	if !r.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректная роль")
	}
	return r, nil
}
