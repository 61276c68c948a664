package service

import (
	"context"

	"github.com/ignatzorin/chainlance-backend/internal/domain/valueobject"
	"github.com/ignatzorin/chainlance-backend/internal/models"
	"github.com/ignatzorin/chainlance-backend/internal/pkg/apperror"
	"github.com/ignatzorin/chainlance-backend/internal/store"
	"github.com/ignatzorin/chainlance-backend/internal/validation"
)

// Advisor — граница внешнего генеративного сервиса. Любая ошибка вызова
// терминальна для одного действия пользователя: без ретраев, стор не
// меняется.
type Advisor interface {
	GenerateJobDescription(ctx context.Context, prompt string) (string, error)
	AnalyzeResumeMatch(ctx context.Context, projectDesc, resumeBase64 string) (string, error)
	EstimateDeadline(ctx context.Context, projectDesc, proposalMsg string) (int, error)
	AuditSubmission(ctx context.Context, projectDesc, repoURL string) (string, error)
	ExplainEscrow(ctx context.Context) (string, error)
}

// EventPublisher рассылает события жизненного цикла подключённым сессиям.
type EventPublisher interface {
	Publish(event string, data any)
}

// События жизненного цикла для websocket-ленты.
const (
	EventProjectCreated   = "project_created"
	EventProjectFunded    = "project_funded"
	EventProposalAdded    = "proposal_submitted"
	EventProposalAccepted = "proposal_accepted"
	EventWorkSubmitted    = "work_submitted"
	EventFundsReleased    = "funds_released"
)

// MarketplaceService связывает стор, советника и правила доступа по ролям.
type MarketplaceService struct {
	store   *store.ProjectStore
	advisor Advisor
	events  EventPublisher
}

// NewMarketplaceService создаёт сервис. events может быть nil.
func NewMarketplaceService(projectStore *store.ProjectStore, advisor Advisor, events EventPublisher) *MarketplaceService {
	return &MarketplaceService{
		store:   projectStore,
		advisor: advisor,
		events:  events,
	}
}

// VisibleProjects применяет правила видимости:
// клиент видит только свои проекты (по полному или усечённому адресу);
// фрилансер — OPEN и FUNDED, плюс проекты, где он нанят или откликался,
// независимо от статуса.
func (s *MarketplaceService) VisibleProjects(role valueobject.Role, address string) []models.Project {
	all := s.store.Projects()
	visible := make([]models.Project, 0, len(all))

	for _, p := range all {
		switch role {
		case valueobject.RoleClient:
			if address != "" && p.IsOwnedBy(address) {
				visible = append(visible, p)
			}
		case valueobject.RoleFreelancer:
			if p.Status.AcceptsProposals() || p.IsHired(address) || p.HasProposalFrom(address) {
				visible = append(visible, p)
			}
		}
	}
	return visible
}

// CreateProject размещает новый проект от имени подключённого клиента.
func (s *MarketplaceService) CreateProject(role valueobject.Role, address string, input store.CreateProjectInput) (models.Project, error) {
	if address == "" {
		return models.Project{}, apperror.ErrUnauthorized
	}
	if role != valueobject.RoleClient {
		return models.Project{}, apperror.ErrForbidden
	}

	if err := validation.ValidateProjectTitle(input.Title); err != nil {
		return models.Project{}, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateProjectDescription(input.Description); err != nil {
		return models.Project{}, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateSkills(input.Skills); err != nil {
		return models.Project{}, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	input.ClientName = address
	project, err := s.store.CreateProject(input)
	if err != nil {
		return models.Project{}, err
	}

	s.publish(EventProjectCreated, project)
	return project, nil
}

// Fund вносит депозит. Доступно только владеющему клиенту.
func (s *MarketplaceService) Fund(role valueobject.Role, address, projectID string) (models.Transaction, error) {
	if err := s.requireOwner(role, address, projectID); err != nil {
		return models.Transaction{}, err
	}

	tx, err := s.store.Fund(projectID, address)
	if err != nil {
		return models.Transaction{}, err
	}

	s.publish(EventProjectFunded, tx)
	return tx, nil
}

// SubmitProposal подаёт отклик фрилансера. Повторный отклик того же
// адреса отклоняется здесь: стор этим не занимается. Если приложено
// резюме, советник готовит разбор соответствия до мутации стора.
func (s *MarketplaceService) SubmitProposal(ctx context.Context, role valueobject.Role, address, projectID, message, resumeBase64 string) (models.Proposal, error) {
	if address == "" {
		return models.Proposal{}, apperror.ErrUnauthorized
	}
	if role != valueobject.RoleFreelancer {
		return models.Proposal{}, apperror.ErrForbidden
	}
	if err := validation.ValidateProposalMessage(message); err != nil {
		return models.Proposal{}, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	project, ok := s.store.Get(projectID)
	if !ok {
		return models.Proposal{}, apperror.ErrProjectNotFound
	}
	if project.HasProposalFrom(address) {
		return models.Proposal{}, apperror.New(apperror.ErrCodeConflict, "вы уже откликнулись на этот проект")
	}

	var analysis string
	if resumeBase64 != "" {
		if err := validation.ValidateResume(resumeBase64); err != nil {
			return models.Proposal{}, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		var err error
		analysis, err = s.advisor.AnalyzeResumeMatch(ctx, project.Description, resumeBase64)
		if err != nil {
			return models.Proposal{}, apperror.Wrap(err, apperror.ErrCodeAdvisory, apperror.ErrAdvisoryFailed.Message)
		}
	}

	proposal := models.NewProposal(projectID, address, message, resumeBase64, analysis)
	created, err := s.store.AddProposal(projectID, proposal)
	if err != nil {
		return models.Proposal{}, err
	}

	s.publish(EventProposalAdded, map[string]any{"projectId": projectID, "proposalId": created.ID})
	return created, nil
}

// Proposals возвращает отклики проекта. Смотреть их может только
// владеющий клиент.
func (s *MarketplaceService) Proposals(role valueobject.Role, address, projectID string) ([]models.Proposal, error) {
	if err := s.requireOwner(role, address, projectID); err != nil {
		return nil, err
	}

	project, _ := s.store.Get(projectID)
	return project.Proposals, nil
}

// AcceptProposal нанимает автора отклика. Советник оценивает срок в днях
// (нечисловой ответ внутри клиента деградирует до 14), дедлайн считается
// от сегодняшней даты. Ошибка советника прерывает действие до мутации.
func (s *MarketplaceService) AcceptProposal(ctx context.Context, role valueobject.Role, address, projectID, proposalID string) (models.Project, error) {
	if err := s.requireOwner(role, address, projectID); err != nil {
		return models.Project{}, err
	}

	project, _ := s.store.Get(projectID)

	var accepted *models.Proposal
	for i := range project.Proposals {
		if project.Proposals[i].ID == proposalID {
			accepted = &project.Proposals[i]
			break
		}
	}
	if accepted == nil {
		return models.Project{}, apperror.ErrProposalNotFound
	}

	days, err := s.advisor.EstimateDeadline(ctx, project.Description, accepted.Message)
	if err != nil {
		return models.Project{}, apperror.Wrap(err, apperror.ErrCodeAdvisory, apperror.ErrAdvisoryFailed.Message)
	}

	updated, err := s.store.AcceptProposal(projectID, proposalID, days)
	if err != nil {
		return models.Project{}, err
	}

	s.publish(EventProposalAccepted, map[string]any{"projectId": projectID, "freelancerId": updated.HiredFreelancerID, "deadline": updated.Deadline})
	return updated, nil
}

// SubmitWork сдаёт результат. Доступно только нанятому фрилансеру;
// советник готовит текст аудита до мутации стора.
func (s *MarketplaceService) SubmitWork(ctx context.Context, role valueobject.Role, address, projectID, submissionURL string) (models.Project, error) {
	if address == "" {
		return models.Project{}, apperror.ErrUnauthorized
	}
	if role != valueobject.RoleFreelancer {
		return models.Project{}, apperror.ErrForbidden
	}
	if err := validation.ValidateSubmissionURL(submissionURL); err != nil {
		return models.Project{}, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	project, ok := s.store.Get(projectID)
	if !ok {
		return models.Project{}, apperror.ErrProjectNotFound
	}
	if !project.IsHired(address) {
		return models.Project{}, apperror.ErrForbidden
	}

	audit, err := s.advisor.AuditSubmission(ctx, project.Description, submissionURL)
	if err != nil {
		return models.Project{}, apperror.Wrap(err, apperror.ErrCodeAdvisory, apperror.ErrAdvisoryFailed.Message)
	}

	updated, err := s.store.SubmitWork(projectID, submissionURL, audit)
	if err != nil {
		return models.Project{}, err
	}

	s.publish(EventWorkSubmitted, map[string]any{"projectId": projectID, "submissionUrl": submissionURL})
	return updated, nil
}

// Release выплачивает бюджет нанятому фрилансеру и завершает проект.
func (s *MarketplaceService) Release(role valueobject.Role, address, projectID string) (models.Transaction, error) {
	if err := s.requireOwner(role, address, projectID); err != nil {
		return models.Transaction{}, err
	}

	tx, err := s.store.Release(projectID)
	if err != nil {
		return models.Transaction{}, err
	}

	s.publish(EventFundsReleased, tx)
	return tx, nil
}

// GenerateDescription готовит текст вакансии из черновика клиента.
func (s *MarketplaceService) GenerateDescription(ctx context.Context, prompt string) (string, error) {
	description, err := s.advisor.GenerateJobDescription(ctx, prompt)
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeAdvisory, apperror.ErrAdvisoryFailed.Message)
	}
	return description, nil
}

// EscrowExplainer возвращает справку о механике эскроу.
func (s *MarketplaceService) EscrowExplainer(ctx context.Context) (string, error) {
	explanation, err := s.advisor.ExplainEscrow(ctx)
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeAdvisory, apperror.ErrAdvisoryFailed.Message)
	}
	return explanation, nil
}

// Ledger возвращает сессионный леджер транзакций.
func (s *MarketplaceService) Ledger() []models.Transaction {
	return s.store.Transactions()
}

// requireOwner пропускает только владеющего клиента.
func (s *MarketplaceService) requireOwner(role valueobject.Role, address, projectID string) error {
	if address == "" {
		return apperror.ErrUnauthorized
	}
	if role != valueobject.RoleClient {
		return apperror.ErrForbidden
	}

	project, ok := s.store.Get(projectID)
	if !ok {
		return apperror.ErrProjectNotFound
	}
	if !project.IsOwnedBy(address) {
		return apperror.ErrForbidden
	}
	return nil
}

func (s *MarketplaceService) publish(event string, data any) {
	if s.events != nil {
		s.events.Publish(event, data)
	}
}
