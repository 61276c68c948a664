package store

import (
	"strings"
	"sync"
	"time"

	"github.com/ignatzorin/chainlance-backend/internal/domain/valueobject"
	"github.com/ignatzorin/chainlance-backend/internal/logger"
	"github.com/ignatzorin/chainlance-backend/internal/models"
	"github.com/ignatzorin/chainlance-backend/internal/pkg/apperror"
)

// Snapshots — граница персистентности стора.
type Snapshots interface {
	Load() ([]models.Project, error)
	Save([]models.Project) error
}

// CreateProjectInput — черновик нового проекта. Бюджет уже разобран
// транспортным слоем; стор проверяет обязательные поля и знак.
type CreateProjectInput struct {
	Title       string
	Description string
	Budget      float64
	Category    string
	ClientName  string
	Skills      []string
}

// ProjectStore держит пул проектов в памяти и сессионный леджер.
// Каждая мутация заменяет срез целиком (copy-on-write) и синхронно
// сохраняет весь снапшот; леджер между сессиями не переживает.
type ProjectStore struct {
	mu        sync.RWMutex
	projects  []models.Project
	ledger    []models.Transaction
	snapshots Snapshots
}

// NewProjectStore читает снапшот один раз при старте. Ошибка разбора
// несовместимого формата всплывает сюда.
func NewProjectStore(snapshots Snapshots) (*ProjectStore, error) {
	projects, err := snapshots.Load()
	if err != nil {
		return nil, err
	}
	return &ProjectStore{
		projects:  projects,
		snapshots: snapshots,
	}, nil
}

// CreateProject валидирует черновик и добавляет проект в начало пула
// (новые — первыми) со статусом OPEN и пустым списком откликов.
func (s *ProjectStore) CreateProject(input CreateProjectInput) (models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return models.Project{}, apperror.New(apperror.ErrCodeValidation, "заголовок проекта обязателен")
	}
	if strings.TrimSpace(input.Description) == "" {
		return models.Project{}, apperror.New(apperror.ErrCodeValidation, "описание проекта обязательно")
	}
	if input.ClientName == "" {
		return models.Project{}, apperror.New(apperror.ErrCodeValidation, "не указан адрес клиента")
	}
	if input.Budget < 0 {
		return models.Project{}, apperror.New(apperror.ErrCodeValidation, "бюджет не может быть отрицательным")
	}
	if !models.IsValidCategory(input.Category) {
		return models.Project{}, apperror.New(apperror.ErrCodeValidation, "неизвестная категория")
	}

	skills := input.Skills
	if skills == nil {
		skills = []string{}
	}

	project := models.Project{
		ID:          models.NewProjectID(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Budget:      input.Budget,
		Category:    input.Category,
		ClientName:  models.ShortAddress(input.ClientName),
		Status:      valueobject.ProjectStatusOpen,
		Deadline:    models.DeadlineTBD,
		Skills:      skills,
		Proposals:   []models.Proposal{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Project, 0, len(s.projects)+1)
	next = append(next, project)
	next = append(next, s.projects...)
	s.commit(next)

	return project.Clone(), nil
}

// Fund переводит проект OPEN -> FUNDED и пишет DEPOSIT в леджер на сумму
// бюджета. Депозит уходит на счёт программы-эскроу.
func (s *ProjectStore) Fund(projectID, fromAddress string) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(projectID)
	if idx < 0 {
		return models.Transaction{}, apperror.ErrProjectNotFound
	}

	project := s.projects[idx].Clone()
	if !project.Status.CanTransitionTo(valueobject.ProjectStatusFunded) {
		return models.Transaction{}, apperror.New(apperror.ErrCodeBadRequest, "проект нельзя профинансировать в текущем статусе")
	}
	project.Status = valueobject.ProjectStatusFunded

	tx := models.NewTransaction("sig_", models.TransactionTypeDeposit, project.Budget, fromAddress, models.EscrowProgramAccount)

	s.replace(idx, project)
	s.appendTransaction(tx)

	return tx, nil
}

// AddProposal добавляет отклик в конец списка проекта (порядок подачи
// сохраняется). Идемпотентность здесь не гарантируется: фильтр повторных
// откликов — обязанность вызывающего слоя.
func (s *ProjectStore) AddProposal(projectID string, proposal models.Proposal) (models.Proposal, error) {
	if strings.TrimSpace(proposal.Message) == "" {
		return models.Proposal{}, apperror.New(apperror.ErrCodeValidation, "текст отклика обязателен")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(projectID)
	if idx < 0 {
		return models.Proposal{}, apperror.ErrProjectNotFound
	}

	project := s.projects[idx].Clone()
	if !project.Status.AcceptsProposals() {
		return models.Proposal{}, apperror.New(apperror.ErrCodeBadRequest, "проект не принимает отклики в текущем статусе")
	}

	project.Proposals = append(project.Proposals, proposal)
	s.replace(idx, project)

	return proposal, nil
}

// AcceptProposal нанимает автора отклика: статус IN_PROGRESS, дедлайн
// "сегодня + days". Остальные отклики остаются, но больше не действуют.
func (s *ProjectStore) AcceptProposal(projectID, proposalID string, days int) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(projectID)
	if idx < 0 {
		return models.Project{}, apperror.ErrProjectNotFound
	}

	project := s.projects[idx].Clone()

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

	if !project.Status.CanTransitionTo(valueobject.ProjectStatusInProgress) {
		return models.Project{}, apperror.New(apperror.ErrCodeBadRequest, "нанять исполнителя можно только до начала работ")
	}

	project.Status = valueobject.ProjectStatusInProgress
	project.HiredFreelancerID = accepted.FreelancerID
	project.Deadline = time.Now().AddDate(0, 0, days).Format("2006-01-02")

	s.replace(idx, project)
	return project.Clone(), nil
}

// SubmitWork записывает сданную работу и текст аудита. Статус проекта не
// меняется: это самопереход внутри IN_PROGRESS, работу можно пересдать.
func (s *ProjectStore) SubmitWork(projectID, submissionURL, audit string) (models.Project, error) {
	if strings.TrimSpace(submissionURL) == "" {
		return models.Project{}, apperror.New(apperror.ErrCodeValidation, "ссылка на результат обязательна")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(projectID)
	if idx < 0 {
		return models.Project{}, apperror.ErrProjectNotFound
	}

	project := s.projects[idx].Clone()
	if project.Status != valueobject.ProjectStatusInProgress {
		return models.Project{}, apperror.New(apperror.ErrCodeBadRequest, "сдать работу можно только по активному контракту")
	}

	project.SubmissionURL = submissionURL
	project.SubmissionAudit = audit
	project.SubmissionStatus = models.SubmissionStatusAudited

	s.replace(idx, project)
	return project.Clone(), nil
}

// Release завершает проект и пишет RELEASE в леджер в пользу нанятого
// фрилансера.
func (s *ProjectStore) Release(projectID string) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(projectID)
	if idx < 0 {
		return models.Transaction{}, apperror.ErrProjectNotFound
	}

	project := s.projects[idx].Clone()
	if !project.Status.CanTransitionTo(valueobject.ProjectStatusCompleted) {
		return models.Transaction{}, apperror.New(apperror.ErrCodeBadRequest, "выплата возможна только по активному контракту")
	}

	recipient := project.HiredFreelancerID
	if recipient == "" {
		recipient = "Worker"
	}

	project.Status = valueobject.ProjectStatusCompleted
	tx := models.NewTransaction("sig_rel_", models.TransactionTypeRelease, project.Budget, models.EscrowProgramAccount, recipient)

	s.replace(idx, project)
	s.appendTransaction(tx)

	return tx, nil
}

// Projects возвращает копию пула, новые — первыми.
func (s *ProjectStore) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Project, 0, len(s.projects))
	for i := range s.projects {
		out = append(out, s.projects[i].Clone())
	}
	return out
}

// Get возвращает копию проекта по идентификатору.
func (s *ProjectStore) Get(projectID string) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(projectID)
	if idx < 0 {
		return models.Project{}, false
	}
	return s.projects[idx].Clone(), true
}

// Transactions возвращает сессионный леджер, новые — первыми.
func (s *ProjectStore) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Transaction(nil), s.ledger...)
}

// indexOf вызывается под мьютексом.
func (s *ProjectStore) indexOf(projectID string) int {
	for i := range s.projects {
		if s.projects[i].ID == projectID {
			return i
		}
	}
	return -1
}

// replace заменяет один проект, пересобирая срез целиком (copy-on-write).
// Вызывается под мьютексом.
func (s *ProjectStore) replace(idx int, project models.Project) {
	next := make([]models.Project, len(s.projects))
	copy(next, s.projects)
	next[idx] = project
	s.commit(next)
}

// commit подменяет снапшот и синхронно сохраняет его. Ошибка сохранения
// логируется, но мутацию не откатывает: пул в памяти первичен, файл —
// удобство между перезапусками.
func (s *ProjectStore) commit(next []models.Project) {
	s.projects = next
	if err := s.snapshots.Save(next); err != nil && logger.Log != nil {
		logger.Log.Errorf("store: не удалось сохранить снапшот: %v", err)
	}
}

// appendTransaction вызывается под мьютексом. Леджер только в памяти.
func (s *ProjectStore) appendTransaction(tx models.Transaction) {
	next := make([]models.Transaction, 0, len(s.ledger)+1)
	next = append(next, tx)
	next = append(next, s.ledger...)
	s.ledger = next
}
