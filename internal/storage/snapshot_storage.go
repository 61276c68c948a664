package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ignatzorin/chainlance-backend/internal/models"
)

// SnapshotKey — фиксированное имя снапшота пула проектов. Версия в имени
// вместо миграций: несовместимый формат просто всплывёт ошибкой разбора
// при старте.
const SnapshotKey = "chainlance_job_pool_v3"

// SnapshotStorage хранит пул проектов одним JSON-файлом: читается один
// раз при старте и целиком перезаписывается после каждой мутации.
// Леджер транзакций сюда не попадает — он живёт только в памяти сессии.
type SnapshotStorage struct {
	path string
}

// NewSnapshotStorage готовит каталог хранилища.
func NewSnapshotStorage(dir string) (*SnapshotStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось подготовить каталог: %w", err)
	}
	return &SnapshotStorage{
		path: filepath.Join(dir, SnapshotKey+".json"),
	}, nil
}

// Load читает снапшот. Отсутствие файла — пустой пул; ошибка разбора
// всплывает наружу.
func (s *SnapshotStorage) Load() ([]models.Project, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Project{}, nil
		}
		return nil, fmt.Errorf("storage: не удалось прочитать снапшот: %w", err)
	}

	var projects []models.Project
	if err := json.Unmarshal(raw, &projects); err != nil {
		return nil, fmt.Errorf("storage: несовместимый формат снапшота: %w", err)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// Ping проверяет, что каталог хранилища доступен для записи.
func (s *SnapshotStorage) Ping() error {
	dir := filepath.Dir(s.path)
	probe, err := os.CreateTemp(dir, ".ping-*")
	if err != nil {
		return fmt.Errorf("storage: каталог недоступен для записи: %w", err)
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}

// Save перезаписывает снапшот целиком. Запись через временный файл,
// чтобы не оставить битый снапшот при падении посреди записи.
func (s *SnapshotStorage) Save(projects []models.Project) error {
	raw, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("storage: не удалось сериализовать снапшот: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("storage: не удалось записать снапшот: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("storage: не удалось заменить снапшот: %w", err)
	}
	return nil
}
