package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/chainlance-backend/internal/domain/valueobject"
	"github.com/ignatzorin/chainlance-backend/internal/models"
)

func TestLoadMissingFile(t *testing.T) {
	s, err := NewSnapshotStorage(t.TempDir())
	require.NoError(t, err)

	projects, err := s.Load()
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSnapshotStorage(dir)
	require.NoError(t, err)

	projects := []models.Project{
		{
			ID:          models.NewProjectID(),
			Title:       "Аудит смарт-контракта",
			Description: "Проверить программу эскроу перед деплоем.",
			Budget:      3.2,
			Category:    "Development",
			ClientName:  "4Nd1...KwUE",
			Status:      valueobject.ProjectStatusOpen,
			Deadline:    models.DeadlineTBD,
			Skills:      []string{"Rust", "Anchor"},
			Proposals:   []models.Proposal{},
		},
	}
	require.NoError(t, s.Save(projects))

	// Снапшот лежит под фиксированным ключом
	_, err = os.Stat(filepath.Join(dir, SnapshotKey+".json"))
	require.NoError(t, err)

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, projects[0].ID, loaded[0].ID)
	assert.Equal(t, projects[0].Status, loaded[0].Status)
	assert.Equal(t, projects[0].Skills, loaded[0].Skills)
}

func TestLoadCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSnapshotStorage(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, SnapshotKey+".json"), []byte("{не json"), 0o644))

	_, err = s.Load()
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	s, err := NewSnapshotStorage(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, s.Ping())
}
