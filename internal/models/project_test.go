package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/chainlance-backend/internal/domain/valueobject"
)

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "4Nd1...KwUE", ShortAddress("4Nd1mYQx7kznJtR8eWqP5TzV2uHs6cGf9aBpLoXjKwUE"))
	// Короткие адреса не трогаем
	assert.Equal(t, "Worker", ShortAddress("Worker"))
	assert.Equal(t, "", ShortAddress(""))
}

func TestIsOwnedBy(t *testing.T) {
	full := "4Nd1mYQx7kznJtR8eWqP5TzV2uHs6cGf9aBpLoXjKwUE"
	p := Project{ClientName: ShortAddress(full)}

	// Владелец распознаётся и по полному адресу, и по усечённому
	assert.True(t, p.IsOwnedBy(full))
	assert.True(t, p.IsOwnedBy("4Nd1...KwUE"))
	assert.False(t, p.IsOwnedBy("9XyzTqW3vRb5nKcA8dSfJh2mG7pEuL4oNiC6sFtYxDMH"))
	assert.False(t, p.IsOwnedBy(""))
}

func TestHasProposalFromAndIsHired(t *testing.T) {
	p := Project{
		HiredFreelancerID: "worker-1",
		Proposals: []Proposal{
			{FreelancerID: "worker-1"},
			{FreelancerID: "worker-2"},
		},
	}

	assert.True(t, p.HasProposalFrom("worker-2"))
	assert.False(t, p.HasProposalFrom("worker-3"))
	assert.True(t, p.IsHired("worker-1"))
	assert.False(t, p.IsHired("worker-2"))
	assert.False(t, p.IsHired(""))
}

func TestCloneIsDeep(t *testing.T) {
	original := Project{
		ID:        NewProjectID(),
		Status:    valueobject.ProjectStatusOpen,
		Skills:    []string{"Go"},
		Proposals: []Proposal{{ID: "prop-1"}},
	}

	clone := original.Clone()
	clone.Skills[0] = "Rust"
	clone.Proposals[0].ID = "prop-2"

	assert.Equal(t, "Go", original.Skills[0])
	assert.Equal(t, "prop-1", original.Proposals[0].ID)
}

func TestCloneKeepsEmptyListsNonNil(t *testing.T) {
	original := Project{
		ID:        NewProjectID(),
		Status:    valueobject.ProjectStatusOpen,
		Skills:    []string{},
		Proposals: []Proposal{},
	}

	clone := original.Clone()

	// Пустые списки должны сериализоваться как [], а не null.
	assert.NotNil(t, clone.Skills)
	assert.NotNil(t, clone.Proposals)

	raw, err := json.Marshal(clone)
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"skills":[]`)
	assert.Contains(t, string(raw), `"proposals":[]`)
}

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "Solana"}, SplitSkills("Go, Solana"))
	assert.Equal(t, []string{"React"}, SplitSkills(" React ,, "))
	assert.Equal(t, []string{}, SplitSkills("  "))
}

func TestNewTransaction(t *testing.T) {
	tx := NewTransaction("sig_", TransactionTypeDeposit, 2.5, "клиент", EscrowProgramAccount)

	assert.Equal(t, TransactionTypeDeposit, tx.Type)
	assert.Equal(t, TransactionStatusConfirmed, tx.Status)
	assert.Equal(t, 2.5, tx.Amount)
	assert.Equal(t, "sig_", tx.ID[:4])
	assert.NotEmpty(t, tx.Timestamp)
}
