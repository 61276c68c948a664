package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/chainlance-backend/internal/domain/valueobject"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	m := NewSessionTokenManager("test-secret", time.Hour)

	token, err := m.Issue(clientAddress, valueobject.RoleClient)
	require.NoError(t, err)

	address, role, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, clientAddress, address)
	assert.Equal(t, valueobject.RoleClient, role)
}

func TestSessionTokenRoleSwitchReissues(t *testing.T) {
	m := NewSessionTokenManager("test-secret", time.Hour)

	clientToken, err := m.Issue(clientAddress, valueobject.RoleClient)
	require.NoError(t, err)
	freelancerToken, err := m.Issue(clientAddress, valueobject.RoleFreelancer)
	require.NoError(t, err)

	_, role, err := m.Parse(freelancerToken)
	require.NoError(t, err)
	assert.Equal(t, valueobject.RoleFreelancer, role)

	// Старый токен остаётся валидным со старой ролью
	_, role, err = m.Parse(clientToken)
	require.NoError(t, err)
	assert.Equal(t, valueobject.RoleClient, role)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	m := NewSessionTokenManager("test-secret", time.Hour)
	other := NewSessionTokenManager("another-secret", time.Hour)

	token, err := m.Issue(clientAddress, valueobject.RoleClient)
	require.NoError(t, err)

	_, _, err = other.Parse(token)
	assert.Error(t, err)
}

func TestSessionTokenExpired(t *testing.T) {
	m := NewSessionTokenManager("test-secret", -time.Minute)

	token, err := m.Issue(clientAddress, valueobject.RoleClient)
	require.NoError(t, err)

	_, _, err = m.Parse(token)
	assert.Error(t, err)
}

func TestSessionTokenGarbage(t *testing.T) {
	m := NewSessionTokenManager("test-secret", time.Hour)

	_, _, err := m.Parse("не.токен.вовсе")
	assert.Error(t, err)
}
