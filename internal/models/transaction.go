package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Типы транзакций
const (
	TransactionTypeDeposit = "DEPOSIT"
	TransactionTypeRelease = "RELEASE"
	// Зарезервирован, но не используется текущим жизненным циклом.
	TransactionTypeRefund = "REFUND"
)

// Статусы транзакций
const (
	TransactionStatusPending   = "PENDING"
	TransactionStatusConfirmed = "CONFIRMED"
)

// EscrowProgramAccount — адрес программы-эскроу, на которую уходит депозит.
// Реальной передачи средств нет, это запись в сессионном леджере.
const EscrowProgramAccount = "ChainLance_Program"

// Transaction представляет запись сессионного леджера. Записи только
// добавляются и никогда не изменяются; между сессиями не сохраняются.
type Transaction struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
}

// NewSignature генерирует псевдоподпись транзакции в стиле сети.
func NewSignature(prefix string) string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand на практике не падает; деградируем до нулевой подписи.
		return prefix + "0000000000000000"
	}
	return prefix + hex.EncodeToString(buf)
}

// NewTransaction создаёт подтверждённую запись леджера.
func NewTransaction(idPrefix, txType string, amount float64, from, to string) Transaction {
	return Transaction{
		ID:        NewSignature(idPrefix),
		Type:      txType,
		Amount:    amount,
		From:      from,
		To:        to,
		Status:    TransactionStatusConfirmed,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
