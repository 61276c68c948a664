package wallet

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mr-tron/base58"
)

const (
	keypairFileName = "wallet_keypair"
	trustedFileName = "wallet_trusted"
)

// StubProvider — локальная заглушка кошелька для демо. Держит ed25519
// ключ на диске и выдаёт base58-адрес публичного ключа. После первого
// явного подключения ставится маркер доверия, и тихое переподключение
// при следующем запуске проходит без участия пользователя.
type StubProvider struct {
	mu        sync.Mutex
	dir       string
	address   string
	connected bool
	events    chan Event
	closed    bool
}

// NewStubProvider загружает или создаёт ключ в каталоге dir.
func NewStubProvider(dir string) (*StubProvider, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("wallet: не удалось подготовить каталог ключа: %w", err)
	}

	address, err := loadOrCreateAddress(dir)
	if err != nil {
		return nil, err
	}

	return &StubProvider{
		dir:     dir,
		address: address,
		events:  make(chan Event, 8),
	}, nil
}

// Connect возвращает адрес заглушки. Тихое подключение проходит только
// при наличии маркера доверия от предыдущего явного подключения.
func (p *StubProvider) Connect(ctx context.Context, onlyIfTrusted bool) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if onlyIfTrusted && !p.trusted() {
		return "", ErrNotTrusted
	}

	if !onlyIfTrusted {
		p.markTrusted()
	}

	p.connected = true
	p.emit(Event{Kind: EventAddressChanged, Address: p.address})
	return p.address, nil
}

// Disconnect отключает заглушку и снимает маркер доверия.
func (p *StubProvider) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.connected {
		return nil
	}
	p.connected = false
	os.Remove(filepath.Join(p.dir, trustedFileName))
	p.emit(Event{Kind: EventDisconnected})
	return nil
}

// Events отдаёт канал событий.
func (p *StubProvider) Events() <-chan Event {
	return p.events
}

// Close закрывает канал событий.
func (p *StubProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.events)
	}
	return nil
}

// emit вызывается под мьютексом. Полный канал не блокирует провайдера.
func (p *StubProvider) emit(ev Event) {
	if p.closed {
		return
	}
	select {
	case p.events <- ev:
	default:
	}
}

func (p *StubProvider) trusted() bool {
	_, err := os.Stat(filepath.Join(p.dir, trustedFileName))
	return err == nil
}

func (p *StubProvider) markTrusted() {
	os.WriteFile(filepath.Join(p.dir, trustedFileName), []byte("1"), 0o644)
}

// loadOrCreateAddress читает ключ с диска или генерирует новый, чтобы
// демо-идентичность переживала перезапуски.
func loadOrCreateAddress(dir string) (string, error) {
	path := filepath.Join(dir, keypairFileName)

	if raw, err := os.ReadFile(path); err == nil && len(raw) == ed25519.PrivateKeySize {
		priv := ed25519.PrivateKey(raw)
		return base58.Encode(priv.Public().(ed25519.PublicKey)), nil
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", fmt.Errorf("wallet: не удалось сгенерировать ключ: %w", err)
	}
	if err := os.WriteFile(path, priv, 0o600); err != nil {
		return "", fmt.Errorf("wallet: не удалось сохранить ключ: %w", err)
	}
	return base58.Encode(pub), nil
}
