package wallet

import (
	"context"
	"sync"

	"github.com/ignatzorin/chainlance-backend/internal/goroutine"
	"github.com/ignatzorin/chainlance-backend/internal/logger"
	"github.com/ignatzorin/chainlance-backend/internal/pkg/apperror"
)

// Observer получает уведомления адаптера. Приложение регистрируется один
// раз при старте и снимает регистрацию при остановке.
type Observer interface {
	OnAddressChanged(address string)
	OnDisconnected()
}

// Adapter — тонкая обёртка над провайдером кошелька. Хранит текущий
// адрес и транслирует события провайдера наблюдателям.
type Adapter struct {
	mu        sync.RWMutex
	provider  Provider
	address   string
	observers map[Observer]struct{}
	done      chan struct{}
}

// NewAdapter создаёт адаптер. provider может быть nil — тогда кошелёк
// "не установлен" и все операции возвращают ErrWalletMissing.
func NewAdapter(provider Provider) *Adapter {
	return &Adapter{
		provider:  provider,
		observers: make(map[Observer]struct{}),
		done:      make(chan struct{}),
	}
}

// Start запускает прослушивание событий провайдера и пробует один раз
// тихо переподключиться. Неудача тихого подключения проглатывается:
// это состояние "не подключён", а не ошибка.
func (a *Adapter) Start(ctx context.Context) {
	if a.provider == nil {
		return
	}

	goroutine.SafeGo(func() { a.listen() })

	address, err := a.provider.Connect(ctx, true)
	if err != nil {
		if logger.Log != nil {
			logger.Log.Debugf("wallet: тихое переподключение не удалось: %v", err)
		}
		return
	}
	a.setAddress(address)
}

// Connect подключает кошелёк по явному действию пользователя.
func (a *Adapter) Connect(ctx context.Context) (string, error) {
	if a.provider == nil {
		return "", apperror.ErrWalletMissing
	}

	address, err := a.provider.Connect(ctx, false)
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeWallet, "не удалось подключить кошелёк")
	}

	a.setAddress(address)
	return address, nil
}

// Disconnect отключает кошелёк.
func (a *Adapter) Disconnect(ctx context.Context) error {
	if a.provider == nil {
		return apperror.ErrWalletMissing
	}

	if err := a.provider.Disconnect(ctx); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeWallet, "не удалось отключить кошелёк")
	}

	a.clearAddress()
	return nil
}

// Address возвращает текущий подключённый адрес ("" — не подключён).
func (a *Adapter) Address() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.address
}

// Available сообщает, установлен ли провайдер кошелька.
func (a *Adapter) Available() bool {
	return a.provider != nil
}

// Register добавляет наблюдателя.
func (a *Adapter) Register(obs Observer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.observers[obs] = struct{}{}
}

// Deregister снимает наблюдателя.
func (a *Adapter) Deregister(obs Observer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.observers, obs)
}

// Close останавливает прослушивание и закрывает провайдер.
func (a *Adapter) Close() error {
	close(a.done)
	if a.provider == nil {
		return nil
	}
	return a.provider.Close()
}

func (a *Adapter) listen() {
	events := a.provider.Events()
	for {
		select {
		case <-a.done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev.Kind {
			case EventAddressChanged:
				if ev.Address == "" {
					a.clearAddress()
				} else {
					a.setAddress(ev.Address)
				}
			case EventDisconnected:
				a.clearAddress()
			}
		}
	}
}

func (a *Adapter) setAddress(address string) {
	a.mu.Lock()
	if a.address == address {
		a.mu.Unlock()
		return
	}
	a.address = address
	observers := a.snapshotObservers()
	a.mu.Unlock()

	for _, obs := range observers {
		obs.OnAddressChanged(address)
	}
}

func (a *Adapter) clearAddress() {
	a.mu.Lock()
	if a.address == "" {
		a.mu.Unlock()
		return
	}
	a.address = ""
	observers := a.snapshotObservers()
	a.mu.Unlock()

	for _, obs := range observers {
		obs.OnDisconnected()
	}
}

// snapshotObservers вызывается под мьютексом.
func (a *Adapter) snapshotObservers() []Observer {
	observers := make([]Observer, 0, len(a.observers))
	for obs := range a.observers {
		observers = append(observers, obs)
	}
	return observers
}
