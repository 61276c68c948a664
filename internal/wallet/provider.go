package wallet

import (
	"context"
	"errors"
)

// EventKind перечисляет события провайдера кошелька.
type EventKind int

const (
	// EventAddressChanged — активный адрес сменился (в т.ч. появился).
	EventAddressChanged EventKind = iota
	// EventDisconnected — провайдер разорвал подключение.
	EventDisconnected
)

// Event описывает событие провайдера.
type Event struct {
	Kind    EventKind
	Address string
}

// ErrNotTrusted возвращается при тихом подключении, если пользователь
// ещё не подключал кошелёк явно. Ошибкой не считается: адаптер просто
// остаётся в состоянии "не подключён".
var ErrNotTrusted = errors.New("wallet: нет доверенного подключения")

// Provider — поверхность внедрённого кошелька. Подписей и транзакций
// здесь нет: провайдер только выдаёт адрес и события его смены.
type Provider interface {
	// Connect подключает кошелёк и возвращает адрес. При onlyIfTrusted
	// подключение тихое: без ранее выданного доверия — ErrNotTrusted.
	Connect(ctx context.Context, onlyIfTrusted bool) (string, error)
	// Disconnect отключает кошелёк.
	Disconnect(ctx context.Context) error
	// Events отдаёт канал событий провайдера. Канал закрывается
	// вместе с провайдером.
	Events() <-chan Event
	// Close освобождает ресурсы провайдера.
	Close() error
}
