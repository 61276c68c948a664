package dto

// SessionResponse — состояние сессии после подключения или смены роли.
type SessionResponse struct {
	Address      string `json:"address"`
	ShortAddress string `json:"shortAddress"`
	Role         string `json:"role"`
	Token        string `json:"token"`
}

// WalletMissingResponse — кошелёк не установлен; клиенту предлагается
// внешняя страница установки вместо ошибки.
type WalletMissingResponse struct {
	Error     string `json:"error"`
	WalletURL string `json:"walletUrl"`
}

// TextResponse — единичный текстовый результат AI-советника.
type TextResponse struct {
	Text string `json:"text"`
}
