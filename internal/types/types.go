package types

// User is a registered chat user, keyed by their Telegram user ID.
type User struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CreatedAt string `json:"created_at"`
}

// Alert directions. Fixed at creation time from the market price observed
// then; the scheduler compares accordingly.
const (
	DirectionAbove = "above"
	DirectionBelow = "below"
)

type Alert struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"user_id"`
	TokenSymbol    string  `json:"token_symbol"`
	PriceThreshold float64 `json:"price_threshold"`
	Direction      string  `json:"direction"`
	CreatedAt      string  `json:"created_at"`
}

// TokenSnapshot is a point-in-time USD market view of a token.
type TokenSnapshot struct {
	Name           string  `json:"name"`
	Symbol         string  `json:"symbol"`
	PriceUSD       float64 `json:"price_usd"`
	MarketCap      float64 `json:"market_cap"`
	Volume24h      float64 `json:"volume_24h"`
	PriceChange24h float64 `json:"price_change_24h"`
}
