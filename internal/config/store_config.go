package config

// StoreConfig locates the external collaborators: the document store and the
// payment gateway.
type StoreConfig interface {
	GetDatabaseURL() string
	GetPaymentGatewayURL() string
	GetPaymentGatewayKey() string
	GetCurrency() string
}

type Store struct{}

var _ StoreConfig = Store{}

// GetDatabaseURL returns the postgres connection string. Empty selects the
// in-memory repositories.
func (Store) GetDatabaseURL() string {
	return GetEnv("DATABASE_URL", "")
}

func (Store) GetPaymentGatewayURL() string {
	return GetEnv("PAYMENT_GATEWAY_URL", "http://localhost:9090")
}

func (Store) GetPaymentGatewayKey() string {
	return GetEnv("PAYMENT_GATEWAY_KEY", "")
}

func (Store) GetCurrency() string {
	return GetEnv("CURRENCY", "usd")
}
