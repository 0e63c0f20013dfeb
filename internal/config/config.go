package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Database    Database
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	JWT       JWT       `envPrefix:"JWT_"`
	Paypal    Paypal    `envPrefix:"PAYPAL_"`
	Paynow    Paynow    `envPrefix:"PAYNOW_"`
	Braintree Braintree `envPrefix:"BRAINTREE_"`
}

type Paypal struct {
	BaseApiURL   string `env:"BASE_API_URL" envDefault:"https://api-m.sandbox.paypal.com"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
}

type Paynow struct {
	BaseApiURL     string `env:"BASE_API_URL" envDefault:"https://www.paynow.co.zw"`
	IntegrationID  string `env:"INTEGRATION_ID"`
	IntegrationKey string `env:"INTEGRATION_KEY"`
}

type Braintree struct {
	Environment string `env:"ENVIRONMENT" envDefault:"sandbox"`
	MerchantID  string `env:"MERCHANT_ID"`
	PublicKey   string `env:"PUBLIC_KEY"`
	PrivateKey  string `env:"PRIVATE_KEY"`
}

type JWT struct {
	Secret string        `env:"SECRET"`
	TTL    time.Duration `env:"TTL" envDefault:"72h"`
}

type Database struct {
	Driver string `env:"DB_DRIVER" envDefault:"sqlite"` // sqlite | mysql
	URL    string `env:"DATABASE_URL" envDefault:"techstore.db"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
