package config

type App struct {
	Name    string `env:"APP_NAME" envDefault:"craft-market"`
	Version string `env:"APP_VERSION" envDefault:"dev"`

	MetricsListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
	ProbeListenAddress   string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
}
