package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Storage   Storage   `mapstructure:",squash"`
	Meta      Meta      `mapstructure:",squash"`
	Google    Google    `mapstructure:",squash"`
	WhatsApp  WhatsApp  `mapstructure:",squash"`
	Gemini    Gemini    `mapstructure:",squash"`
	Auth      Auth      `mapstructure:",squash"`
	Dashboard Dashboard `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Storage struct {
	Driver string `mapstructure:"storage_driver"`
	Path   string `mapstructure:"storage_path"`
	DSN    string `mapstructure:"storage_dsn"`
}

type Meta struct {
	GraphURL string `mapstructure:"meta_graph_url"`
	Version  string `mapstructure:"meta_version"`
}

// URL retorna a URL base versionada da Graph API
func (m Meta) URL() string {
	return m.GraphURL + "/" + m.Version
}

type Google struct {
	TokenURL         string `mapstructure:"google_token_url"`
	AnalyticsDataURL string `mapstructure:"google_analytics_data_url"`
}

type WhatsApp struct {
	GraphURL string `mapstructure:"whatsapp_graph_url"`
	Version  string `mapstructure:"whatsapp_version"`
}

func (w WhatsApp) URL() string {
	return w.GraphURL + "/" + w.Version
}

type Gemini struct {
	BaseURL string `mapstructure:"gemini_base_url"`
	Model   string `mapstructure:"gemini_model"`
	APIKey  string `mapstructure:"gemini_api_key"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Dashboard define o único usuário administrador do painel
type Dashboard struct {
	AdminEmail    string `mapstructure:"dashboard_admin_email"`
	AdminPassword string `mapstructure:"dashboard_admin_password"`
	AdminName     string `mapstructure:"dashboard_admin_name"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("STORAGE_DRIVER", "sqlite")
	viper.SetDefault("STORAGE_PATH", "omniconnect.db")
	viper.SetDefault("STORAGE_DSN", "")

	viper.SetDefault("META_GRAPH_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v21.0")

	viper.SetDefault("GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("GOOGLE_ANALYTICS_DATA_URL", "https://analyticsdata.googleapis.com/v1beta")

	viper.SetDefault("WHATSAPP_GRAPH_URL", "https://graph.facebook.com")
	viper.SetDefault("WHATSAPP_VERSION", "v21.0")

	viper.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("GEMINI_API_KEY", "")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("DASHBOARD_ADMIN_EMAIL", "admin@omniconnect.cloud")
	viper.SetDefault("DASHBOARD_ADMIN_PASSWORD", "changeme")
	viper.SetDefault("DASHBOARD_ADMIN_NAME", "Administrador")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFile carrega o .env local, se existir
func loadEnvFile() {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		if wd, err := os.Getwd(); err == nil {
			envPath = filepath.Join(wd, ".env")
		}
	}

	if err := godotenv.Load(envPath); err != nil {
		logrus.Debug("Arquivo .env não encontrado, usando variáveis de ambiente")
	}
}
