package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultSecret = "dev-secret-change-me"
)

type Config struct {
	Env      string
	DB       db
	Server   server
	Auth     auth
	Storage  storage
	Embedder embedder
	Device   device
}

type db struct {
	DatabaseURI string
	Migrations  string
}

type server struct {
	RunAddress string
}

type auth struct {
	Secret          string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	AdminIdentifier string
	AdminPassword   string
}

type storage struct {
	PhotosDir   string
	CapturesDir string
}

type embedder struct {
	Name     string
	Endpoint string
}

// device is the operationally relevant subset of settings shipped to
// edge devices inside the sync payload.
type device struct {
	Threshold       float64
	GPIOPin         int
	GPIOPulseMS     int
	SyncIntervalSec int
}

func MustLoad() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()

	viper.SetDefault("run_address", ":8080")
	viper.SetDefault("migrations_path", "migrations")
	viper.SetDefault("secret", defaultSecret)
	viper.SetDefault("jwt_exp_minutes", 30)
	viper.SetDefault("refresh_exp_minutes", 7*24*60)
	viper.SetDefault("default_admin_identifier", "admin")
	viper.SetDefault("default_admin_password", "admin")
	viper.SetDefault("photos_dir", "data/photos")
	viper.SetDefault("captures_dir", "data/captures")
	viper.SetDefault("embedder_name", "facenet")
	viper.SetDefault("threshold", 0.6)
	viper.SetDefault("gpio_pin", 17)
	viper.SetDefault("gpio_pulse_ms", 800)
	viper.SetDefault("sync_interval_sec", 300)

	config := Config{
		Env: viper.GetString("app_env"),
		DB: db{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: server{RunAddress: viper.GetString("run_address")},
		Auth: auth{
			Secret:          viper.GetString("secret"),
			AccessTTL:       time.Duration(viper.GetInt("jwt_exp_minutes")) * time.Minute,
			RefreshTTL:      time.Duration(viper.GetInt("refresh_exp_minutes")) * time.Minute,
			AdminIdentifier: viper.GetString("default_admin_identifier"),
			AdminPassword:   viper.GetString("default_admin_password"),
		},
		Storage: storage{
			PhotosDir:   viper.GetString("photos_dir"),
			CapturesDir: viper.GetString("captures_dir"),
		},
		Embedder: embedder{
			Name:     viper.GetString("embedder_name"),
			Endpoint: viper.GetString("embedder_endpoint"),
		},
		Device: device{
			Threshold:       viper.GetFloat64("threshold"),
			GPIOPin:         viper.GetInt("gpio_pin"),
			GPIOPulseMS:     viper.GetInt("gpio_pulse_ms"),
			SyncIntervalSec: viper.GetInt("sync_interval_sec"),
		},
	}

	return &config
}
