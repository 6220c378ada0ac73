package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App          AppConfig
	HTTP         HTTPConfig
	JWT          JWTConfig
	Admin        AdminConfig
	Store        StoreConfig
	DB           DBConfig
	Redis        RedisConfig
	Business     BusinessConfig
	AI           AIConfig
	Logistics    LogisticsConfig
	Connectivity ConnectivityConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AdminConfig usuario inicial que se crea si no existe ningún usuario.
type AdminConfig struct {
	Email    string
	Password string
}

// StoreConfig selecciona el almacén clave-valor donde persisten los ledgers.
type StoreConfig struct {
	Backend string // memory, file, postgres, redis
	Dir     string // solo backend file
	Prefix  string // prefijo de claves (redis/postgres)
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// RedisConfig conexión a Redis para el backend redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// BusinessConfig perfil del negocio: vertical, IVA y política de stock.
type BusinessConfig struct {
	Name           string
	Vertical       string  // general, supermarket, hospital, lpg_station, education, real_estate
	TaxRate        float64 // porcentaje plano, ej. 7.5
	CurrencySymbol string
	StockPolicy    string // allow_negative, reject
}

// AIConfig proveedor de generación de texto (recibos, insights).
type AIConfig struct {
	Provider        string // gemini, anthropic
	GeminiAPIKey    string
	GeminiModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	TimeoutSeconds  int
}

// LogisticsConfig destino de los envíos generados por ventas a domicilio.
type LogisticsConfig struct {
	Backend        string // store, kafka
	KafkaBrokers   []string
	ShipmentsTopic string
}

// ConnectivityConfig sonda de conectividad previa a las llamadas de IA.
type ConnectivityConfig struct {
	ProbeAddr string
	TimeoutMS int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORE_BACKEND, BUSINESS_TAX_RATE, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "nibso-dashboard"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "nibso-dashboard"),
		},
		Admin: AdminConfig{
			Email:    getString(v, "ADMIN_EMAIL", "admin@nibso.local"),
			Password: getString(v, "ADMIN_PASSWORD", ""),
		},
		Store: StoreConfig{
			Backend: getString(v, "STORE_BACKEND", "file"),
			Dir:     getString(v, "STORE_DIR", "./data"),
			Prefix:  getString(v, "STORE_PREFIX", "nibso:"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "nibso"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Business: BusinessConfig{
			Name:           getString(v, "BUSINESS_NAME", "Nibso Store"),
			Vertical:       getString(v, "BUSINESS_VERTICAL", "supermarket"),
			TaxRate:        getFloat(v, "BUSINESS_TAX_RATE", 7.5),
			CurrencySymbol: getString(v, "BUSINESS_CURRENCY_SYMBOL", "₦"),
			StockPolicy:    getString(v, "STOCK_POLICY", "allow_negative"),
		},
		AI: AIConfig{
			Provider:        getString(v, "AI_PROVIDER", "gemini"),
			GeminiAPIKey:    getString(v, "GEMINI_API_KEY", ""),
			GeminiModel:     getString(v, "GEMINI_MODEL", "gemini-1.5-flash"),
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
			TimeoutSeconds:  getInt(v, "AI_TIMEOUT_SECONDS", 15),
		},
		Logistics: LogisticsConfig{
			Backend:        getString(v, "LOGISTICS_BACKEND", "store"),
			KafkaBrokers:   getStrings(v, "KAFKA_BROKERS", []string{"localhost:9092"}),
			ShipmentsTopic: getString(v, "KAFKA_SHIPMENTS_TOPIC", "logistics.shipments"),
		},
		Connectivity: ConnectivityConfig{
			ProbeAddr: getString(v, "CONNECTIVITY_PROBE_ADDR", "generativelanguage.googleapis.com:443"),
			TimeoutMS: getInt(v, "CONNECTIVITY_TIMEOUT_MS", 1500),
		},
	}

	if cfg.Business.TaxRate < 0 || cfg.Business.TaxRate > 100 {
		return nil, fmt.Errorf("config: BUSINESS_TAX_RATE fuera de rango: %v", cfg.Business.TaxRate)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		if s, ok := v.Get(key).(string); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return def
			}
			return f
		}
		return v.GetFloat64(key)
	}
	return def
}

// getStrings acepta listas separadas por coma (KAFKA_BROKERS=a:9092,b:9092).
func getStrings(v *viper.Viper, key string, def []string) []string {
	if !v.IsSet(key) {
		return def
	}
	var out []string
	for _, s := range strings.Split(v.GetString(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
