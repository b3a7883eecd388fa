package config

import (
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig system configuration
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig web server configuration
type WebConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Secret       string `yaml:"secret"`
	TemplateDir  string `yaml:"template_dir"`  // empty uses the embedded templates
	StaticDir    string `yaml:"static_dir"`    // served under /static when set
	SessionName  string `yaml:"session_name"`  // cookie name
	SessionStore string `yaml:"session_store"` // cookie, bolt, redis
	SessionTTL   int    `yaml:"session_ttl"`   // seconds
	RedisAddr    string `yaml:"redis_addr"`
	RedisDB      int    `yaml:"redis_db"`
	SecureCookie bool   `yaml:"secure_cookie"`
	AdminUser    string `yaml:"admin_user"`
	AdminPasswd  string `yaml:"admin_passwd"` // empty disables the /admin api
}

// LogConfig logging configuration
type LogConfig struct {
	Mode       string `yaml:"mode"` // development or production
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// DBConfig database configuration used by the gorm catalog backend
type DBConfig struct {
	Type   string `yaml:"type"` // sqlite or postgres
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Name   string `yaml:"name"`
	User   string `yaml:"user"`
	Passwd string `yaml:"passwd"`
	Debug  bool   `yaml:"debug"`
}

// CatalogConfig selects the product source
type CatalogConfig struct {
	Source string `yaml:"source"` // memory, csv, database
	File   string `yaml:"file"`   // csv file for the csv source
}

// ShopConfig checkout and pricing parameters
type ShopConfig struct {
	Name                  string  `yaml:"name"`
	OrderPrefix           string  `yaml:"order_prefix"`
	OrderIDFormat         string  `yaml:"order_id_format"` // snowflake or legacy
	NodeID                int64   `yaml:"node_id"`
	FreeShippingThreshold float64 `yaml:"free_shipping_threshold"`
	FlatShipping          float64 `yaml:"flat_shipping"`
	TaxRate               float64 `yaml:"tax_rate"`
	DefaultCountry        string  `yaml:"default_country"`
}

// TelegramConfig telegram bot channel
type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	ApiURL   string `yaml:"api_url"`
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
}

// MailConfig smtp channel
type MailConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// NotifyConfig contact form delivery
type NotifyConfig struct {
	Timeout  int            `yaml:"timeout"` // seconds
	Telegram TelegramConfig `yaml:"telegram"`
	Mail     MailConfig     `yaml:"mail"`
}

type AppConfig struct {
	System   SysConfig     `yaml:"system"`
	Web      WebConfig     `yaml:"web"`
	Logger   LogConfig     `yaml:"logger"`
	Database DBConfig      `yaml:"database"`
	Catalog  CatalogConfig `yaml:"catalog"`
	Shop     ShopConfig    `yaml:"shop"`
	Notify   NotifyConfig  `yaml:"notify"`
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

// InitDirs creates the working directories
func (c *AppConfig) InitDirs() error {
	for _, dir := range []string{c.System.Workdir, c.GetDataDir(), c.GetLogDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create dir %s", dir)
		}
	}
	return nil
}

// DefaultAppConfig is used when no config file is given
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "GreenBean",
			Location: "UTC",
			Workdir:  "/var/greenbean",
		},
		Web: WebConfig{
			Host:         "0.0.0.0",
			Port:         5000,
			Secret:       "dev-secret-key-change-in-production",
			SessionName:  "greenbean_session",
			SessionStore: "bolt",
			SessionTTL:   86400 * 7,
			RedisAddr:    "127.0.0.1:6379",
			AdminUser:    "admin",
		},
		Logger: LogConfig{
			Mode:     "development",
			Filename: "/var/greenbean/logs/storefront.log",
		},
		Database: DBConfig{
			Type: "sqlite",
			Name: "catalog.db",
		},
		Catalog: CatalogConfig{
			Source: "memory",
		},
		Shop: ShopConfig{
			Name:                  "Green Bean",
			OrderPrefix:           "GB",
			OrderIDFormat:         "snowflake",
			NodeID:                1,
			FreeShippingThreshold: 50,
			FlatShipping:          9.99,
			TaxRate:               0.08,
			DefaultCountry:        "United States",
		},
		Notify: NotifyConfig{
			Timeout: 10,
			Telegram: TelegramConfig{
				ApiURL: "https://api.telegram.org",
			},
			Mail: MailConfig{
				Port: 587,
			},
		},
	}
}

// LoadConfig reads the yaml file (if any) over the defaults and applies environment overrides.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		if err != nil {
			return nil, errors.Wrap(err, "read config file")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "parse config file")
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

func setEnvValue(name string, val *string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*val = cast.ToBool(v)
	}
}

func setEnvIntValue(name string, val *int) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		if i, err := cast.ToIntE(v); err == nil {
			*val = i
		}
	}
}

func setEnvFloatValue(name string, val *float64) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		if f, err := cast.ToFloat64E(v); err == nil {
			*val = f
		}
	}
}

func applyEnv(cfg *AppConfig) {
	// unprefixed names used by existing deployments
	setEnvValue("SECRET_KEY", &cfg.Web.Secret)
	setEnvIntValue("PORT", &cfg.Web.Port)
	setEnvValue("TELEGRAM_BOT_TOKEN", &cfg.Notify.Telegram.BotToken)
	setEnvValue("TELEGRAM_CHAT_ID", &cfg.Notify.Telegram.ChatID)

	setEnvValue("GREENBEAN_WORKDIR", &cfg.System.Workdir)
	setEnvValue("GREENBEAN_LOCATION", &cfg.System.Location)
	setEnvBoolValue("GREENBEAN_DEBUG", &cfg.System.Debug)

	setEnvValue("GREENBEAN_WEB_HOST", &cfg.Web.Host)
	setEnvValue("GREENBEAN_SESSION_STORE", &cfg.Web.SessionStore)
	setEnvValue("GREENBEAN_REDIS_ADDR", &cfg.Web.RedisAddr)
	setEnvValue("GREENBEAN_TEMPLATE_DIR", &cfg.Web.TemplateDir)
	setEnvValue("GREENBEAN_STATIC_DIR", &cfg.Web.StaticDir)
	setEnvValue("GREENBEAN_ADMIN_USER", &cfg.Web.AdminUser)
	setEnvValue("GREENBEAN_ADMIN_PWD", &cfg.Web.AdminPasswd)

	setEnvValue("GREENBEAN_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("GREENBEAN_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)

	setEnvValue("GREENBEAN_DB_TYPE", &cfg.Database.Type)
	setEnvValue("GREENBEAN_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("GREENBEAN_DB_PORT", &cfg.Database.Port)
	setEnvValue("GREENBEAN_DB_NAME", &cfg.Database.Name)
	setEnvValue("GREENBEAN_DB_USER", &cfg.Database.User)
	setEnvValue("GREENBEAN_DB_PWD", &cfg.Database.Passwd)

	setEnvValue("GREENBEAN_CATALOG_SOURCE", &cfg.Catalog.Source)
	setEnvValue("GREENBEAN_CATALOG_FILE", &cfg.Catalog.File)

	setEnvValue("GREENBEAN_ORDER_ID_FORMAT", &cfg.Shop.OrderIDFormat)
	setEnvFloatValue("GREENBEAN_TAX_RATE", &cfg.Shop.TaxRate)

	setEnvBoolValue("GREENBEAN_TELEGRAM_ENABLED", &cfg.Notify.Telegram.Enabled)
	setEnvBoolValue("GREENBEAN_MAIL_ENABLED", &cfg.Notify.Mail.Enabled)
	setEnvValue("GREENBEAN_MAIL_HOST", &cfg.Notify.Mail.Host)
	setEnvIntValue("GREENBEAN_MAIL_PORT", &cfg.Notify.Mail.Port)
	setEnvValue("GREENBEAN_MAIL_USER", &cfg.Notify.Mail.Username)
	setEnvValue("GREENBEAN_MAIL_PWD", &cfg.Notify.Mail.Password)
	setEnvValue("GREENBEAN_MAIL_FROM", &cfg.Notify.Mail.From)
	setEnvValue("GREENBEAN_MAIL_TO", &cfg.Notify.Mail.To)

	// a token without an explicit switch still enables the channel
	if cfg.Notify.Telegram.BotToken != "" && cfg.Notify.Telegram.ChatID != "" {
		cfg.Notify.Telegram.Enabled = true
	}
}
