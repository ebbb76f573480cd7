package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Secret   string `yaml:"secret"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type DBConfig struct {
	Type     string `yaml:"type"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	Debug    bool   `yaml:"debug"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type ReceiptConfig struct {
	Enabled bool   `yaml:"enabled"`
	Folder  string `yaml:"folder"`
}

type AppConfig struct {
	System   SysConfig     `yaml:"system"`
	Web      WebConfig     `yaml:"web"`
	Database DBConfig      `yaml:"database"`
	Logger   LogConfig     `yaml:"logger"`
	Receipt  ReceiptConfig `yaml:"receipt"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "KandiPOS",
		Location: "Africa/Lagos",
		Workdir:  "/var/kandipos",
		Debug:    true,
	},
	Web: WebConfig{
		Host:     "0.0.0.0",
		Port:     5000,
		Secret:   "9b6de5cc-0731-1203-xxtx-0f568ac9da37",
		Username: "KANDI-TEXTILE",
		Password: "1234",
	},
	Database: DBConfig{
		Type:     "sqlite",
		Path:     "pos.db",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "kandipos",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/kandipos/kandipos.log",
	},
	Receipt: ReceiptConfig{
		Enabled: true,
		Folder:  "receipts",
	},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue == "true" || evalue == "1" || evalue == "on")
	}
}

func setEnvIntValue(name string, f func(v int)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(cast.ToInt(evalue))
	}
}

// LoadConfig reads the YAML configuration file and applies environment
// overrides. A missing file is not an error; defaults are used.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("KANDIPOS_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("KANDIPOS_SYSTEM_LOCATION", func(v string) { cfg.System.Location = v })
	setEnvBoolValue("KANDIPOS_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })

	setEnvValue("KANDIPOS_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvIntValue("KANDIPOS_WEB_PORT", func(v int) { cfg.Web.Port = v })
	setEnvIntValue("PORT", func(v int) { cfg.Web.Port = v })
	setEnvValue("KANDIPOS_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("KANDIPOS_WEB_USERNAME", func(v string) { cfg.Web.Username = v })
	setEnvValue("KANDIPOS_WEB_PASSWORD", func(v string) { cfg.Web.Password = v })

	setEnvValue("KANDIPOS_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("KANDIPOS_DB_PATH", func(v string) { cfg.Database.Path = v })
	setEnvValue("KANDIPOS_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvIntValue("KANDIPOS_DB_PORT", func(v int) { cfg.Database.Port = v })
	setEnvValue("KANDIPOS_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("KANDIPOS_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("KANDIPOS_DB_PASSWD", func(v string) { cfg.Database.Passwd = v })

	setEnvBoolValue("KANDIPOS_RECEIPT_ENABLED", func(v bool) { cfg.Receipt.Enabled = v })
	setEnvValue("KANDIPOS_RECEIPT_FOLDER", func(v string) { cfg.Receipt.Folder = v })

	return cfg
}

// ReceiptDir resolves the receipt folder against the workdir unless the
// configured path is already absolute.
func (c *AppConfig) ReceiptDir() string {
	if filepath.IsAbs(c.Receipt.Folder) {
		return c.Receipt.Folder
	}
	return filepath.Join(c.System.Workdir, c.Receipt.Folder)
}
