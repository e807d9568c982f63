package main

import (
	"flag"
	"os"
	"strconv"

	"medicine_recommender/internal/logger"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ServerConfig 对应 configs/server.yaml
type ServerConfig struct {
	Server struct {
		Port      string  `yaml:"port"`
		Debug     *bool   `yaml:"debug"` // nil 表示未设置
		LogFormat string  `yaml:"log_format"` // console / json
		Scene     string  `yaml:"scene"`      // 页面使用的场景
		Accuracy  float64 `yaml:"accuracy"`
	} `yaml:"server"`
	Paths struct {
		Catalog    string `yaml:"catalog"`
		Similarity string `yaml:"similarity"`
		Pipelines  string `yaml:"pipelines"`
	} `yaml:"paths"`
}

func defaultServerConfig() *ServerConfig {
	cfg := &ServerConfig{}
	cfg.Server.Port = "8080"
	cfg.Server.LogFormat = "console"
	cfg.Server.Scene = "medicine"
	cfg.Server.Accuracy = 89.6
	cfg.Paths.Catalog = "data/medicine_dict.json"
	cfg.Paths.Similarity = "data/similarity.json"
	return cfg
}

// DebugEnabled 返回最终的调试开关
func (c *ServerConfig) DebugEnabled() bool {
	return c.Server.Debug != nil && *c.Server.Debug
}

func loadServerConfig(path string) (*ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg ServerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge 用 src 中已设置的值覆盖 c
func (c *ServerConfig) merge(src *ServerConfig) {
	if src.Server.Port != "" {
		c.Server.Port = src.Server.Port
	}
	if src.Server.Debug != nil {
		c.Server.Debug = src.Server.Debug
	}
	if src.Server.LogFormat != "" {
		c.Server.LogFormat = src.Server.LogFormat
	}
	if src.Server.Scene != "" {
		c.Server.Scene = src.Server.Scene
	}
	if src.Server.Accuracy != 0 {
		c.Server.Accuracy = src.Server.Accuracy
	}
	if src.Paths.Catalog != "" {
		c.Paths.Catalog = src.Paths.Catalog
	}
	if src.Paths.Similarity != "" {
		c.Paths.Similarity = src.Paths.Similarity
	}
	if src.Paths.Pipelines != "" {
		c.Paths.Pipelines = src.Paths.Pipelines
	}
}

// envServerConfig 读取 MEDREC_* 环境变量
func envServerConfig() *ServerConfig {
	cfg := &ServerConfig{}
	cfg.Server.Port = os.Getenv("MEDREC_PORT")
	if v, ok := os.LookupEnv("MEDREC_DEBUG"); ok {
		if debug, err := strconv.ParseBool(v); err == nil {
			cfg.Server.Debug = &debug
		}
	}
	cfg.Server.LogFormat = os.Getenv("MEDREC_LOG_FORMAT")
	cfg.Paths.Catalog = os.Getenv("MEDREC_CATALOG")
	cfg.Paths.Similarity = os.Getenv("MEDREC_SIMILARITY")
	cfg.Paths.Pipelines = os.Getenv("MEDREC_PIPELINES")
	return cfg
}

// InitServerConfig 初始化服务器配置，优先级：命令行参数 > 环境变量 > 配置文件 > 默认值
func InitServerConfig(fs *flag.FlagSet, args []string) (*ServerConfig, error) {
	configPath := fs.String("config", "configs/server.yaml", "Path to server config file")
	envPath := fs.String("env", ".env", "Path to .env file")
	portFlag := fs.String("port", "", "Server port")
	debugFlag := fs.Bool("debug", false, "Enable debug logging")
	catalogFlag := fs.String("catalog", "", "Path to medicine catalog (JSON column map)")
	similarityFlag := fs.String("similarity", "", "Path to similarity matrix (.json or .bin)")
	pipelinesFlag := fs.String("pipelines", "", "Path to pipelines.json")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// .env 不存在时忽略，已存在的环境变量不会被覆盖
	if err := godotenv.Load(*envPath); err != nil && !os.IsNotExist(err) {
		logger.Info("Could not load env file '%s': %v", *envPath, err)
	}

	cfg := defaultServerConfig()

	if loaded, err := loadServerConfig(*configPath); err == nil {
		cfg.merge(loaded)
	} else {
		logger.Info("Could not load config file '%s': %v. Using defaults, env or flags.", *configPath, err)
	}

	cfg.merge(envServerConfig())

	flags := &ServerConfig{}
	flags.Server.Port = *portFlag
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "debug" {
			flags.Server.Debug = debugFlag
		}
	})
	flags.Paths.Catalog = *catalogFlag
	flags.Paths.Similarity = *similarityFlag
	flags.Paths.Pipelines = *pipelinesFlag
	cfg.merge(flags)

	return cfg, nil
}
