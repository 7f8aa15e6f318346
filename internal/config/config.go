package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"moonsales/internal/analysis"
)

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Session  SessionConfig  `toml:"session"`
	Analysis AnalysisConfig `toml:"analysis"`
	Workbook WorkbookConfig `toml:"workbook"`
	Excel    ExcelConfig    `toml:"excel"`
	Logging  LoggingConfig  `toml:"logging"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir  string `toml:"data_dir"`
	AuditLog bool   `toml:"audit_log"`
}

// SessionConfig 上传数据集的会话配置
type SessionConfig struct {
	TTLMinutes  int `toml:"ttl_minutes"`
	MaxUploadMB int `toml:"max_upload_mb"`
}

// AnalysisConfig 周别解析配置
type AnalysisConfig struct {
	ReferenceYear int    `toml:"reference_year"`
	WeekSeparator string `toml:"week_separator"`
}

// WorkbookConfig 工作表与列名约定
type WorkbookConfig struct {
	QuantitySheet   string `toml:"quantity_sheet"`
	CumulativeSheet string `toml:"cumulative_sheet"`
	GrowthSheet     string `toml:"growth_sheet"`
	IDColumn        string `toml:"id_column"`
	NameColumn      string `toml:"name_column"`
}

// ExcelConfig 报表导出配置
type ExcelConfig struct {
	FontFamily string `toml:"font_family"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
	Path          string
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	schema := analysis.DefaultSchema()
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir:  "data",
			AuditLog: true,
		},
		Session: SessionConfig{
			TTLMinutes:  120,
			MaxUploadMB: 32,
		},
		Analysis: AnalysisConfig{
			ReferenceYear: schema.ReferenceYear,
			WeekSeparator: schema.Separator,
		},
		Workbook: WorkbookConfig{
			QuantitySheet:   "每週銷售數量",
			CumulativeSheet: "累計每週銷售數量",
			GrowthSheet:     "每週銷售成長率",
			IDColumn:        schema.IDColumn,
			NameColumn:      schema.NameColumn,
		},
		Excel: ExcelConfig{
			FontFamily: "Noto Sans TC",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Schema 由配置生成分析所需的结构约定
func (c *AppConfig) Schema() analysis.Schema {
	return analysis.Schema{
		IDColumn:      c.Workbook.IDColumn,
		NameColumn:    c.Workbook.NameColumn,
		Separator:     c.Analysis.WeekSeparator,
		ReferenceYear: c.Analysis.ReferenceYear,
	}
}

// SessionTTL 数据集闲置过期时间
func (c *AppConfig) SessionTTL() time.Duration {
	if c.Session.TTLMinutes <= 0 {
		return 2 * time.Hour
	}
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// MaxUploadBytes 上传文件大小上限
func (c *AppConfig) MaxUploadBytes() int64 {
	if c.Session.MaxUploadMB <= 0 {
		return 32 << 20
	}
	return int64(c.Session.MaxUploadMB) << 20
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return LoadConfigFile(filepath.Join(exeDir, "config.toml"))
}

// LoadConfigFile 从指定路径加载配置，文件不存在时使用默认配置
func LoadConfigFile(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: configPath}
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(config)
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	applyEnv(config)
	return config, info, nil
}

// 环境变量覆盖（用于 E2E / 本地运行）
func applyEnv(config *AppConfig) {
	if v := os.Getenv("MOONSALES_REFERENCE_YEAR"); v != "" {
		if year, err := strconv.Atoi(v); err == nil && year > 0 {
			config.Analysis.ReferenceYear = year
		}
	}
	if v := os.Getenv("MOONSALES_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("MOONSALES_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}

// LoadConfig 从 config.toml 加载配置
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(exeDir, "config.toml"), data, 0644)
}

// EnsureDataDir 确保数据目录存在
// 相对路径以可执行文件所在目录为基准
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}
