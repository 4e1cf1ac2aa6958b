package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Storage   StorageConfig   `mapstructure:"storage"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Retention RetentionConfig `mapstructure:"retention"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// MongoConfig Mongo配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
	// OpTimeout 单次库操作超时（秒），防止依赖卡死导致请求悬挂
	OpTimeout int `mapstructure:"op_timeout"`
}

// StorageConfig 媒体存储配置，driver 可选 local / minio
type StorageConfig struct {
	Driver    string `mapstructure:"driver"`
	UploadDir string `mapstructure:"upload_dir"`
	// PublicBase 对外访问前缀，本地盘默认 /uploads
	PublicBase string `mapstructure:"public_base"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// UploadConfig 上传限制
type UploadConfig struct {
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
}

// RetentionConfig 媒体保留策略
type RetentionConfig struct {
	// LocalHour 每日清理边界的本地时刻（小时）
	LocalHour int `mapstructure:"local_hour"`
	// CronSpec 清理任务调度表达式
	CronSpec string `mapstructure:"cron_spec"`
}
