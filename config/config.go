package config

type GinConfig struct {
	Addr             string   `yaml:"addr" mapstructure:"addr"`
	AllowOrigins     []string `yaml:"allowOrigins" mapstructure:"allowOrigins"`
	AllowMethods     []string `yaml:"allowMethods" mapstructure:"allowMethods"`
	AllowHeaders     []string `yaml:"allowHeaders" mapstructure:"allowHeaders"`
	ExposeHeaders    []string `yaml:"exposeHeaders" mapstructure:"exposeHeaders"`
	AllowCredentials bool     `yaml:"allowCredentials" mapstructure:"allowCredentials"`
	MaxAge           int      `yaml:"maxAge" mapstructure:"maxAge"` // 单位: 秒
	CheckContestPath []string `yaml:"checkContestPath" mapstructure:"checkContestPath"`
}

func (GinConfig) Key() string {
	return "gin"
}

type AdminConfig struct {
	UserIDs []uint64 `yaml:"userIds" mapstructure:"userIds"`
}

func (AdminConfig) Key() string {
	return "admin"
}

type MySQLConfig struct {
	DSN string `yaml:"dsn" mapstructure:"dsn"`
}

func (MySQLConfig) Key() string {
	return "mysql"
}

type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

func (RedisConfig) Key() string {
	return "redis"
}

type KafkaConfig struct {
	Addrs []string `yaml:"addrs" mapstructure:"addrs"`
}

func (KafkaConfig) Key() string {
	return "kafka"
}

type LogConfig struct {
	Level    string `yaml:"level" mapstructure:"level"`
	Encoding string `yaml:"encoding" mapstructure:"encoding"`
}

func (LogConfig) Key() string {
	return "log"
}

type JudgeConfig struct {
	BaseURL        string `yaml:"baseURL" mapstructure:"baseURL"`
	TimeoutSeconds int    `yaml:"timeoutSeconds" mapstructure:"timeoutSeconds"`
}

func (JudgeConfig) Key() string {
	return "judge"
}

// SecretConfig 凭证加密密钥, 64 位十六进制字符串
type SecretConfig struct {
	HexKey string `yaml:"key" mapstructure:"key"`
}

func (SecretConfig) Key() string {
	return "secret"
}

type JWTConfig struct {
	JwtKey                 string `yaml:"jwtKey" mapstructure:"jwtKey"`
	RefreshKey             string `yaml:"refreshKey" mapstructure:"refreshKey"`
	JwtExpirationMinutes   int    `yaml:"jwtExpirationMinutes" mapstructure:"jwtExpirationMinutes"`
	RefreshExpirationHours int    `yaml:"refreshExpirationHours" mapstructure:"refreshExpirationHours"`
}

func (JWTConfig) Key() string {
	return "jwt"
}

type PollerConfig struct {
	IntervalSeconds int `yaml:"intervalSeconds" mapstructure:"intervalSeconds"`
	MaxAttempts     int `yaml:"maxAttempts" mapstructure:"maxAttempts"`
}

func (PollerConfig) Key() string {
	return "poller"
}

type HubConfig struct {
	Buffer int `yaml:"buffer" mapstructure:"buffer"`
}

func (HubConfig) Key() string {
	return "hub"
}
