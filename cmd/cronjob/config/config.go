package config

type BaseCronJobConfig struct {
	CronExpr string `yaml:"cronExpr" mapstructure:"cronExpr"`
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Timeout  int    `yaml:"timeout" mapstructure:"timeout"` // 单位: 毫秒
}

type SubmissionReconcilerConfig struct {
	BaseCronJobConfig `yaml:",inline" mapstructure:",squash"`

	StaleAfterMinutes int `yaml:"staleAfterMinutes" mapstructure:"staleAfterMinutes"` // 提交滞留多久算作需要补偿
}

func (SubmissionReconcilerConfig) Key() string {
	return "submissionReconciler"
}
