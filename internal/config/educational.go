package config

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

// EducationalConfig 平台级教学参数，支持热加载
type EducationalConfig struct {
	PlatformName       string              `mapstructure:"platform_name" json:"platformName" binding:"required"`
	DefaultLanguage    string              `mapstructure:"default_language" json:"defaultLanguage" binding:"required,min=2,max=8"`
	SupportedLanguages []string            `mapstructure:"supported_languages" json:"supportedLanguages" binding:"dive,min=2,max=8"`
	Grading            GradingConfig       `mapstructure:"grading" json:"grading"`
	Labs               LabDefaultsConfig   `mapstructure:"labs" json:"labs"`
	Enrollment         EnrollmentConfig    `mapstructure:"enrollment" json:"enrollment"`
	Certification      CertificationConfig `mapstructure:"certification" json:"certification"`
	Features           FeatureFlags        `mapstructure:"features" json:"features"`
	Cache              CacheConfig         `mapstructure:"cache" json:"cache"`
}

type GradingConfig struct {
	DefaultPassingScore int `mapstructure:"default_passing_score" json:"defaultPassingScore" binding:"min=0,max=100"`
	MaxAttempts         int `mapstructure:"max_attempts" json:"maxAttempts" binding:"min=1"`
}

type LabDefaultsConfig struct {
	DefaultTimeoutMinutes int    `mapstructure:"default_timeout_minutes" json:"defaultTimeoutMinutes" binding:"min=1"`
	MaxConcurrentLabs     int    `mapstructure:"max_concurrent_labs" json:"maxConcurrentLabs" binding:"min=1"`
	DefaultEnvironment    string `mapstructure:"default_environment" json:"defaultEnvironment" binding:"oneof=simulated live sandboxed cloud"`
}

type EnrollmentConfig struct {
	MaxActivePerStudent int  `mapstructure:"max_active_per_student" json:"maxActivePerStudent" binding:"min=0"`
	AllowSelfEnrollment bool `mapstructure:"allow_self_enrollment" json:"allowSelfEnrollment"`
}

type CertificationConfig struct {
	ValidityDays int    `mapstructure:"validity_days" json:"validityDays" binding:"min=0"`
	Issuer       string `mapstructure:"issuer" json:"issuer"`
}

type FeatureFlags struct {
	Forums        bool `mapstructure:"forums" json:"forums"`
	KnowledgeBase bool `mapstructure:"knowledge_base" json:"knowledgeBase"`
	Scenarios     bool `mapstructure:"scenarios" json:"scenarios"`
	Certificates  bool `mapstructure:"certificates" json:"certificates"`
}

type CacheConfig struct {
	PathTTLSeconds int `mapstructure:"path_ttl_seconds" json:"pathTTLSeconds" binding:"min=0"`
}

func (c CacheConfig) PathTTL() time.Duration {
	return time.Duration(c.PathTTLSeconds) * time.Second
}

func DefaultEducationalConfig() EducationalConfig {
	return EducationalConfig{
		PlatformName:       "Learning Platform",
		DefaultLanguage:    "en",
		SupportedLanguages: []string{"en"},
		Grading:            GradingConfig{DefaultPassingScore: 70, MaxAttempts: 3},
		Labs:               LabDefaultsConfig{DefaultTimeoutMinutes: 60, MaxConcurrentLabs: 1, DefaultEnvironment: "simulated"},
		Enrollment:         EnrollmentConfig{MaxActivePerStudent: 10, AllowSelfEnrollment: true},
		Certification:      CertificationConfig{ValidityDays: 365},
		Features:           FeatureFlags{Forums: true, KnowledgeBase: true, Scenarios: true, Certificates: true},
		Cache:              CacheConfig{PathTTLSeconds: 300},
	}
}

func (c *EducationalConfig) UnmarshalJSON(data []byte) error {
	type raw EducationalConfig
	r := raw(DefaultEducationalConfig())
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*c = EducationalConfig(r)
	return nil
}

// EducationStore 持有当前生效的 EducationalConfig，配置文件变更时整体替换
type EducationStore struct {
	v atomic.Pointer[EducationalConfig]
}

func NewEducationStore(cfg EducationalConfig) *EducationStore {
	s := &EducationStore{}
	s.Store(cfg)
	return s
}

func (s *EducationStore) Load() EducationalConfig {
	if p := s.v.Load(); p != nil {
		return *p
	}
	return DefaultEducationalConfig()
}

func (s *EducationStore) Store(cfg EducationalConfig) {
	s.v.Store(&cfg)
}
