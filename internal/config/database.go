package config

import "encoding/json"

type DatabaseType string

const (
	DatabaseMySQL    DatabaseType = "mysql"
	DatabasePostgres DatabaseType = "postgres"
	DatabaseSQLite   DatabaseType = "sqlite"
)

func (t DatabaseType) IsValid() bool {
	switch t {
	case DatabaseMySQL, DatabasePostgres, DatabaseSQLite:
		return true
	}
	return false
}

// DatabaseConfig 数据库连接配置，sqlite 模式下 DBName 为文件路径
type DatabaseConfig struct {
	Type                   DatabaseType `mapstructure:"type" json:"type" binding:"required,enum"`
	Host                   string       `mapstructure:"host" json:"host" binding:"required_unless=Type sqlite"`
	Port                   int          `mapstructure:"port" json:"port" binding:"min=0,max=65535"`
	User                   string       `mapstructure:"user" json:"user"`
	Password               string       `mapstructure:"password" json:"password,omitempty"`
	DBName                 string       `mapstructure:"dbname" json:"dbname" binding:"required"`
	Charset                string       `mapstructure:"charset" json:"charset"`
	ParseTime              bool         `mapstructure:"parsetime" json:"parseTime"`
	SSLMode                string       `mapstructure:"ssl_mode" json:"sslMode" binding:"omitempty,oneof=disable require verify-ca verify-full"`
	MaxOpenConns           int          `mapstructure:"max_open_conns" json:"maxOpenConns" binding:"min=1"`
	MaxIdleConns           int          `mapstructure:"max_idle_conns" json:"maxIdleConns" binding:"min=0"`
	ConnMaxLifetimeMinutes int          `mapstructure:"conn_max_lifetime_minutes" json:"connMaxLifetimeMinutes" binding:"min=0"`
}

func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Type:                   DatabaseMySQL,
		Host:                   "localhost",
		Port:                   3306,
		Charset:                "utf8mb4",
		ParseTime:              true,
		SSLMode:                "disable",
		MaxOpenConns:           25,
		MaxIdleConns:           5,
		ConnMaxLifetimeMinutes: 30,
	}
}

func (c *DatabaseConfig) UnmarshalJSON(data []byte) error {
	type raw DatabaseConfig
	r := raw(DefaultDatabaseConfig())
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*c = DatabaseConfig(r)
	return nil
}
