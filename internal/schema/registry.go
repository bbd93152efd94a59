package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"edu_platform_backend/internal/config"
	"edu_platform_backend/internal/model"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	ErrUnknownKind   = errors.New("unknown record kind")
	ErrUnknownFormat = errors.New("unknown record format")
)

// kinds 记录类型名 -> 构造函数，返回值必须是指针
var kinds = map[string]func() any{
	"learningPath":         func() any { return &model.LearningPath{} },
	"learningModule":       func() any { return &model.LearningModule{} },
	"lesson":               func() any { return &model.Lesson{} },
	"lessonContent":        func() any { return &model.LessonContent{} },
	"quiz":                 func() any { return &model.Quiz{} },
	"quizQuestion":         func() any { return &model.QuizQuestion{} },
	"lab":                  func() any { return &model.Lab{} },
	"labEnvironment":       func() any { return &model.LabEnvironment{} },
	"assessment":           func() any { return &model.Assessment{} },
	"assessmentResult":     func() any { return &model.AssessmentResult{} },
	"rubric":               func() any { return &model.Rubric{} },
	"certification":        func() any { return &model.Certification{} },
	"studentProgress":      func() any { return &model.StudentProgress{} },
	"enrollment":           func() any { return &model.Enrollment{} },
	"trainingScenario":     func() any { return &model.TrainingScenario{} },
	"knowledgeBaseArticle": func() any { return &model.KnowledgeBaseArticle{} },
	"forumThread":          func() any { return &model.ForumThread{} },
	"forumPost":            func() any { return &model.ForumPost{} },
	"attachment":           func() any { return &model.Attachment{} },
	"instructor":           func() any { return &model.Instructor{} },
	"educationalConfig":    func() any { return &config.EducationalConfig{} },
	"databaseConfig":       func() any { return &config.DatabaseConfig{} },
	"searchFilters":        func() any { return &model.SearchFilters{} },
	"pagination":           func() any { return &model.Pagination{} },
	"learningStatistics":   func() any { return &model.LearningStatistics{} },
}

// Kinds 返回全部记录类型名，按字母排序
func Kinds() []string {
	out := make([]string, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func New(kind string) (any, error) {
	ctor, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return ctor(), nil
}

// FormatFromPath 按扩展名判断格式，.yaml/.yml 为 YAML，其余按 JSON 处理
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Decode 把 JSON 或 YAML 文档解析为 kind 对应的类型（缺省值在解析时填充），然后校验。
// 解析失败返回普通错误，校验失败返回 ValidationErrors 以及已解析的记录。
func Decode(kind string, data []byte, format Format) (any, error) {
	record, err := New(kind)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON, "":
	case FormatYAML:
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	if err := json.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	if err := Validate(record); err != nil {
		return record, err
	}
	return record, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	out, err := json.Marshal(normalizeYAML(doc))
	if err != nil {
		return nil, fmt.Errorf("convert yaml: %w", err)
	}
	return out, nil
}

// normalizeYAML 把 map[any]any 之类 encoding/json 不支持的结构转换为字符串键
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	}
	return v
}
