package model

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LabEnvironmentType string

const (
	EnvSimulated LabEnvironmentType = "simulated"
	EnvLive      LabEnvironmentType = "live"
	EnvSandboxed LabEnvironmentType = "sandboxed"
	EnvCloud     LabEnvironmentType = "cloud"
)

func (t LabEnvironmentType) IsValid() bool {
	switch t {
	case EnvSimulated, EnvLive, EnvSandboxed, EnvCloud:
		return true
	}
	return false
}

type ContainerSpec struct {
	Name    string            `json:"name" binding:"required"`
	Image   string            `json:"image" binding:"required"`
	Ports   []int             `json:"ports,omitempty" binding:"omitempty,dive,min=1,max=65535"`
	Env     map[string]string `json:"env,omitempty"`
	Command []string          `json:"command,omitempty"`
}

type ResourceLimits struct {
	CPU            string `json:"cpu" binding:"required"`
	Memory         string `json:"memory" binding:"required"`
	Storage        string `json:"storage" binding:"required"`
	TimeoutMinutes int    `json:"timeoutMinutes" binding:"min=1"`
}

func DefaultResourceLimits() ResourceLimits {
	return ResourceLimits{CPU: "1", Memory: "512Mi", Storage: "1Gi", TimeoutMinutes: 60}
}

func (r *ResourceLimits) UnmarshalJSON(data []byte) error {
	type raw ResourceLimits
	v := raw(DefaultResourceLimits())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = ResourceLimits(v)
	return nil
}

// LabEnvironment 实验环境描述，Lab 和 TrainingScenario 共用
type LabEnvironment struct {
	Type             LabEnvironmentType `json:"type" binding:"required,enum"`
	Containers       []ContainerSpec    `json:"containers,omitempty" binding:"omitempty,dive"`
	NetworkIsolation bool               `json:"networkIsolation"`
	ResourceLimits   ResourceLimits     `json:"resourceLimits"`
	SetupScripts     []string           `json:"setupScripts,omitempty"`
	TeardownScripts  []string           `json:"teardownScripts,omitempty"`
}

func DefaultLabEnvironment() LabEnvironment {
	return LabEnvironment{NetworkIsolation: true, ResourceLimits: DefaultResourceLimits()}
}

func (e *LabEnvironment) UnmarshalJSON(data []byte) error {
	type raw LabEnvironment
	r := raw(DefaultLabEnvironment())
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*e = LabEnvironment(r)
	return nil
}

type LabTask struct {
	ID               string `json:"id"`
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description,omitempty"`
	Order            int    `json:"order" binding:"min=0"`
	Points           int    `json:"points" binding:"min=0"`
	ValidationScript string `json:"validationScript,omitempty"`
	ExpectedOutput   string `json:"expectedOutput,omitempty"`
	Required         bool   `json:"required"`
}

func (t *LabTask) UnmarshalJSON(data []byte) error {
	type raw LabTask
	r := raw{Points: 10, Required: true}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*t = LabTask(r)
	return nil
}

type LabHint struct {
	ID             string `json:"id"`
	TaskID         string `json:"taskId,omitempty"`
	Content        string `json:"content" binding:"required"`
	Order          int    `json:"order" binding:"min=0"`
	PointDeduction int    `json:"pointDeduction" binding:"min=0"`
}

// swagger:model Lab
type Lab struct {
	UUIDBase
	ModuleID          string                       `gorm:"index;type:varchar(36)" json:"moduleId"`
	Title             string                       `gorm:"size:255;not null" json:"title" binding:"required,max=255"`
	Description       string                       `gorm:"type:text" json:"description"`
	Difficulty        Difficulty                   `gorm:"size:20;not null" json:"difficulty" binding:"required,enum"`
	Order             int                          `gorm:"column:sort_order;default:0" json:"order" binding:"min=0"`
	Environment       LabEnvironment               `gorm:"serializer:json" json:"environment" binding:"required"`
	Tasks             datatypes.JSONSlice[LabTask] `json:"tasks" binding:"required,min=1,dive"`
	Hints             datatypes.JSONSlice[LabHint] `json:"hints" binding:"dive"`
	Solution          string                       `gorm:"type:text" json:"solution,omitempty"`
	MaxScore          int                          `gorm:"default:100" json:"maxScore" binding:"min=1"`
	TimeLimit         *int                         `json:"timeLimit,omitempty" binding:"omitempty,min=1"`
	EstimatedDuration int                          `gorm:"default:0" json:"estimatedDuration" binding:"min=0"`
	Prerequisites     StringList                   `json:"prerequisites"`
	Status            ContentStatus                `gorm:"size:20;default:'draft'" json:"status" binding:"required,enum"`
}

func (Lab) TableName() string {
	return "labs"
}

func (l *Lab) UnmarshalJSON(data []byte) error {
	type raw Lab
	r := raw{MaxScore: 100, Status: StatusDraft, Environment: DefaultLabEnvironment()}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*l = Lab(r)
	return nil
}

func (l *Lab) BeforeSave(tx *gorm.DB) error {
	for i := range l.Tasks {
		ensureID(&l.Tasks[i].ID)
	}
	for i := range l.Hints {
		ensureID(&l.Hints[i].ID)
	}
	return nil
}

// TotalTaskPoints 所有任务分值之和
func (l *Lab) TotalTaskPoints() int {
	total := 0
	for _, t := range l.Tasks {
		total += t.Points
	}
	return total
}

// ForStudent 返回隐藏参考答案和校验脚本的副本
func (l Lab) ForStudent() Lab {
	l.Solution = ""
	tasks := make(datatypes.JSONSlice[LabTask], len(l.Tasks))
	for i, t := range l.Tasks {
		t.ValidationScript = ""
		t.ExpectedOutput = ""
		tasks[i] = t
	}
	l.Tasks = tasks
	return l
}
