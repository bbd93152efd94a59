package model

import (
	"encoding/json"
	"sort"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ScenarioType string

const (
	ScenarioIncidentResponse ScenarioType = "incident-response"
	ScenarioForensics        ScenarioType = "forensics"
	ScenarioThreatHunting    ScenarioType = "threat-hunting"
	ScenarioMalwareAnalysis  ScenarioType = "malware-analysis"
)

func (t ScenarioType) IsValid() bool {
	switch t {
	case ScenarioIncidentResponse, ScenarioForensics, ScenarioThreatHunting, ScenarioMalwareAnalysis:
		return true
	}
	return false
}

type TimelineEventType string

const (
	EventAlert      TimelineEventType = "alert"
	EventLog        TimelineEventType = "log"
	EventNetwork    TimelineEventType = "network"
	EventUserAction TimelineEventType = "user-action"
	EventSystem     TimelineEventType = "system"
)

func (t TimelineEventType) IsValid() bool {
	switch t {
	case EventAlert, EventLog, EventNetwork, EventUserAction, EventSystem:
		return true
	}
	return false
}

type ArtifactType string

const (
	ArtifactLog        ArtifactType = "log"
	ArtifactPcap       ArtifactType = "pcap"
	ArtifactMemoryDump ArtifactType = "memory-dump"
	ArtifactDiskImage  ArtifactType = "disk-image"
	ArtifactRegistry   ArtifactType = "registry"
	ArtifactFile       ArtifactType = "file"
)

func (t ArtifactType) IsValid() bool {
	switch t {
	case ArtifactLog, ArtifactPcap, ArtifactMemoryDump, ArtifactDiskImage, ArtifactRegistry, ArtifactFile:
		return true
	}
	return false
}

type TimelineEvent struct {
	ID            string            `json:"id"`
	OffsetMinutes int               `json:"offsetMinutes" binding:"min=0"`
	Title         string            `json:"title" binding:"required"`
	Description   string            `json:"description,omitempty"`
	EventType     TimelineEventType `json:"eventType" binding:"required,enum"`
	Data          datatypes.JSONMap `json:"data,omitempty"`
	Revealed      bool              `json:"revealed"`
}

type ScenarioObjective struct {
	ID          string `json:"id"`
	Description string `json:"description" binding:"required"`
	Points      int    `json:"points" binding:"min=0"`
	Required    bool   `json:"required"`
}

func (o *ScenarioObjective) UnmarshalJSON(data []byte) error {
	type raw ScenarioObjective
	r := raw{Points: 10, Required: true}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*o = ScenarioObjective(r)
	return nil
}

type ForensicArtifact struct {
	ID          string       `json:"id"`
	Name        string       `json:"name" binding:"required"`
	Type        ArtifactType `json:"type" binding:"required,enum"`
	URL         string       `json:"url,omitempty"`
	SHA256      string       `json:"sha256,omitempty" binding:"omitempty,len=64,hexadecimal"`
	Size        int64        `json:"size" binding:"min=0"`
	Description string       `json:"description,omitempty"`
}

// swagger:model TrainingScenario
type TrainingScenario struct {
	UUIDBase
	Title             string                                 `gorm:"size:255;not null" json:"title" binding:"required,max=255"`
	Description       string                                 `gorm:"type:text" json:"description"`
	Type              ScenarioType                           `gorm:"size:30;not null;index" json:"type" binding:"required,enum"`
	Difficulty        Difficulty                             `gorm:"size:20;not null" json:"difficulty" binding:"required,enum"`
	Narrative         string                                 `gorm:"type:text" json:"narrative,omitempty"`
	Timeline          datatypes.JSONSlice[TimelineEvent]     `json:"timeline" binding:"dive"`
	Objectives        datatypes.JSONSlice[ScenarioObjective] `json:"objectives" binding:"dive"`
	Artifacts         datatypes.JSONSlice[ForensicArtifact]  `json:"artifacts" binding:"dive"`
	Environment       LabEnvironment                         `gorm:"serializer:json" json:"environment" binding:"required"`
	EstimatedDuration int                                    `gorm:"default:0" json:"estimatedDuration" binding:"min=0"`
	MaxScore          int                                    `gorm:"default:100" json:"maxScore" binding:"min=1"`
	Status            ContentStatus                          `gorm:"size:20;default:'draft'" json:"status" binding:"required,enum"`
}

func (TrainingScenario) TableName() string {
	return "training_scenarios"
}

func (s *TrainingScenario) UnmarshalJSON(data []byte) error {
	type raw TrainingScenario
	r := raw{MaxScore: 100, Status: StatusDraft, Environment: DefaultLabEnvironment()}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*s = TrainingScenario(r)
	return nil
}

func (s *TrainingScenario) BeforeSave(tx *gorm.DB) error {
	for i := range s.Timeline {
		ensureID(&s.Timeline[i].ID)
	}
	for i := range s.Objectives {
		ensureID(&s.Objectives[i].ID)
	}
	for i := range s.Artifacts {
		ensureID(&s.Artifacts[i].ID)
	}
	s.SortTimeline()
	return nil
}

// SortTimeline 按时间偏移排序，偏移相同保持原顺序
func (s *TrainingScenario) SortTimeline() {
	sort.SliceStable(s.Timeline, func(i, j int) bool {
		return s.Timeline[i].OffsetMinutes < s.Timeline[j].OffsetMinutes
	})
}

// RevealedTimeline 学生端只返回已揭示的事件
func (s *TrainingScenario) RevealedTimeline() []TimelineEvent {
	out := make([]TimelineEvent, 0, len(s.Timeline))
	for _, e := range s.Timeline {
		if e.Revealed {
			out = append(out, e)
		}
	}
	return out
}
