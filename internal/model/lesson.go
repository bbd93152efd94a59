package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ContentType string

const (
	ContentText        ContentType = "text"
	ContentVideo       ContentType = "video"
	ContentInteractive ContentType = "interactive"
)

func (t ContentType) IsValid() bool {
	switch t {
	case ContentText, ContentVideo, ContentInteractive:
		return true
	}
	return false
}

type TextFormat string

const (
	TextMarkdown TextFormat = "markdown"
	TextHTML     TextFormat = "html"
	TextPlain    TextFormat = "plain"
)

func (f TextFormat) IsValid() bool {
	switch f {
	case TextMarkdown, TextHTML, TextPlain:
		return true
	}
	return false
}

type InteractiveKind string

const (
	InteractiveSimulation InteractiveKind = "simulation"
	InteractiveDiagram    InteractiveKind = "diagram"
	InteractiveCodeEditor InteractiveKind = "code-editor"
	InteractiveTerminal   InteractiveKind = "terminal"
	InteractiveNetworkMap InteractiveKind = "network-map"
)

func (k InteractiveKind) IsValid() bool {
	switch k {
	case InteractiveSimulation, InteractiveDiagram, InteractiveCodeEditor, InteractiveTerminal, InteractiveNetworkMap:
		return true
	}
	return false
}

type TextContent struct {
	Body   string     `json:"body" binding:"required"`
	Format TextFormat `json:"format" binding:"required,enum"`
}

func (t *TextContent) UnmarshalJSON(data []byte) error {
	type raw TextContent
	r := raw{Format: TextMarkdown}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*t = TextContent(r)
	return nil
}

type Caption struct {
	Language string `json:"language" binding:"required"`
	URL      string `json:"url" binding:"required,url"`
}

type VideoContent struct {
	URL          string    `json:"url" binding:"required,url"`
	Duration     float64   `json:"duration" binding:"min=0"` // 秒
	ThumbnailURL string    `json:"thumbnailUrl,omitempty" binding:"omitempty,url"`
	Transcript   string    `json:"transcript,omitempty"`
	Captions     []Caption `json:"captions,omitempty" binding:"omitempty,dive"`
}

type InteractiveContent struct {
	Kind         InteractiveKind   `json:"kind" binding:"required,enum"`
	Instructions string            `json:"instructions,omitempty"`
	Config       datatypes.JSONMap `json:"config,omitempty"`
	InitialState datatypes.JSONMap `json:"initialState,omitempty"`
	Validation   string            `json:"validation,omitempty"`
}

// LessonContent 按 type 区分的联合类型，线上格式为扁平对象：
// {"type":"video","url":"...","duration":120}
type LessonContent struct {
	Type        ContentType         `json:"type" binding:"required,enum"`
	Text        *TextContent        `json:"-"`
	Video       *VideoContent       `json:"-"`
	Interactive *InteractiveContent `json:"-"`
}

func NewTextContent(body string, format TextFormat) LessonContent {
	return LessonContent{Type: ContentText, Text: &TextContent{Body: body, Format: format}}
}

func NewVideoContent(v VideoContent) LessonContent {
	return LessonContent{Type: ContentVideo, Video: &v}
}

func NewInteractiveContent(ic InteractiveContent) LessonContent {
	return LessonContent{Type: ContentInteractive, Interactive: &ic}
}

var ErrUnknownContentType = errors.New("unknown lesson content type")

func (c LessonContent) MarshalJSON() ([]byte, error) {
	var payload any
	switch c.Type {
	case ContentText:
		payload = c.Text
	case ContentVideo:
		payload = c.Video
	case ContentInteractive:
		payload = c.Interactive
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, c.Type)
	}

	fields := map[string]json.RawMessage{}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(b, &fields); err != nil {
			return nil, err
		}
	}
	t, _ := json.Marshal(c.Type)
	fields["type"] = t
	return json.Marshal(fields)
}

func (c *LessonContent) UnmarshalJSON(data []byte) error {
	var head struct {
		Type ContentType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	out := LessonContent{Type: head.Type}
	switch head.Type {
	case ContentText:
		out.Text = &TextContent{}
		if err := json.Unmarshal(data, out.Text); err != nil {
			return err
		}
	case ContentVideo:
		out.Video = &VideoContent{}
		if err := json.Unmarshal(data, out.Video); err != nil {
			return err
		}
	case ContentInteractive:
		out.Interactive = &InteractiveContent{}
		if err := json.Unmarshal(data, out.Interactive); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownContentType, head.Type)
	}
	*c = out
	return nil
}

type ResourceType string

const (
	ResourceArticle  ResourceType = "article"
	ResourceVideo    ResourceType = "video"
	ResourceDocument ResourceType = "document"
	ResourceLink     ResourceType = "link"
	ResourceTool     ResourceType = "tool"
)

func (t ResourceType) IsValid() bool {
	switch t {
	case ResourceArticle, ResourceVideo, ResourceDocument, ResourceLink, ResourceTool:
		return true
	}
	return false
}

type LessonResource struct {
	Title string       `json:"title" binding:"required"`
	URL   string       `json:"url" binding:"required,url"`
	Type  ResourceType `json:"type" binding:"required,enum"`
}

// swagger:model Lesson
type Lesson struct {
	UUIDBase
	ModuleID    string                              `gorm:"index;type:varchar(36)" json:"moduleId"`
	Title       string                              `gorm:"size:255;not null" json:"title" binding:"required,max=255"`
	Description string                              `gorm:"type:text" json:"description"`
	Order       int                                 `gorm:"column:sort_order;default:0" json:"order" binding:"min=0"`
	Duration    int                                 `gorm:"default:0" json:"duration" binding:"min=0"` // 分钟
	Content     LessonContent                       `gorm:"serializer:json" json:"content" binding:"required"`
	Quiz        *Quiz                               `gorm:"serializer:json" json:"quiz,omitempty"`
	Objectives  StringList                          `json:"objectives"`
	Resources   datatypes.JSONSlice[LessonResource] `json:"resources" binding:"dive"`
	Status      ContentStatus                       `gorm:"size:20;default:'draft'" json:"status" binding:"required,enum"`
}

func (Lesson) TableName() string {
	return "lessons"
}

func (l *Lesson) UnmarshalJSON(data []byte) error {
	type raw Lesson
	r := raw{Status: StatusDraft}
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*l = Lesson(r)
	return nil
}

func (l *Lesson) BeforeSave(tx *gorm.DB) error {
	if l.Quiz != nil {
		l.Quiz.fillIDs()
	}
	return nil
}
