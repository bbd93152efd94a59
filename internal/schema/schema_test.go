package schema

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"edu_platform_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPath() *model.LearningPath {
	p := model.DefaultLearningPath()
	p.Title = "Incident Response"
	p.Description = "From triage to report"
	p.Difficulty = model.DifficultyIntermediate
	p.Category = "security"
	return &p
}

func TestValidateAcceptsCompletePath(t *testing.T) {
	assert.NoError(t, Validate(validPath()))
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	p := validPath()
	p.Title = ""
	p.Difficulty = "impossible"

	err := Validate(p)
	ve, ok := AsValidationErrors(err)
	require.True(t, ok, "got %v", err)
	assert.True(t, ve.Has("title", "required"), "%v", ve)
	assert.True(t, ve.Has("difficulty", "enum"), "%v", ve)
}

func TestValidateNestedPaths(t *testing.T) {
	p := validPath()
	p.Modules = []model.LearningModule{{
		Title:   "Triage",
		Lessons: []model.Lesson{{}},
	}}

	ve, ok := AsValidationErrors(Validate(p))
	require.True(t, ok)
	assert.True(t, ve.Has("modules[0].lessons[0].title", "required"), "%v", ve)
}

func TestValidateSlicePrefixesIndex(t *testing.T) {
	paths := []*model.LearningPath{validPath(), {Difficulty: model.DifficultyExpert}}

	ve, ok := AsValidationErrors(Validate(paths))
	require.True(t, ok)
	assert.True(t, ve.Has("[1].title", "required"), "%v", ve)
	for _, fe := range ve {
		assert.NotContains(t, fe.Field, "[0]")
	}
}

func TestRubricWeightsMustSumToOne(t *testing.T) {
	r := &model.Rubric{Criteria: []model.RubricCriterion{
		{Name: "Accuracy", Weight: 0.5, MaxPoints: 10},
		{Name: "Clarity", Weight: 0.3, MaxPoints: 10},
	}}
	ve, ok := AsValidationErrors(Validate(r))
	require.True(t, ok)
	assert.True(t, ve.Has("criteria", "weights_sum"), "%v", ve)

	r.Criteria[1].Weight = 0.5
	assert.NoError(t, Validate(r))

	ve, ok = AsValidationErrors(Validate(&model.Rubric{}))
	require.True(t, ok)
	assert.True(t, ve.Has("criteria", "required"), "%v", ve)
}

func TestLessonContentPayloadMustMatchType(t *testing.T) {
	c := model.NewTextContent("hello", model.TextPlain)
	c.Video = &model.VideoContent{URL: "https://cdn.example.com/a.mp4"}

	ve, ok := AsValidationErrors(Validate(&c))
	require.True(t, ok)
	assert.True(t, ve.Has("type", "content_payload"), "%v", ve)

	ok2 := model.NewTextContent("hello", model.TextPlain)
	assert.NoError(t, Validate(&ok2))
}

func TestLessonContentErrorsUseFlatFieldNames(t *testing.T) {
	_, err := Decode("lessonContent", []byte(`{"type":"text"}`), FormatJSON)
	ve, ok := AsValidationErrors(err)
	require.True(t, ok, "got %v", err)
	assert.True(t, ve.Has("body", "required"), "%v", ve)
	for _, fe := range ve {
		assert.NotContains(t, fe.Field, "Text", "%v", ve)
	}

	_, err = Decode("lessonContent", []byte(`{"type":"interactive"}`), FormatJSON)
	ve, ok = AsValidationErrors(err)
	require.True(t, ok, "got %v", err)
	assert.True(t, ve.Has("kind", "required"), "%v", ve)

	p := validPath()
	p.Modules = []model.LearningModule{{
		Title: "Containment",
		Lessons: []model.Lesson{{
			Title:   "Isolating hosts",
			Content: model.NewTextContent("", model.TextMarkdown),
		}},
	}}
	ve, ok = AsValidationErrors(Validate(p))
	require.True(t, ok)
	assert.True(t, ve.Has("modules[0].lessons[0].content.body", "required"), "%v", ve)
}

func TestMultipleChoiceAnswerMustBeAnOption(t *testing.T) {
	answer := model.SingleAnswer("D")
	q := &model.QuizQuestion{
		Type:          model.QuestionMultipleChoice,
		Question:      "Which port does DNS use?",
		Options:       []string{"53", "80"},
		CorrectAnswer: &answer,
		Points:        1,
	}
	ve, ok := AsValidationErrors(Validate(q))
	require.True(t, ok)
	assert.True(t, ve.Has("correctAnswer", "answer_in_option"), "%v", ve)

	fixed := model.SingleAnswer("53")
	q.CorrectAnswer = &fixed
	assert.NoError(t, Validate(q))
}

func TestTrueFalseAnswerShape(t *testing.T) {
	q := &model.QuizQuestion{
		Type:     model.QuestionTrueFalse,
		Question: "TLS 1.3 removed static RSA key exchange",
		Points:   1,
	}
	ve, ok := AsValidationErrors(Validate(q))
	require.True(t, ok)
	assert.True(t, ve.Has("correctAnswer", "required"), "%v", ve)

	for _, bad := range []model.AnswerValue{model.SingleAnswer("yes"), model.MultiAnswer("true", "false")} {
		q.CorrectAnswer = &bad
		ve, ok = AsValidationErrors(Validate(q))
		require.True(t, ok, "%v", bad)
		assert.True(t, ve.Has("correctAnswer", "true_false"), "%v", ve)
	}

	good := model.SingleAnswer("false")
	q.CorrectAnswer = &good
	assert.NoError(t, Validate(q))

	_, err := Decode("quizQuestion", []byte(`{"type":"true-false","question":"HSTS is a response header","correctAnswer":true,"points":1}`), FormatJSON)
	assert.NoError(t, err)
}

func validLab() *model.Lab {
	env := model.DefaultLabEnvironment()
	env.Type = model.EnvSandboxed
	return &model.Lab{
		Title:       "Packet capture",
		Difficulty:  model.DifficultyBeginner,
		Environment: env,
		MaxScore:    100,
		Status:      model.StatusDraft,
		Tasks: []model.LabTask{
			{ID: "capture", Title: "Start a capture"},
			{ID: "filter", Title: "Filter DNS traffic"},
		},
		Hints: []model.LabHint{{TaskID: "filter", Content: "Try port 53"}},
	}
}

func TestLabHintsReferenceTasks(t *testing.T) {
	assert.NoError(t, Validate(validLab()))

	lab := validLab()
	lab.Hints = append(lab.Hints, model.LabHint{TaskID: "exfiltrate", Content: "Look at DNS TXT records"})
	ve, ok := AsValidationErrors(Validate(lab))
	require.True(t, ok)
	assert.True(t, ve.Has("hints[1].taskId", "task_ref"), "%v", ve)
	assert.False(t, ve.Has("hints[0].taskId", ""), "%v", ve)

	// 没有 taskId 的提示属于整个实验
	lab = validLab()
	lab.Hints = append(lab.Hints, model.LabHint{Content: "Save the capture before filtering"})
	assert.NoError(t, Validate(lab))
}

func TestLabTaskIDsAreUnique(t *testing.T) {
	lab := validLab()
	lab.Tasks = append(lab.Tasks, model.LabTask{ID: "capture", Title: "Capture again"})
	ve, ok := AsValidationErrors(Validate(lab))
	require.True(t, ok)
	assert.True(t, ve.Has("tasks[2].id", "unique"), "%v", ve)
	assert.False(t, ve.Has("tasks[0].id", "unique"), "%v", ve)
}

func TestArtifactChecksumIsSHA256(t *testing.T) {
	a := &model.ForensicArtifact{Name: "capture.pcap", Type: model.ArtifactPcap}
	assert.NoError(t, Validate(a))

	a.SHA256 = "abc123"
	ve, ok := AsValidationErrors(Validate(a))
	require.True(t, ok)
	assert.True(t, ve.Has("sha256", "len"), "%v", ve)

	a.SHA256 = strings.Repeat("z", 64)
	ve, ok = AsValidationErrors(Validate(a))
	require.True(t, ok)
	assert.True(t, ve.Has("sha256", "hexadecimal"), "%v", ve)

	a.SHA256 = strings.Repeat("ab", 32)
	assert.NoError(t, Validate(a))

	env := model.DefaultLabEnvironment()
	env.Type = model.EnvSimulated
	sc := &model.TrainingScenario{
		Title:       "Ransomware triage",
		Type:        model.ScenarioForensics,
		Difficulty:  model.DifficultyAdvanced,
		Environment: env,
		MaxScore:    100,
		Status:      model.StatusDraft,
		Artifacts:   []model.ForensicArtifact{{Name: "mem.raw", Type: model.ArtifactMemoryDump, SHA256: "0xdeadbeef"}},
	}
	ve, ok = AsValidationErrors(Validate(sc))
	require.True(t, ok)
	assert.True(t, ve.Has("artifacts[0].sha256", "len"), "%v", ve)
}

func TestExplicitEmptyStatusIsRejected(t *testing.T) {
	docs := map[string]string{
		"learningPath":         `{"title":"t","description":"d","difficulty":"beginner","category":"c"%s}`,
		"knowledgeBaseArticle": `{"title":"t","content":"c","category":"k","authorId":"a"%s}`,
		"lesson":               `{"title":"t","content":{"type":"text","body":"b"}%s}`,
	}
	for kind, doc := range docs {
		_, err := Decode(kind, []byte(strings.Replace(doc, "%s", "", 1)), FormatJSON)
		assert.NoError(t, err, kind)

		_, err = Decode(kind, []byte(strings.Replace(doc, "%s", `,"status":""`, 1)), FormatJSON)
		ve, ok := AsValidationErrors(err)
		require.True(t, ok, "%s: %v", kind, err)
		assert.True(t, ve.Has("status", "required"), "%s: %v", kind, ve)
	}
}

func TestDecodeYAMLAppliesDefaults(t *testing.T) {
	doc := []byte(`
title: Network Forensics
description: Packet analysis end to end
difficulty: advanced
category: security
tags: [pcap, wireshark]
`)
	record, err := Decode("learningPath", doc, FormatYAML)
	require.NoError(t, err)

	p, ok := record.(*model.LearningPath)
	require.True(t, ok)
	assert.Equal(t, "Network Forensics", p.Title)
	assert.Equal(t, "USD", p.Currency)
	assert.True(t, p.IsPublic)
	assert.Equal(t, model.StatusDraft, p.Status)
	assert.Equal(t, []string{"pcap", "wireshark"}, []string(p.Tags))
}

func TestDecodeReturnsRecordWithValidationErrors(t *testing.T) {
	record, err := Decode("learningPath", []byte(`{"title":"x"}`), FormatJSON)
	require.Error(t, err)
	assert.NotNil(t, record)

	ve, ok := AsValidationErrors(err)
	require.True(t, ok)
	assert.True(t, ve.Has("description", "required"))
	assert.True(t, ve.Has("category", "required"))
}

func TestDecodeMalformedInputIsNotValidationError(t *testing.T) {
	_, err := Decode("learningPath", []byte(`{"title":`), FormatJSON)
	require.Error(t, err)
	_, ok := AsValidationErrors(err)
	assert.False(t, ok)
}

func TestUnknownKindAndFormat(t *testing.T) {
	_, err := Decode("spaceship", []byte(`{}`), FormatJSON)
	assert.True(t, errors.Is(err, ErrUnknownKind))

	_, err = Decode("rubric", []byte(`{}`), Format("toml"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("paths/intro.YAML"))
	assert.Equal(t, FormatYAML, FormatFromPath("intro.yml"))
	assert.Equal(t, FormatJSON, FormatFromPath("intro.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("intro"))
}

func TestKindsSortedAndConstructible(t *testing.T) {
	ks := Kinds()
	assert.True(t, sort.StringsAreSorted(ks))
	assert.Contains(t, ks, "learningPath")
	assert.Contains(t, ks, "educationalConfig")

	for _, k := range ks {
		v, err := New(k)
		require.NoError(t, err, k)
		assert.NotNil(t, v, k)
	}
}
