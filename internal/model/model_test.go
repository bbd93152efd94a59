package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLessonContentFlatWireFormat(t *testing.T) {
	c := NewVideoContent(VideoContent{URL: "https://cdn.example.com/intro.mp4", Duration: 120})

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "video", fields["type"])
	assert.Equal(t, "https://cdn.example.com/intro.mp4", fields["url"])
	assert.EqualValues(t, 120, fields["duration"])

	var back LessonContent
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, ContentVideo, back.Type)
	require.NotNil(t, back.Video)
	assert.Nil(t, back.Text)
	assert.Nil(t, back.Interactive)
}

func TestLessonContentTextDefaultsToMarkdown(t *testing.T) {
	var c LessonContent
	require.NoError(t, json.Unmarshal([]byte(`{"type":"text","body":"# Routing"}`), &c))
	require.NotNil(t, c.Text)
	assert.Equal(t, TextMarkdown, c.Text.Format)
}

func TestLessonContentUnknownType(t *testing.T) {
	var c LessonContent
	err := json.Unmarshal([]byte(`{"type":"podcast"}`), &c)
	assert.ErrorIs(t, err, ErrUnknownContentType)

	_, err = json.Marshal(LessonContent{Type: "podcast"})
	assert.Error(t, err)
}

func TestAnswerValueAcceptsScalarsAndLists(t *testing.T) {
	cases := []struct {
		in    string
		want  []string
		multi bool
	}{
		{`"B"`, []string{"B"}, false},
		{`true`, []string{"true"}, false},
		{`42`, []string{"42"}, false},
		{`["A","C"]`, []string{"A", "C"}, true},
	}
	for _, tc := range cases {
		var a AnswerValue
		require.NoError(t, json.Unmarshal([]byte(tc.in), &a), tc.in)
		assert.Equal(t, tc.want, a.Values(), tc.in)
		assert.Equal(t, tc.multi, a.IsMulti(), tc.in)
	}

	var a AnswerValue
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &a))
}

func TestLearningPathDefaultsOnlyForOmittedKeys(t *testing.T) {
	var p LearningPath
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Networking","isPublic":false}`), &p))

	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, StatusDraft, p.Status)
	assert.False(t, p.IsPublic, "explicit false must survive the default")
	assert.Equal(t, "1.0.0", p.Metadata.Version)
	assert.Equal(t, "en", p.Metadata.Language)
}

func TestModuleCompletionCriteriaDefaults(t *testing.T) {
	var m LearningModule
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Basics","completionCriteria":{"minimumScore":50}}`), &m))

	assert.Equal(t, 50, m.CompletionCriteria.MinimumScore)
	assert.True(t, m.CompletionCriteria.RequireAllLessons)
	assert.True(t, m.CompletionCriteria.RequireAllAssessments)
	assert.False(t, m.CompletionCriteria.RequireAllLabs)
}

func TestQuizWithoutAnswers(t *testing.T) {
	answer := SingleAnswer("B")
	q := Quiz{
		Title: "Check",
		Questions: []QuizQuestion{
			{Type: QuestionMultipleChoice, Question: "Pick", Options: []string{"A", "B"}, CorrectAnswer: &answer, Explanation: "B is right", Points: 2},
		},
	}

	stripped := q.WithoutAnswers()
	assert.Nil(t, stripped.Questions[0].CorrectAnswer)
	assert.Empty(t, stripped.Questions[0].Explanation)
	assert.NotNil(t, q.Questions[0].CorrectAnswer, "original quiz is untouched")
	assert.Equal(t, 2, q.TotalPoints())
}

func TestAssessmentMaxPoints(t *testing.T) {
	a := Assessment{Questions: []QuizQuestion{{Points: 3}, {Points: 2}}}
	assert.Equal(t, 5, a.MaxPoints())

	a.Rubric = &Rubric{Criteria: []RubricCriterion{
		{Name: "Design", Weight: 0.6, MaxPoints: 30},
		{Name: "Docs", Weight: 0.4, MaxPoints: 20},
	}}
	assert.Equal(t, 50, a.MaxPoints())
	assert.InDelta(t, 1.0, a.Rubric.TotalWeight(), RubricWeightTolerance)
}

func TestEnrollmentStatusIsOpen(t *testing.T) {
	assert.True(t, EnrollmentPending.IsOpen())
	assert.True(t, EnrollmentSuspended.IsOpen())
	assert.False(t, EnrollmentDropped.IsOpen())
	assert.False(t, EnrollmentCompleted.IsOpen())

	assert.True(t, PaymentWaived.IsSettled())
	assert.False(t, PaymentRefunded.IsSettled())
}

func TestPaginationNormalize(t *testing.T) {
	p := Pagination{Page: 0, Limit: 500, SortOrder: "sideways"}
	p.Normalize()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPageSize, p.Limit)
	assert.Equal(t, "createdAt", p.SortBy)
	assert.Equal(t, SortDesc, p.SortOrder)

	p = Pagination{Page: 3, Limit: 20}
	assert.Equal(t, 40, p.Offset())
}

func TestNewPageResultNeverNil(t *testing.T) {
	page := NewPageResult[LearningPath](nil, 0, DefaultPagination())
	data, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"list":[],"total":0,"page":1,"limit":20}`, string(data))
}
