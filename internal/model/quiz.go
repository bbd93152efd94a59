package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionFillBlank      QuestionType = "fill-blank"
	QuestionEssay          QuestionType = "essay"
	QuestionCode           QuestionType = "code"
	QuestionSimulation     QuestionType = "simulation"
)

func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionMultipleChoice, QuestionTrueFalse, QuestionFillBlank, QuestionEssay, QuestionCode, QuestionSimulation:
		return true
	}
	return false
}

// AnswerValue 答案既可以是单个字符串也可以是字符串数组（多选）。
// 布尔和数字在解析时转成字符串。
type AnswerValue struct {
	values []string
	multi  bool
}

func SingleAnswer(v string) AnswerValue {
	return AnswerValue{values: []string{v}}
}

func MultiAnswer(vs ...string) AnswerValue {
	return AnswerValue{values: append([]string(nil), vs...), multi: true}
}

func (a AnswerValue) Values() []string { return a.values }
func (a AnswerValue) IsMulti() bool    { return a.multi }
func (a AnswerValue) IsEmpty() bool    { return len(a.values) == 0 }

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	if a.multi {
		if a.values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.values)
	}
	if len(a.values) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(a.values[0])
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = AnswerValue{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = SingleAnswer(s)
	case '[':
		var vs []string
		if err := json.Unmarshal(data, &vs); err != nil {
			return fmt.Errorf("answer list must contain strings: %w", err)
		}
		*a = MultiAnswer(vs...)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*a = SingleAnswer(strconv.FormatBool(b))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("unsupported answer value %s", data)
		}
		*a = SingleAnswer(n.String())
	}
	return nil
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type" binding:"required,enum"`
	Question      string       `json:"question" binding:"required"`
	Options       []string     `json:"options,omitempty" binding:"omitempty,dive,required"`
	CorrectAnswer *AnswerValue `json:"correctAnswer,omitempty"`
	Explanation   string       `json:"explanation,omitempty"`
	Points        int          `json:"points" binding:"min=0"`
	CodeTemplate  string       `json:"codeTemplate,omitempty"`
	Language      string       `json:"language,omitempty"`
}

func DefaultQuizQuestion() QuizQuestion {
	return QuizQuestion{Points: 1}
}

func (q *QuizQuestion) UnmarshalJSON(data []byte) error {
	type raw QuizQuestion
	r := raw(DefaultQuizQuestion())
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*q = QuizQuestion(r)
	return nil
}

// swagger:model Quiz
type Quiz struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title" binding:"required"`
	Description        string         `json:"description,omitempty"`
	Questions          []QuizQuestion `json:"questions" binding:"required,min=1,dive"`
	PassingScore       int            `json:"passingScore" binding:"min=0,max=100"`
	TimeLimit          *int           `json:"timeLimit,omitempty" binding:"omitempty,min=1"`
	MaxAttempts        int            `json:"maxAttempts" binding:"min=1"`
	RandomizeQuestions bool           `json:"randomizeQuestions"`
	ShowCorrectAnswers bool           `json:"showCorrectAnswers"`
}

func DefaultQuiz() Quiz {
	return Quiz{PassingScore: 70, MaxAttempts: 3, ShowCorrectAnswers: true}
}

func (q *Quiz) UnmarshalJSON(data []byte) error {
	type raw Quiz
	r := raw(DefaultQuiz())
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*q = Quiz(r)
	return nil
}

// TotalPoints 所有题目分值之和
func (q *Quiz) TotalPoints() int {
	return totalPoints(q.Questions)
}

func (q *Quiz) fillIDs() {
	ensureID(&q.ID)
	for i := range q.Questions {
		ensureID(&q.Questions[i].ID)
	}
}

// WithoutAnswers 返回去掉标准答案和解析的副本，用于学生端
func (q Quiz) WithoutAnswers() Quiz {
	qs := make([]QuizQuestion, len(q.Questions))
	for i, question := range q.Questions {
		question.CorrectAnswer = nil
		question.Explanation = ""
		qs[i] = question
	}
	q.Questions = qs
	return q
}

func totalPoints(qs []QuizQuestion) int {
	total := 0
	for _, q := range qs {
		total += q.Points
	}
	return total
}
