package schema

import (
	"fmt"
	"math"

	"edu_platform_backend/internal/model"

	"github.com/go-playground/validator/v10"
)

var ruleMessages = map[string]string{
	"content_payload":  "does not match the content type",
	"min_options":      "needs at least two options",
	"answer_in_option": "must be one of the options",
	"true_false":       "must be true or false",
	"single_answer":    "must be a single value",
	"weights_sum":      "weights must add up to 1",
	"unique":           "must be unique",
	"task_ref":         "does not reference a task of this lab",
	"after_start":      "must be after the start date",
	"quiz_questions":   "needs at least one question for quiz assessments",
	"lte_max_score":    "must not exceed maxScore",
	"certificate_id":   "is required once a certificate is issued",
	"gte_min":          "must not be less than minDuration",
	"criteria_ref":     "references an item outside this module",
}

func registerStructRules(v *validator.Validate) {
	v.RegisterStructValidation(lessonContentRule, model.LessonContent{})
	v.RegisterStructValidation(quizQuestionRule, model.QuizQuestion{})
	v.RegisterStructValidation(rubricRule, model.Rubric{})
	v.RegisterStructValidation(labRule, model.Lab{})
	v.RegisterStructValidation(labEnvironmentRule, model.LabEnvironment{})
	v.RegisterStructValidation(learningPathRule, model.LearningPath{})
	v.RegisterStructValidation(learningModuleRule, model.LearningModule{})
	v.RegisterStructValidation(assessmentRule, model.Assessment{})
	v.RegisterStructValidation(assessmentResultRule, model.AssessmentResult{})
	v.RegisterStructValidation(enrollmentRule, model.Enrollment{})
	v.RegisterStructValidation(searchFiltersRule, model.SearchFilters{})
	v.RegisterStructValidation(scenarioRule, model.TrainingScenario{})
}

// lessonContentRule 只允许 type 对应的那一种载荷
func lessonContentRule(sl validator.StructLevel) {
	c := sl.Current().Interface().(model.LessonContent)
	ok := false
	switch c.Type {
	case model.ContentText:
		ok = c.Text != nil && c.Video == nil && c.Interactive == nil
	case model.ContentVideo:
		ok = c.Video != nil && c.Text == nil && c.Interactive == nil
	case model.ContentInteractive:
		ok = c.Interactive != nil && c.Text == nil && c.Video == nil
	default:
		// type 本身的错误由 enum 规则报告
		return
	}
	if !ok {
		sl.ReportError(c.Type, "type", "Type", "content_payload", "")
	}
}

func quizQuestionRule(sl validator.StructLevel) {
	q := sl.Current().Interface().(model.QuizQuestion)
	answer := q.CorrectAnswer

	switch q.Type {
	case model.QuestionMultipleChoice:
		if len(q.Options) < 2 {
			sl.ReportError(q.Options, "options", "Options", "min_options", "2")
		}
		if answer == nil || answer.IsEmpty() {
			sl.ReportError(q.CorrectAnswer, "correctAnswer", "CorrectAnswer", "required", "")
			return
		}
		allowed := make(map[string]struct{}, len(q.Options))
		for _, o := range q.Options {
			allowed[o] = struct{}{}
		}
		for _, a := range answer.Values() {
			if _, found := allowed[a]; !found {
				sl.ReportError(q.CorrectAnswer, "correctAnswer", "CorrectAnswer", "answer_in_option", "")
				return
			}
		}
	case model.QuestionTrueFalse:
		if answer == nil || answer.IsEmpty() {
			sl.ReportError(q.CorrectAnswer, "correctAnswer", "CorrectAnswer", "required", "")
			return
		}
		vs := answer.Values()
		if answer.IsMulti() || len(vs) != 1 || (vs[0] != "true" && vs[0] != "false") {
			sl.ReportError(q.CorrectAnswer, "correctAnswer", "CorrectAnswer", "true_false", "")
		}
	case model.QuestionFillBlank:
		if answer == nil || answer.IsEmpty() {
			sl.ReportError(q.CorrectAnswer, "correctAnswer", "CorrectAnswer", "required", "")
		}
	default:
		if answer != nil && answer.IsMulti() {
			sl.ReportError(q.CorrectAnswer, "correctAnswer", "CorrectAnswer", "single_answer", "")
		}
	}
}

func rubricRule(sl validator.StructLevel) {
	r := sl.Current().Interface().(model.Rubric)
	if len(r.Criteria) == 0 {
		return
	}
	if math.Abs(r.TotalWeight()-1) > model.RubricWeightTolerance {
		sl.ReportError(r.Criteria, "criteria", "Criteria", "weights_sum", fmt.Sprintf("%.3f", r.TotalWeight()))
	}
	seen := map[string]bool{}
	for i, c := range r.Criteria {
		if c.ID == "" {
			continue
		}
		if seen[c.ID] {
			sl.ReportError(c.ID, fmt.Sprintf("criteria[%d].id", i), "ID", "unique", "")
		}
		seen[c.ID] = true
	}
}

func labRule(sl validator.StructLevel) {
	lab := sl.Current().Interface().(model.Lab)

	taskIDs := map[string]bool{}
	for i, t := range lab.Tasks {
		if t.ID == "" {
			continue
		}
		if taskIDs[t.ID] {
			sl.ReportError(t.ID, fmt.Sprintf("tasks[%d].id", i), "ID", "unique", "")
		}
		taskIDs[t.ID] = true
	}

	for i, h := range lab.Hints {
		if h.TaskID != "" && !taskIDs[h.TaskID] {
			sl.ReportError(h.TaskID, fmt.Sprintf("hints[%d].taskId", i), "TaskID", "task_ref", "")
		}
	}
}

func labEnvironmentRule(sl validator.StructLevel) {
	env := sl.Current().Interface().(model.LabEnvironment)
	names := map[string]bool{}
	for i, c := range env.Containers {
		if c.Name == "" {
			continue
		}
		if names[c.Name] {
			sl.ReportError(c.Name, fmt.Sprintf("containers[%d].name", i), "Name", "unique", "")
		}
		names[c.Name] = true
	}
}

func learningPathRule(sl validator.StructLevel) {
	p := sl.Current().Interface().(model.LearningPath)
	if p.StartDate != nil && p.EndDate != nil && !p.EndDate.After(*p.StartDate) {
		sl.ReportError(p.EndDate, "endDate", "EndDate", "after_start", "")
	}
}

// learningModuleRule 模块内容已内嵌时，完成条件引用的 ID 必须属于本模块
func learningModuleRule(sl validator.StructLevel) {
	m := sl.Current().Interface().(model.LearningModule)
	lessons, labs, assessments := m.ItemIDs()

	check := func(field string, required []string, present []string) {
		if len(present) == 0 {
			return
		}
		set := make(map[string]bool, len(present))
		for _, id := range present {
			if id != "" {
				set[id] = true
			}
		}
		if len(set) == 0 {
			return
		}
		for i, id := range required {
			if !set[id] {
				sl.ReportError(id, fmt.Sprintf("completionCriteria.%s[%d]", field, i), field, "criteria_ref", "")
			}
		}
	}
	check("requiredLessons", m.CompletionCriteria.RequiredLessons, lessons)
	check("requiredLabs", m.CompletionCriteria.RequiredLabs, labs)
	check("requiredAssessments", m.CompletionCriteria.RequiredAssessments, assessments)
}

func assessmentRule(sl validator.StructLevel) {
	a := sl.Current().Interface().(model.Assessment)
	if a.Type == model.AssessmentQuiz && len(a.Questions) == 0 {
		sl.ReportError(a.Questions, "questions", "Questions", "quiz_questions", "")
	}
}

func assessmentResultRule(sl validator.StructLevel) {
	r := sl.Current().Interface().(model.AssessmentResult)
	if r.MaxScore > 0 && r.Score > r.MaxScore {
		sl.ReportError(r.Score, "score", "Score", "lte_max_score", "")
	}
}

func enrollmentRule(sl validator.StructLevel) {
	e := sl.Current().Interface().(model.Enrollment)
	if e.CertificateIssued && e.CertificateID == "" {
		sl.ReportError(e.CertificateID, "certificateId", "CertificateID", "certificate_id", "")
	}
}

func searchFiltersRule(sl validator.StructLevel) {
	f := sl.Current().Interface().(model.SearchFilters)
	if f.MinDuration != nil && f.MaxDuration != nil && *f.MaxDuration < *f.MinDuration {
		sl.ReportError(f.MaxDuration, "maxDuration", "MaxDuration", "gte_min", "")
	}
}

func scenarioRule(sl validator.StructLevel) {
	s := sl.Current().Interface().(model.TrainingScenario)
	seen := map[string]bool{}
	for i, e := range s.Timeline {
		if e.ID == "" {
			continue
		}
		if seen[e.ID] {
			sl.ReportError(e.ID, fmt.Sprintf("timeline[%d].id", i), "ID", "unique", "")
		}
		seen[e.ID] = true
	}
}
