package service

import (
	"context"
	"math"

	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/repository"
)

// ModuleCompletion 学生在一个模块上的完成情况
type ModuleCompletion struct {
	ModuleID          string   `json:"moduleId"`
	Completed         bool     `json:"completed"`
	LessonsCompleted  int      `json:"lessonsCompleted"`
	LessonsRequired   int      `json:"lessonsRequired"`
	LabsCompleted     int      `json:"labsCompleted"`
	LabsRequired      int      `json:"labsRequired"`
	AssessmentsPassed int      `json:"assessmentsPassed"`
	AssessmentsTotal  int      `json:"assessmentsRequired"`
	AverageScore      float64  `json:"averageScore"`
	Missing           []string `json:"missing"`
}

// PathCompletion 学生在一条路径上的完成情况
type PathCompletion struct {
	PathID          string             `json:"pathId"`
	ProgressPercent float64            `json:"progressPercent"`
	Completed       bool               `json:"completed"`
	Modules         []ModuleCompletion `json:"modules"`
}

// CompletionEvaluator 根据进度和评估结果计算完成条件
type CompletionEvaluator struct {
	ProgressRepo   *repository.ProgressRepository
	AssessmentRepo *repository.AssessmentRepository
}

func NewCompletionEvaluator(progressRepo *repository.ProgressRepository, assessmentRepo *repository.AssessmentRepository) *CompletionEvaluator {
	return &CompletionEvaluator{ProgressRepo: progressRepo, AssessmentRepo: assessmentRepo}
}

// requiredIDs 显式列出的 ID，加上 all 为 true 时模块内的全部 ID，去重并保持顺序；
// skip 中的 ID（未发布的内容）不计入
func requiredIDs(explicit []string, all bool, present []string, skip map[string]bool) []string {
	seen := map[string]bool{}
	var out []string
	add := func(id string) {
		if id != "" && !seen[id] && !skip[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range explicit {
		add(id)
	}
	if all {
		for _, id := range present {
			add(id)
		}
	}
	return out
}

// EvaluateModule m 需要已加载课程、实验和评估。学生看不到的未发布内容不作为完成条件
func (e *CompletionEvaluator) EvaluateModule(ctx context.Context, studentID string, m *model.LearningModule) (*ModuleCompletion, error) {
	drafts := m.DraftIDs()
	published := m.Published()
	m = &published
	lessons, labs, assessments := m.ItemIDs()
	cc := m.CompletionCriteria

	needLessons := requiredIDs(cc.RequiredLessons, cc.RequireAllLessons, lessons, drafts)
	needLabs := requiredIDs(cc.RequiredLabs, cc.RequireAllLabs, labs, drafts)
	needAssessments := requiredIDs(cc.RequiredAssessments, cc.RequireAllAssessments, assessments, drafts)

	contentIDs := append(append([]string{}, needLessons...), needLabs...)
	progress, err := e.ProgressRepo.ByContentIDs(ctx, studentID, contentIDs)
	if err != nil {
		return nil, err
	}
	best, err := e.AssessmentRepo.BestPercentages(ctx, studentID, assessments)
	if err != nil {
		return nil, err
	}

	out := &ModuleCompletion{
		ModuleID:         m.ID,
		LessonsRequired:  len(needLessons),
		LabsRequired:     len(needLabs),
		AssessmentsTotal: len(needAssessments),
		Missing:          []string{},
	}

	for _, id := range needLessons {
		if p, ok := progress[id]; ok && p.IsCompleted() {
			out.LessonsCompleted++
		} else {
			out.Missing = append(out.Missing, id)
		}
	}
	for _, id := range needLabs {
		p, ok := progress[id]
		if ok && p.IsCompleted() && p.ScoreOrZero() >= float64(cc.MinimumLabScore) {
			out.LabsCompleted++
		} else {
			out.Missing = append(out.Missing, id)
		}
	}

	passing := map[string]int{}
	for _, a := range m.Assessments {
		passing[a.ID] = a.PassingScore
	}
	for _, id := range needAssessments {
		pct, ok := best[id]
		if ok && pct >= float64(passing[id]) {
			out.AssessmentsPassed++
		} else {
			out.Missing = append(out.Missing, id)
		}
	}

	scoreOK := true
	if len(best) > 0 {
		sum := 0.0
		for _, pct := range best {
			sum += pct
		}
		out.AverageScore = round2(sum / float64(len(best)))
		scoreOK = out.AverageScore >= float64(cc.MinimumScore)
	}

	out.Completed = len(out.Missing) == 0 && scoreOK
	return out, nil
}

// EvaluatePath p 需要已加载完整内容树，只统计已发布的模块
func (e *CompletionEvaluator) EvaluatePath(ctx context.Context, studentID string, p *model.LearningPath) (*PathCompletion, error) {
	p = p.Published()
	out := &PathCompletion{PathID: p.ID, Modules: make([]ModuleCompletion, 0, len(p.Modules))}
	done := 0
	for i := range p.Modules {
		mc, err := e.EvaluateModule(ctx, studentID, &p.Modules[i])
		if err != nil {
			return nil, err
		}
		if mc.Completed {
			done++
		}
		out.Modules = append(out.Modules, *mc)
	}
	if len(p.Modules) > 0 {
		out.ProgressPercent = round2(float64(done) * 100 / float64(len(p.Modules)))
	}
	out.Completed = len(p.Modules) > 0 && done == len(p.Modules)
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
