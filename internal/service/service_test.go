package service

import (
	"context"
	"testing"

	"edu_platform_backend/internal/config"
	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/repository"
	"edu_platform_backend/internal/schema"
	"edu_platform_backend/internal/util"
	"edu_platform_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	student    = Viewer{UserID: "student-1", Role: model.RoleStudent}
	student2   = Viewer{UserID: "student-2", Role: model.RoleStudent}
	instructor = Viewer{UserID: "instructor-1", Role: model.RoleInstructor}
)

type fixture struct {
	db          *gorm.DB
	edu         *config.EducationStore
	paths       *LearningPathService
	progress    *ProgressService
	assessments *AssessmentService
	enrollments *EnrollmentService
	forum       *ForumService
	scenarios   *ScenarioService
	kb          *KnowledgeBaseService
	live        *LiveHub
	instructors *InstructorService
	statistics  *StatisticsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	edu := config.NewEducationStore(config.DefaultEducationalConfig())
	storage := NewStorageService(&config.StorageConfig{Type: "local", LocalPath: t.TempDir(), PublicURL: "http://localhost:8080"})
	cache := NewPathCache(nil, edu)

	pathRepo := repository.NewLearningPathRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	certRepo := repository.NewCertificationRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	evaluator := NewCompletionEvaluator(progressRepo, assessmentRepo)

	progress := NewProgressService(
		progressRepo,
		pathRepo,
		moduleRepo,
		repository.NewLessonRepository(db),
		repository.NewLabRepository(db),
		assessmentRepo,
		repository.NewScenarioRepository(db),
		enrollmentRepo,
		evaluator,
		edu,
	)
	live := NewLiveHub(nil)
	forum := NewForumService(repository.NewForumRepository(db), storage, edu)
	forum.Live = live
	scenarios := NewScenarioService(repository.NewScenarioRepository(db), edu)
	scenarios.Live = live
	return &fixture{
		db:          db,
		edu:         edu,
		paths:       NewLearningPathService(pathRepo, moduleRepo, certRepo, enrollmentRepo, evaluator, cache, edu),
		progress:    progress,
		assessments: NewAssessmentService(assessmentRepo, progress),
		enrollments: NewEnrollmentService(enrollmentRepo, pathRepo, certRepo, evaluator, edu),
		forum:       forum,
		scenarios:   scenarios,
		kb:          NewKnowledgeBaseService(repository.NewKnowledgeBaseRepository(db), storage, nil, edu),
		live:        live,
		instructors: NewInstructorService(repository.NewInstructorRepository(db)),
		statistics:  NewStatisticsService(repository.NewStatisticsRepository(db), pathRepo, cache),
	}
}

func ptr[T any](v T) *T { return &v }

// publishedPath 一个模块，包含一节课和一次只有一道题的测验
func publishedPath(price float64) *model.LearningPath {
	answer := model.SingleAnswer("53")
	p := model.DefaultLearningPath()
	p.Title = "DNS Fundamentals"
	p.Description = "Resolvers, zones and records"
	p.Difficulty = model.DifficultyBeginner
	p.Category = "networking"
	p.Price = price
	p.Status = model.StatusPublished
	p.Modules = []model.LearningModule{{
		Title:              "Resolution",
		Status:             model.StatusPublished,
		CompletionCriteria: model.DefaultCompletionCriteria(),
		Lessons: []model.Lesson{{
			Title:   "How a query travels",
			Content: model.NewTextContent("# Recursive resolution", model.TextMarkdown),
			Status:  model.StatusPublished,
		}},
		Assessments: []model.Assessment{{
			Title:        "Resolution check",
			Type:         model.AssessmentQuiz,
			PassingScore: 70,
			MaxAttempts:  2,
			Status:       model.StatusPublished,
			Questions: []model.QuizQuestion{{
				Type:          model.QuestionMultipleChoice,
				Question:      "Which port does DNS use?",
				Options:       []string{"53", "80"},
				CorrectAnswer: &answer,
				Explanation:   "UDP and TCP 53",
				Points:        1,
			}},
		}},
	}}
	return &p
}

func (f *fixture) createPath(t *testing.T, p *model.LearningPath) *model.LearningPath {
	t.Helper()
	created, err := f.paths.Create(context.Background(), instructor, p)
	require.NoError(t, err)
	return created
}

func TestPathCacheWithoutRedis(t *testing.T) {
	ctx := context.Background()
	var nilCache *PathCache
	nilCache.InvalidatePath(ctx, "p1")

	c := NewPathCache(nil, config.NewEducationStore(config.DefaultEducationalConfig()))
	c.SetPath(ctx, &model.LearningPath{})
	_, ok := c.GetPath(ctx, "p1")
	assert.False(t, ok)
	_, ok = c.GetList(ctx, model.SearchFilters{}, model.DefaultPagination())
	assert.False(t, ok)
	_, ok = c.GetStatistics(ctx, "")
	assert.False(t, ok)
	c.InvalidatePath(ctx, "p1")
}

func TestCreatePathAddsAuthorAndSlug(t *testing.T) {
	f := newFixture(t)
	p := f.createPath(t, publishedPath(0))

	assert.Equal(t, "dns-fundamentals", p.Slug)
	assert.Contains(t, []string(p.InstructorIDs), instructor.UserID)
	require.Len(t, p.Modules, 1)
	require.Len(t, p.Modules[0].Lessons, 1)
	require.Len(t, p.Modules[0].Assessments, 1)
	assert.NotEmpty(t, p.Modules[0].Assessments[0].Questions[0].ID)
}

func TestCreatePathRejectsInvalidTree(t *testing.T) {
	f := newFixture(t)
	p := publishedPath(0)
	p.Modules[0].Assessments[0].Questions = nil

	_, err := f.paths.Create(context.Background(), instructor, p)
	ve, ok := schema.AsValidationErrors(err)
	require.True(t, ok, "got %v", err)
	assert.True(t, ve.Has("modules[0].assessments[0].questions", "quiz_questions"), "%v", ve)
}

func TestStudentViewHidesDraftsAndAnswers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft := publishedPath(0)
	draft.Status = model.StatusDraft
	draft.Modules = append(draft.Modules, model.LearningModule{Title: "Unfinished", Status: model.StatusDraft, CompletionCriteria: model.DefaultCompletionCriteria()})
	p := f.createPath(t, draft)

	_, err := f.paths.Get(ctx, Viewer{}, p.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = f.paths.SetStatus(ctx, p.ID, model.StatusPublished)
	require.NoError(t, err)

	view, err := f.paths.Get(ctx, student, p.ID)
	require.NoError(t, err)
	require.Len(t, view.Modules, 1)
	q := view.Modules[0].Assessments[0].Questions[0]
	assert.Nil(t, q.CorrectAnswer)
	assert.Empty(t, q.Explanation)

	full, err := f.paths.Get(ctx, instructor, p.ID)
	require.NoError(t, err)
	assert.Len(t, full.Modules, 2)
	assert.NotNil(t, full.Modules[0].Assessments[0].Questions[0].CorrectAnswer)
}

func TestPublishRequiresModules(t *testing.T) {
	f := newFixture(t)
	empty := publishedPath(0)
	empty.Status = model.StatusDraft
	empty.Modules = nil
	p := f.createPath(t, empty)

	_, err := f.paths.SetStatus(context.Background(), p.ID, model.StatusPublished)
	assert.ErrorIs(t, err, util.ErrInvalidTransition)
}

func TestListCatalogueOnlyPublished(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createPath(t, publishedPath(0))
	draft := publishedPath(0)
	draft.Title = "Draft path"
	draft.Status = model.StatusDraft
	f.createPath(t, draft)

	page, err := f.paths.List(ctx, Viewer{}, model.SearchFilters{}, model.DefaultPagination())
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	page, err = f.paths.List(ctx, instructor, model.SearchFilters{}, model.DefaultPagination())
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	bad := model.DefaultPagination()
	bad.SortBy = "secret"
	_, err = f.paths.List(ctx, instructor, model.SearchFilters{}, bad)
	assert.ErrorIs(t, err, util.ErrInvalidSort)
}

func TestEnrollFreePathIsActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPath(t, publishedPath(0))

	e, err := f.enrollments.Enroll(ctx, student, "", p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentActive, e.Status)
	assert.Equal(t, model.PaymentWaived, e.PaymentStatus)

	_, err = f.enrollments.Enroll(ctx, student, "", p.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)
}

func TestEnrollPaidPathWaitsForPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPath(t, publishedPath(49))

	e, err := f.enrollments.Enroll(ctx, student, "", p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentPending, e.Status)
	assert.Equal(t, model.PaymentPending, e.PaymentStatus)

	// 学生不能自行激活
	_, err = f.enrollments.UpdateStatus(ctx, student, e.ID, model.EnrollmentActive)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
	// 未付款时讲师也不能激活
	_, err = f.enrollments.UpdateStatus(ctx, instructor, e.ID, model.EnrollmentActive)
	assert.ErrorIs(t, err, util.ErrInvalidTransition)

	e, err = f.enrollments.UpdatePayment(ctx, e.ID, model.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentActive, e.Status)

	e, err = f.enrollments.UpdatePayment(ctx, e.ID, model.PaymentRefunded)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentDropped, e.Status)
}

func TestReEnrollAfterDropReusesRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPath(t, publishedPath(0))

	first, err := f.enrollments.Enroll(ctx, student, "", p.ID)
	require.NoError(t, err)
	_, err = f.enrollments.UpdateStatus(ctx, student, first.ID, model.EnrollmentDropped)
	require.NoError(t, err)

	again, err := f.enrollments.Enroll(ctx, student, "", p.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, model.EnrollmentActive, again.Status)
}

func TestEnrollRespectsCapacityAndPublishing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	limited := publishedPath(0)
	limited.MaxEnrollments = ptr(1)
	p := f.createPath(t, limited)

	_, err := f.enrollments.Enroll(ctx, student, "", p.ID)
	require.NoError(t, err)
	_, err = f.enrollments.Enroll(ctx, student2, "", p.ID)
	assert.ErrorIs(t, err, util.ErrPathFull)

	draft := publishedPath(0)
	draft.Title = "Not yet"
	draft.Status = model.StatusDraft
	d := f.createPath(t, draft)
	_, err = f.enrollments.Enroll(ctx, student, "", d.ID)
	assert.ErrorIs(t, err, util.ErrNotPublished)

	// 学生不能替别人报名
	_, err = f.enrollments.Enroll(ctx, student, student2.UserID, d.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestProgressRequiresEnrollment(t *testing.T) {
	f := newFixture(t)
	p := f.createPath(t, publishedPath(0))
	lessonID := p.Modules[0].Lessons[0].ID

	_, err := f.progress.Record(context.Background(), student.UserID, ProgressUpdate{
		ContentID:   lessonID,
		ContentType: model.ProgressLesson,
		Status:      model.ProgressInProgress,
	})
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestProgressCompletedIsStickyAndKeepsBestScore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPath(t, publishedPath(0))
	lessonID := p.Modules[0].Lessons[0].ID
	_, err := f.enrollments.Enroll(ctx, student, "", p.ID)
	require.NoError(t, err)

	rec, err := f.progress.Record(ctx, student.UserID, ProgressUpdate{
		ContentID: lessonID, ContentType: model.ProgressLesson, Status: model.ProgressCompleted, Score: ptr(80.0), TimeSpent: 120,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ProgressCompleted, rec.Status)
	assert.Equal(t, 1, rec.Attempts)
	assert.NotNil(t, rec.CompletedAt)

	rec, err = f.progress.Record(ctx, student.UserID, ProgressUpdate{
		ContentID: lessonID, ContentType: model.ProgressLesson, Status: model.ProgressInProgress, Score: ptr(60.0), TimeSpent: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ProgressCompleted, rec.Status)
	require.NotNil(t, rec.Score)
	assert.Equal(t, 80.0, *rec.Score)
	assert.Equal(t, 150, rec.TimeSpent)
	assert.Equal(t, p.ID, rec.PathID)

	// 模块还需要通过测验
	mc, err := f.paths.ModuleCompletion(ctx, student.UserID, p.Modules[0].ID)
	require.NoError(t, err)
	assert.False(t, mc.Completed)
	assert.Equal(t, 1, mc.LessonsCompleted)
	assert.Equal(t, []string{p.Modules[0].Assessments[0].ID}, mc.Missing)
}

func TestProgressRejectsDerivedContentTypes(t *testing.T) {
	f := newFixture(t)
	_, err := f.progress.Record(context.Background(), student.UserID, ProgressUpdate{
		ContentID: "m1", ContentType: model.ProgressModule, Status: model.ProgressCompleted,
	})
	_, ok := schema.AsValidationErrors(err)
	assert.True(t, ok, "got %v", err)
}

func TestBookmarks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPath(t, publishedPath(0))
	lessonID := p.Modules[0].Lessons[0].ID
	_, err := f.enrollments.Enroll(ctx, student, "", p.ID)
	require.NoError(t, err)
	_, err = f.progress.Record(ctx, student.UserID, ProgressUpdate{ContentID: lessonID, ContentType: model.ProgressLesson, Status: model.ProgressInProgress})
	require.NoError(t, err)

	rec, err := f.progress.AddBookmark(ctx, student.UserID, lessonID, model.Bookmark{Position: "02:15", Note: "TTL"})
	require.NoError(t, err)
	require.Len(t, rec.Bookmarks, 1)

	_, err = f.progress.RemoveBookmark(ctx, student.UserID, lessonID, 3)
	assert.ErrorIs(t, err, util.ErrNotFound)

	rec, err = f.progress.RemoveBookmark(ctx, student.UserID, lessonID, 0)
	require.NoError(t, err)
	assert.Empty(t, rec.Bookmarks)
}

func TestAssessmentCompletesPathAndLimitsAttempts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPath(t, publishedPath(0))
	lessonID := p.Modules[0].Lessons[0].ID
	assessmentID := p.Modules[0].Assessments[0].ID

	e, err := f.enrollments.Enroll(ctx, student, "", p.ID)
	require.NoError(t, err)
	_, err = f.progress.Record(ctx, student.UserID, ProgressUpdate{ContentID: lessonID, ContentType: model.ProgressLesson, Status: model.ProgressCompleted})
	require.NoError(t, err)

	res, err := f.assessments.Record(ctx, student, assessmentID, ResultSubmission{Score: ptr(0.0)})
	require.NoError(t, err)
	assert.Equal(t, 1, res.AttemptNumber)
	assert.False(t, res.Passed)
	assert.Equal(t, 1.0, res.MaxScore)

	res, err = f.assessments.Record(ctx, student, assessmentID, ResultSubmission{Score: ptr(1.0)})
	require.NoError(t, err)
	assert.Equal(t, 2, res.AttemptNumber)
	assert.True(t, res.Passed)
	assert.Equal(t, 100.0, res.Percentage)

	_, err = f.assessments.Record(ctx, student, assessmentID, ResultSubmission{Score: ptr(1.0)})
	assert.ErrorIs(t, err, util.ErrMaxAttemptsReached)

	completion, err := f.paths.Completion(ctx, student.UserID, p.ID)
	require.NoError(t, err)
	assert.True(t, completion.Completed)
	assert.Equal(t, 100.0, completion.ProgressPercent)

	stored, err := f.enrollments.Get(ctx, student, e.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentCompleted, stored.Status)
	assert.Equal(t, 100.0, stored.ProgressPercent)
	assert.NotNil(t, stored.CompletedAt)
}

func TestAssessmentScoreAboveMaxIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPath(t, publishedPath(0))
	_, err := f.enrollments.Enroll(ctx, student, "", p.ID)
	require.NoError(t, err)

	_, err = f.assessments.Record(ctx, student, p.Modules[0].Assessments[0].ID, ResultSubmission{Score: ptr(5.0)})
	ve, ok := schema.AsValidationErrors(err)
	require.True(t, ok, "got %v", err)
	assert.True(t, ve.Has("score", "lte_max_score"))
}

func TestGradeRecalculatesWithoutCountingAttempt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPath(t, publishedPath(0))
	assessmentID := p.Modules[0].Assessments[0].ID
	_, err := f.enrollments.Enroll(ctx, student, "", p.ID)
	require.NoError(t, err)

	res, err := f.assessments.Record(ctx, student, assessmentID, ResultSubmission{Score: ptr(0.0)})
	require.NoError(t, err)

	graded, err := f.assessments.Grade(ctx, instructor, res.ID, GradeInput{Score: ptr(1.0), Feedback: "Regraded"})
	require.NoError(t, err)
	assert.True(t, graded.Passed)
	assert.Equal(t, 1, graded.AttemptNumber)
	assert.Equal(t, instructor.UserID, graded.GradedBy)

	rec, err := f.progress.Get(ctx, student.UserID, assessmentID)
	require.NoError(t, err)
	assert.Equal(t, model.ProgressCompleted, rec.Status)
	assert.Equal(t, 1, rec.Attempts)

	// 其他学生看不到这份结果
	_, err = f.assessments.GetResult(ctx, student2, res.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestIssueCertificate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPath(t, publishedPath(0))

	_, err := f.paths.SetCertification(ctx, p.ID, &model.Certification{
		Name:            "DNS Practitioner",
		Issuer:          "Edu Platform",
		PassingCriteria: model.PassingCriteria{MinimumScore: 80},
	})
	require.NoError(t, err)

	e, err := f.enrollments.Enroll(ctx, student, "", p.ID)
	require.NoError(t, err)

	_, err = f.enrollments.IssueCertificate(ctx, e.ID)
	assert.ErrorIs(t, err, util.ErrCriteriaNotMet)

	_, err = f.progress.Record(ctx, student.UserID, ProgressUpdate{ContentID: p.Modules[0].Lessons[0].ID, ContentType: model.ProgressLesson, Status: model.ProgressCompleted})
	require.NoError(t, err)
	_, err = f.assessments.Record(ctx, student, p.Modules[0].Assessments[0].ID, ResultSubmission{Score: ptr(1.0)})
	require.NoError(t, err)

	issued, err := f.enrollments.IssueCertificate(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, issued.CertificateIssued)
	assert.NotEmpty(t, issued.CertificateID)
	assert.NotNil(t, issued.CertificateExpiresAt)

	again, err := f.enrollments.IssueCertificate(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, issued.CertificateID, again.CertificateID)
}

func TestDraftContentIsNotACompletionRequirement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := publishedPath(0)
	p.Modules[0].Lessons = append(p.Modules[0].Lessons, model.Lesson{
		Title:   "Zone transfers",
		Order:   1,
		Content: model.NewTextContent("AXFR and IXFR", model.TextMarkdown),
		Status:  model.StatusDraft,
	})
	p.Modules = append(p.Modules, model.LearningModule{
		Title:              "DNSSEC",
		Order:              1,
		Status:             model.StatusDraft,
		CompletionCriteria: model.DefaultCompletionCriteria(),
		Lessons: []model.Lesson{{
			Title:   "Signing zones",
			Content: model.NewTextContent("RRSIG records", model.TextMarkdown),
			Status:  model.StatusPublished,
		}},
	})
	p = f.createPath(t, p)
	require.Len(t, p.Modules, 2)

	var draftLessonID string
	for _, l := range p.Modules[0].Lessons {
		if l.Status == model.StatusDraft {
			draftLessonID = l.ID
		}
	}
	require.NotEmpty(t, draftLessonID)
	var visibleLessonID string
	for _, l := range p.Modules[0].Lessons {
		if l.Status == model.StatusPublished {
			visibleLessonID = l.ID
		}
	}

	_, err := f.paths.SetCertification(ctx, p.ID, &model.Certification{Name: "DNS Practitioner", Issuer: "Edu Platform"})
	require.NoError(t, err)
	e, err := f.enrollments.Enroll(ctx, student, "", p.ID)
	require.NoError(t, err)

	_, err = f.progress.Record(ctx, student.UserID, ProgressUpdate{ContentID: draftLessonID, ContentType: model.ProgressLesson, Status: model.ProgressCompleted})
	assert.ErrorIs(t, err, util.ErrNotFound)
	_, err = f.progress.Record(ctx, student.UserID, ProgressUpdate{ContentID: p.Modules[1].Lessons[0].ID, ContentType: model.ProgressLesson, Status: model.ProgressCompleted})
	assert.ErrorIs(t, err, util.ErrNotFound, "lesson in a draft module")

	_, err = f.progress.Record(ctx, student.UserID, ProgressUpdate{ContentID: visibleLessonID, ContentType: model.ProgressLesson, Status: model.ProgressCompleted})
	require.NoError(t, err)
	_, err = f.assessments.Record(ctx, student, p.Modules[0].Assessments[0].ID, ResultSubmission{Score: ptr(1.0)})
	require.NoError(t, err)

	completion, err := f.paths.Completion(ctx, student.UserID, p.ID)
	require.NoError(t, err)
	assert.True(t, completion.Completed)
	assert.Equal(t, 100.0, completion.ProgressPercent)
	require.Len(t, completion.Modules, 1)
	assert.Empty(t, completion.Modules[0].Missing)
	assert.Equal(t, 1, completion.Modules[0].LessonsRequired)

	issued, err := f.enrollments.IssueCertificate(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, issued.CertificateIssued)
}

func TestCertificationFeatureFlag(t *testing.T) {
	f := newFixture(t)
	p := f.createPath(t, publishedPath(0))

	edu := config.DefaultEducationalConfig()
	edu.Features.Certificates = false
	f.edu.Store(edu)

	_, err := f.paths.SetCertification(context.Background(), p.ID, &model.Certification{Name: "x", Issuer: "y"})
	assert.ErrorIs(t, err, util.ErrFeatureDisabled)
}

func TestForumFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	thread, err := f.forum.CreateThread(ctx, student, NewThread{Title: "Resolver loops", Content: "My resolver keeps timing out"})
	require.NoError(t, err)
	assert.Equal(t, model.ThreadOpen, thread.Status)

	reply, err := f.forum.Reply(ctx, student2, thread.ID, NewPost{Content: "Check the forwarders"})
	require.NoError(t, err)

	votes, err := f.forum.Vote(ctx, instructor, model.VotePost, reply.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, votes.Upvotes)

	_, err = f.forum.Vote(ctx, instructor, model.VotePost, reply.ID, 2)
	assert.ErrorIs(t, err, util.ErrInvalidVote)

	assert.ErrorIs(t, f.forum.AcceptAnswer(ctx, student2, thread.ID, reply.ID), util.ErrPermissionDenied)
	require.NoError(t, f.forum.AcceptAnswer(ctx, student, thread.ID, reply.ID))

	_, err = f.forum.Moderate(ctx, instructor, reply.ID, true)
	require.NoError(t, err)

	detail, err := f.forum.GetThread(ctx, student, thread.ID, model.DefaultPagination())
	require.NoError(t, err)
	assert.Equal(t, model.ThreadResolved, detail.Thread.Status)
	assert.Equal(t, 2, detail.Thread.PostCount)
	assert.Equal(t, 1, detail.Thread.Views)
	assert.Len(t, detail.Posts.List, 1, "hidden reply is filtered for students")

	detail, err = f.forum.GetThread(ctx, instructor, thread.ID, model.DefaultPagination())
	require.NoError(t, err)
	assert.Len(t, detail.Posts.List, 2)

	_, err = f.forum.EditPost(ctx, student, reply.ID, "hijack")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = f.forum.SetThreadStatus(ctx, thread.ID, model.ThreadLocked)
	require.NoError(t, err)
	_, err = f.forum.Reply(ctx, student2, thread.ID, NewPost{Content: "one more thing"})
	assert.ErrorIs(t, err, util.ErrThreadNotOpen)
	_, err = f.forum.EditPost(ctx, student2, reply.ID, "edited")
	assert.ErrorIs(t, err, util.ErrThreadNotOpen)

	assert.ErrorIs(t, f.forum.DeleteThread(ctx, student2, thread.ID), util.ErrPermissionDenied)
	require.NoError(t, f.forum.DeleteThread(ctx, student, thread.ID))
}

// newScenario 时间线故意乱序
func newScenario(status model.ContentStatus) *model.TrainingScenario {
	env := model.DefaultLabEnvironment()
	env.Type = model.EnvSimulated
	return &model.TrainingScenario{
		Title:       "Beaconing workstation",
		Type:        model.ScenarioIncidentResponse,
		Difficulty:  model.DifficultyIntermediate,
		Environment: env,
		MaxScore:    100,
		Status:      status,
		Timeline: []model.TimelineEvent{
			{OffsetMinutes: 30, Title: "Host isolated", EventType: model.EventUserAction},
			{OffsetMinutes: 5, Title: "EDR alert", EventType: model.EventAlert},
			{OffsetMinutes: 15, Title: "DNS tunnel traffic", EventType: model.EventNetwork},
		},
	}
}

func TestScenarioTimelineSortedAndRevealed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sc, err := f.scenarios.Create(ctx, newScenario(model.StatusPublished))
	require.NoError(t, err)

	full, err := f.scenarios.Get(ctx, instructor, sc.ID)
	require.NoError(t, err)
	var offsets []int
	for _, e := range full.Timeline {
		offsets = append(offsets, e.OffsetMinutes)
		assert.NotEmpty(t, e.ID)
	}
	assert.Equal(t, []int{5, 15, 30}, offsets)

	view, err := f.scenarios.Get(ctx, student, sc.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Timeline)

	_, err = f.scenarios.RevealEvent(ctx, sc.ID, full.Timeline[1].ID)
	require.NoError(t, err)
	view, err = f.scenarios.Get(ctx, student, sc.ID)
	require.NoError(t, err)
	require.Len(t, view.Timeline, 1)
	assert.Equal(t, "DNS tunnel traffic", view.Timeline[0].Title)
	assert.True(t, view.Timeline[0].Revealed)

	_, err = f.scenarios.RevealEvent(ctx, sc.ID, "no-such-event")
	assert.ErrorIs(t, err, util.ErrNotFound)

	draft, err := f.scenarios.Create(ctx, newScenario(model.StatusDraft))
	require.NoError(t, err)
	_, err = f.scenarios.Get(ctx, student, draft.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func newArticle(title string, status model.ContentStatus) *model.KnowledgeBaseArticle {
	return &model.KnowledgeBaseArticle{
		Title:    title,
		Content:  "Open the capture and follow the TCP stream.",
		Category: "forensics",
		Status:   status,
	}
}

func TestKnowledgeBaseSlugSuffixes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var slugs []string
	for i := 0; i < 3; i++ {
		a, err := f.kb.Create(ctx, instructor, newArticle("Reading pcap files", model.StatusDraft))
		require.NoError(t, err)
		assert.Equal(t, instructor.UserID, a.AuthorID)
		slugs = append(slugs, a.Slug)
	}
	assert.Equal(t, []string{"reading-pcap-files", "reading-pcap-files-2", "reading-pcap-files-3"}, slugs)

	bySlug, err := f.kb.Get(ctx, instructor, "reading-pcap-files-2", "")
	require.NoError(t, err)
	assert.Equal(t, "reading-pcap-files-2", bySlug.Slug)
}

func TestKnowledgeBasePublishedAtIsSetOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.kb.Create(ctx, instructor, newArticle("Triage checklist", model.StatusDraft))
	require.NoError(t, err)
	assert.Nil(t, a.PublishedAt)
	_, err = f.kb.Get(ctx, student, a.ID, "")
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = f.kb.SetStatus(ctx, a.ID, model.StatusPublished)
	require.NoError(t, err)
	first, err := f.kb.Get(ctx, instructor, a.ID, "")
	require.NoError(t, err)
	require.NotNil(t, first.PublishedAt)

	_, err = f.kb.SetStatus(ctx, a.ID, model.StatusArchived)
	require.NoError(t, err)
	_, err = f.kb.SetStatus(ctx, a.ID, model.StatusPublished)
	require.NoError(t, err)
	again, err := f.kb.Get(ctx, instructor, a.ID, "")
	require.NoError(t, err)
	require.NotNil(t, again.PublishedAt)
	assert.True(t, first.PublishedAt.Equal(*again.PublishedAt), "%v != %v", first.PublishedAt, again.PublishedAt)

	_, err = f.kb.SetStatus(ctx, a.ID, "")
	assert.ErrorIs(t, err, util.ErrInvalidTransition)
}

func TestKnowledgeBaseViewsWithoutRedisCountEveryRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, err := f.kb.Create(ctx, instructor, newArticle("Log retention", model.StatusPublished))
	require.NoError(t, err)
	require.NotNil(t, a.PublishedAt)

	for i := 0; i < 2; i++ {
		_, err = f.kb.Get(ctx, student, a.ID, "10.0.0.1")
		require.NoError(t, err)
	}
	got, err := f.kb.Get(ctx, instructor, a.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Views)
}

func TestForumDisabled(t *testing.T) {
	f := newFixture(t)
	edu := config.DefaultEducationalConfig()
	edu.Features.Forums = false
	f.edu.Store(edu)

	_, err := f.forum.CreateThread(context.Background(), student, NewThread{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, util.ErrFeatureDisabled)
}

func TestInstructorEmailIsCaseInsensitiveUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.instructors.Create(ctx, &model.Instructor{Name: "Ada", Email: " Ada@Example.com ", Status: model.InstructorActive})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", created.Email)

	_, err = f.instructors.Create(ctx, &model.Instructor{Name: "Ada Two", Email: "ADA@example.com", Status: model.InstructorActive})
	assert.ErrorIs(t, err, util.ErrEmailTaken)

	page, err := f.instructors.List(ctx, "", "", model.DefaultPagination())
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	_, err = f.instructors.List(ctx, model.InstructorStatus("retired"), "", model.DefaultPagination())
	_, ok := schema.AsValidationErrors(err)
	assert.True(t, ok)
}

func TestStatistics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPath(t, publishedPath(0))

	_, err := f.enrollments.Enroll(ctx, student, "", p.ID)
	require.NoError(t, err)
	dropped, err := f.enrollments.Enroll(ctx, student2, "", p.ID)
	require.NoError(t, err)
	_, err = f.enrollments.UpdateStatus(ctx, student2, dropped.ID, model.EnrollmentDropped)
	require.NoError(t, err)

	stats, err := f.statistics.Compute(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalStudents)
	assert.EqualValues(t, 1, stats.ActiveStudents)
	assert.EqualValues(t, 2, stats.TotalEnrollments)
	assert.EqualValues(t, 0, stats.CompletedEnrollments)
	assert.EqualValues(t, 1, stats.EnrollmentsByStatus[model.EnrollmentDropped])
	require.Len(t, stats.PopularPaths, 1)
	assert.EqualValues(t, 2, stats.PopularPaths[0].Enrollments)

	_, err = f.statistics.Compute(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
