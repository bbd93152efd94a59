package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/util"
	"edu_platform_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 每个连接都是独立的内存库
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func TestProgressUpsertKeepsOneRow(t *testing.T) {
	ctx := context.Background()
	repo := NewProgressRepository(newTestDB(t))

	first := &model.StudentProgress{
		StudentID:   "s1",
		PathID:      "p1",
		ModuleID:    "m1",
		ContentID:   "lesson-1",
		ContentType: model.ProgressLesson,
		Status:      model.ProgressInProgress,
		TimeSpent:   5,
	}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &model.StudentProgress{
		StudentID:   "s1",
		PathID:      "p1",
		ModuleID:    "m1",
		ContentID:   "lesson-1",
		ContentType: model.ProgressLesson,
		Status:      model.ProgressCompleted,
		TimeSpent:   12,
	}
	require.NoError(t, repo.Upsert(ctx, second))

	all, err := repo.ListByStudent(ctx, "s1", "", "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, model.ProgressCompleted, all[0].Status)
	assert.Equal(t, 12, all[0].TimeSpent)

	stored, err := repo.FindByContent(ctx, "s1", "lesson-1")
	require.NoError(t, err)
	stored.TimeSpent = 30
	require.NoError(t, repo.Upsert(ctx, stored))

	byID, err := repo.ByContentIDs(ctx, "s1", []string{"lesson-1", "missing"})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, 30, byID["lesson-1"].TimeSpent)

	n, err := repo.CountByStatus(ctx, "s1", model.ProgressLesson, model.ProgressCompleted, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = repo.CountByStatus(ctx, "s1", model.ProgressLesson, model.ProgressCompleted, "lesson-1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestVoteDelta(t *testing.T) {
	cases := []struct {
		old, value, up, down int
	}{
		{0, 1, 1, 0},
		{0, -1, 0, 1},
		{1, 1, 0, 0},
		{1, -1, -1, 1},
		{-1, 0, 0, -1},
		{1, 0, -1, 0},
		{0, 0, 0, 0},
	}
	for _, tc := range cases {
		up, down := voteDelta(tc.old, tc.value)
		assert.Equal(t, tc.up, up, "old=%d value=%d", tc.old, tc.value)
		assert.Equal(t, tc.down, down, "old=%d value=%d", tc.old, tc.value)
	}
}

func TestForumVoteTransitions(t *testing.T) {
	ctx := context.Background()
	repo := NewForumRepository(newTestDB(t))

	thread := &model.ForumThread{Title: "Why does my capture drop packets?", AuthorID: "author", Status: model.ThreadOpen, LastActivityAt: time.Now()}
	require.NoError(t, repo.CreateThread(ctx, thread))

	up, down, err := repo.Vote(ctx, "u1", model.VoteThread, thread.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, up)
	assert.Equal(t, 0, down)

	// 重复投同一票不改变计数
	up, down, err = repo.Vote(ctx, "u1", model.VoteThread, thread.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, up)
	assert.Equal(t, 0, down)

	up, down, err = repo.Vote(ctx, "u2", model.VoteThread, thread.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, up)
	assert.Equal(t, 1, down)

	up, down, err = repo.Vote(ctx, "u1", model.VoteThread, thread.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, up)
	assert.Equal(t, 2, down)

	up, down, err = repo.Vote(ctx, "u2", model.VoteThread, thread.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, up)
	assert.Equal(t, 1, down)

	stored, err := repo.FindThread(ctx, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Upvotes)
	assert.Equal(t, 1, stored.Downvotes)
}

func TestListPostsFiltersHiddenBeforePaging(t *testing.T) {
	ctx := context.Background()
	repo := NewForumRepository(newTestDB(t))

	thread := &model.ForumThread{Title: "Subnetting a /22", AuthorID: "author", Status: model.ThreadOpen, LastActivityAt: time.Now()}
	require.NoError(t, repo.CreateThread(ctx, thread))

	base := time.Now().Add(-time.Hour)
	var posts []*model.ForumPost
	for i, content := range []string{"spam one", "spam two", "use 255.255.252.0"} {
		post := &model.ForumPost{ThreadID: thread.ID, AuthorID: "u1", Content: content}
		post.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.CreatePost(ctx, post))
		posts = append(posts, post)
	}
	for _, post := range posts[:2] {
		post.Moderation.Hidden = true
		require.NoError(t, repo.SavePost(ctx, post))
	}

	page := model.Pagination{Page: 1, Limit: 2}
	visible, total, err := repo.ListPosts(ctx, thread.ID, false, page)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, visible, 1)
	assert.Equal(t, "use 255.255.252.0", visible[0].Content)

	all, total, err := repo.ListPosts(ctx, thread.ID, true, page)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 2)

	// 取消隐藏后重新出现
	posts[0].Moderation.Hidden = false
	require.NoError(t, repo.SavePost(ctx, posts[0]))
	_, total, err = repo.ListPosts(ctx, thread.ID, false, page)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestLikeFiltersMatchWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	repo := NewForumRepository(newTestDB(t))

	for _, th := range []*model.ForumThread{
		{Title: "tcp_dump flags", AuthorID: "a", Tags: model.StringList{"tcp"}},
		{Title: "tcpxdump flags", AuthorID: "a", Tags: model.StringList{"100%_done"}},
	} {
		th.Status = model.ThreadOpen
		th.LastActivityAt = time.Now()
		require.NoError(t, repo.CreateThread(ctx, th))
	}

	_, total, err := repo.ListThreads(ctx, ThreadQuery{Tag: "%"}, model.DefaultPagination())
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)

	list, total, err := repo.ListThreads(ctx, ThreadQuery{Tag: "100%_done"}, model.DefaultPagination())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "tcpxdump flags", list[0].Title)

	list, total, err = repo.ListThreads(ctx, ThreadQuery{Search: "tcp_dump"}, model.DefaultPagination())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "tcp_dump flags", list[0].Title)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "50!%!_off!!", escapeLike("50%_off!"))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestEnrollmentCounts(t *testing.T) {
	ctx := context.Background()
	repo := NewEnrollmentRepository(newTestDB(t))

	seed := []model.Enrollment{
		{StudentID: "s1", PathID: "p1", Status: model.EnrollmentActive, PaymentStatus: model.PaymentWaived},
		{StudentID: "s2", PathID: "p1", Status: model.EnrollmentPending, PaymentStatus: model.PaymentPending},
		{StudentID: "s3", PathID: "p1", Status: model.EnrollmentDropped, PaymentStatus: model.PaymentRefunded},
		{StudentID: "s1", PathID: "p2", Status: model.EnrollmentCompleted, PaymentStatus: model.PaymentPaid},
	}
	for i := range seed {
		seed[i].EnrolledAt = time.Now()
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}

	open, err := repo.CountOpenByPath(ctx, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, open)

	active, err := repo.CountActiveByStudent(ctx, "s1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, active)

	e, err := repo.FindByStudentPath(ctx, "s3", "p1")
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentDropped, e.Status)

	list, total, err := repo.ListByPath(ctx, "p1", model.EnrollmentActive, model.DefaultPagination())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "s1", list[0].StudentID)

	dup := &model.Enrollment{StudentID: "s1", PathID: "p1", Status: model.EnrollmentPending, PaymentStatus: model.PaymentPending, EnrolledAt: time.Now()}
	assert.ErrorIs(t, repo.Create(ctx, dup), gorm.ErrDuplicatedKey)
}

func seedPath(t *testing.T, db *gorm.DB, slug string) *model.LearningPath {
	t.Helper()
	p := model.DefaultLearningPath()
	p.Title, p.Slug, p.Description = slug, slug, "seed"
	p.Difficulty = model.DifficultyBeginner
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func TestSaveCheckedRollsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewEnrollmentRepository(db)
	path := seedPath(t, db, "routing")
	full := errors.New("full")

	e := &model.Enrollment{StudentID: "s1", PathID: path.ID, Status: model.EnrollmentActive, PaymentStatus: model.PaymentWaived, EnrolledAt: time.Now()}
	err := repo.SaveChecked(ctx, e, func(tx *EnrollmentRepository) error { return full })
	assert.ErrorIs(t, err, full)

	_, err = repo.FindByStudentPath(ctx, "s1", path.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// 路径不存在时不会执行 check
	e = &model.Enrollment{StudentID: "s1", PathID: "missing", Status: model.EnrollmentActive, PaymentStatus: model.PaymentWaived, EnrolledAt: time.Now()}
	err = repo.SaveChecked(ctx, e, func(tx *EnrollmentRepository) error { t.Fatal("check ran"); return nil })
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSaveCheckedConcurrentCapacity(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewEnrollmentRepository(db)
	path := seedPath(t, db, "switching")
	const capacity = 2

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e := &model.Enrollment{StudentID: fmt.Sprintf("s%d", i), PathID: path.ID, Status: model.EnrollmentActive, PaymentStatus: model.PaymentWaived, EnrolledAt: time.Now()}
			errs[i] = repo.SaveChecked(ctx, e, func(tx *EnrollmentRepository) error {
				n, err := tx.CountOpenByPath(ctx, path.ID)
				if err != nil {
					return err
				}
				if n >= capacity {
					return util.ErrPathFull
				}
				return nil
			})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, util.ErrPathFull)
		}
	}
	assert.Equal(t, capacity, ok)
	n, err := repo.CountOpenByPath(ctx, path.ID)
	require.NoError(t, err)
	assert.EqualValues(t, capacity, n)
}

func TestCreateResultLimitsAttempts(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAssessmentRepository(db)
	a := &model.Assessment{Title: "Routing quiz", Type: model.AssessmentQuiz, PassingScore: 70, MaxAttempts: 2, Status: model.StatusPublished}
	require.NoError(t, repo.Create(ctx, a))

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res := &model.AssessmentResult{AssessmentID: a.ID, StudentID: "s1", Score: 1, MaxScore: 1, Percentage: 100, SubmittedAt: time.Now()}
			errs[i] = repo.CreateResult(ctx, res, a.MaxAttempts)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, util.ErrMaxAttemptsReached)
		}
	}
	assert.Equal(t, 2, ok)

	list, total, err := repo.ListResults(ctx, a.ID, "s1", model.Pagination{SortBy: "attemptNumber", SortOrder: model.SortAsc})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].AttemptNumber)
	assert.Equal(t, 2, list[1].AttemptNumber)

	// 同一次尝试不能写两遍
	dup := &model.AssessmentResult{AssessmentID: a.ID, StudentID: "s1", Score: 1, MaxScore: 1, AttemptNumber: 2, SubmittedAt: time.Now()}
	assert.ErrorIs(t, db.Create(dup).Error, gorm.ErrDuplicatedKey)
}

func TestPageRejectsUnknownSort(t *testing.T) {
	ctx := context.Background()
	repo := NewEnrollmentRepository(newTestDB(t))

	p := model.DefaultPagination()
	p.SortBy = "password"
	_, _, err := repo.ListByStudent(ctx, "s1", p)
	assert.ErrorIs(t, err, util.ErrInvalidSort)
}

func TestRepositoryDeleteMissing(t *testing.T) {
	repo := NewInstructorRepository(newTestDB(t))
	err := repo.Delete(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
