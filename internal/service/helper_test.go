package service

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/config"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/model"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/repository"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Section{},
		&model.Lesson{},
		&model.Exercise{},
		&model.Quiz{},
		&model.ClassAssignment{},
	))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

type testEnv struct {
	DB       *gorm.DB
	Courses  *CourseService
	Sections *SectionService
	Lessons  *LessonService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	courseRepo := repository.NewCourseRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	classAssignmentRepo := repository.NewClassAssignmentRepository(db)
	userRepo := repository.NewUserRepository(db)

	cfg := &config.Config{}
	cfg.Content.LockTimeoutMinutes = 30

	storage, err := NewStorageService(config.StorageConfig{Type: "local", LocalPath: t.TempDir()})
	require.NoError(t, err)

	return &testEnv{
		DB:       db,
		Courses:  NewCourseService(courseRepo, sectionRepo, lessonRepo, classAssignmentRepo, userRepo, db),
		Sections: NewSectionService(sectionRepo, lessonRepo, courseRepo, db),
		Lessons:  NewLessonService(lessonRepo, sectionRepo, exerciseRepo, quizRepo, storage, cfg, db),
	}
}

// setClock pins the lesson service's notion of now.
func (env *testEnv) setClock(at time.Time) {
	env.Lessons.now = func() time.Time { return at }
}

func (env *testEnv) seedCourse(t *testing.T, creatorID string) *model.Course {
	t.Helper()
	course, err := env.Courses.CreateCourse(creatorID, CourseCreateRequest{
		Title:    "Intro to JavaScript",
		Language: model.LanguageJavaScript,
	})
	require.NoError(t, err)
	return course
}

func (env *testEnv) seedSection(t *testing.T, courseID string) *model.Section {
	t.Helper()
	section, err := env.Sections.CreateSection(courseID, SectionCreateRequest{Title: "Basics"})
	require.NoError(t, err)
	return section
}

func (env *testEnv) seedLesson(t *testing.T, sectionID string) *model.Lesson {
	t.Helper()
	lesson, err := env.Lessons.CreateLesson(sectionID, LessonCreateRequest{Title: "Variables"})
	require.NoError(t, err)
	return lesson
}
