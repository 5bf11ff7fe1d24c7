package learning

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourse(t *testing.T) {
	tenantID := uuid.New()
	specID := uuid.New()
	actor := uuid.New()

	t.Run("creates draft course", func(t *testing.T) {
		course, err := NewCourse(tenantID, specID, "Intro to Go", "go-101", decimal.NewFromInt(199), actor, "10.0.0.1")
		require.NoError(t, err)
		require.NotNil(t, course)

		assert.Equal(t, tenantID, course.TenantID)
		assert.Equal(t, specID, course.SpecializationID)
		assert.Equal(t, "Intro to Go", course.Name)
		assert.Equal(t, "GO-101", course.Code)
		assert.Equal(t, CourseStatusDraft, course.Status)
		assert.True(t, course.Price.Equal(decimal.NewFromInt(199)))
	})

	t.Run("requires specialization", func(t *testing.T) {
		_, err := NewCourse(tenantID, uuid.Nil, "Intro to Go", "GO-101", decimal.Zero, actor, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "specialization")
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCourse(tenantID, specID, "  ", "GO-101", decimal.Zero, actor, "")
		require.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewCourse(tenantID, specID, "Intro to Go", "GO-101", decimal.NewFromInt(-1), actor, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "negative")
	})
}

func TestCourseUpdate(t *testing.T) {
	course, err := NewCourse(uuid.New(), uuid.New(), "Intro to Go", "GO-101", decimal.NewFromInt(100), uuid.New(), "")
	require.NoError(t, err)

	t.Run("empty fields keep existing values", func(t *testing.T) {
		require.NoError(t, course.Update("", "", nil))
		assert.Equal(t, "Intro to Go", course.Name)
		assert.True(t, course.Price.Equal(decimal.NewFromInt(100)))
	})

	t.Run("applies provided fields", func(t *testing.T) {
		price := decimal.NewFromInt(250)
		require.NoError(t, course.Update("Advanced Go", "Channels and beyond", &price))
		assert.Equal(t, "Advanced Go", course.Name)
		assert.Equal(t, "Channels and beyond", course.Description)
		assert.True(t, course.Price.Equal(price))
	})

	t.Run("rejects negative price", func(t *testing.T) {
		price := decimal.NewFromInt(-5)
		require.Error(t, course.Update("", "", &price))
		assert.True(t, course.Price.Equal(decimal.NewFromInt(250)))
	})

	t.Run("rejects oversized description", func(t *testing.T) {
		require.Error(t, course.Update("", strings.Repeat("d", 5001), nil))
	})
}

func TestCourseStatusTransitions(t *testing.T) {
	newCourse := func(t *testing.T) *Course {
		course, err := NewCourse(uuid.New(), uuid.New(), "Intro to Go", "GO-101", decimal.Zero, uuid.New(), "")
		require.NoError(t, err)
		return course
	}

	t.Run("draft publishes", func(t *testing.T) {
		course := newCourse(t)
		require.NoError(t, course.Publish())
		assert.Equal(t, CourseStatusPublished, course.Status)
	})

	t.Run("publish is idempotent", func(t *testing.T) {
		course := newCourse(t)
		require.NoError(t, course.Publish())
		require.NoError(t, course.Publish())
		assert.Equal(t, CourseStatusPublished, course.Status)
	})

	t.Run("archived cannot be republished", func(t *testing.T) {
		course := newCourse(t)
		course.Archive()
		assert.Equal(t, CourseStatusArchived, course.Status)

		err := course.Publish()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Archived")
		assert.Equal(t, CourseStatusArchived, course.Status)
	})

	t.Run("published course archives", func(t *testing.T) {
		course := newCourse(t)
		require.NoError(t, course.Publish())
		course.Archive()
		assert.Equal(t, CourseStatusArchived, course.Status)
	})
}

func TestContentHierarchy(t *testing.T) {
	tenantID := uuid.New()
	actor := uuid.New()

	t.Run("module requires a name", func(t *testing.T) {
		_, err := NewCourseModule(tenantID, uuid.New(), "  ", 0, actor, "")
		require.Error(t, err)
	})

	t.Run("topic requires a name", func(t *testing.T) {
		_, err := NewTopic(tenantID, uuid.New(), "", 0, actor, "")
		require.Error(t, err)
	})

	t.Run("video validates url and duration", func(t *testing.T) {
		_, err := NewVideo(tenantID, uuid.New(), "Lesson 1", "", time.Minute, 0, actor, "")
		require.Error(t, err)

		_, err = NewVideo(tenantID, uuid.New(), "Lesson 1", "https://cdn.example.com/v1.mp4", -time.Second, 0, actor, "")
		require.Error(t, err)

		video, err := NewVideo(tenantID, uuid.New(), "Lesson 1", "https://cdn.example.com/v1.mp4", 12*time.Minute, 3, actor, "")
		require.NoError(t, err)
		assert.Equal(t, 12*time.Minute, video.Duration)
		assert.Equal(t, 3, video.SortOrder)
	})

	t.Run("sort order is preserved", func(t *testing.T) {
		module, err := NewCourseModule(tenantID, uuid.New(), "Basics", 2, actor, "")
		require.NoError(t, err)
		assert.Equal(t, 2, module.SortOrder)
	})
}

func TestNewTeacherCourse(t *testing.T) {
	tenantID := uuid.New()
	teacherID := uuid.New()
	courseID := uuid.New()
	actor := uuid.New()

	tc := NewTeacherCourse(tenantID, teacherID, courseID, actor)
	assert.Equal(t, teacherID, tc.TeacherID)
	assert.Equal(t, courseID, tc.CourseID)
	assert.Equal(t, tenantID, tc.TenantID)
	require.NotNil(t, tc.CreatedBy)
	assert.Equal(t, actor, *tc.CreatedBy)
	assert.False(t, tc.CreatedAt.IsZero())
}
