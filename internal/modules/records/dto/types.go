package dto

import "time"

type SaveProfileInput struct {
	Name            string
	Email           string
	University      string
	ProfileImageURL string
}

type ProfileOutput struct {
	ID               string
	Name             string
	Email            string
	University       string
	ProfileImageURL  string
	CreatedDate      time.Time
	CoursesEnrolled  []string
	CoursesCompleted int
	StreakDays       int
	LastActiveDate   *time.Time
}

type EnrollInput struct {
	CourseID     string
	CourseName   string
	Category     string
	TotalLessons int
}

type UpdateCourseInput struct {
	CourseID             string
	CompletionPercentage float64
	LessonsCompleted     int
}

type CourseProgressOutput struct {
	ID                   string
	CourseID             string
	CourseName           string
	Category             string
	EnrollmentDate       time.Time
	CompletionPercentage float64
	LessonsCompleted     int
	TotalLessons         int
	LastAccessedDate     *time.Time
	IsFavorite           bool
}

type WatchLessonInput struct {
	LessonID        string
	WatchedDuration float64
	TotalDuration   float64
	Completed       bool
}

type LessonProgressOutput struct {
	ID                  string
	LessonID            string
	CourseID            string
	LessonName          string
	IsCompleted         bool
	WatchedDuration     float64
	TotalDuration       float64
	CompletionDate      *time.Time
	LastWatchedPosition float64
	Notes               string
	Rating              int
}

type PreferencesOutput struct {
	NotificationsEnabled bool
	DarkModeEnabled      bool
	Language             string
	AutoPlayEnabled      bool
	PlaybackQuality      string
	PrivacyLevel         string
	EmailNotifications   bool
	PushNotifications    bool
	Theme                string
}

type SetPreferenceInput struct {
	Key   string
	Value string
}

type StatisticsOutput struct {
	CoursesEnrolled  int
	CoursesCompleted int
	LessonsCompleted int
	AverageProgress  float64
}
