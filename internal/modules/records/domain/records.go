package domain

import "time"

const SchemaVersion = 1

// UserProfile is the single local account's display profile. Exactly one
// profile exists at a time; saves replace it wholesale.
type UserProfile struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	University       string     `json:"university"`
	ProfileImageURL  *string    `json:"profileImageURL,omitempty"`
	CreatedDate      time.Time  `json:"createdDate"`
	CoursesEnrolled  []string   `json:"coursesEnrolled"`
	CoursesCompleted int        `json:"coursesCompleted"`
	StreakDays       int        `json:"streakDays"`
	LastActiveDate   *time.Time `json:"lastActiveDate,omitempty"`
}

// CourseProgress tracks one enrollment. Lookups treat the first record
// per CourseID as canonical; ID is only the upsert key.
type CourseProgress struct {
	ID                      string     `json:"id"`
	CourseID                string     `json:"courseId"`
	CourseName              string     `json:"courseName"`
	Category                string     `json:"category"`
	EnrollmentDate          time.Time  `json:"enrollmentDate"`
	CompletionPercentage    float64    `json:"completionPercentage"`
	LessonsCompleted        int        `json:"lessonsCompleted"`
	TotalLessons            int        `json:"totalLessons"`
	LastAccessedDate        *time.Time `json:"lastAccessedDate,omitempty"`
	IsFavorite              bool       `json:"isFavorite"`
	EstimatedCompletionDate *time.Time `json:"estimatedCompletionDate,omitempty"`
}

// LessonProgress tracks watch state for one lesson. LessonID is the
// logical lookup key; ID is the upsert key. The two can disagree, see
// the service's UpdateLessonProgress.
type LessonProgress struct {
	ID                  string     `json:"id"`
	LessonID            string     `json:"lessonId"`
	CourseID            string     `json:"courseId"`
	LessonName          string     `json:"lessonName"`
	IsCompleted         bool       `json:"isCompleted"`
	WatchedDuration     float64    `json:"watchedDuration"`
	TotalDuration       float64    `json:"totalDuration"`
	CompletionDate      *time.Time `json:"completionDate,omitempty"`
	LastWatchedPosition float64    `json:"lastWatchedPosition"`
	Notes               string     `json:"notes"`
	Rating              int        `json:"rating"`
}

// UserPreferences is a flat settings record, replaced wholesale on change.
type UserPreferences struct {
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	DarkModeEnabled      bool   `json:"darkModeEnabled"`
	Language             string `json:"language"`
	AutoPlayEnabled      bool   `json:"autoPlayEnabled"`
	PlaybackQuality      string `json:"playbackQuality"`
	PrivacyLevel         string `json:"privacyLevel"`
	EmailNotifications   bool   `json:"emailNotifications"`
	PushNotifications    bool   `json:"pushNotifications"`
	Theme                string `json:"theme"`
}

func DefaultPreferences() UserPreferences {
	return UserPreferences{
		NotificationsEnabled: true,
		DarkModeEnabled:      false,
		Language:             "English",
		AutoPlayEnabled:      true,
		PlaybackQuality:      "High",
		PrivacyLevel:         "Public",
		EmailNotifications:   true,
		PushNotifications:    true,
		Theme:                "Light",
	}
}

// AppData is the aggregate root: the unit of bulk serialization. Every
// mutation of a child collection re-persists the whole aggregate.
type AppData struct {
	User           *UserProfile     `json:"user,omitempty"`
	CourseProgress []CourseProgress `json:"courseProgress"`
	LessonProgress []LessonProgress `json:"lessonProgress"`
	Preferences    UserPreferences  `json:"preferences"`
	LastSyncDate   *time.Time       `json:"lastSyncDate,omitempty"`
}

func NewAppData() AppData {
	return AppData{
		CourseProgress: []CourseProgress{},
		LessonProgress: []LessonProgress{},
		Preferences:    DefaultPreferences(),
	}
}

// Statistics are derived aggregates over the progress collections.
type Statistics struct {
	CoursesEnrolled  int
	CoursesCompleted int
	LessonsCompleted int
	AverageProgress  float64
}
