package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"eduvantage/internal/bootstrap"
	"eduvantage/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var rootPath string

	root := &cobra.Command{
		Use:           "eduvantage",
		Short:         "EduVantage student learning companion",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&rootPath, "root", ".", "data root path")

	root.AddCommand(newTUICmd(&rootPath))
	root.AddCommand(newAccountCmd(&rootPath))
	root.AddCommand(newCatalogCmd(&rootPath))
	root.AddCommand(newCourseCmd(&rootPath))
	root.AddCommand(newLessonCmd(&rootPath))
	root.AddCommand(newPrefsCmd(&rootPath))
	root.AddCommand(newQuizCmd(&rootPath))
	root.AddCommand(newStatsCmd(&rootPath))
	root.AddCommand(newExportCmd(&rootPath))
	root.AddCommand(newClearCmd(&rootPath))
	root.AddCommand(newReindexCmd(&rootPath))
	return root
}

func loadApp(rootPath string) (*bootstrap.App, error) {
	cfg, err := config.New(rootPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(rootPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the EduVantage terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(*rootPath, app)
		},
	}
}

func newAccountCmd(rootPath *string) *cobra.Command {
	account := &cobra.Command{Use: "account", Short: "Local account commands"}

	var firstName, lastName, dob, email, password, confirm string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create the local account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			parsedDOB, err := time.Parse("2006-01-02", dob)
			if err != nil {
				return fmt.Errorf("parse --dob: %w", err)
			}
			if confirm == "" {
				confirm = password
			}
			out, err := app.AccountCLI.Register(context.Background(), firstName, lastName, parsedDOB, email, password, confirm)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created account for %s <%s>, verification pending\n", out.FullName, out.Email)
			return nil
		},
	}
	createCmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	createCmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	createCmd.Flags().StringVar(&dob, "dob", "", "date of birth (YYYY-MM-DD)")
	createCmd.Flags().StringVar(&email, "email", "", "email address")
	createCmd.Flags().StringVar(&password, "password", "", "password")
	createCmd.Flags().StringVar(&confirm, "confirm-password", "", "password confirmation (defaults to --password)")

	var signInEmail, signInPassword string
	signInCmd := &cobra.Command{
		Use:   "sign-in",
		Short: "Sign in with the stored credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			out, err := app.AccountCLI.SignIn(context.Background(), signInEmail, signInPassword)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s <%s>\n", out.FullName, out.Email)
			return nil
		},
	}
	signInCmd.Flags().StringVar(&signInEmail, "email", "", "email address")
	signInCmd.Flags().StringVar(&signInPassword, "password", "", "password")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			out, err := app.AccountCLI.Show(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s <%s> dob=%s\n", out.FirstName, out.LastName, out.Email, out.DOB.Format("2006-01-02"))
			return nil
		},
	}

	signOutCmd := &cobra.Command{
		Use:   "sign-out",
		Short: "End the session, keeping the account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			if err := app.AccountCLI.SignOut(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the account, credential, and all progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			if err := app.AccountCLI.ForgetAccount(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "account deleted")
			return nil
		},
	}

	account.AddCommand(createCmd, signInCmd, showCmd, signOutCmd, deleteCmd)
	return account
}

func newCatalogCmd(rootPath *string) *cobra.Command {
	catalog := &cobra.Command{Use: "catalog", Short: "Course catalog commands"}

	catalog.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List catalog courses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			courses, err := app.CatalogCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(courses) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no courses; run 'eduvantage catalog seed'")
				return nil
			}
			for _, c := range courses {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s [%s] %s %s %d lessons\n", c.ID, c.Title, c.Category, c.Duration, c.Difficulty, c.LessonCount)
			}
			return nil
		},
	})

	catalog.AddCommand(&cobra.Command{
		Use:   "show <course-id>",
		Short: "Show one course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			course, err := app.CatalogCLI.Show(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] %s %s, %s students\n", course.Title, course.Category, course.Duration, course.Difficulty, course.Students)
			if course.Description != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), course.Description)
			}
			for _, l := range course.Lessons {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s (%.0fs)\n", l.ID, l.Title, l.Duration)
			}
			if len(course.Questions) > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  quiz: %d questions\n", len(course.Questions))
			}
			return nil
		},
	})

	catalog.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search courses by title or category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			courses, err := app.CatalogCLI.Search(context.Background(), args[0])
			if err != nil {
				return err
			}
			if len(courses) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no matches")
				return nil
			}
			for _, c := range courses {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s [%s]\n", c.ID, c.Title, c.Category)
			}
			return nil
		},
	})

	catalog.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Write the built-in courses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			out, err := app.CatalogCLI.Seed(context.Background())
			if err != nil {
				return err
			}
			if len(out.Created) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "catalog already seeded")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded %s\n", strings.Join(out.Created, ", "))
			return nil
		},
	})

	return catalog
}

func newCourseCmd(rootPath *string) *cobra.Command {
	course := &cobra.Command{Use: "course", Short: "Course progress commands"}

	course.AddCommand(&cobra.Command{
		Use:   "enroll <course-id>",
		Short: "Enroll in a catalog course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			ctx := context.Background()
			detail, err := app.CatalogCLI.Show(ctx, args[0])
			if err != nil {
				return err
			}
			out, err := app.RecordsCLI.Enroll(ctx, detail.ID, detail.Title, detail.Category, detail.LessonCount)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "enrolled in %s (%d lessons)\n", out.CourseName, out.TotalLessons)
			return nil
		},
	})

	course.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List enrolled courses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			courses, err := app.RecordsCLI.ListCourses(context.Background())
			if err != nil {
				return err
			}
			if len(courses) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no enrollments")
				return nil
			}
			for _, c := range courses {
				marker := " "
				if c.IsFavorite {
					marker = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s %.1f%% (%d/%d lessons)\n", marker, c.CourseID, c.CourseName, c.CompletionPercentage, c.LessonsCompleted, c.TotalLessons)
			}
			return nil
		},
	})

	var percent float64
	var lessonsDone int
	progressCmd := &cobra.Command{
		Use:   "progress <course-id>",
		Short: "Update course completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			out, err := app.RecordsCLI.UpdateCourse(context.Background(), args[0], percent, lessonsDone)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s now at %.1f%%\n", out.CourseName, out.CompletionPercentage)
			return nil
		},
	}
	progressCmd.Flags().Float64Var(&percent, "percent", 0, "completion percentage (0-100)")
	progressCmd.Flags().IntVar(&lessonsDone, "lessons", 0, "lessons completed")
	course.AddCommand(progressCmd)

	course.AddCommand(&cobra.Command{
		Use:   "favorite <course-id>",
		Short: "Toggle the favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			out, err := app.RecordsCLI.ToggleFavorite(context.Background(), args[0])
			if err != nil {
				return err
			}
			state := "unfavorited"
			if out.IsFavorite {
				state = "favorited"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, out.CourseName)
			return nil
		},
	})

	course.AddCommand(&cobra.Command{
		Use:   "drop <course-id>",
		Short: "Remove a course and its progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			if err := app.RecordsCLI.DropCourse(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dropped %s\n", args[0])
			return nil
		},
	})

	return course
}

func newLessonCmd(rootPath *string) *cobra.Command {
	lesson := &cobra.Command{Use: "lesson", Short: "Lesson progress commands"}

	var watched, total float64
	var completed bool
	watchCmd := &cobra.Command{
		Use:   "watch <lesson-id>",
		Short: "Record watch time for a lesson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			out, err := app.RecordsCLI.WatchLesson(context.Background(), args[0], watched, total, completed)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "lesson %s: %.0f/%.0fs watched, completed=%t\n", out.LessonID, out.WatchedDuration, out.TotalDuration, out.IsCompleted)
			return nil
		},
	}
	watchCmd.Flags().Float64Var(&watched, "watched", 0, "watched duration in seconds")
	watchCmd.Flags().Float64Var(&total, "total", 0, "total duration in seconds")
	watchCmd.Flags().BoolVar(&completed, "completed", false, "mark the lesson completed")
	lesson.AddCommand(watchCmd)

	lesson.AddCommand(&cobra.Command{
		Use:   "complete <lesson-id>",
		Short: "Mark a lesson completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			out, err := app.RecordsCLI.CompleteLesson(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completed %s\n", out.LessonID)
			return nil
		},
	})

	var notes string
	notesCmd := &cobra.Command{
		Use:   "notes <lesson-id>",
		Short: "Save notes for a lesson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			if err := app.RecordsCLI.SaveLessonNotes(context.Background(), args[0], notes); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "notes saved for %s\n", args[0])
			return nil
		},
	}
	notesCmd.Flags().StringVar(&notes, "text", "", "note text")
	lesson.AddCommand(notesCmd)

	lesson.AddCommand(&cobra.Command{
		Use:   "rate <lesson-id> <rating>",
		Short: "Rate a lesson from 1 to 5",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			rating, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse rating: %w", err)
			}
			if err := app.RecordsCLI.RateLesson(context.Background(), args[0], rating); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rated %s %d/5\n", args[0], rating)
			return nil
		},
	})

	lesson.AddCommand(&cobra.Command{
		Use:   "show <lesson-id>",
		Short: "Show lesson progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			out, err := app.RecordsCLI.GetLesson(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %.0f/%.0fs completed=%t rating=%d\n", out.LessonID, out.WatchedDuration, out.TotalDuration, out.IsCompleted, out.Rating)
			if out.Notes != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Notes)
			}
			return nil
		},
	})

	return lesson
}

func newPrefsCmd(rootPath *string) *cobra.Command {
	prefs := &cobra.Command{Use: "prefs", Short: "Preference commands"}

	prefs.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			out, err := app.RecordsCLI.GetPreferences(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "notifications=%t darkMode=%t language=%s autoPlay=%t quality=%s privacy=%s theme=%s\n",
				out.NotificationsEnabled, out.DarkModeEnabled, out.Language, out.AutoPlayEnabled, out.PlaybackQuality, out.PrivacyLevel, out.Theme)
			return nil
		},
	})

	prefs.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			if _, err := app.RecordsCLI.SetPreference(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	})

	return prefs
}

func newQuizCmd(rootPath *string) *cobra.Command {
	quiz := &cobra.Command{Use: "quiz", Short: "Quiz commands"}

	quiz.AddCommand(&cobra.Command{
		Use:   "start <course-id>",
		Short: "Start a quiz for a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			out, err := app.QuizCLI.Start(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "quiz for %s (%d questions)\n", out.CourseTitle, out.Question.Total)
			printQuestion(cmd, out.Question.Index, out.Question.Total, out.Question.Text, out.Question.Options)
			return nil
		},
	})

	quiz.AddCommand(&cobra.Command{
		Use:   "answer <option-index>",
		Short: "Answer the current question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			option, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse option index: %w", err)
			}
			out, err := app.QuizCLI.Answer(context.Background(), option)
			if err != nil {
				return err
			}
			verdict := "incorrect"
			if out.Correct {
				verdict = "correct"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s. %s\n", verdict, out.Explanation)
			if out.Finished {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "quiz finished, score %d\n", out.Score)
				return nil
			}
			printQuestion(cmd, out.Next.Index, out.Next.Total, out.Next.Text, out.Next.Options)
			return nil
		},
	})

	quiz.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the active quiz",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			out, err := app.QuizCLI.Status(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d answered, score %d\n", out.CourseTitle, out.Answered, out.Total, out.Score)
			if out.Question != nil {
				printQuestion(cmd, out.Question.Index, out.Question.Total, out.Question.Text, out.Question.Options)
			}
			return nil
		},
	})

	quiz.AddCommand(&cobra.Command{
		Use:   "abort",
		Short: "Abandon the active quiz",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			if err := app.QuizCLI.Abort(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "quiz abandoned")
			return nil
		},
	})

	return quiz
}

func printQuestion(cmd *cobra.Command, index, total int, text string, options []string) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "question %d/%d: %s\n", index+1, total, text)
	for i, option := range options {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  [%d] %s\n", i, option)
	}
}

func newStatsCmd(rootPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show learning statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			out, err := app.RecordsCLI.Statistics(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "courses enrolled: %d\ncourses completed: %d\nlessons completed: %d\naverage progress: %.1f%%\n",
				out.CoursesEnrolled, out.CoursesCompleted, out.LessonsCompleted, out.AverageProgress)
			return nil
		},
	}
}

func newExportCmd(rootPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print all records as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			out, err := app.RecordsCLI.Export(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newClearCmd(rootPath *string) *cobra.Command {
	var yes bool
	clear := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			if err := app.RecordsCLI.ClearAll(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "all records cleared")
			return nil
		},
	}
	clear.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return clear
}

func newReindexCmd(rootPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite read models from the stored blobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			ctx := context.Background()
			if err := app.RecordsCLI.Reindex(ctx); err != nil {
				return err
			}
			if err := app.CatalogCLI.Reindex(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex complete")
			return nil
		},
	}
}
