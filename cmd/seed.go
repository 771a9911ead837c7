package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/artor/studysearch/pkg/config"
	"github.com/artor/studysearch/pkg/lms"
	"github.com/artor/studysearch/pkg/storage"
)

// SeedCommand creates the seed command
func SeedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load demo content and progress fixtures into the database",
		Action: func(ctx context.Context, c *cli.Command) error {
			return seedDatabase(c.String("config"))
		},
	}
}

// seedDatabase fills an empty database with a small demo catalog. In a
// real deployment the host LMS owns this data; the fixtures make the API
// exercisable end to end.
func seedDatabase(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Printf("Warning: failed to close store: %v\n", err)
		}
	}()

	stats, err := store.GetStats()
	if err != nil {
		return fmt.Errorf("checking database: %w", err)
	}
	if stats.Courses > 0 || stats.Lessons > 0 {
		return fmt.Errorf("database already has content, refusing to seed")
	}

	if err := loadFixtures(store); err != nil {
		return fmt.Errorf("loading fixtures: %w", err)
	}

	stats, err = store.GetStats()
	if err != nil {
		return fmt.Errorf("getting stats: %w", err)
	}
	fmt.Printf("Seeded %d courses, %d lessons, %d categories and %d users\n",
		stats.Courses, stats.Lessons, stats.Categories, stats.Users)
	return nil
}

func loadFixtures(store *storage.Store) error {
	categories := []lms.Category{
		{TermID: 1, Slug: "programming", Name: "Programming"},
		{TermID: 2, Slug: "data-science", Name: "Data Science"},
		{TermID: 3, Slug: "design", Name: "Design"},
	}
	for _, cat := range categories {
		if err := store.InsertCategory(cat); err != nil {
			return err
		}
	}

	courses := []struct {
		row   lms.ContentRow
		cats  []int64
		stats *lms.CourseStats
	}{
		{
			row: lms.ContentRow{
				ID: 101, Type: lms.ContentCourse, Title: "Go from Scratch",
				Body:    "A hands-on introduction to the Go programming language, from syntax to building small services.",
				Excerpt: "Learn Go by building real programs.",
				Slug:    "go-from-scratch", Date: "2024-05-12 09:30:00", AuthorID: 1,
			},
			cats:  []int64{1},
			stats: &lms.CourseStats{Price: 49.99, Rating: 4.7, Students: 1832},
		},
		{
			row: lms.ContentRow{
				ID: 102, Type: lms.ContentCourse, Title: "Practical SQL",
				Body:    "Schema design, joins, window functions and query tuning for working developers.",
				Excerpt: "Everything you need to work with relational data.",
				Slug:    "practical-sql", Date: "2024-03-02 14:00:00", AuthorID: 2,
			},
			cats:  []int64{1, 2},
			stats: &lms.CourseStats{Price: 39.99, Rating: 4.5, Students: 2412},
		},
		{
			row: lms.ContentRow{
				ID: 103, Type: lms.ContentCourse, Title: "Data Visualization Basics",
				Body:    "Turning raw datasets into honest, readable charts.",
				Excerpt: "From spreadsheets to stories.",
				Slug:    "data-visualization-basics", Date: "2024-06-20 11:15:00", AuthorID: 2,
			},
			cats:  []int64{2, 3},
			stats: &lms.CourseStats{Price: 29.99, Rating: 4.2, Students: 956},
		},
	}
	for _, course := range courses {
		if err := store.InsertContent(course.row, lms.StatusPublish); err != nil {
			return err
		}
		for _, cat := range course.cats {
			if err := store.AssignCategory(course.row.ID, cat); err != nil {
				return err
			}
		}
		if course.stats != nil {
			if err := store.SetCourseStats(course.row.ID, *course.stats); err != nil {
				return err
			}
		}
	}

	lessons := []struct {
		row      lms.ContentRow
		courseID int64
	}{
		{lms.ContentRow{ID: 201, Type: lms.ContentLesson, Title: "Variables and Types",
			Body: "Declaring variables, zero values and basic types.",
			Slug: "variables-and-types", Date: "2024-05-13 09:00:00", AuthorID: 1}, 101},
		{lms.ContentRow{ID: 202, Type: lms.ContentLesson, Title: "Goroutines and Channels",
			Body: "Concurrency primitives and how to combine them safely.",
			Slug: "goroutines-and-channels", Date: "2024-05-14 09:00:00", AuthorID: 1}, 101},
		{lms.ContentRow{ID: 203, Type: lms.ContentLesson, Title: "Joins Explained",
			Body: "Inner, outer and cross joins with worked examples.",
			Slug: "joins-explained", Date: "2024-03-03 10:00:00", AuthorID: 2}, 102},
		{lms.ContentRow{ID: 204, Type: lms.ContentLesson, Title: "Window Functions",
			Body: "Ranking, running totals and frames.",
			Slug: "window-functions", Date: "2024-03-04 10:00:00", AuthorID: 2}, 102},
		{lms.ContentRow{ID: 205, Type: lms.ContentLesson, Title: "Choosing the Right Chart",
			Body: "Matching chart types to questions.",
			Slug: "choosing-the-right-chart", Date: "2024-06-21 10:00:00", AuthorID: 2}, 103},
	}
	for i, lesson := range lessons {
		if err := store.InsertContent(lesson.row, lms.StatusPublish); err != nil {
			return err
		}
		sectionID := int64(1000 + i)
		if err := store.InsertSection(sectionID, lesson.courseID); err != nil {
			return err
		}
		if err := store.InsertMaterial(lesson.row.ID, sectionID); err != nil {
			return err
		}
	}

	users := []lms.User{
		{ID: 1, Email: "maria@example.com", Login: "maria"},
		{ID: 2, Email: "tom@example.com", Login: "tom"},
	}
	for _, user := range users {
		if err := store.InsertUser(user); err != nil {
			return err
		}
	}

	fullProgress := 100
	halfProgress := 45
	progressRows := []lms.CourseProgress{
		{UserID: 1, CourseID: 101, ProgressPercent: 100, CurrentLessonID: 202, StartTime: 1715500000, EndTime: 1716100000},
		{UserID: 1, CourseID: 102, ProgressPercent: 55, CurrentLessonID: 203, StartTime: 1716200000},
		{UserID: 2, CourseID: 103, ProgressPercent: 80, CurrentLessonID: 205, StartTime: 1718900000},
	}
	for _, rec := range progressRows {
		if err := store.UpsertCourseProgress(rec); err != nil {
			return err
		}
	}
	lessonRows := []lms.LessonProgress{
		{UserID: 1, LessonID: 201, CourseID: 101, Progress: &fullProgress, StartTime: 1715500000, EndTime: 1715510000},
		{UserID: 1, LessonID: 202, CourseID: 101, StartTime: 1715600000, EndTime: 1715610000},
		{UserID: 1, LessonID: 203, CourseID: 102, Progress: &halfProgress, StartTime: 1716200000},
		{UserID: 2, LessonID: 205, CourseID: 103, Progress: &halfProgress, StartTime: 1718900000},
	}
	for _, rec := range lessonRows {
		if err := store.UpsertLessonProgress(rec); err != nil {
			return err
		}
	}

	return nil
}
