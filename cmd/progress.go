package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/artor/studysearch/pkg/config"
	"github.com/artor/studysearch/pkg/lms"
	"github.com/artor/studysearch/pkg/progress"
)

// ProgressCommand creates the progress command
func ProgressCommand() *cli.Command {
	return &cli.Command{
		Name:  "progress",
		Usage: "Show an agent's course and lesson progress",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "agent",
				Usage:    "Agent identifier (numeric ID, email or login)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "status",
				Usage: "Filter buckets (all, completed, ongoing)",
				Value: progress.StatusAll,
			},
			&cli.BoolFlag{
				Name:  "lessons",
				Usage: "Include lesson progress",
				Value: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			enableDebug(c.Bool("debug"))
			return showProgress(c.String("config"), c.String("agent"), c.String("status"), c.Bool("lessons"))
		},
	}
}

func showProgress(configPath, agent, status string, includeLessons bool) error {
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

	aggregator := progress.NewAggregator(store, cfg.CompletionThreshold)
	report, err := aggregator.Report(agent, status, includeLessons)
	if err != nil {
		return fmt.Errorf("aggregating progress: %w", err)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Agent %d (threshold %d%%)", report.AgentID, report.CourseThreshold)))

	fmt.Println(headerStyle.Render(fmt.Sprintf("Courses (%d completed, %d ongoing)",
		report.Summary.Courses.Completed, report.Summary.Courses.Ongoing)))
	renderCourseProgress("✓", report.Courses.Completed)
	renderCourseProgress("…", report.Courses.Ongoing)

	if includeLessons {
		fmt.Println(headerStyle.Render(fmt.Sprintf("Lessons (%d completed, %d ongoing)",
			report.Summary.Lessons.Completed, report.Summary.Lessons.Ongoing)))
		renderLessonProgress("✓", report.Lessons.Completed)
		renderLessonProgress("…", report.Lessons.Ongoing)
	}

	return nil
}

func renderCourseProgress(marker string, records []lms.CourseProgress) {
	for _, rec := range records {
		fmt.Printf("  %s course %d: %d%%\n", marker, rec.CourseID, rec.ProgressPercent)
	}
}

func renderLessonProgress(marker string, records []lms.LessonProgress) {
	for _, rec := range records {
		if rec.Progress != nil {
			fmt.Printf("  %s lesson %d (course %d): %d%%\n", marker, rec.LessonID, rec.CourseID, *rec.Progress)
		} else {
			fmt.Printf("  %s lesson %d (course %d)\n", marker, rec.LessonID, rec.CourseID)
		}
	}
}
