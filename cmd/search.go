package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/artor/studysearch/pkg/config"
	"github.com/artor/studysearch/pkg/lms"
	"github.com/artor/studysearch/pkg/search"
)

// Define styles using lipgloss
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Margin(1, 0, 0, 0)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search courses and lessons from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Search term",
			},
			&cli.StringFlag{
				Name:  "category",
				Usage: "Category filter (IDs, slugs or names, comma-separated)",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Course ordering (date_high, date_low, price_high, price_low, rating, popular)",
			},
			&cli.IntFlag{
				Name:  "per-page",
				Usage: "Results per page",
				Value: search.DefaultPerPage,
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Page number",
				Value: 1,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			enableDebug(c.Bool("debug"))
			params := search.Params{
				Term:     c.String("query"),
				Category: c.String("category"),
				Sort:     c.String("sort"),
				PerPage:  int(c.Int("per-page")),
				Page:     int(c.Int("page")),
			}
			return runSearch(c.String("config"), params.Normalize())
		},
	}
}

func runSearch(configPath string, params search.Params) error {
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

	service := buildSearchService(store, cfg)

	if params.Category != "" {
		list, err := service.CoursesByCategory(params)
		if err != nil {
			return fmt.Errorf("searching courses: %w", err)
		}
		renderCourseList(list, params)
		return nil
	}

	results, err := service.CombinedSearch(params)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}
	renderCombinedResults(results, params)
	return nil
}

func renderCourseList(list *search.CourseList, params search.Params) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Courses in %q", params.Category)))

	if len(list.Courses) == 0 {
		fmt.Println(noDataStyle.Render("No results found"))
		return
	}

	for _, course := range list.Courses {
		renderItem(course.Item)
		for _, lesson := range course.Lessons {
			fmt.Printf("    ↳ %s\n", lesson.Title)
			fmt.Printf("      %s\n", urlStyle.Render(lesson.Link))
		}
	}

	fmt.Println(metaStyle.Render(fmt.Sprintf("page %d of %d, %d courses total", params.Page, list.Pages, list.Total)))
}

func renderCombinedResults(results *search.CombinedResults, params search.Params) {
	if results.Total == 0 {
		fmt.Println(noDataStyle.Render("No results found"))
		return
	}

	caser := cases.Title(language.English)
	sections := []struct {
		kind  lms.ContentType
		items []lms.Item
	}{
		{lms.ContentCourse, results.Courses},
		{lms.ContentLesson, results.Lessons},
	}

	for _, section := range sections {
		if len(section.items) == 0 {
			continue
		}
		fmt.Println(headerStyle.Render(fmt.Sprintf("%ss (%d)", caser.String(string(section.kind)), len(section.items))))
		for _, item := range section.items {
			renderItem(item)
		}
	}

	fmt.Println(metaStyle.Render(fmt.Sprintf("page %d of %d, %d results total", params.Page, results.Pages, results.Total)))
}

func renderItem(item lms.Item) {
	fmt.Printf("  %s\n", item.Title)

	var meta []string
	if item.Date != "" {
		meta = append(meta, item.Date)
	}
	if item.Price != nil {
		meta = append(meta, fmt.Sprintf("%.2f", *item.Price))
	}
	if item.Rating != nil {
		meta = append(meta, fmt.Sprintf("★ %.1f", *item.Rating))
	}
	if item.Students != nil {
		meta = append(meta, fmt.Sprintf("%s students", formatNumber(int(*item.Students))))
	}
	if len(meta) > 0 {
		fmt.Printf("    %s\n", metaStyle.Render(strings.Join(meta, " · ")))
	}
	if item.Excerpt != "" {
		fmt.Printf("    %s\n", item.Excerpt)
	}
	fmt.Printf("    %s\n", urlStyle.Render(item.Link))
}
