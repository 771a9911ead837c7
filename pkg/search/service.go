package search

import (
	"fmt"
	"strings"

	"github.com/artor/studysearch/pkg/lms"
	"github.com/artor/studysearch/pkg/log"
	"github.com/artor/studysearch/pkg/storage"
)

// CourseResult is a course item with the lessons discovered under it. The
// Lessons field is omitted entirely on term-less listings and present,
// possibly empty, whenever a search term was in play.
type CourseResult struct {
	lms.Item
	Lessons []lms.Item `json:"lessons,omitzero"`
}

// CourseList is the courses endpoint payload.
type CourseList struct {
	Courses []CourseResult `json:"courses"`
	Total   int            `json:"total"`
	Pages   int            `json:"pages"`
}

// CombinedResults is the combined search payload: courses and lessons in
// separate flat lists, paginated as one concatenated sequence with the
// courses first.
type CombinedResults struct {
	Courses []lms.Item `json:"courses"`
	Lessons []lms.Item `json:"lessons"`
	Total   int        `json:"total"`
	Pages   int        `json:"pages"`
}

// CourseLister is the optional host capability backing the courses
// endpoint when no category filter is given. Without one, unfiltered
// listings report a missing dependency.
type CourseLister interface {
	ListCourses(params Params) (*CourseList, error)
}

// Options carries the optional host capabilities wired into a Service.
type Options struct {
	Curriculum CurriculumResolver
	Enricher   CourseEnricher
	Lister     CourseLister

	BaseURL         string
	CoursesPageSlug string
}

// Service answers the courses and combined-search queries against a
// content store. It holds no per-request state.
type Service struct {
	store  *storage.Store
	linker *Linker
	format *Formatter
	lister CourseLister
	logger *log.Logger
}

func NewService(store *storage.Store, opts Options) *Service {
	linker := NewLinker(store, opts.Curriculum)
	return &Service{
		store:  store,
		linker: linker,
		format: NewFormatter(store, linker, opts.Enricher, opts.BaseURL, opts.CoursesPageSlug),
		lister: opts.Lister,
		logger: log.ForService("search"),
	}
}

// Formatter exposes the service's item formatter for callers that render
// single rows, like the CLI.
func (s *Service) Formatter() *Formatter { return s.format }

// SetLister installs the course listing capability. The built-in
// StoreLister needs the service's formatter, so it is wired after
// construction.
func (s *Service) SetLister(l CourseLister) { s.lister = l }

// CoursesByCategory serves the courses endpoint. With a category filter it
// runs the nested policy: every matching course is fetched, lesson matches
// are resolved to their owning courses and nested under them, courses
// discovered only through lessons are merged in, and the merged list is
// sorted and paginated by course count.
//
// Without a category filter the listing is delegated to the host course
// lister; lesson matches are then grafted onto the delegated page.
func (s *Service) CoursesByCategory(params Params) (*CourseList, error) {
	if strings.TrimSpace(params.Category) == "" {
		return s.delegateListing(params)
	}

	categoryIDs := ResolveCategories(s.store, params.Category)
	if len(categoryIDs) == 0 {
		// The filter resolved to nothing, which filters everything out.
		s.logger.Debugf("category filter %q resolved to no terms", params.Category)
		return &CourseList{Courses: []CourseResult{}}, nil
	}

	rows, _, err := s.store.SearchCourses(storage.CourseSearchOpts{
		Term:        params.Term,
		CategoryIDs: categoryIDs,
		Limit:       -1,
	})
	if err != nil {
		return nil, fmt.Errorf("searching courses: %w", err)
	}

	courses := make([]CourseResult, 0, len(rows))
	byID := make(map[int64]int, len(rows))
	for _, row := range rows {
		byID[row.ID] = len(courses)
		courses = append(courses, CourseResult{Item: s.format.CourseItem(row)})
	}

	if params.Term != "" {
		courses, err = s.mergeLessonMatches(courses, byID, params.Term, categoryIDs)
		if err != nil {
			return nil, err
		}
	}

	sortCourses(courses, params.Sort)

	total := len(courses)
	return &CourseList{
		Courses: pageWindow(courses, params),
		Total:   total,
		Pages:   pageCount(total, params.PerPage),
	}, nil
}

// mergeLessonMatches nests term-matching lessons under their owning
// courses and merges in owners that the direct course search missed.
// Owners are only accepted when they actually carry one of the requested
// categories; ownership resolution can over-match, the category check is
// the backstop.
func (s *Service) mergeLessonMatches(courses []CourseResult, byID map[int64]int, term string, categoryIDs []int64) ([]CourseResult, error) {
	lessonRows, _, err := s.store.SearchLessons(term, categoryIDs, -1, 0)
	if err != nil {
		return nil, fmt.Errorf("searching lessons: %w", err)
	}

	// A term was given, so every course carries a lessons list even when
	// nothing matched under it.
	for i := range courses {
		courses[i].Lessons = []lms.Item{}
	}

	wanted := make(map[int64]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		wanted[id] = true
	}

	for _, lessonRow := range lessonRows {
		item := s.format.LessonItem(lessonRow)
		for _, courseID := range item.Courses {
			ok, err := s.courseInCategories(courseID, wanted)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}

			idx, known := byID[courseID]
			if !known {
				result, err := s.discoveredCourse(courseID)
				if err != nil {
					return nil, err
				}
				if result == nil {
					continue
				}
				idx = len(courses)
				byID[courseID] = idx
				courses = append(courses, *result)
			}
			courses[idx].Lessons = append(courses[idx].Lessons, item)
		}
	}

	return courses, nil
}

func (s *Service) courseInCategories(courseID int64, wanted map[int64]bool) (bool, error) {
	ids, err := s.store.CourseCategoryIDs(courseID)
	if err != nil {
		return false, fmt.Errorf("checking course categories: %w", err)
	}
	for _, id := range ids {
		if wanted[id] {
			return true, nil
		}
	}
	return false, nil
}

// discoveredCourse formats a course reached only through one of its
// lessons. Returns nil when the id is not a published course.
func (s *Service) discoveredCourse(courseID int64) (*CourseResult, error) {
	row, err := s.store.ContentByID(courseID)
	if err != nil {
		return nil, fmt.Errorf("fetching discovered course: %w", err)
	}
	if row == nil || row.Type != lms.ContentCourse {
		return nil, nil
	}
	return &CourseResult{
		Item:    s.format.CourseItem(*row),
		Lessons: []lms.Item{},
	}, nil
}

func (s *Service) delegateListing(params Params) (*CourseList, error) {
	if s.lister == nil {
		return nil, fmt.Errorf("course listing: %w", lms.ErrMissingDependency)
	}

	list, err := s.lister.ListCourses(params)
	if err != nil {
		return nil, fmt.Errorf("delegated course listing: %w", err)
	}

	if params.Term != "" {
		if err := s.graftLessons(list, params.Term); err != nil {
			return nil, err
		}
	}
	if list.Courses == nil {
		list.Courses = []CourseResult{}
	}
	return list, nil
}

// graftLessons attaches term-matching lessons to the courses of a
// delegated page. Lessons owned by courses outside the page are dropped;
// the page composition is the delegate's call.
func (s *Service) graftLessons(list *CourseList, term string) error {
	lessonRows, _, err := s.store.SearchLessons(term, nil, -1, 0)
	if err != nil {
		return fmt.Errorf("searching lessons: %w", err)
	}

	byID := make(map[int64]int, len(list.Courses))
	for i := range list.Courses {
		list.Courses[i].Lessons = []lms.Item{}
		byID[list.Courses[i].ID] = i
	}

	for _, lessonRow := range lessonRows {
		item := s.format.LessonItem(lessonRow)
		for _, courseID := range item.Courses {
			if idx, ok := byID[courseID]; ok {
				list.Courses[idx].Lessons = append(list.Courses[idx].Lessons, item)
			}
		}
	}
	return nil
}

// CombinedSearch serves the search endpoint: flat course and lesson lists
// paginated as one sequence, courses first. The page count is the combined
// match count divided by the page size, so late pages hold lessons only.
//
// With neither a term nor a category there is nothing to search and the
// result is an empty zero-count payload, not an error.
func (s *Service) CombinedSearch(params Params) (*CombinedResults, error) {
	if strings.TrimSpace(params.Term) == "" && strings.TrimSpace(params.Category) == "" {
		return &CombinedResults{Courses: []lms.Item{}, Lessons: []lms.Item{}}, nil
	}

	categoryIDs := ResolveCategories(s.store, params.Category)
	if strings.TrimSpace(params.Category) != "" && len(categoryIDs) == 0 {
		s.logger.Debugf("category filter %q resolved to no terms", params.Category)
		return &CombinedResults{Courses: []lms.Item{}, Lessons: []lms.Item{}}, nil
	}

	offset := params.Offset()

	courseRows, courseTotal, err := s.store.SearchCourses(storage.CourseSearchOpts{
		Term:        params.Term,
		CategoryIDs: categoryIDs,
		Sort:        params.Sort,
		Limit:       params.PerPage,
		Offset:      offset,
	})
	if err != nil {
		return nil, fmt.Errorf("searching courses: %w", err)
	}

	// Courses fill the page first; whatever room is left goes to lessons.
	lessonLimit := params.PerPage - len(courseRows)
	lessonOffset := 0
	if offset > courseTotal {
		lessonOffset = offset - courseTotal
	}

	lessonRows, lessonTotal, err := s.store.SearchLessons(params.Term, categoryIDs, lessonLimit, lessonOffset)
	if err != nil {
		return nil, fmt.Errorf("searching lessons: %w", err)
	}

	results := &CombinedResults{
		Courses: make([]lms.Item, 0, len(courseRows)),
		Lessons: make([]lms.Item, 0, len(lessonRows)),
	}
	for _, row := range courseRows {
		results.Courses = append(results.Courses, s.format.CourseItem(row))
	}
	for _, row := range lessonRows {
		results.Lessons = append(results.Lessons, s.format.LessonItem(row))
	}

	results.Total = courseTotal + lessonTotal
	results.Pages = pageCount(results.Total, params.PerPage)
	return results, nil
}

// pageWindow slices one page out of the merged course list.
func pageWindow(courses []CourseResult, params Params) []CourseResult {
	start := params.Offset()
	if start >= len(courses) {
		return []CourseResult{}
	}
	end := start + params.PerPage
	if end > len(courses) {
		end = len(courses)
	}
	return courses[start:end]
}
