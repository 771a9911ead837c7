package search

import (
	"fmt"

	"github.com/artor/studysearch/pkg/storage"
)

// StoreLister is the built-in CourseLister: an unfiltered, paginated
// listing of published courses straight from the content store. Hosts
// with their own catalog surface can inject a different one.
type StoreLister struct {
	store  *storage.Store
	format *Formatter
}

func NewStoreLister(store *storage.Store, format *Formatter) *StoreLister {
	return &StoreLister{store: store, format: format}
}

func (l *StoreLister) ListCourses(params Params) (*CourseList, error) {
	rows, total, err := l.store.SearchCourses(storage.CourseSearchOpts{
		Term:   params.Term,
		Sort:   params.Sort,
		Limit:  params.PerPage,
		Offset: params.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}

	list := &CourseList{
		Courses: make([]CourseResult, 0, len(rows)),
		Total:   total,
		Pages:   pageCount(total, params.PerPage),
	}
	for _, row := range rows {
		list.Courses = append(list.Courses, CourseResult{Item: l.format.CourseItem(row)})
	}
	return list, nil
}
