package search

import (
	"github.com/artor/studysearch/pkg/log"
	"github.com/artor/studysearch/pkg/storage"
)

// CurriculumResolver is the optional host capability for resolving a
// lesson's owning courses. When the host provides one it is the most
// authoritative source and is consulted first.
type CurriculumResolver interface {
	LessonCourseIDs(lessonID int64) ([]int64, error)
}

// Linker resolves lesson ownership through a chain of strategies of
// decreasing reliability, stopping at the first one that yields a result:
//
//  1. the injected CurriculumResolver, when present
//  2. the two-hop curriculum chain join (lesson -> section -> course)
//  3. the legacy curriculum metadata blob, scanned for the lesson id as a
//     substring (can over-match numeric substrings)
//  4. fuzzy title matching against published course titles, exact match
//     first, capped at 5 candidates
//
// Ownership is not reliably normalized across deployments, so every
// strategy failure degrades to the next one instead of surfacing an error.
type Linker struct {
	store      *storage.Store
	curriculum CurriculumResolver
	logger     *log.Logger
}

func NewLinker(store *storage.Store, curriculum CurriculumResolver) *Linker {
	return &Linker{
		store:      store,
		curriculum: curriculum,
		logger:     log.ForService("linker"),
	}
}

// CoursesForLesson returns the distinct owning course ids for a lesson,
// most authoritative first. An empty slice means no owner could be
// resolved by any strategy.
func (l *Linker) CoursesForLesson(lessonID int64) []int64 {
	if l.curriculum != nil {
		ids, err := l.curriculum.LessonCourseIDs(lessonID)
		if err != nil {
			l.logger.Debugf("curriculum resolver failed for lesson %d: %v", lessonID, err)
		} else if len(ids) > 0 {
			return dedupeIDs(ids)
		}
	}

	ids, err := l.store.LessonCourseIDs(lessonID)
	if err != nil {
		l.logger.Debugf("curriculum chain query failed for lesson %d: %v", lessonID, err)
	} else if len(ids) > 0 {
		return dedupeIDs(ids)
	}

	ids, err = l.store.CourseIDsWithLessonInMeta(lessonID)
	if err != nil {
		l.logger.Debugf("curriculum meta scan failed for lesson %d: %v", lessonID, err)
	} else if len(ids) > 0 {
		return dedupeIDs(ids)
	}

	row, err := l.store.ContentByID(lessonID)
	if err != nil || row == nil || row.Title == "" {
		return nil
	}
	ids, err = l.store.CourseIDsMatchingTitle(row.Title)
	if err != nil {
		l.logger.Debugf("title match failed for lesson %d: %v", lessonID, err)
		return nil
	}
	return dedupeIDs(ids)
}

// dedupeIDs drops zero and repeated ids. The input may belong to an
// injected resolver, so it is never modified.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
