package service

import (
	"fmt"

	"github.com/google/uuid"

	apperrors "advising/internal/errors"
	"advising/internal/model"
)

// CreditCeiling is the most credits a student may hold at once.
const CreditCeiling = 24

// CanRegister decides whether a student holding existing may add requested.
// Requested courses are counted once per id. It performs no I/O.
func CanRegister(existing, requested []model.Course) error {
	requested = uniqueCourses(requested)
	if len(requested) == 0 {
		return apperrors.ErrNoSelection
	}

	current := sumCredits(existing)
	adding := sumCredits(requested)
	if current+adding > CreditCeiling {
		return fmt.Errorf("%w: %d registered + %d requested exceeds the %d credit limit",
			apperrors.ErrCreditLimitExceeded, current, adding, CreditCeiling)
	}
	return nil
}

func sumCredits(courses []model.Course) int {
	total := 0
	for _, c := range courses {
		total += c.Credits
	}
	return total
}

func uniqueCourses(courses []model.Course) []model.Course {
	seen := make(map[uuid.UUID]struct{}, len(courses))
	out := make([]model.Course, 0, len(courses))
	for _, c := range courses {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
