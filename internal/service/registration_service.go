package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"advising/internal/cache"
	apperrors "advising/internal/errors"
	"advising/internal/logger"
	"advising/internal/model"
	"advising/internal/repository"
)

// Enrollment is a student's registered courses and their credit total.
type Enrollment struct {
	Registrations []model.Registration `json:"registrations"`
	TotalCredits  int                  `json:"total_credits"`
	CreditCeiling int                  `json:"credit_ceiling"`
}

// RegistrationService handles course registration for students.
type RegistrationService interface {
	Register(ctx context.Context, studentID uuid.UUID, courseIDs []uuid.UUID) ([]model.Registration, error)
	Enrollment(ctx context.Context, studentID uuid.UUID) (*Enrollment, error)
}

type registrationService struct {
	registrations repository.RegistrationRepository
	cache         *cache.Client
	lockTTL       time.Duration
}

// NewRegistrationService creates a new registration service.
func NewRegistrationService(
	registrations repository.RegistrationRepository,
	cache *cache.Client,
	lockTTL time.Duration,
) RegistrationService {
	return &registrationService{
		registrations: registrations,
		cache:         cache,
		lockTTL:       lockTTL,
	}
}

func registrationLockName(studentID uuid.UUID) string {
	return fmt.Sprintf("registration:%s", studentID.String())
}

// Register runs the credit check and the inserts as one serialized unit per
// student: a redis lock keeps concurrent requests apart and the student row
// lock inside the transaction holds even when redis is unavailable.
func (s *registrationService) Register(ctx context.Context, studentID uuid.UUID, courseIDs []uuid.UUID) ([]model.Registration, error) {
	courseIDs = uniqueIDs(courseIDs)
	if len(courseIDs) == 0 {
		return nil, apperrors.ErrNoSelection
	}

	lock, err := s.cache.Lock(ctx, registrationLockName(studentID), s.lockTTL)
	switch {
	case errors.Is(err, cache.ErrLockHeld):
		return nil, fmt.Errorf("%w: another registration for this student is in progress", apperrors.ErrUpstream)
	case err != nil && ctx.Err() != nil:
		return nil, apperrors.Upstream("acquire registration lock", err)
	case err != nil:
		logger.Warn().Err(err).Str("student_id", studentID.String()).Msg("registration lock unavailable, relying on row lock")
	default:
		defer func() {
			if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
				logger.Warn().Err(err).Str("student_id", studentID.String()).Msg("release registration lock")
			}
		}()
	}

	var created []model.Registration
	err = s.registrations.WithTransaction(ctx, func(ctx context.Context, tx repository.TxRepositories) error {
		student, err := tx.Users.LockByID(ctx, studentID)
		if err != nil {
			if repository.IsNotFound(err) {
				return apperrors.ErrUnauthorized
			}
			return apperrors.Upstream("lock student", err)
		}
		if student.Role != model.RoleStudent {
			return apperrors.ErrUnauthorized
		}

		requested, err := tx.Courses.FindByIDs(ctx, courseIDs)
		if err != nil {
			return apperrors.Upstream("load requested courses", err)
		}
		if missing := missingIDs(courseIDs, requested); len(missing) > 0 {
			return apperrors.Validation("unknown course id(s): %s", strings.Join(missing, ", "))
		}

		held, err := tx.Registrations.HeldCourses(ctx, studentID)
		if err != nil {
			return apperrors.Upstream("load registered courses", err)
		}
		if codes := alreadyHeld(held, requested); len(codes) > 0 {
			return apperrors.Duplicate("already registered for %s", strings.Join(codes, ", "))
		}

		if err := CanRegister(held, requested); err != nil {
			return err
		}

		rows := make([]model.Registration, 0, len(requested))
		for _, c := range requested {
			rows = append(rows, model.Registration{StudentID: studentID, CourseID: c.ID, Course: c})
		}
		if err := tx.Registrations.CreateBatch(ctx, rows); err != nil {
			if repository.IsDuplicate(err) {
				return apperrors.Duplicate("already registered for one of the selected courses")
			}
			return apperrors.Upstream("insert registrations", err)
		}
		created = rows
		return nil
	})
	if err != nil {
		return nil, classify("register courses", err)
	}
	return created, nil
}

// Enrollment returns the student's registrations and their credit total.
func (s *registrationService) Enrollment(ctx context.Context, studentID uuid.UUID) (*Enrollment, error) {
	registrations, err := s.registrations.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, apperrors.Upstream("list registrations", err)
	}
	total := 0
	for _, r := range registrations {
		total += r.Course.Credits
	}
	return &Enrollment{
		Registrations: registrations,
		TotalCredits:  total,
		CreditCeiling: CreditCeiling,
	}, nil
}

func missingIDs(want []uuid.UUID, found []model.Course) []string {
	have := make(map[uuid.UUID]struct{}, len(found))
	for _, c := range found {
		have[c.ID] = struct{}{}
	}
	var missing []string
	for _, id := range want {
		if _, ok := have[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	return missing
}

func alreadyHeld(held, requested []model.Course) []string {
	heldIDs := make(map[uuid.UUID]struct{}, len(held))
	for _, c := range held {
		heldIDs[c.ID] = struct{}{}
	}
	var codes []string
	for _, c := range requested {
		if _, ok := heldIDs[c.ID]; ok {
			codes = append(codes, c.Code)
		}
	}
	return codes
}

// classify keeps domain errors as they are and turns anything else, such as
// a failed commit or a cancelled context, into a retryable upstream failure.
func classify(op string, err error) error {
	for _, kind := range []error{
		apperrors.ErrInvalidCredentials,
		apperrors.ErrUnauthorized,
		apperrors.ErrValidation,
		apperrors.ErrDuplicateResource,
		apperrors.ErrCreditLimitExceeded,
		apperrors.ErrNoSelection,
		apperrors.ErrUpstream,
	} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return apperrors.Upstream(op, err)
}
