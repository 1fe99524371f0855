package service

import (
	"time"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/model"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/util"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/logger"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/monitoring"

	"go.uber.org/zap"
)

// LockState summarizes a lesson's lock as seen by one user at one instant.
type LockState struct {
	LessonID  string     `json:"lessonId"`
	Locked    bool       `json:"locked"`
	LockedBy  *string    `json:"lockedBy,omitempty"`
	LockedAt  *time.Time `json:"lockedAt,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Owned     bool       `json:"owned"`
}

func (s *LessonService) lockState(lesson *model.Lesson, userID string) *LockState {
	state := &LockState{LessonID: lesson.ID}
	if lesson.LockedBy == nil || lesson.LockedAt == nil {
		return state
	}
	if s.now().Sub(*lesson.LockedAt) >= s.lockTimeout {
		// Expired locks read as unlocked.
		return state
	}
	expires := lesson.LockedAt.Add(s.lockTimeout)
	state.Locked = true
	state.LockedBy = lesson.LockedBy
	state.LockedAt = lesson.LockedAt
	state.ExpiresAt = &expires
	state.Owned = *lesson.LockedBy == userID
	return state
}

// heldByOther reports whether someone other than userID holds a live lock.
func (s *LessonService) heldByOther(lesson *model.Lesson, userID string) bool {
	state := s.lockState(lesson, userID)
	return state.Locked && !state.Owned
}

// GetLockState reports the current lock from userID's point of view.
func (s *LessonService) GetLockState(lessonID, userID string) (*LockState, error) {
	lesson, err := s.findLesson(lessonID)
	if err != nil {
		return nil, err
	}
	return s.lockState(lesson, userID), nil
}

// AcquireLock takes or renews the edit lock on a lesson. An expired lock held
// by someone else is stolen; a live one rejects the request.
//
// The write is guarded on the lock fields as previously read, so two racing
// acquirers cannot both succeed: the loser's guard no longer matches and its
// update touches zero rows.
func (s *LessonService) AcquireLock(lessonID, userID string) (*LockState, error) {
	lesson, err := s.findLesson(lessonID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	held := lesson.LockedBy != nil && lesson.LockedAt != nil
	expired := held && now.Sub(*lesson.LockedAt) >= s.lockTimeout

	switch {
	case !held:
		if err := s.storeLock(lesson, userID, now); err != nil {
			return nil, err
		}
	case *lesson.LockedBy == userID:
		// Renewal restarts the timeout window.
		if err := s.storeLock(lesson, userID, now); err != nil {
			return nil, err
		}
	case expired:
		previous := *lesson.LockedBy
		if err := s.storeLock(lesson, userID, now); err != nil {
			return nil, err
		}
		monitoring.LockSteals.Inc()
		logger.Log.Info("expired lesson lock taken over",
			zap.String("lessonId", lessonID),
			zap.String("previousOwner", previous),
			zap.String("newOwner", userID),
		)
	default:
		monitoring.LockConflicts.Inc()
		return nil, util.ErrLockHeld
	}

	lesson.LockedBy = &userID
	lesson.LockedAt = &now
	return s.lockState(lesson, userID), nil
}

// ReleaseLock clears the lock if userID holds it. Releasing an unlocked lesson
// is a no-op; releasing someone else's lock is rejected even after expiry, an
// expired lock belongs to nobody and only a fresh acquire may claim it.
func (s *LessonService) ReleaseLock(lessonID, userID string) error {
	lesson, err := s.findLesson(lessonID)
	if err != nil {
		return err
	}

	if lesson.LockedBy == nil || lesson.LockedAt == nil {
		return nil
	}
	if *lesson.LockedBy != userID {
		return util.ErrNotLockOwner
	}

	result := s.DB.Model(&model.Lesson{}).
		Where("id = ? AND locked_by = ? AND locked_at = ?", lessonID, *lesson.LockedBy, *lesson.LockedAt).
		Updates(map[string]interface{}{"locked_by": nil, "locked_at": nil})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Lock changed hands between read and write.
		return util.ErrNotLockOwner
	}
	return nil
}

// storeLock writes the new owner, guarded on the lock fields as read.
func (s *LessonService) storeLock(lesson *model.Lesson, userID string, at time.Time) error {
	query := s.DB.Model(&model.Lesson{}).Where("id = ?", lesson.ID)
	if lesson.LockedBy == nil || lesson.LockedAt == nil {
		query = query.Where("locked_by IS NULL")
	} else {
		query = query.Where("locked_by = ? AND locked_at = ?", *lesson.LockedBy, *lesson.LockedAt)
	}

	result := query.Updates(map[string]interface{}{"locked_by": userID, "locked_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		monitoring.LockConflicts.Inc()
		return util.ErrLockHeld
	}
	return nil
}
