// file: internals/features/scheduling/slots/service/conflict.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Conflict types
   ========================= */

type ConflictKind string

const (
	ConflictTrainer ConflictKind = "trainer"
	ConflictRoom    ConflictKind = "room"
)

// Conflict is ephemeral: computed per query, never persisted. It is
// advisory — the store accepts overlapping slots regardless.
type Conflict struct {
	Kind         ConflictKind `json:"resource_kind"`
	ResourceID   uuid.UUID    `json:"resource_id"`
	ResourceName string       `json:"resource_name"`

	SlotID      uuid.UUID `json:"slot_id"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	SessionID   uuid.UUID `json:"session_id"`
	SessionName string    `json:"session_name"`
}

// ConflictQuery is the stabilized window to check. Only the resources
// actually supplied are checked; debouncing is the caller's concern.
type ConflictQuery struct {
	Date      time.Time
	Start     time.Time
	End       time.Time
	TrainerID *uuid.UUID
	RoomID    *uuid.UUID
	ExcludeID *uuid.UUID // edit mode: ignore the slot being edited
}

/* =========================
   Overlap predicate
   ========================= */

// RangesOverlap uses half-open semantics: [s1,e1) and [s2,e2) overlap
// iff s1 < e2 AND s2 < e1. A slot ending exactly when another begins
// is not a conflict.
func RangesOverlap(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}

/* =========================
   Candidate rows + classification
   ========================= */

// CandidateSlot is one existing slot pulled for classification.
type CandidateSlot struct {
	SlotID      uuid.UUID
	Date        time.Time
	StartTime   time.Time
	EndTime     time.Time
	SessionID   uuid.UUID
	SessionName string
	TrainerID   *uuid.UUID
	TrainerName *string
	RoomID      *uuid.UUID
	RoomName    *string
}

// BuildConflicts classifies candidates against the query. Pure: re-checks
// date, exclusion and overlap so it holds on any candidate set. One slot
// sharing both the trainer and the room yields one conflict per kind.
func BuildConflicts(q ConflictQuery, candidates []CandidateSlot) []Conflict {
	out := make([]Conflict, 0)
	for _, cs := range candidates {
		if q.ExcludeID != nil && cs.SlotID == *q.ExcludeID {
			continue
		}
		if !sameDate(cs.Date, q.Date) {
			continue
		}
		if !RangesOverlap(cs.StartTime, cs.EndTime, q.Start, q.End) {
			continue
		}
		if q.TrainerID != nil && cs.TrainerID != nil && *cs.TrainerID == *q.TrainerID {
			out = append(out, conflictFrom(cs, ConflictTrainer, *cs.TrainerID, strOrEmpty(cs.TrainerName)))
		}
		if q.RoomID != nil && cs.RoomID != nil && *cs.RoomID == *q.RoomID {
			out = append(out, conflictFrom(cs, ConflictRoom, *cs.RoomID, strOrEmpty(cs.RoomName)))
		}
	}
	return out
}

func conflictFrom(cs CandidateSlot, kind ConflictKind, resID uuid.UUID, resName string) Conflict {
	return Conflict{
		Kind:         kind,
		ResourceID:   resID,
		ResourceName: resName,
		SlotID:       cs.SlotID,
		Date:         cs.Date.Format("2006-01-02"),
		StartTime:    cs.StartTime.Format("15:04"),
		EndTime:      cs.EndTime.Format("15:04"),
		SessionID:    cs.SessionID,
		SessionName:  cs.SessionName,
	}
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

/* =========================
   Detector (DB-backed)
   ========================= */

// ConflictDetector finds existing slots overlapping a proposed window
// and sharing a supplied resource, across the tenant's whole calendar.
// Finding conflicts is a normal result, never an error; the only error
// paths are malformed input and the store itself.
type ConflictDetector struct {
	DB *gorm.DB
}

func NewConflictDetector(db *gorm.DB) *ConflictDetector {
	return &ConflictDetector{DB: db}
}

func (d *ConflictDetector) Check(ctx context.Context, tenantID uuid.UUID, q ConflictQuery) ([]Conflict, error) {
	// No resource supplied → nothing can collide.
	if q.TrainerID == nil && q.RoomID == nil {
		return []Conflict{}, nil
	}

	tx := d.DB.WithContext(ctx).
		Table("session_slots AS ss").
		Select(`ss.session_slot_id AS slot_id,
			ss.session_slot_date AS date,
			ss.session_slot_start_time AS start_time,
			ss.session_slot_end_time AS end_time,
			ss.session_slot_session_id AS session_id,
			ts.training_session_name AS session_name,
			ss.session_slot_trainer_id AS trainer_id,
			tr.trainer_display_name AS trainer_name,
			ss.session_slot_room_id AS room_id,
			rm.room_display_name AS room_name`).
		Joins("JOIN training_sessions ts ON ts.training_session_id = ss.session_slot_session_id").
		Joins("LEFT JOIN trainers tr ON tr.trainer_id = ss.session_slot_trainer_id").
		Joins("LEFT JOIN rooms rm ON rm.room_id = ss.session_slot_room_id").
		Where("ss.session_slot_deleted_at IS NULL").
		Where("ss.session_slot_tenant_id = ?", tenantID).
		Where("ss.session_slot_date = ?", q.Date.Format("2006-01-02")).
		Where("ss.session_slot_start_time < ? AND ss.session_slot_end_time > ?",
			q.End.Format("15:04:05"), q.Start.Format("15:04:05"))

	if q.ExcludeID != nil {
		tx = tx.Where("ss.session_slot_id <> ?", *q.ExcludeID)
	}

	switch {
	case q.TrainerID != nil && q.RoomID != nil:
		tx = tx.Where("ss.session_slot_trainer_id = ? OR ss.session_slot_room_id = ?", *q.TrainerID, *q.RoomID)
	case q.TrainerID != nil:
		tx = tx.Where("ss.session_slot_trainer_id = ?", *q.TrainerID)
	default:
		tx = tx.Where("ss.session_slot_room_id = ?", *q.RoomID)
	}

	var rows []CandidateSlot
	if err := tx.Order("ss.session_slot_start_time ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return BuildConflicts(q, rows), nil
}
