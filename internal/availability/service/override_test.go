package service

import (
	"context"
	"testing"

	availerrors "clinicbook/internal/availability/errors"
	"clinicbook/internal/availability/validator"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

func newOverrideService(repo *mockOverrideRepo) OverrideService {
	cfg := newTestConfig()
	return NewOverrideService(repo, validator.New(cfg.Log), cfg)
}

func TestOverrideCreate(t *testing.T) {
	repo := &mockOverrideRepo{
		FindIntersectingFunc: func(ctx context.Context, locationID, startDate, endDate, excludeID string) ([]*model.DateOverride, error) {
			return nil, nil
		},
		InsertFunc: func(ctx context.Context, override *model.DateOverride) error {
			override.ID = "ov-1"
			return nil
		},
	}
	svc := newOverrideService(repo)

	created, err := svc.Create(context.Background(), &model.DateOverride{
		LocationID: "loc-1",
		StartDate:  "2026-07-01",
		EndDate:    "2026-07-03",
		Reason:     "holiday cover",
		Windows:    []model.DayWindow{{StartLocal: "10:00", EndLocal: "14:00", IsActive: true}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "ov-1" {
		t.Errorf("expected a durable id, got %q", created.ID)
	}
	if created.Windows[0].ID == "" {
		t.Error("embedded windows should be assigned ids on create")
	}
}

func TestOverrideCreateRejectsIntersectingRange(t *testing.T) {
	repo := &mockOverrideRepo{
		FindIntersectingFunc: func(ctx context.Context, locationID, startDate, endDate, excludeID string) ([]*model.DateOverride, error) {
			return []*model.DateOverride{{ID: "ov-existing", StartDate: "2026-07-02", EndDate: "2026-07-05"}}, nil
		},
		InsertFunc: func(ctx context.Context, override *model.DateOverride) error {
			t.Fatal("insert must not run when ranges intersect")
			return nil
		},
	}
	svc := newOverrideService(repo)

	_, err := svc.Create(context.Background(), &model.DateOverride{
		LocationID: "loc-1",
		StartDate:  "2026-07-01",
		EndDate:    "2026-07-03",
		IsClosed:   true,
	})
	if !apperrors.IsCode(err, apperrors.CodeOverrideRangeOverlap) {
		t.Errorf("expected %s, got %v", apperrors.CodeOverrideRangeOverlap, err)
	}
}

func TestOverrideCreateRejectsClosedWithWindows(t *testing.T) {
	svc := newOverrideService(&mockOverrideRepo{})

	_, err := svc.Create(context.Background(), &model.DateOverride{
		LocationID: "loc-1",
		StartDate:  "2026-07-01",
		EndDate:    "2026-07-01",
		IsClosed:   true,
		Windows:    []model.DayWindow{{StartLocal: "10:00", EndLocal: "14:00", IsActive: true}},
	})
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Errorf("expected %s, got %v", apperrors.CodeValidation, err)
	}
}

// Stored override ids are ObjectID hex.
const testOverrideID = "64b0c8c2f1d2a34f9c8b4567"

func TestOverrideUpdateExcludesSelfFromRangeCheck(t *testing.T) {
	existing := &model.DateOverride{
		ID:         testOverrideID,
		LocationID: "loc-1",
		StartDate:  "2026-07-01",
		EndDate:    "2026-07-03",
	}
	var checkedExclude string
	repo := &mockOverrideRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*model.DateOverride, error) {
			return existing, nil
		},
		FindIntersectingFunc: func(ctx context.Context, locationID, startDate, endDate, excludeID string) ([]*model.DateOverride, error) {
			checkedExclude = excludeID
			return nil, nil
		},
		UpdateFieldsFunc: func(ctx context.Context, id string, fields bson.M) error {
			return nil
		},
	}
	svc := newOverrideService(repo)

	end := "2026-07-05"
	updated, err := svc.Update(context.Background(), testOverrideID, &model.DateOverridePatch{EndDate: &end})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if checkedExclude != testOverrideID {
		t.Errorf("range check must exclude the document being updated, excluded %q", checkedExclude)
	}
	if updated.EndDate != "2026-07-05" {
		t.Errorf("end date not applied: %+v", updated)
	}
}

func TestOverrideUpdateSkipsRangeCheckWhenDatesUntouched(t *testing.T) {
	existing := &model.DateOverride{
		ID:         testOverrideID,
		LocationID: "loc-1",
		StartDate:  "2026-07-01",
		EndDate:    "2026-07-03",
	}
	repo := &mockOverrideRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*model.DateOverride, error) {
			return existing, nil
		},
		FindIntersectingFunc: func(ctx context.Context, locationID, startDate, endDate, excludeID string) ([]*model.DateOverride, error) {
			t.Fatal("range check must not run when the dates are unchanged")
			return nil, nil
		},
		UpdateFieldsFunc: func(ctx context.Context, id string, fields bson.M) error {
			if _, ok := fields["reason"]; !ok {
				t.Errorf("expected a reason write, got %v", fields)
			}
			return nil
		},
	}
	svc := newOverrideService(repo)

	reason := "staff training"
	if _, err := svc.Update(context.Background(), testOverrideID, &model.DateOverridePatch{Reason: &reason}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOverrideUpdateNotFound(t *testing.T) {
	repo := &mockOverrideRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*model.DateOverride, error) {
			return nil, availerrors.ErrOverrideNotFound
		},
	}
	svc := newOverrideService(repo)

	closed := true
	_, err := svc.Update(context.Background(), "missing", &model.DateOverridePatch{IsClosed: &closed})
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected %s, got %v", apperrors.CodeNotFound, err)
	}
}

func TestOverrideAddWindowIdempotentOnSpan(t *testing.T) {
	parent := &model.DateOverride{
		ID:         "ov-1",
		LocationID: "loc-1",
		StartDate:  "2026-07-01",
		EndDate:    "2026-07-01",
		Windows:    []model.DayWindow{{ID: "w1", StartLocal: "10:00", EndLocal: "14:00", IsActive: true}},
	}
	repo := &mockOverrideRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*model.DateOverride, error) {
			return parent, nil
		},
		ReplaceWindowsFunc: func(ctx context.Context, id string, windows []model.DayWindow) error {
			t.Fatal("re-adding an identical span must not write")
			return nil
		},
	}
	svc := newOverrideService(repo)

	result, err := svc.AddWindow(context.Background(), "ov-1",
		model.DayWindow{StartLocal: "10:00", EndLocal: "14:00", IsActive: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID != "w1" {
		t.Errorf("expected the stored row back, got id %q", result.ID)
	}
}

func TestOverrideAddWindowToClosedDay(t *testing.T) {
	repo := &mockOverrideRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*model.DateOverride, error) {
			return &model.DateOverride{ID: id, LocationID: "loc-1", StartDate: "2026-07-01", EndDate: "2026-07-01", IsClosed: true}, nil
		},
	}
	svc := newOverrideService(repo)

	_, err := svc.AddWindow(context.Background(), "ov-1",
		model.DayWindow{StartLocal: "10:00", EndLocal: "14:00", IsActive: true})
	if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected %s, got %v", apperrors.CodeInvalidInput, err)
	}
}

func TestOverrideRemoveWindowPendingEditIsNoop(t *testing.T) {
	repo := &mockOverrideRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*model.DateOverride, error) {
			t.Fatal("a window with no durable id was never persisted; storage must not be touched")
			return nil, nil
		},
	}
	svc := newOverrideService(repo)

	if err := svc.RemoveWindow(context.Background(), "ov-1", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOverrideListInRangeValidation(t *testing.T) {
	svc := newOverrideService(&mockOverrideRepo{})

	_, err := svc.ListInRange(context.Background(), "loc-1", "2026-07-10", "2026-07-01")
	if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("inverted range: expected %s, got %v", apperrors.CodeInvalidInput, err)
	}

	_, err = svc.ListInRange(context.Background(), "loc-1", "07/01/2026", "2026-07-10")
	if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("malformed date: expected %s, got %v", apperrors.CodeInvalidInput, err)
	}
}
