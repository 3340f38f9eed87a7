// file: internals/features/scheduling/slots/controller/session_slot_controller_test.go
package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	m "formaplan_backend/internals/features/scheduling/slots/model"
	helperAuth "formaplan_backend/internals/helpers/auth"
)

// fakeSlotStore scopes reads by tenant exactly like the real
// repository: a foreign-tenant id looks absent.
type fakeSlotStore struct {
	slots   map[uuid.UUID]m.SessionSlotModel
	saves   int
	deletes int
}

func newFakeSlotStore(slots ...m.SessionSlotModel) *fakeSlotStore {
	f := &fakeSlotStore{slots: make(map[uuid.UUID]m.SessionSlotModel)}
	for _, s := range slots {
		f.slots[s.SessionSlotID] = s
	}
	return f
}

func (f *fakeSlotStore) Create(_ context.Context, slot *m.SessionSlotModel) error {
	if slot.SessionSlotID == uuid.Nil {
		slot.SessionSlotID = uuid.New()
	}
	f.slots[slot.SessionSlotID] = *slot
	return nil
}

func (f *fakeSlotStore) GetByID(_ context.Context, tenantID, id uuid.UUID) (*m.SessionSlotModel, error) {
	s, ok := f.slots[id]
	if !ok || s.SessionSlotTenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := s
	return &cp, nil
}

func (f *fakeSlotStore) Save(_ context.Context, slot *m.SessionSlotModel) error {
	f.saves++
	f.slots[slot.SessionSlotID] = *slot
	return nil
}

func (f *fakeSlotStore) ListBySession(_ context.Context, tenantID, sessionID uuid.UUID) ([]m.SessionSlotModel, error) {
	out := make([]m.SessionSlotModel, 0)
	for _, s := range f.slots {
		if s.SessionSlotTenantID == tenantID && s.SessionSlotSessionID == sessionID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotStore) ListByDateRange(_ context.Context, tenantID uuid.UUID, _, _ time.Time) ([]m.SessionSlotModel, error) {
	out := make([]m.SessionSlotModel, 0)
	for _, s := range f.slots {
		if s.SessionSlotTenantID == tenantID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotStore) Delete(_ context.Context, id uuid.UUID) error {
	f.deletes++
	delete(f.slots, id)
	return nil
}

func (f *fakeSlotStore) DeleteBySession(_ context.Context, tenantID, sessionID uuid.UUID) (int64, error) {
	var n int64
	for id, s := range f.slots {
		if s.SessionSlotTenantID == tenantID && s.SessionSlotSessionID == sessionID {
			delete(f.slots, id)
			n++
		}
	}
	return n, nil
}

// slotApp mounts the handlers behind locals matching what the JWT
// middleware hydrates for an owner of tenantID.
func slotApp(ctl *SessionSlotController, tenantID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocIsOwner, true)
		c.Locals(helperAuth.LocActiveTenantID, tenantID.String())
		return c.Next()
	})
	app.Patch("/slots/:id", ctl.Patch)
	app.Delete("/slots/:id", ctl.Delete)
	return app
}

func storedSlot(t *testing.T, tenantID uuid.UUID) m.SessionSlotModel {
	t.Helper()
	start, err := time.Parse("15:04", "09:00")
	if err != nil {
		t.Fatal(err)
	}
	end, err := time.Parse("15:04", "12:30")
	if err != nil {
		t.Fatal(err)
	}
	return m.SessionSlotModel{
		SessionSlotID:           uuid.New(),
		SessionSlotTenantID:     tenantID,
		SessionSlotSessionID:    uuid.New(),
		SessionSlotDate:         time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		SessionSlotStartTime:    start,
		SessionSlotEndTime:      end,
		SessionSlotDeliveryMode: m.DeliveryOnSite,
	}
}

func patchReq(path string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(`{}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func TestPatchUnknownSlotIsNotFoundAndWritesNothing(t *testing.T) {
	tenantID := uuid.New()
	store := newFakeSlotStore()
	ctl := &SessionSlotController{Repo: store}
	app := slotApp(ctl, tenantID)

	resp, err := app.Test(patchReq("/slots/" + uuid.NewString()))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if store.saves != 0 {
		t.Fatalf("store saved %d times on a missing id", store.saves)
	}
}

func TestPatchForeignTenantSlotIsNotFoundAndWritesNothing(t *testing.T) {
	callerTenant := uuid.New()
	otherTenant := uuid.New()
	slot := storedSlot(t, otherTenant)
	store := newFakeSlotStore(slot)
	ctl := &SessionSlotController{Repo: store}
	app := slotApp(ctl, callerTenant)

	resp, err := app.Test(patchReq("/slots/" + slot.SessionSlotID.String()))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (existence must not leak)", resp.StatusCode)
	}
	if store.saves != 0 {
		t.Fatalf("store saved %d times on a foreign-tenant id", store.saves)
	}
}

func TestPatchOwnTenantSlotSaves(t *testing.T) {
	tenantID := uuid.New()
	slot := storedSlot(t, tenantID)
	store := newFakeSlotStore(slot)
	ctl := &SessionSlotController{Repo: store}
	app := slotApp(ctl, tenantID)

	resp, err := app.Test(patchReq("/slots/" + slot.SessionSlotID.String()))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if store.saves != 1 {
		t.Fatalf("store.saves = %d, want 1", store.saves)
	}
}

func TestDeleteForeignTenantSlotIsNotFoundAndKeepsRow(t *testing.T) {
	callerTenant := uuid.New()
	slot := storedSlot(t, uuid.New())
	store := newFakeSlotStore(slot)
	ctl := &SessionSlotController{Repo: store}
	app := slotApp(ctl, callerTenant)

	req := httptest.NewRequest(http.MethodDelete, "/slots/"+slot.SessionSlotID.String(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if store.deletes != 0 {
		t.Fatalf("store deleted %d rows across tenants", store.deletes)
	}
}
