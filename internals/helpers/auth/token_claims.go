// file: internals/helpers/auth/token_claims.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"formaplan_backend/internals/constants"
	helper "formaplan_backend/internals/helpers"
)

/* ============================================
   Locals Keys (middleware sets these)
   ============================================ */

const (
	LocRole   = "role"    // legacy single role
	LocUserID = "user_id" // string | uuid

	LocRolesGlobal    = "roles_global"    // []string
	LocTenantRoles    = "tenant_roles"    // []TenantRolesEntry | []map[string]any
	LocIsOwner        = "is_owner"        // bool | "true"/"false"
	LocActiveTenantID = "active_tenant_id" // string UUID
	LocTrainerRecords = "trainer_records" // []TrainerRecordEntry | []map[string]any
)

/* ============================================
   Types for structured claims
   ============================================ */

type TenantRolesEntry struct {
	TenantID uuid.UUID `json:"tenant_id"`
	Roles    []string  `json:"roles"`
}

type TrainerRecordEntry struct {
	TrainerID uuid.UUID `json:"trainer_id"`
	TenantID  uuid.UUID `json:"tenant_id"`
}

/* ============================================
   Tiny shared helpers
   ============================================ */

func normalizeLocalsToStrings(v any) []string {
	out := make([]string, 0)
	switch t := v.(type) {
	case []string:
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []interface{}:
		for _, it := range t {
			switch vv := it.(type) {
			case string:
				if s := strings.TrimSpace(vv); s != "" {
					out = append(out, s)
				}
			case uuid.UUID:
				if vv != uuid.Nil {
					out = append(out, vv.String())
				}
			}
		}
	case string:
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	case uuid.UUID:
		if t != uuid.Nil {
			out = append(out, t.String())
		}
	}
	return out
}

func parseFirstUUIDFromLocals(c *fiber.Ctx, key string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" not found in token")
	}
	items := normalizeLocalsToStrings(v)
	if len(items) == 0 {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" empty in token")
	}
	id, err := uuid.Parse(items[0])
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+key+" in token")
	}
	return id, nil
}

/* ============================================
   roles_global & tenant_roles (locals only)
   ============================================ */

func GetRolesGlobal(c *fiber.Ctx) []string {
	v := c.Locals(LocRolesGlobal)
	out := make([]string, 0)
	switch t := v.(type) {
	case []string:
		for _, r := range t {
			r = strings.ToLower(strings.TrimSpace(r))
			if r != "" {
				out = append(out, r)
			}
		}
	case []interface{}:
		for _, it := range t {
			if s, ok := it.(string); ok {
				s = strings.ToLower(strings.TrimSpace(s))
				if s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func HasGlobalRole(c *fiber.Ctx, role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return false
	}
	for _, r := range GetRolesGlobal(c) {
		if r == role {
			return true
		}
	}
	return false
}

func GetRole(c *fiber.Ctx) string {
	if v := c.Locals(LocRole); v != nil {
		if s, ok := v.(string); ok {
			return strings.ToLower(strings.TrimSpace(s))
		}
	}
	return ""
}

func parseTenantRoles(c *fiber.Ctx) ([]TenantRolesEntry, error) {
	v := c.Locals(LocTenantRoles)
	if v == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, LocTenantRoles+" not found in token")
	}

	drain := func(m map[string]any) (TenantRolesEntry, bool) {
		var e TenantRolesEntry
		if s, ok := m["tenant_id"].(string); ok {
			if id, err := uuid.Parse(strings.TrimSpace(s)); err == nil {
				e.TenantID = id
			}
		}
		if rr, ok := m["roles"].([]interface{}); ok {
			for _, it := range rr {
				if rs, ok := it.(string); ok {
					rs = strings.ToLower(strings.TrimSpace(rs))
					if rs != "" {
						e.Roles = append(e.Roles, rs)
					}
				}
			}
		}
		return e, e.TenantID != uuid.Nil && len(e.Roles) > 0
	}

	switch t := v.(type) {
	case []TenantRolesEntry:
		out := make([]TenantRolesEntry, 0, len(t))
		for _, e := range t {
			if e.TenantID != uuid.Nil && len(e.Roles) > 0 {
				out = append(out, e)
			}
		}
		if len(out) == 0 {
			return nil, fiber.NewError(fiber.StatusUnauthorized, LocTenantRoles+" empty")
		}
		return out, nil
	case []map[string]any:
		out := make([]TenantRolesEntry, 0, len(t))
		for _, m := range t {
			if e, ok := drain(m); ok {
				out = append(out, e)
			}
		}
		if len(out) == 0 {
			return nil, fiber.NewError(fiber.StatusUnauthorized, LocTenantRoles+" empty/invalid")
		}
		return out, nil
	case []interface{}:
		out := make([]TenantRolesEntry, 0, len(t))
		for _, it := range t {
			if m, ok := it.(map[string]any); ok {
				if e, ok := drain(m); ok {
					out = append(out, e)
				}
			}
		}
		if len(out) == 0 {
			return nil, fiber.NewError(fiber.StatusUnauthorized, LocTenantRoles+" empty/invalid")
		}
		return out, nil
	}
	return nil, fiber.NewError(fiber.StatusBadRequest, LocTenantRoles+" unsupported format")
}

func HasRoleInTenant(c *fiber.Ctx, tenantID uuid.UUID, role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" || tenantID == uuid.Nil {
		return false
	}
	entries, err := parseTenantRoles(c)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.TenantID == tenantID {
			for _, r := range e.Roles {
				if r == role {
					return true
				}
			}
		}
	}
	return false
}

/* ============================================
   active_tenant_id & role flags
   ============================================ */

func GetActiveTenantIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocActiveTenantID)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, LocActiveTenantID+" not found in token")
	}
	switch t := v.(type) {
	case string:
		id, err := uuid.Parse(strings.TrimSpace(t))
		if err != nil || id == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, LocActiveTenantID+" invalid")
		}
		return id, nil
	case uuid.UUID:
		if t != uuid.Nil {
			return t, nil
		}
	}
	return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, LocActiveTenantID+" invalid")
}

func IsOwner(c *fiber.Ctx) bool {
	if v := c.Locals(LocIsOwner); v != nil {
		if b, ok := v.(bool); ok && b {
			return true
		}
		if s, ok := v.(string); ok && strings.EqualFold(s, "true") {
			return true
		}
	}
	if HasGlobalRole(c, constants.RoleOwner) {
		return true
	}
	return GetRole(c) == constants.RoleOwner
}

func roleExistsInAnyTenant(c *fiber.Ctx, role string) bool {
	entries, err := parseTenantRoles(c)
	if err != nil {
		return false
	}
	for _, e := range entries {
		for _, r := range e.Roles {
			if r == role {
				return true
			}
		}
	}
	return false
}

func IsAdmin(c *fiber.Ctx) bool {
	if GetRole(c) == constants.RoleAdmin {
		return true
	}
	return roleExistsInAnyTenant(c, constants.RoleAdmin)
}

func IsTrainer(c *fiber.Ctx) bool {
	if recs, err := parseTrainerRecordsFromLocals(c); err == nil && len(recs) > 0 {
		return true
	}
	if strings.EqualFold(GetRole(c), constants.RoleTrainer) || HasGlobalRole(c, constants.RoleTrainer) {
		return true
	}
	return roleExistsInAnyTenant(c, constants.RoleTrainer)
}

/* ============================================
   trainer_records (locals only)
   ============================================ */

func parseTrainerRecordsFromLocals(c *fiber.Ctx) ([]TrainerRecordEntry, error) {
	v := c.Locals(LocTrainerRecords)
	if v == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, LocTrainerRecords+" not found in token")
	}

	drain := func(m map[string]any) (TrainerRecordEntry, bool) {
		var e TrainerRecordEntry
		if s, ok := m["tenant_id"].(string); ok {
			if id, err := uuid.Parse(strings.TrimSpace(s)); err == nil {
				e.TenantID = id
			}
		}
		if s, ok := m["trainer_id"].(string); ok {
			if id, err := uuid.Parse(strings.TrimSpace(s)); err == nil {
				e.TrainerID = id
			}
		}
		return e, e.TenantID != uuid.Nil && e.TrainerID != uuid.Nil
	}

	switch t := v.(type) {
	case []TrainerRecordEntry:
		out := make([]TrainerRecordEntry, 0, len(t))
		for _, r := range t {
			if r.TenantID != uuid.Nil && r.TrainerID != uuid.Nil {
				out = append(out, r)
			}
		}
		if len(out) == 0 {
			return nil, fiber.NewError(fiber.StatusUnauthorized, LocTrainerRecords+" empty")
		}
		return out, nil
	case []map[string]any:
		out := make([]TrainerRecordEntry, 0, len(t))
		for _, m := range t {
			if e, ok := drain(m); ok {
				out = append(out, e)
			}
		}
		if len(out) == 0 {
			return nil, fiber.NewError(fiber.StatusUnauthorized, LocTrainerRecords+" empty/invalid")
		}
		return out, nil
	case []interface{}:
		out := make([]TrainerRecordEntry, 0, len(t))
		for _, it := range t {
			if m, ok := it.(map[string]any); ok {
				if e, ok := drain(m); ok {
					out = append(out, e)
				}
			}
		}
		if len(out) == 0 {
			return nil, fiber.NewError(fiber.StatusUnauthorized, LocTrainerRecords+" empty/invalid")
		}
		return out, nil
	}
	return nil, fiber.NewError(fiber.StatusBadRequest, LocTrainerRecords+" unsupported format")
}

func GetTrainerRecordsFromToken(c *fiber.Ctx) ([]TrainerRecordEntry, error) {
	return parseTrainerRecordsFromLocals(c)
}

// GetTrainerIDForTenant resolves the caller's trainer row inside one tenant.
func GetTrainerIDForTenant(c *fiber.Ctx, tenantID uuid.UUID) (uuid.UUID, error) {
	if tenantID == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "tenant_id required")
	}
	recs, err := parseTrainerRecordsFromLocals(c)
	if err != nil {
		return uuid.Nil, err
	}
	for _, r := range recs {
		if r.TenantID == tenantID && r.TrainerID != uuid.Nil {
			return r.TrainerID, nil
		}
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "no trainer record for this tenant in token")
}

/* ============================================
   Tenant getters
   ============================================ */

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	if id, err := parseFirstUUIDFromLocals(c, LocUserID); err == nil && id != uuid.Nil {
		return id, nil
	}
	if v := c.Locals("sub"); v != nil {
		if s, ok := v.(string); ok {
			if id, err := uuid.Parse(strings.TrimSpace(s)); err == nil {
				c.Locals(LocUserID, id.String())
				return id, nil
			}
		}
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id not found in token")
}

// GetTenantIDFromToken resolves the caller's working tenant: the active
// tenant when present, else the first tenant carried by role/trainer claims.
func GetTenantIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	if id, err := GetActiveTenantIDFromToken(c); err == nil && id != uuid.Nil {
		return id, nil
	}
	if entries, err := parseTenantRoles(c); err == nil && len(entries) > 0 {
		return entries[0].TenantID, nil
	}
	if recs, err := parseTrainerRecordsFromLocals(c); err == nil && len(recs) > 0 {
		return recs[0].TenantID, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "tenant scope not found in token")
}

/* ============================================
   Guards
   ============================================ */

func isPrivileged(c *fiber.Ctx) bool { return IsOwner(c) || HasGlobalRole(c, "superadmin") }

func ensureRolesInTenant(c *fiber.Ctx, tenantID uuid.UUID, roles []string, forbidMessage string) error {
	if tenantID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "tenant_id required")
	}
	if isPrivileged(c) {
		return nil
	}
	for _, r := range roles {
		if HasRoleInTenant(c, tenantID, strings.ToLower(strings.TrimSpace(r))) {
			return nil
		}
	}
	if strings.TrimSpace(forbidMessage) == "" {
		forbidMessage = "not allowed"
	}
	return helper.JsonError(c, fiber.StatusForbidden, forbidMessage)
}

// EnsureStaffTenant: back-office staff of this tenant only.
func EnsureStaffTenant(c *fiber.Ctx, tenantID uuid.UUID) error {
	return ensureRolesInTenant(c, tenantID,
		[]string{constants.RoleAdmin, constants.RoleManager},
		constants.RoleErrorStaff("this tenant"))
}

// EnsureTrainerTenant: the caller must carry a trainer record for this tenant.
func EnsureTrainerTenant(c *fiber.Ctx, tenantID uuid.UUID) error {
	if isPrivileged(c) {
		return nil
	}
	if _, err := GetTrainerIDForTenant(c, tenantID); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorTrainer("this tenant"))
	}
	return nil
}
