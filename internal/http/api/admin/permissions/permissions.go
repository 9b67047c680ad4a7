package permissions

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Definition describes one admin permission tied to a route.
type Definition struct {
	Key    string
	Method string
	Path   string
	Label  string
	Module string
}

// Definitions returns all permission definitions in display order.
func Definitions() []Definition {
	return []Definition{
		{Key: "deposits:list", Method: "GET", Path: "/v0/admin/deposits", Label: "List deposits", Module: "deposits"},
		{Key: "deposits:approve", Method: "POST", Path: "/v0/admin/deposits/:id/approve", Label: "Approve deposit", Module: "deposits"},
		{Key: "deposits:reject", Method: "POST", Path: "/v0/admin/deposits/:id/reject", Label: "Reject deposit", Module: "deposits"},
		{Key: "withdrawals:list", Method: "GET", Path: "/v0/admin/withdrawals", Label: "List withdrawals", Module: "withdrawals"},
		{Key: "withdrawals:approve", Method: "POST", Path: "/v0/admin/withdrawals/:id/approve", Label: "Approve withdrawal", Module: "withdrawals"},
		{Key: "withdrawals:reject", Method: "POST", Path: "/v0/admin/withdrawals/:id/reject", Label: "Reject withdrawal", Module: "withdrawals"},
		{Key: "levels:list", Method: "GET", Path: "/v0/admin/levels", Label: "List levels", Module: "levels"},
		{Key: "levels:create", Method: "POST", Path: "/v0/admin/levels", Label: "Create level", Module: "levels"},
		{Key: "levels:update", Method: "PUT", Path: "/v0/admin/levels/:id", Label: "Update level", Module: "levels"},
		{Key: "levels:delete", Method: "DELETE", Path: "/v0/admin/levels/:id", Label: "Delete level", Module: "levels"},
		{Key: "prizes:list", Method: "GET", Path: "/v0/admin/prizes", Label: "List prizes", Module: "prizes"},
		{Key: "prizes:create", Method: "POST", Path: "/v0/admin/prizes", Label: "Create prize", Module: "prizes"},
		{Key: "prizes:update", Method: "PUT", Path: "/v0/admin/prizes/:id", Label: "Update prize", Module: "prizes"},
		{Key: "prizes:delete", Method: "DELETE", Path: "/v0/admin/prizes/:id", Label: "Delete prize", Module: "prizes"},
		{Key: "users:list", Method: "GET", Path: "/v0/admin/users", Label: "List users", Module: "users"},
		{Key: "users:grant-prizes", Method: "POST", Path: "/v0/admin/users/:id/prizes", Label: "Grant prize openings", Module: "users"},
		{Key: "users:set-disabled", Method: "POST", Path: "/v0/admin/users/:id/disabled", Label: "Enable or disable user", Module: "users"},
		{Key: "banks:list", Method: "GET", Path: "/v0/admin/banks", Label: "List platform banks", Module: "banks"},
		{Key: "banks:create", Method: "POST", Path: "/v0/admin/banks", Label: "Create platform bank", Module: "banks"},
		{Key: "banks:update", Method: "PUT", Path: "/v0/admin/banks/:id", Label: "Update platform bank", Module: "banks"},
		{Key: "banks:delete", Method: "DELETE", Path: "/v0/admin/banks/:id", Label: "Delete platform bank", Module: "banks"},
		{Key: "settings:get", Method: "GET", Path: "/v0/admin/settings", Label: "Read settings", Module: "settings"},
		{Key: "settings:update", Method: "PUT", Path: "/v0/admin/settings", Label: "Update settings", Module: "settings"},
	}
}

// DefinitionMap indexes definitions by their method/path key.
func DefinitionMap() map[string]Definition {
	defs := Definitions()
	out := make(map[string]Definition, len(defs))
	for _, def := range defs {
		out[Key(def.Method, def.Path)] = def
	}
	return out
}

// Key builds the lookup key for a route.
func Key(method, path string) string {
	return method + " " + path
}

// ParsePermissions decodes the JSON permission list stored on an admin.
func ParsePermissions(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var keys []string
	if errDecode := json.Unmarshal(raw, &keys); errDecode != nil {
		return nil
	}
	return keys
}

// HasPermission reports whether the route key is granted.
func HasPermission(granted []string, routeKey string) bool {
	defs := DefinitionMap()
	def, ok := defs[routeKey]
	if !ok {
		return false
	}
	for _, key := range granted {
		if key == def.Key {
			return true
		}
	}
	return false
}
