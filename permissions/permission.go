// Package permissions maps route patterns to the roles allowed to call them. The table is
// embedded from permissions.json; routes marked skip are public.
package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// PermissionData is the decoded table. Skip at the top level turns role checks off entirely.
type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

var (
	loaded   *PermissionData
	loadOnce sync.Once
)

// Get decodes the embedded table once. It returns nil when the table is malformed, which
// the middleware treats as "deny everything that is not public".
func Get() *PermissionData {
	loadOnce.Do(func() {
		data, err := Parse(permissionsData)
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode embedded permissions")

			return
		}

		log.Info().Int("endpoints", len(data.Endpoints)).Msg("Loaded embedded permissions")

		loaded = data
	})

	return loaded
}

func Parse(raw []byte) (*PermissionData, error) {
	var data PermissionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err //nolint:wrapcheck
	}

	data.index = make(map[string]Permission, len(data.Endpoints))
	for _, endpoint := range data.Endpoints {
		data.index[key(endpoint.Path, endpoint.Method)] = endpoint
	}

	return &data, nil
}

// FindPermissions looks up a chi route pattern. Unknown routes get the zero Permission.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r == nil {
		return Permission{}
	}

	return r.index[key(path, method)]
}

// Public reports whether the route needs no token at all.
func (r *PermissionData) Public(path, method string) bool {
	return r.FindPermissions(path, method).Skip
}

// Allows reports whether role may call the route. Routes without a role list accept any
// authenticated caller.
func (r *PermissionData) Allows(path, method, role string) bool {
	if r == nil {
		return false
	}

	if r.Skip {
		return true
	}

	permission := r.FindPermissions(path, method)

	return permission.Skip || len(permission.Permissions) == 0 || slices.Contains(permission.Permissions, role)
}

func key(path, method string) string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return strings.ToUpper(method) + " " + path
}
