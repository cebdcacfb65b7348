package permissions

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"rentro/shared/constant"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var (
	ErrUnknownRole   = errors.New("unknown role")
	ErrUnknownMethod = errors.New("unknown http method")
	ErrDuplicate     = errors.New("duplicate endpoint")
	ErrSkipWithRoles = errors.New("skipped endpoint lists roles")
)

var knownRoles = []string{constant.RoleUser, constant.RoleLandlord, constant.RoleAdmin}

var knownMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
}

// Permission lists the roles allowed on one route pattern. An empty list admits every
// authenticated caller; Skip also bypasses authentication.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

func (p Permission) Allows(role string) bool {
	return p.Skip || len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]int
}

func key(path, method string) string {
	return strings.ToUpper(method) + " " + path
}

// FindPermissions returns the entry for a chi route pattern, or the zero Permission.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	idx, ok := r.index[key(path, method)]
	if !ok {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// Parse decodes a permission table and rejects roles outside user, landlord and admin.
func Parse(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	permissions.index = make(map[string]int, len(permissions.Endpoints))

	for i, endpoint := range permissions.Endpoints {
		if !slices.Contains(knownMethods, strings.ToUpper(endpoint.Method)) {
			return nil, fmt.Errorf("%w: %s %s", ErrUnknownMethod, endpoint.Method, endpoint.Path)
		}

		if endpoint.Skip && len(endpoint.Permissions) > 0 {
			return nil, fmt.Errorf("%w: %s %s", ErrSkipWithRoles, endpoint.Method, endpoint.Path)
		}

		for _, role := range endpoint.Permissions {
			if !slices.Contains(knownRoles, role) {
				return nil, fmt.Errorf("%w %q on %s %s", ErrUnknownRole, role, endpoint.Method, endpoint.Path)
			}
		}

		k := key(endpoint.Path, endpoint.Method)
		if _, exists := permissions.index[k]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, k)
		}

		permissions.index[k] = i
	}

	return &permissions, nil
}

func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}
