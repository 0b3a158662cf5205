package domain

type Permission struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Resource    string `json:"resource,omitempty"`
	Action      string `json:"action,omitempty"`
}

type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	IsActive    bool         `json:"is_active"`
	Permissions []Permission `json:"permissions"`
}

// User is the profile returned by GET /auth/me. Cached users are replaced, never mutated.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FullName    string `json:"full_name,omitempty"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
	Provider    string `json:"provider,omitempty"`
	TenantID    *int64 `json:"tenant_id,omitempty"`
	Roles       []Role `json:"roles"`
}

// PermissionNames flattens role permissions, de-duplicated in order of first occurrence.
func (u *User) PermissionNames() []string {
	names := []string{}
	if u == nil {
		return names
	}
	seen := map[string]struct{}{}
	for _, role := range u.Roles {
		for _, perm := range role.Permissions {
			if perm.Name == "" {
				continue
			}
			if _, ok := seen[perm.Name]; ok {
				continue
			}
			seen[perm.Name] = struct{}{}
			names = append(names, perm.Name)
		}
	}
	return names
}

func (u *User) RoleNames() []string {
	names := []string{}
	if u == nil {
		return names
	}
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}

// HasPermission scans roles linearly; names match exactly.
func (u *User) HasPermission(name string) bool {
	if u == nil {
		return false
	}
	for _, role := range u.Roles {
		for _, perm := range role.Permissions {
			if perm.Name == name {
				return true
			}
		}
	}
	return false
}

func (u *User) HasRole(name string) bool {
	if u == nil {
		return false
	}
	for _, role := range u.Roles {
		if role.Name == name {
			return true
		}
	}
	return false
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user,omitempty"`
}

type RegisterRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name,omitempty"`
	TenantName string `json:"tenant_name"`
}
