package dataaccess

// organizationWire is the organization document as the backend sends
// it. Older records carry the identifier as project_id only.
type organizationWire struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	Plan      string    `json:"plan"`
	CreatedAt Timestamp `json:"created_at"`
}

// normalizeOrganization folds project_id into ID so callers never see
// the legacy field.
func normalizeOrganization(w *organizationWire) *Organization {
	if w == nil {
		return nil
	}
	id := w.ID
	if id == "" {
		id = w.ProjectID
	}
	return &Organization{
		ID:        id,
		Name:      w.Name,
		Plan:      w.Plan,
		CreatedAt: w.CreatedAt,
	}
}

// firstResource returns the first non-nil pointer: backends wrap single
// resources in either a generic data field or a resource-named field.
func firstResource[T any](candidates ...*T) *T {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

// firstList returns the first non-nil slice, or an empty non-nil slice
// when every candidate is absent. List lookups never return nil.
func firstList[T any](candidates ...[]T) []T {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return []T{}
}
