package profile

// UpdateRequest edits the caller's own contact details. Nil fields are
// left unchanged; email and role are not editable.
type UpdateRequest struct {
	FullName  *string `json:"full_name" validate:"omitempty,min=2,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,max=50"`
	Address   *string `json:"address" validate:"omitempty,max=500"`
	City      *string `json:"city" validate:"omitempty,max=100"`
	State     *string `json:"state" validate:"omitempty,max=100"`
	ZipCode   *string `json:"zip_code" validate:"omitempty,max=20"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

func (r *UpdateRequest) patch() map[string]any {
	patch := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			patch[col] = *v
		}
	}
	set("full_name", r.FullName)
	set("phone", r.Phone)
	set("address", r.Address)
	set("city", r.City)
	set("state", r.State)
	set("zip_code", r.ZipCode)
	set("avatar_url", r.AvatarURL)
	return patch
}
