package request

type CreateAppointmentRequest struct {
	ServiceType string   `json:"serviceType" validate:"required,oneof=haircut coloring styling treatment"`
	Date        string   `json:"date" validate:"required,dateonly"`
	Time        string   `json:"time" validate:"required,clock"`
	Stylist     string   `json:"stylist" validate:"required,max=100"`
	Duration    int      `json:"duration" validate:"required,gt=0"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Notes       string   `json:"notes,omitempty" validate:"max=1000"`
}

// UpdateAppointmentRequest is a partial patch; nil fields are left untouched.
type UpdateAppointmentRequest struct {
	ServiceType *string  `json:"serviceType,omitempty" validate:"omitempty,oneof=haircut coloring styling treatment"`
	Date        *string  `json:"date,omitempty" validate:"omitempty,dateonly"`
	Time        *string  `json:"time,omitempty" validate:"omitempty,clock"`
	Stylist     *string  `json:"stylist,omitempty" validate:"omitempty,min=1,max=100"`
	Duration    *int     `json:"duration,omitempty" validate:"omitempty,gt=0"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Notes       *string  `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// MovesSlot reports whether the patch touches date or time.
func (r *UpdateAppointmentRequest) MovesSlot() bool {
	return r.Date != nil || r.Time != nil
}
