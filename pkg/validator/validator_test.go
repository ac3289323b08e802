package validator

import "testing"

type sampleRequest struct {
	ServiceID   string `json:"service_id" validate:"required,uuid"`
	BookingTime string `json:"booking_time" validate:"required"`
	Weekday     *int   `json:"weekday" validate:"omitempty,gte=0,lte=6"`
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()
	seven := 7

	err := v.Validate(&sampleRequest{ServiceID: "not-a-uuid", Weekday: &seven})
	if err == nil {
		t.Fatal("Validate() error = nil, want validation errors")
	}

	got := v.FormatValidationErrors(err)
	want := map[string]string{
		"ServiceID":   "ServiceID must be a valid UUID",
		"BookingTime": "BookingTime is required",
		"Weekday":     "Weekday must be less than or equal to 6",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("errors[%q] = %q, want %q", field, got[field], msg)
		}
	}
	if len(got) != len(want) {
		t.Errorf("got %d errors, want %d: %v", len(got), len(want), got)
	}
}

func TestValidateAcceptsValidRequest(t *testing.T) {
	v := NewValidator()
	zero := 0

	req := &sampleRequest{
		ServiceID:   "6f1c2a8e-6d2b-4c59-9a57-3b0f0e6a2b11",
		BookingTime: "2024-05-01T09:30:00+07:00",
		Weekday:     &zero,
	}
	if err := v.Validate(req); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestFormatValidationErrorsIgnoresOtherErrors(t *testing.T) {
	v := NewValidator()
	if got := v.FormatValidationErrors(nil); len(got) != 0 {
		t.Errorf("FormatValidationErrors(nil) = %v, want empty", got)
	}
}

type shiftRequest struct {
	Date      string `validate:"required,civildate"`
	StartTime string `validate:"required,timeofday"`
	EndTime   string `validate:"required,timeofday"`
}

func TestClinicTags(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		req  shiftRequest
		want map[string]string
	}{
		{"short and long times", shiftRequest{"2024-05-01", "08:00", "12:00:00"}, map[string]string{}},
		{"end of day", shiftRequest{"2024-05-01", "20:00", "24:00"}, map[string]string{}},
		{"bad time", shiftRequest{"2024-05-01", "8am", "25:00"}, map[string]string{
			"StartTime": "StartTime must be a time of day (HH:MM or HH:MM:SS)",
			"EndTime":   "EndTime must be a time of day (HH:MM or HH:MM:SS)",
		}},
		{"bad date", shiftRequest{"01/05/2024", "08:00", "12:00"}, map[string]string{
			"Date": "Date must be a date (YYYY-MM-DD)",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.FormatValidationErrors(v.Validate(&tt.req))
			if len(got) != len(tt.want) {
				t.Fatalf("errors = %v, want %v", got, tt.want)
			}
			for field, msg := range tt.want {
				if got[field] != msg {
					t.Errorf("errors[%q] = %q, want %q", field, got[field], msg)
				}
			}
		})
	}
}
