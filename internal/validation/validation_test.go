package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid email", "player@example.com", false},
		{"valid with plus", "player+tag@example.com", false},
		{"empty", "", true},
		{"missing at", "playerexample.com", true},
		{"missing domain", "player@", true},
		{"missing tld", "player@example", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short"); err == nil {
		t.Error("expected error for short password")
	}
	if err := ValidatePassword(""); err == nil {
		t.Error("expected error for empty password")
	}
	if err := ValidatePassword("longenough"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateHoles(t *testing.T) {
	for _, holes := range []int{9, 18} {
		if err := ValidateHoles(holes); err != nil {
			t.Errorf("ValidateHoles(%d) = %v, want nil", holes, err)
		}
	}
	for _, holes := range []int{0, 1, 12, 27, -9} {
		if err := ValidateHoles(holes); err == nil {
			t.Errorf("ValidateHoles(%d) = nil, want error", holes)
		}
	}
}

func TestValidateScore(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		holes   int
		wantErr bool
	}{
		{"normal 18 hole score", 85, 18, false},
		{"ace every hole", 18, 18, false},
		{"below minimum", 17, 18, true},
		{"implausibly high", 300, 18, true},
		{"normal 9 hole score", 42, 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScore(tt.score, tt.holes)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScore(%d, %d) error = %v, wantErr %v", tt.score, tt.holes, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCounter(t *testing.T) {
	if err := ValidateCounter("birdies", -1, 18); err == nil {
		t.Error("expected error for negative counter")
	}
	if err := ValidateCounter("birdies", 19, 18); err == nil {
		t.Error("expected error for counter above hole count")
	}
	if err := ValidateCounter("birdies", 4, 18); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateDayIndex(t *testing.T) {
	for day := 0; day <= 6; day++ {
		if err := ValidateDayIndex(day); err != nil {
			t.Errorf("ValidateDayIndex(%d) = %v, want nil", day, err)
		}
	}
	if err := ValidateDayIndex(-1); err == nil {
		t.Error("expected error for day -1")
	}
	if err := ValidateDayIndex(7); err == nil {
		t.Error("expected error for day 7")
	}
}

func TestValidatePracticeMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		wantErr bool
	}{
		{0, false},
		{15, false},
		{480, false},
		{-15, true},
		{495, true},
		{20, true},
	}

	for _, tt := range tests {
		err := ValidatePracticeMinutes(tt.minutes)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePracticeMinutes(%d) error = %v, wantErr %v", tt.minutes, err, tt.wantErr)
		}
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Field: "holes", Message: "holes must be 9 or 18"}
	if err.Error() != "holes: holes must be 9 or 18" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
