package mdpress

import (
	"errors"
	"testing"
	"time"
)

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{"nil means defaults", nil, nil},
		{"defaults", DefaultPageSettings(), nil},
		{"zero margin", &PageSettings{MarginPixels: 0}, nil},
		{"large margin", &PageSettings{MarginPixels: 200}, nil},
		{"negative margin", &PageSettings{MarginPixels: -1}, ErrInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.page.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPageSettings_Margin(t *testing.T) {
	t.Parallel()

	var nilPage *PageSettings
	if got := nilPage.margin(); got != DefaultMarginPixels {
		t.Errorf("nil page margin = %d, want %d", got, DefaultMarginPixels)
	}
	if got := (&PageSettings{MarginPixels: 75}).margin(); got != 75 {
		t.Errorf("margin = %d, want 75", got)
	}
	if got := (&PageSettings{MarginPixels: 0}).margin(); got != 0 {
		t.Errorf("explicit zero margin = %d, want 0", got)
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	for _, d := range []time.Duration{0, -time.Second} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("WithTimeout(%v) did not panic", d)
				}
			}()
			WithTimeout(d)
		}()
	}
}
