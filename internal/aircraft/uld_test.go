package aircraft

import (
	"errors"
	"testing"
)

func TestULDSpecFor(t *testing.T) {
	spec, err := ULDSpecFor(TypeM)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Code != "PMC-Q6" || spec.MaxGross != 6804.0 || spec.Tare != 120.0 {
		t.Errorf("unexpected M spec: %+v", spec)
	}

	if _, err := ULDSpecFor("XL"); !errors.Is(err, ErrUnknownULDType) {
		t.Errorf("expected ErrUnknownULDType, got %v", err)
	}
}

func TestEffectiveCapacities(t *testing.T) {
	spec, _ := ULDSpecFor(TypeM)

	if got, want := spec.NetWeight(), 6804.0-120.0; got != want {
		t.Errorf("NetWeight = %.1f, want %.1f", got, want)
	}
	if got, want := spec.EffectiveVolume(), 19.0*PackingLossFactor; got != want {
		t.Errorf("EffectiveVolume = %.2f, want %.2f", got, want)
	}
}

func TestStackHeight(t *testing.T) {
	tests := []struct {
		uldType string
		want    float64
	}{
		{TypeM, 244.0},
		{TypeMQ7, 300.0},
		{TypeK, 160.0},
		{TypeMLower, 163.0},
		{TypeG, 160.0},
		{"XL", 0},
	}

	for _, tt := range tests {
		t.Run(tt.uldType, func(t *testing.T) {
			if got := StackHeight(tt.uldType); got != tt.want {
				t.Errorf("StackHeight(%s) = %.1f, want %.1f", tt.uldType, got, tt.want)
			}
		})
	}
}
