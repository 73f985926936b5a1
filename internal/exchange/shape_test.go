package exchange

import (
	"errors"
	"math"
	"testing"
)

func TestShapeValidate(t *testing.T) {
	valid := []Shape{{1}, {5, 6}, {1, 1, 1}, {480, 640, 3}}
	for _, s := range valid {
		if err := s.Validate(); err != nil {
			t.Errorf("Validate(%v) failed: %v", s, err)
		}
	}

	invalid := []Shape{{}, {0}, {-1}, {2, 0}, {2, -3}}
	for _, s := range invalid {
		if err := s.Validate(); !errors.Is(err, ErrBadDimensions) {
			t.Errorf("Validate(%v) error = %v, want ErrBadDimensions", s, err)
		}
	}
}

func TestShapeValidateOverflow(t *testing.T) {
	s := Shape{math.MaxInt, 2}
	if err := s.Validate(); !errors.Is(err, ErrDimensionOverflow) {
		t.Errorf("Validate(%v) error = %v, want ErrDimensionOverflow", s, err)
	}
	if !errors.Is(s.Validate(), ErrArgument) {
		t.Error("overflow should be an argument error")
	}
}

func TestShapeNumElements(t *testing.T) {
	cases := []struct {
		shape Shape
		want  int
	}{
		{Shape{1}, 1},
		{Shape{5, 6}, 30},
		{Shape{10, 2}, 20},
		{Shape{2, 3, 4}, 24},
	}
	for _, tt := range cases {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("NumElements(%v) = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeComputeStrides(t *testing.T) {
	cases := []struct {
		shape Shape
		want  []int
	}{
		{Shape{6}, []int{1}},
		{Shape{5, 6}, []int{6, 1}},
		{Shape{2, 3, 4}, []int{12, 4, 1}},
	}
	for _, tt := range cases {
		got := tt.shape.ComputeStrides()
		if len(got) != len(tt.want) {
			t.Fatalf("ComputeStrides(%v) = %v, want %v", tt.shape, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ComputeStrides(%v) = %v, want %v", tt.shape, got, tt.want)
				break
			}
		}
	}
}

func TestShapeEqualClone(t *testing.T) {
	s := Shape{2, 3}
	clone := s.Clone()
	if !s.Equal(clone) {
		t.Error("clone should equal original")
	}
	clone[0] = 9
	if s[0] != 2 {
		t.Error("mutating a clone must not touch the original")
	}
	if s.Equal(Shape{2, 3, 1}) || s.Equal(Shape{3, 2}) {
		t.Error("Equal matched a different shape")
	}
}

func TestShapeString(t *testing.T) {
	if got := (Shape{10, 2}).String(); got != "(10, 2)" {
		t.Errorf("String = %q, want %q", got, "(10, 2)")
	}
	if got := (Shape{7}).String(); got != "(7)" {
		t.Errorf("String = %q, want %q", got, "(7)")
	}
}
